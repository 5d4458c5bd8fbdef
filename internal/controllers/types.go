package controllers

// QueryID identifies the resource a PUT or DELETE applies to. The
// frontend sends the ID as a query parameter, not as a path segment.
type QueryID struct {
	ID uint `form:"id" binding:"required"` // ID of the resource
}
