package models

// Category kinds. "neutre" categories are used for transfers and
// corrections that are neither income nor expense.
const (
	CategoryDepense = "dépense"
	CategoryRevenu  = "revenu"
	CategoryNeutre  = "neutre"
)

// Category is static reference data for classifying transactions.
// It is seeded once and read-only to the backend.
type Category struct {
	Model
	Nom  string
	Type string
}
