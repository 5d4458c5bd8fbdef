package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base model for all other models.
//
// Deletion is permanent, there is no soft delete. Derived values like
// account balances are recomputed on read, so a delete never needs a
// compensating update.
type Model struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
func (m *Model) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)
	return nil
}
