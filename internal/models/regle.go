package models

import (
	"strings"

	"gorm.io/gorm"
)

// RegleCategorisation assigns a category to imported transactions
// whose description matches a glob pattern, e.g. "*HYDRO*QUEBEC*".
// Rules are applied in priority order; the first match wins.
type RegleCategorisation struct {
	Model
	Motif       string // glob pattern matched against the description
	CategorieID uint
	Categorie   Category `json:"-"`
	Priorite    int
}

func (RegleCategorisation) TableName() string {
	return "regles_categorisation"
}

func (r *RegleCategorisation) BeforeSave(_ *gorm.DB) error {
	r.Motif = strings.TrimSpace(r.Motif)
	return nil
}

// BeforeCreate verifies that the referenced category exists.
func (r *RegleCategorisation) BeforeCreate(tx *gorm.DB) error {
	return tx.First(&Category{}, r.CategorieID).Error
}

// Regles returns all categorization rules, highest priority first.
func Regles(db *gorm.DB) ([]RegleCategorisation, error) {
	var regles []RegleCategorisation
	err := db.Order("priorite DESC, id ASC").Find(&regles).Error
	return regles, err
}
