package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project statuses as used by the UI. Only "En cours" has meaning to
// the backend: the dashboard limits its project rollups to it.
const ProjetEnCours = "En cours"

// Projet is a production project. Transactions reference one primary
// project and optionally more through the transaction_projets join
// table.
type Projet struct {
	Model
	Code        string `gorm:"uniqueIndex"`
	Nom         string
	Statut      string
	CompteDedie string
	DateDebut   *time.Time
	DateFin     *time.Time
	Budget      *decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (Projet) TableName() string {
	return "projets"
}

// BeforeSave trims whitespace and defaults the status.
func (p *Projet) BeforeSave(_ *gorm.DB) error {
	p.Code = strings.TrimSpace(p.Code)
	p.Nom = strings.TrimSpace(p.Nom)

	if p.Statut == "" {
		p.Statut = ProjetEnCours
	}

	return nil
}

// Totals sums the project's income and expenses over its full
// transaction history, both primary and secondary associations. They
// are always derived, never stored.
func (p Projet) Totals(db *gorm.DB) (revenus, depenses decimal.Decimal, err error) {
	var transactions []Transaction

	err = db.
		Distinct("transactions.*").
		Joins("LEFT JOIN transaction_projets ON transaction_projets.transaction_id = transactions.id").
		Where("transactions.projet_id = ? OR transaction_projets.projet_id = ?", p.ID, p.ID).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	for _, t := range transactions {
		switch t.Type {
		case TypeRevenu:
			revenus = revenus.Add(t.TotalTTC)
		case TypeDepense:
			depenses = depenses.Add(t.TotalTTC)
		}
	}

	return revenus, depenses, nil
}

// Transactions returns all transactions for this project, primary or
// secondary, most recent first.
func (p Projet) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Preload("Categorie").Preload("Contact").Preload("Compte").
		Distinct("transactions.*").
		Joins("LEFT JOIN transaction_projets ON transaction_projets.transaction_id = transactions.id").
		Where("transactions.projet_id = ? OR transaction_projets.projet_id = ?", p.ID, p.ID).
		Order("date_transaction DESC").
		Find(&transactions).Error

	return transactions, err
}
