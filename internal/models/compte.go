package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompteBancaire is a bank account. The current balance is never
// stored: it is derived from the initial balance and the full
// transaction history on every read, so it cannot drift.
type CompteBancaire struct {
	Model
	Code         string `gorm:"uniqueIndex"`
	Nom          string
	Institution  string
	SoldeInitial decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (CompteBancaire) TableName() string {
	return "comptes_bancaires"
}

func (c *CompteBancaire) BeforeSave(_ *gorm.DB) error {
	c.Code = strings.TrimSpace(c.Code)
	c.Nom = strings.TrimSpace(c.Nom)
	c.Institution = strings.TrimSpace(c.Institution)

	return nil
}

// Solde calculates the current balance of the account:
// initial balance plus all income, minus all expenses.
func (c CompteBancaire) Solde(db *gorm.DB) (decimal.Decimal, error) {
	var revenus, depenses decimal.NullDecimal

	err := db.Table("transactions").
		Where("compte_id = ? AND type = ?", c.ID, TypeRevenu).
		Select("SUM(total_ttc)").
		Row().
		Scan(&revenus)
	if err != nil {
		return decimal.Zero, err
	}

	err = db.Table("transactions").
		Where("compte_id = ? AND type = ?", c.ID, TypeDepense).
		Select("SUM(total_ttc)").
		Row().
		Scan(&depenses)
	if err != nil {
		return decimal.Zero, err
	}

	return c.SoldeInitial.Add(revenus.Decimal).Sub(depenses.Decimal), nil
}
