package models

import (
	"fmt"

	"github.com/pierremichaudpm/jaxacompta/internal/invoice"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FactureSummary is the headline block of the invoice list.
type FactureSummary struct {
	Total         int             `json:"total"`
	Payees        int             `json:"payees"`
	EnAttente     int             `json:"en_attente"`
	EnRetard      int             `json:"en_retard"`
	MontantImpaye decimal.Decimal `json:"montant_impaye"`
}

// Factures returns all invoices (revenue transactions carrying an
// invoice number), most recent first, optionally filtered by status.
func Factures(db *gorm.DB, statut string) ([]Transaction, error) {
	q := db.
		Preload("Contact").Preload("Projet").Preload("Compte").
		Where("type = ?", TypeRevenu).
		Where("numero_facture <> ''").
		Order("date_transaction DESC, id DESC")

	if statut != "" {
		q = q.Where("statut_facture = ?", statut)
	}

	var factures []Transaction
	err := q.Find(&factures).Error
	return factures, err
}

// SummarizeFactures computes the invoice summary over a list of
// invoices. The outstanding amount sums every invoice that is not
// paid yet.
func SummarizeFactures(factures []Transaction) FactureSummary {
	summary := FactureSummary{Total: len(factures)}

	for _, f := range factures {
		status := invoice.Status(f.StatutFacture)

		switch status {
		case invoice.StatusPayee:
			summary.Payees++
		case invoice.StatusEnRetard:
			summary.EnRetard++
		default:
			summary.EnAttente++
		}

		if status.Unpaid() {
			summary.MontantImpaye = summary.MontantImpaye.Add(f.TotalTTC)
		}
	}

	return summary
}

// LatestNumeroFacture returns the lexicographically greatest invoice
// number for a prefix and year, or the empty string when none exists.
//
// The result feeds the advisory next-number suggestion. There is no
// reservation: two concurrent calls can both see the same latest
// number and suggest the same next one.
func LatestNumeroFacture(db *gorm.DB, prefix string, year int) (string, error) {
	var numeros []string

	pattern := fmt.Sprintf("%s%%%d%%", prefix, year)
	err := db.Model(&Transaction{}).
		Where("numero_facture LIKE ?", pattern).
		Order("numero_facture DESC").
		Limit(1).
		Pluck("numero_facture", &numeros).Error
	if err != nil {
		return "", err
	}

	if len(numeros) == 0 {
		return "", nil
	}

	return numeros[0], nil
}
