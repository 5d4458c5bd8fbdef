package models

import (
	"sort"
	"time"

	"github.com/pierremichaudpm/jaxacompta/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Totaux is the rollup attached to every report: income and expense
// totals plus the collected and paid sales taxes, split by
// transaction type.
type Totaux struct {
	Revenus   decimal.Decimal `json:"revenus"`
	Depenses  decimal.Decimal `json:"depenses"`
	TPSPercue decimal.Decimal `json:"tps_percue"`
	TPSPayee  decimal.Decimal `json:"tps_payee"`
	TVQPercue decimal.Decimal `json:"tvq_percue"`
	TVQPayee  decimal.Decimal `json:"tvq_payee"`
}

// add folds one transaction into the rollup.
func (t *Totaux) add(transaction Transaction) {
	switch transaction.Type {
	case TypeRevenu:
		t.Revenus = t.Revenus.Add(transaction.TotalTTC)
		t.TPSPercue = t.TPSPercue.Add(transaction.TPS)
		t.TVQPercue = t.TVQPercue.Add(transaction.TVQ)
	case TypeDepense:
		t.Depenses = t.Depenses.Add(transaction.TotalTTC)
		t.TPSPayee = t.TPSPayee.Add(transaction.TPS)
		t.TVQPayee = t.TVQPayee.Add(transaction.TVQ)
	}
}

// CategorieTotal is one row of a per-category breakdown.
type CategorieTotal struct {
	Nom   string          `json:"nom"`
	Type  string          `json:"type"`
	Total decimal.Decimal `json:"total"`
	TPS   decimal.Decimal `json:"tps"`
	TVQ   decimal.Decimal `json:"tvq"`
}

// MoisTotal is one month of an income/expense series.
type MoisTotal struct {
	Mois     types.Month     `json:"mois"`
	Revenus  decimal.Decimal `json:"revenus"`
	Depenses decimal.Decimal `json:"depenses"`
}

// TransactionsBetween returns all transactions in [from, until),
// oldest first, optionally restricted to the account with the given
// code. Reports always recompute from this scan, nothing is cached.
func TransactionsBetween(db *gorm.DB, from, until time.Time, compteCode string) ([]Transaction, error) {
	q := db.
		Preload("Categorie").Preload("Projet").Preload("Contact").Preload("Compte").
		Where("transactions.date_transaction >= ? AND transactions.date_transaction < ?", from, until).
		Order("transactions.date_transaction ASC, transactions.id ASC")

	if compteCode != "" {
		q = q.Joins("JOIN comptes_bancaires ON comptes_bancaires.id = transactions.compte_id").
			Where("comptes_bancaires.code = ?", compteCode)
	}

	var transactions []Transaction
	err := q.Find(&transactions).Error
	return transactions, err
}

// TotauxFor folds a transaction list into its rollup.
func TotauxFor(transactions []Transaction) Totaux {
	var totaux Totaux
	for _, t := range transactions {
		totaux.add(t)
	}

	return totaux
}

// ParCategorie groups transactions by category and sums total, TPS and
// TVQ per group, largest total first. Transactions without a category
// are grouped under an empty name.
func ParCategorie(transactions []Transaction) []CategorieTotal {
	groups := make(map[string]*CategorieTotal)
	var order []string

	for _, t := range transactions {
		if t.Type == TypeTransfert {
			continue
		}

		var nom, categorieType string
		if t.Categorie != nil {
			nom = t.Categorie.Nom
			categorieType = t.Categorie.Type
		}

		group, ok := groups[nom]
		if !ok {
			group = &CategorieTotal{Nom: nom, Type: categorieType}
			groups[nom] = group
			order = append(order, nom)
		}

		group.Total = group.Total.Add(t.TotalTTC)
		group.TPS = group.TPS.Add(t.TPS)
		group.TVQ = group.TVQ.Add(t.TVQ)
	}

	result := make([]CategorieTotal, 0, len(order))
	for _, nom := range order {
		result = append(result, *groups[nom])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})

	return result
}

// ParMois groups transactions into a month-by-month income/expense
// series covering [from, until), including months without activity.
func ParMois(transactions []Transaction, from, until time.Time) []MoisTotal {
	var series []MoisTotal
	index := make(map[string]int)

	for month := types.MonthOf(from); month.First().Before(until); month = month.AddDate(0, 1) {
		index[month.String()] = len(series)
		series = append(series, MoisTotal{Mois: month})
	}

	for _, t := range transactions {
		i, ok := index[types.MonthOf(t.DateTransaction).String()]
		if !ok {
			continue
		}

		switch t.Type {
		case TypeRevenu:
			series[i].Revenus = series[i].Revenus.Add(t.TotalTTC)
		case TypeDepense:
			series[i].Depenses = series[i].Depenses.Add(t.TotalTTC)
		}
	}

	return series
}

// LateInvoices returns revenue transactions with an unpaid invoice
// status whose date is more than 30 days before asOf, oldest first.
func LateInvoices(db *gorm.DB, asOf time.Time) ([]Transaction, error) {
	cutoff := asOf.AddDate(0, 0, -30)

	var transactions []Transaction
	err := db.
		Preload("Contact").Preload("Projet").
		Where("type = ?", TypeRevenu).
		Where("numero_facture <> ''").
		Where("statut_facture IN ?", []string{"Envoyée", "En retard"}).
		Where("date_transaction < ?", cutoff).
		Order("date_transaction ASC").
		Find(&transactions).Error

	return transactions, err
}
