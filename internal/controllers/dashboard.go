package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pierremichaudpm/jaxacompta/internal/httputil"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/pierremichaudpm/jaxacompta/internal/types"
	"github.com/shopspring/decimal"
)

// evolutionMonths is the length of the income/expense series on the
// dashboard, current month included.
const evolutionMonths = 12

// RegisterDashboardRoutes registers the dashboard route with the
// RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetDashboard)
}

// Dashboard is the combined snapshot for the landing page. Everything
// in it is derived at request time.
type Dashboard struct {
	Mois           MoisCourant        `json:"mois"`
	Soldes         []Compte           `json:"soldes"`
	Evolution      []models.MoisTotal `json:"evolution"`
	Projets        []Projet           `json:"projets"`
	FacturesRetard []Transaction      `json:"factures_retard"`
}

// MoisCourant is the income and expense rollup of the current month.
type MoisCourant struct {
	Revenus  decimal.Decimal `json:"revenus"`
	Depenses decimal.Decimal `json:"depenses"`
}

// GetDashboard assembles the dashboard snapshot: the current month's
// totals, every account balance, the recent month-by-month evolution,
// the running projects and the invoices that are overdue.
func GetDashboard(c *gin.Context) {
	now := time.Now().In(time.UTC)
	currentMonth := types.MonthOf(now)

	from := currentMonth.AddDate(0, -(evolutionMonths - 1)).First()
	transactions, err := models.TransactionsBetween(models.DB, from, currentMonth.Next(), "")
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var moisTransactions []models.Transaction
	for _, t := range transactions {
		if currentMonth.Contains(t.DateTransaction) {
			moisTransactions = append(moisTransactions, t)
		}
	}
	totaux := models.TotauxFor(moisTransactions)

	soldes, err := comptesWithSoldes()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	projets, err := projetsWithTotals(models.ProjetEnCours)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	late, err := models.LateInvoices(models.DB, now)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, Dashboard{
		Mois: MoisCourant{
			Revenus:  totaux.Revenus,
			Depenses: totaux.Depenses,
		},
		Soldes:         soldes,
		Evolution:      models.ParMois(transactions, from, currentMonth.Next()),
		Projets:        projets,
		FacturesRetard: transactionRows(late),
	})
}
