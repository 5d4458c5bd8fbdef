package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pierremichaudpm/jaxacompta/internal/httputil"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/pierremichaudpm/jaxacompta/internal/types"
)

// Report types.
const (
	RapportMensuel     = "mensuel"
	RapportTrimestriel = "trimestriel-taxes"
	RapportProjet      = "projet"
	RapportAnnuel      = "annuel"
)

// RegisterRapportRoutes registers the report route with the
// RouterGroup that is passed.
func RegisterRapportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetRapport)
}

// Rapport is the response for every report type. Only the blocks that
// apply to the requested type are filled in.
type Rapport struct {
	Rows            []Transaction           `json:"rows,omitempty"`
	Totaux          *models.Totaux          `json:"totaux,omitempty"`
	ParCategorie    []models.CategorieTotal `json:"parCategorie,omitempty"`
	ParMois         []models.MoisTotal      `json:"parMois,omitempty"`
	PeriodeDeclaree *models.PeriodeFiscale  `json:"periode_declaree,omitempty"`
}

type RapportQueryFilter struct {
	Type      string `form:"type"`      // Report type, one of mensuel, trimestriel-taxes, projet, annuel
	Mois      string `form:"mois"`      // Month in YYYY-MM format, for the monthly report
	Compte    string `form:"compte"`    // Bank account code, optional filter for the monthly report
	Trimestre string `form:"trimestre"` // Quarter, e.g. Q1 or T1, for the quarterly tax report
	Annee     string `form:"annee"`     // Year for the quarterly and annual reports
	ProjetID  uint   `form:"projet_id"` // Project ID for the project report
}

// GetRapport generates a report. Reports always recompute from the
// transaction history, nothing is cached or stored.
func GetRapport(c *gin.Context) {
	var filter RapportQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	switch filter.Type {
	case RapportMensuel:
		rapportMensuel(c, filter)
	case RapportTrimestriel:
		rapportTrimestriel(c, filter)
	case RapportProjet:
		rapportProjet(c, filter)
	case RapportAnnuel:
		rapportAnnuel(c, filter)
	default:
		c.JSON(http.StatusBadRequest, httpError{Error: errRapportTypeInvalid.Error()})
	}
}

// rapportMensuel lists one month of transactions with its rollup,
// optionally restricted to one bank account.
func rapportMensuel(c *gin.Context, filter RapportQueryFilter) {
	month, err := types.ParseMonth(filter.Mois)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errMoisNotSetInQuery.Error()})
		return
	}

	transactions, err := models.TransactionsBetween(models.DB, month.First(), month.Next(), filter.Compte)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	totaux := models.TotauxFor(transactions)
	c.JSON(http.StatusOK, Rapport{
		Rows:   transactionRows(transactions),
		Totaux: &totaux,
	})
}

// rapportTrimestriel is the quarterly tax report: the collected and
// paid TPS/TVQ for one fiscal quarter, with a per-category breakdown.
func rapportTrimestriel(c *gin.Context, filter RapportQueryFilter) {
	annee, err := strconv.Atoi(filter.Annee)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errAnneeNotSetInQuery.Error()})
		return
	}

	quarter, err := types.ParseQuarter(annee, filter.Trimestre)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	transactions, err := models.TransactionsBetween(models.DB, quarter.First(), quarter.Next(), "")
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	declaree, err := models.DeclaredPeriode(models.DB, quarter.String())
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	totaux := models.TotauxFor(transactions)
	c.JSON(http.StatusOK, Rapport{
		Totaux:          &totaux,
		ParCategorie:    models.ParCategorie(transactions),
		PeriodeDeclaree: declaree,
	})
}

// rapportProjet lists the full transaction history of one project
// with its rollup.
func rapportProjet(c *gin.Context, filter RapportQueryFilter) {
	if filter.ProjetID == 0 {
		c.JSON(http.StatusBadRequest, httpError{Error: errProjetIDParameter.Error()})
		return
	}

	var projet models.Projet
	if err := models.DB.First(&projet, filter.ProjetID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transactions, err := projet.Transactions(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	totaux := models.TotauxFor(transactions)
	c.JSON(http.StatusOK, Rapport{
		Rows:   transactionRows(transactions),
		Totaux: &totaux,
	})
}

// rapportAnnuel is the yearly overview: a month-by-month series plus
// a per-category breakdown over the whole year.
func rapportAnnuel(c *gin.Context, filter RapportQueryFilter) {
	annee, err := strconv.Atoi(filter.Annee)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errAnneeNotSetInQuery.Error()})
		return
	}

	from := time.Date(annee, time.January, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(1, 0, 0)

	transactions, err := models.TransactionsBetween(models.DB, from, until, "")
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	totaux := models.TotauxFor(transactions)
	c.JSON(http.StatusOK, Rapport{
		Totaux:       &totaux,
		ParCategorie: models.ParCategorie(transactions),
		ParMois:      models.ParMois(transactions, from, until),
	})
}

func transactionRows(transactions []models.Transaction) []Transaction {
	rows := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		rows = append(rows, newTransaction(transaction))
	}

	return rows
}
