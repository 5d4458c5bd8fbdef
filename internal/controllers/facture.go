package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pierremichaudpm/jaxacompta/internal/httputil"
	"github.com/pierremichaudpm/jaxacompta/internal/invoice"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
)

// RegisterFactureRoutes registers the routes for invoices with the
// RouterGroup that is passed.
func RegisterFactureRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPostPut)
	r.GET("", GetFactures)
	r.POST("", CreateFacture)
	r.PUT("", UpdateFacture)
}

// FactureListResponse is the invoice list with its headline summary.
type FactureListResponse struct {
	Rows    []Transaction         `json:"rows"`
	Summary models.FactureSummary `json:"summary"`
}

// NextNumberResponse is the advisory invoice number suggestion.
type NextNumberResponse struct {
	Suggested string `json:"suggested"`
}

type FactureQueryFilter struct {
	Statut     string `form:"statut"`      // Filter by invoice status
	NextNumber bool   `form:"next_number"` // Return a suggested next invoice number instead of the list
	Prefix     string `form:"prefix"`      // Prefix for the suggested number. Defaults to JAXA.
}

// GetFactures returns all invoices with their summary. With
// next_number=true it returns a suggested number for the next invoice
// instead.
//
// The suggestion is advisory: nothing is reserved and concurrent
// callers can receive the same number. Uniqueness is the user's call,
// the suggested number stays editable in the form.
func GetFactures(c *gin.Context) {
	var filter FactureQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if filter.NextNumber {
		suggestNextNumber(c, filter.Prefix)
		return
	}

	factures, err := models.Factures(models.DB, filter.Statut)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	rows := make([]Transaction, 0, len(factures))
	for _, facture := range factures {
		rows = append(rows, newTransaction(facture))
	}

	c.JSON(http.StatusOK, FactureListResponse{
		Rows:    rows,
		Summary: models.SummarizeFactures(factures),
	})
}

func suggestNextNumber(c *gin.Context, prefix string) {
	if prefix == "" {
		prefix = invoice.DefaultPrefix
	}

	now := time.Now()
	latest, err := models.LatestNumeroFacture(models.DB, prefix, now.Year())
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, NextNumberResponse{
		Suggested: invoice.Next(prefix, latest, now),
	})
}

// CreateFacture creates an invoice: a revenue transaction carrying an
// invoice number. Missing fields get the invoicing defaults.
func CreateFacture(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	editable.Type = models.TypeRevenu
	if editable.StatutFacture == "" {
		editable.StatutFacture = string(invoice.StatusEnvoyee)
	}
	if editable.ModePaiement == "" {
		editable.ModePaiement = "Virement Interac"
	}
	if editable.Description == "" && editable.NumeroFacture != "" {
		editable.Description = "Facture " + editable.NumeroFacture
		if editable.ContactID != nil {
			var contact models.Contact
			if err := models.DB.First(&contact, *editable.ContactID).Error; err == nil {
				editable.Description += " - " + contact.Nom
			}
		}
	}

	transaction := editable.model()
	if err := models.DB.Create(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, newTransaction(transaction))
}

// FactureUpdate is the payload for an invoice lifecycle update.
type FactureUpdate struct {
	ID            uint       `json:"id" binding:"required"`
	StatutFacture string     `json:"statut_facture"`
	DatePaiement  *time.Time `json:"date_paiement"`
	NumeroFacture string     `json:"numero_facture"`
	LignesFacture string     `json:"lignes_facture"`
}

// UpdateFacture updates the lifecycle fields of an invoice. Marking
// an invoice as paid stamps the payment date with today when the
// client does not supply one.
func UpdateFacture(c *gin.Context) {
	var update FactureUpdate
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, update.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transaction.StatutFacture = update.StatutFacture
	transaction.DatePaiement = update.DatePaiement
	transaction.NumeroFacture = update.NumeroFacture
	transaction.LignesFacture = update.LignesFacture

	if transaction.StatutFacture == string(invoice.StatusPayee) && transaction.DatePaiement == nil {
		today := time.Now().In(time.UTC).Truncate(24 * time.Hour)
		transaction.DatePaiement = &today
	}

	if err := models.DB.Save(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newTransaction(transaction))
}
