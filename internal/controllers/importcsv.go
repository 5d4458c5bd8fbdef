package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pierremichaudpm/jaxacompta/internal/httputil"
	"github.com/pierremichaudpm/jaxacompta/internal/importer"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/ryanuber/go-glob"
)

// RegisterImportRoutes registers the CSV import route with the
// RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", ImportCSV)
}

// ImportRequest is the JSON body of a batch import: rows the client
// already mapped from its CSV file.
type ImportRequest struct {
	Transactions []TransactionEditable `json:"transactions"`
	CompteID     *uint                 `json:"compte_id"`
}

// ImportResponse reports the outcome of a best effort import.
type ImportResponse struct {
	Imported int      `json:"imported"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors"`
}

// ImportCSV imports bank transactions in bulk. The body is either a
// JSON batch of mapped rows or a multipart upload with a CSV file
// under the "file" field.
//
// The import is best effort: each row is inserted on its own, a
// failing row is reported with its 1-based position and does not stop
// the rest of the batch.
func ImportCSV(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		importFile(c)
		return
	}

	var request ImportRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if len(request.Transactions) == 0 {
		c.JSON(http.StatusBadRequest, httpError{Error: errNoFilePost.Error()})
		return
	}

	regles, err := models.Regles(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	response := ImportResponse{Total: len(request.Transactions), Errors: []string{}}

	for i, editable := range request.Transactions {
		if editable.CompteID == nil {
			editable.CompteID = request.CompteID
		}

		transaction := editable.model()
		if transaction.CategorieID == nil {
			transaction.CategorieID = matchRegle(regles, transaction.Description)
		}

		if err := models.DB.Create(&transaction).Error; err != nil {
			response.Errors = append(response.Errors, fmt.Sprintf("Ligne %d: %s", i+1, err.Error()))
			continue
		}

		response.Imported++
	}

	c.JSON(http.StatusOK, response)
}

// importFile handles the multipart variant: the CSV file is parsed
// server side and every usable line becomes a non-taxable transaction
// on the selected account.
func importFile(c *gin.Context) {
	formFile, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errNoFilePost.Error()})
		return
	}

	file, err := formFile.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}
	defer file.Close()

	drafts, parseErrors, err := importer.Parse(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var compteID *uint
	if raw := c.PostForm("compte_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
			return
		}

		parsed := uint(id)
		compteID = &parsed
	}

	regles, err := models.Regles(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	response := ImportResponse{Total: len(drafts) + len(parseErrors), Errors: parseErrors}
	if response.Errors == nil {
		response.Errors = []string{}
	}

	for i, draft := range drafts {
		transactionType := models.TypeDepense
		if draft.IsRevenu() {
			transactionType = models.TypeRevenu
		}

		transaction := models.Transaction{
			DateTransaction: draft.Date,
			Type:            transactionType,
			Description:     draft.Description,
			CompteID:        compteID,
			ModePaiement:    "Virement",
			MontantHT:       draft.Montant(),
			TotalTTC:        draft.Montant(),
			Taxable:         false,
			CategorieID:     matchRegle(regles, draft.Description),
		}

		if err := models.DB.Create(&transaction).Error; err != nil {
			response.Errors = append(response.Errors, fmt.Sprintf("Ligne %d: %s", i+1, err.Error()))
			continue
		}

		response.Imported++
	}

	c.JSON(http.StatusOK, response)
}

// matchRegle returns the category of the first rule whose glob
// pattern matches the description. Matching ignores case, rules are
// ordered by priority.
func matchRegle(regles []models.RegleCategorisation, description string) *uint {
	description = strings.ToUpper(description)

	for _, regle := range regles {
		if glob.Glob(strings.ToUpper(regle.Motif), description) {
			id := regle.CategorieID
			return &id
		}
	}

	return nil
}
