package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pierremichaudpm/jaxacompta/internal/httputil"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterTransactionRoutes registers the routes for transactions
// with the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPostPutDelete)
	r.GET("", GetTransactions)
	r.POST("", CreateTransaction)
	r.PUT("", UpdateTransaction)
	r.DELETE("", DeleteTransaction)
}

// GetTransactions returns a filtered, paginated transaction list. The
// count runs against the same filtered query as the rows, so the two
// cannot drift apart.
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Model(&models.Transaction{}).
		Preload("Categorie").Preload("Projet").Preload("Contact").Preload("Compte").Preload("Projets").
		Order("date_transaction DESC, transactions.id DESC")

	if filter.Q != "" {
		// LOWER on both sides so the match is case-insensitive on
		// sqlite and postgres alike
		search := fmt.Sprintf("%%%s%%", filter.Q)
		q = q.Joins("LEFT JOIN contacts ON contacts.id = transactions.contact_id").
			Where("LOWER(transactions.description) LIKE LOWER(?) OR LOWER(contacts.nom) LIKE LOWER(?)", search, search)
	}

	if filter.Projet != 0 {
		q = q.Where(
			"transactions.projet_id = ? OR transactions.id IN (SELECT transaction_id FROM transaction_projets WHERE projet_id = ?)",
			filter.Projet, filter.Projet,
		)
	}

	if filter.Categorie != 0 {
		q = q.Where("transactions.categorie_id = ?", filter.Categorie)
	}

	if filter.Compte != 0 {
		q = q.Where("transactions.compte_id = ?", filter.Compte)
	}

	if filter.Type != "" {
		q = q.Where("transactions.type = ?", filter.Type)
	}

	if !filter.From.IsZero() {
		q = q.Where("transactions.date_transaction >= ?", filter.From)
	}

	if !filter.To.IsZero() {
		// The to filter is inclusive of the full day
		q = q.Where("transactions.date_transaction < ?", filter.To.AddDate(0, 0, 1))
	}

	q = q.Offset(int(filter.Offset))

	// Default to 50 transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	rows := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		rows = append(rows, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Rows:  rows,
		Total: count,
	})
}

// CreateTransaction creates a new transaction.
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	transaction := editable.model()
	if err := models.DB.Create(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, newTransaction(transaction))
}

// UpdateTransaction replaces an existing transaction. The frontend
// sends the full record with the ID in the body.
func UpdateTransaction(c *gin.Context) {
	var update struct {
		ID uint `json:"id" binding:"required"`
		TransactionEditable
	}
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, update.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	model := update.model()
	model.ID = transaction.ID
	model.CreatedAt = transaction.CreatedAt

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&transaction).Association("Projets").Replace(model.Projets); err != nil {
			return err
		}

		model.Projets = nil
		return tx.Save(&model).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newTransaction(model))
}

// DeleteTransaction deletes a transaction. The deletion is permanent,
// derived balances and report rollups adjust on the next read.
func DeleteTransaction(c *gin.Context) {
	var query QueryID
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errIDParameter.Error()})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, query.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Select("Projets").Delete(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
