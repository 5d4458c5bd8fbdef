package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pierremichaudpm/jaxacompta/internal/httputil"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetCategories)
}

// Category is the API representation of a transaction category.
type Category struct {
	models.Model
	Nom  string `json:"nom" example:"Équipement"`
	Type string `json:"type" example:"dépense" enums:"dépense,revenu,neutre"`
}

func newCategory(model models.Category) Category {
	return Category{
		Model: model.Model,
		Nom:   model.Nom,
		Type:  model.Type,
	}
}

// GetCategories returns all categories, grouped by type and sorted by
// name so the frontend can render its pickers directly.
func GetCategories(c *gin.Context) {
	var categories []models.Category
	err := models.DB.Order("type ASC, nom ASC").Find(&categories).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(category))
	}

	c.JSON(http.StatusOK, data)
}
