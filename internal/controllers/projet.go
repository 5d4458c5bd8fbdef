package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pierremichaudpm/jaxacompta/internal/httputil"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterProjetRoutes registers the routes for projects with the
// RouterGroup that is passed.
func RegisterProjetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPostPut)
	r.GET("", GetProjets)
	r.POST("", CreateProjet)
	r.PUT("", UpdateProjet)
}

type ProjetEditable struct {
	Code        string           `json:"code" example:"PROD-2025-04"`
	Nom         string           `json:"nom" example:"Documentaire Nordique"`
	Statut      string           `json:"statut" example:"En cours"`
	CompteDedie string           `json:"compte_dedie" example:"JAXA-PROD"`
	DateDebut   *time.Time       `json:"date_debut"`
	DateFin     *time.Time       `json:"date_fin"`
	Budget      *decimal.Decimal `json:"budget" example:"85000.00"`
}

// model returns the database resource for the API representation of
// the editable fields
func (editable ProjetEditable) model() models.Projet {
	return models.Projet{
		Code:        editable.Code,
		Nom:         editable.Nom,
		Statut:      editable.Statut,
		CompteDedie: editable.CompteDedie,
		DateDebut:   editable.DateDebut,
		DateFin:     editable.DateFin,
		Budget:      editable.Budget,
	}
}

// Projet is the API representation of a project, including its
// derived income and expense totals.
type Projet struct {
	models.Model
	ProjetEditable
	Revenus  decimal.Decimal `json:"revenus" example:"42000.00"`
	Depenses decimal.Decimal `json:"depenses" example:"18355.40"`
}

func newProjet(model models.Projet, revenus, depenses decimal.Decimal) Projet {
	return Projet{
		Model: model.Model,
		ProjetEditable: ProjetEditable{
			Code:        model.Code,
			Nom:         model.Nom,
			Statut:      model.Statut,
			CompteDedie: model.CompteDedie,
			DateDebut:   model.DateDebut,
			DateFin:     model.DateFin,
			Budget:      model.Budget,
		},
		Revenus:  revenus,
		Depenses: depenses,
	}
}

// GetProjets returns all projects with their income and expense
// rollups, most recent first.
func GetProjets(c *gin.Context) {
	data, err := projetsWithTotals("")
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

// CreateProjet creates a new project.
func CreateProjet(c *gin.Context) {
	var editable ProjetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	projet := editable.model()
	if err := models.DB.Create(&projet).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, newProjet(projet, decimal.Zero, decimal.Zero))
}

// UpdateProjet updates an existing project. The frontend sends the
// full record with the ID in the body.
func UpdateProjet(c *gin.Context) {
	var update struct {
		ID uint `json:"id" binding:"required"`
		ProjetEditable
	}
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var projet models.Projet
	if err := models.DB.First(&projet, update.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	model := update.model()
	model.ID = projet.ID
	model.CreatedAt = projet.CreatedAt
	if err := models.DB.Save(&model).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	revenus, depenses, err := model.Totals(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newProjet(model, revenus, depenses))
}

// projetsWithTotals loads projects and derives their totals. The
// dashboard restricts the list to a single status.
func projetsWithTotals(statut string) ([]Projet, error) {
	q := models.DB.Order("created_at DESC, id DESC")
	if statut != "" {
		q = q.Where("statut = ?", statut)
	}

	var projets []models.Projet
	if err := q.Find(&projets).Error; err != nil {
		return nil, err
	}

	data := make([]Projet, 0, len(projets))
	for _, projet := range projets {
		revenus, depenses, err := projet.Totals(models.DB)
		if err != nil {
			return nil, err
		}

		data = append(data, newProjet(projet, revenus, depenses))
	}

	return data, nil
}
