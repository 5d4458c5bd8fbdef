package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pierremichaudpm/jaxacompta/internal/httputil"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterCompteRoutes registers the routes for bank accounts with
// the RouterGroup that is passed.
func RegisterCompteRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetComptes)
	r.POST("", CreateCompte)
}

type CompteEditable struct {
	Code         string          `json:"code" example:"JAXA-OP"`
	Nom          string          `json:"nom" example:"Compte opérations"`
	Institution  string          `json:"institution" example:"Desjardins"`
	SoldeInitial decimal.Decimal `json:"solde_initial" example:"2500.00"`
}

// model returns the database resource for the API representation of
// the editable fields
func (editable CompteEditable) model() models.CompteBancaire {
	return models.CompteBancaire{
		Code:         editable.Code,
		Nom:          editable.Nom,
		Institution:  editable.Institution,
		SoldeInitial: editable.SoldeInitial,
	}
}

// Compte is the API representation of a bank account. The current
// balance is derived on every read.
type Compte struct {
	models.Model
	CompteEditable
	SoldeActuel decimal.Decimal `json:"solde_actuel" example:"3180.25"`
}

func newCompte(model models.CompteBancaire, solde decimal.Decimal) Compte {
	return Compte{
		Model: model.Model,
		CompteEditable: CompteEditable{
			Code:         model.Code,
			Nom:          model.Nom,
			Institution:  model.Institution,
			SoldeInitial: model.SoldeInitial,
		},
		SoldeActuel: solde,
	}
}

// GetComptes returns all bank accounts with their current balances.
func GetComptes(c *gin.Context) {
	data, err := comptesWithSoldes()
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

// CreateCompte creates a new bank account.
func CreateCompte(c *gin.Context) {
	var editable CompteEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	compte := editable.model()
	if err := models.DB.Create(&compte).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, newCompte(compte, compte.SoldeInitial))
}

// comptesWithSoldes loads every account and derives its balance. The
// dashboard reuses this for its balance block.
func comptesWithSoldes() ([]Compte, error) {
	var comptes []models.CompteBancaire
	err := models.DB.Order("code ASC").Find(&comptes).Error
	if err != nil {
		return nil, err
	}

	data := make([]Compte, 0, len(comptes))
	for _, compte := range comptes {
		solde, err := compte.Solde(models.DB)
		if err != nil {
			return nil, err
		}

		data = append(data, newCompte(compte, solde))
	}

	return data, nil
}
