package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pierremichaudpm/jaxacompta/internal/httputil"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
)

// RegisterContactRoutes registers the routes for contacts with the
// RouterGroup that is passed.
func RegisterContactRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPostPut)
	r.GET("", GetContacts)
	r.POST("", CreateContact)
	r.PUT("", UpdateContact)
}

type ContactEditable struct {
	Nom       string `json:"nom" example:"Studio Lumen"`
	Type      string `json:"type" example:"client" enums:"client,fournisseur,les deux"`
	Email     string `json:"email" example:"compta@studiolumen.ca"`
	Telephone string `json:"telephone" example:"514-555-0148"`
	Adresse   string `json:"adresse" example:"400 rue Saint-Jacques, Montréal"`
	NumeroTPS string `json:"numero_tps" example:"123456789 RT0001"`
	NumeroTVQ string `json:"numero_tvq" example:"1234567890 TQ0001"`
}

// model returns the database resource for the API representation of
// the editable fields
func (editable ContactEditable) model() models.Contact {
	return models.Contact{
		Nom:       editable.Nom,
		Type:      editable.Type,
		Email:     editable.Email,
		Telephone: editable.Telephone,
		Adresse:   editable.Adresse,
		NumeroTPS: editable.NumeroTPS,
		NumeroTVQ: editable.NumeroTVQ,
	}
}

// Contact is the API representation of a contact.
type Contact struct {
	models.Model
	ContactEditable
}

func newContact(model models.Contact) Contact {
	return Contact{
		Model: model.Model,
		ContactEditable: ContactEditable{
			Nom:       model.Nom,
			Type:      model.Type,
			Email:     model.Email,
			Telephone: model.Telephone,
			Adresse:   model.Adresse,
			NumeroTPS: model.NumeroTPS,
			NumeroTVQ: model.NumeroTVQ,
		},
	}
}

// GetContacts returns all contacts, sorted by name.
func GetContacts(c *gin.Context) {
	var contacts []models.Contact
	err := models.DB.Order("nom ASC").Find(&contacts).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Contact, 0, len(contacts))
	for _, contact := range contacts {
		data = append(data, newContact(contact))
	}

	c.JSON(http.StatusOK, data)
}

// CreateContact creates a new contact.
func CreateContact(c *gin.Context) {
	var editable ContactEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	contact := editable.model()
	if err := models.DB.Create(&contact).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, newContact(contact))
}

// UpdateContact updates an existing contact. The frontend sends the
// full record with the ID in the body.
func UpdateContact(c *gin.Context) {
	var update struct {
		ID uint `json:"id" binding:"required"`
		ContactEditable
	}
	if err := httputil.BindData(c, &update); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var contact models.Contact
	if err := models.DB.First(&contact, update.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	model := update.model()
	model.ID = contact.ID
	model.CreatedAt = contact.CreatedAt
	if err := models.DB.Save(&model).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newContact(model))
}
