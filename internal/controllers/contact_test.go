package controllers_test

import (
	"net/http"

	"github.com/pierremichaudpm/jaxacompta/internal/controllers"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/pierremichaudpm/jaxacompta/test"
)

func (suite *TestSuiteStandard) TestContactsSorted() {
	suite.createTestContact(models.Contact{Nom: "Studio Lumen"})
	suite.createTestContact(models.Contact{Nom: "Hydro-Québec", Type: models.ContactFournisseur})

	recorder := test.Request(suite.T(), http.MethodGet, "/api/contacts", "", suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var contacts []controllers.Contact
	test.DecodeResponse(suite.T(), &recorder, &contacts)

	suite.Require().Len(contacts, 2)
	suite.Assert().Equal("Hydro-Québec", contacts[0].Nom)
	suite.Assert().Equal("Studio Lumen", contacts[1].Nom)
}

func (suite *TestSuiteStandard) TestContactCreate() {
	recorder := test.Request(suite.T(), http.MethodPost, "/api/contacts", controllers.ContactEditable{
		Nom:   "Studio Lumen",
		Email: "compta@studiolumen.ca",
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var contact controllers.Contact
	test.DecodeResponse(suite.T(), &recorder, &contact)

	suite.Assert().NotZero(contact.ID)

	// The contact type defaults to client
	suite.Assert().Equal(models.ContactClient, contact.Type)
}

func (suite *TestSuiteStandard) TestContactCreateInvalidType() {
	recorder := test.Request(suite.T(), http.MethodPost, "/api/contacts", controllers.ContactEditable{
		Nom:  "Inconnu",
		Type: "partenaire",
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestContactUpdate() {
	contact := suite.createTestContact(models.Contact{Nom: "Studio Lumen"})

	recorder := test.Request(suite.T(), http.MethodPut, "/api/contacts", map[string]any{
		"id":        contact.ID,
		"nom":       "Studio Lumen inc.",
		"type":      models.ContactLesDeux,
		"telephone": "514-555-0148",
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated controllers.Contact
	test.DecodeResponse(suite.T(), &recorder, &updated)

	suite.Assert().Equal(contact.ID, updated.ID)
	suite.Assert().Equal("Studio Lumen inc.", updated.Nom)
	suite.Assert().Equal(models.ContactLesDeux, updated.Type)
}

func (suite *TestSuiteStandard) TestContactUpdateNonexistent() {
	recorder := test.Request(suite.T(), http.MethodPut, "/api/contacts", map[string]any{
		"id":  4096,
		"nom": "Personne",
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
