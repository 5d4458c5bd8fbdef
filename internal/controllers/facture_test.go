package controllers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pierremichaudpm/jaxacompta/internal/controllers"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/pierremichaudpm/jaxacompta/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestFacture(numero, statut string, montant float64) models.Transaction {
	return suite.createTestTransaction(models.Transaction{
		Type:          models.TypeRevenu,
		NumeroFacture: numero,
		StatutFacture: statut,
		MontantHT:     decimal.NewFromFloat(montant),
	})
}

func (suite *TestSuiteStandard) TestFacturesList() {
	suite.createTestFacture("JAXA_01-01012025", "Payée", 1000)
	suite.createTestFacture("JAXA_02-01022025", "Envoyée", 500)
	suite.createTestFacture("JAXA_03-01032025", "En retard", 250)

	recorder := test.Request(suite.T(), http.MethodGet, "/api/factures", "", suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.FactureListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Len(response.Rows, 3)
	suite.Assert().Equal(3, response.Summary.Total)
	suite.Assert().Equal(1, response.Summary.Payees)
	suite.Assert().Equal(1, response.Summary.EnRetard)
	suite.Assert().Equal(1, response.Summary.EnAttente)
	suite.Assert().True(response.Summary.MontantImpaye.Equal(decimal.NewFromFloat(750)), "got %s", response.Summary.MontantImpaye)
}

func (suite *TestSuiteStandard) TestFacturesStatutFilter() {
	suite.createTestFacture("JAXA_01-01012025", "Payée", 1000)
	suite.createTestFacture("JAXA_02-01022025", "Envoyée", 500)

	recorder := test.Request(suite.T(), http.MethodGet, "/api/factures?statut=Envoyée", "", suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.FactureListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Rows, 1)
	suite.Assert().Equal("JAXA_02-01022025", response.Rows[0].NumeroFacture)
}

func (suite *TestSuiteStandard) TestFacturesNextNumber() {
	recorder := test.Request(suite.T(), http.MethodGet, "/api/factures?next_number=true", "", suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.NextNumberResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// No invoice yet, the sequence starts at 1 with today's date
	today := time.Now().Format("02012006")
	suite.Assert().Equal("JAXA_01-"+today, response.Suggested)

	year := time.Now().Year()
	suite.createTestFacture(fmt.Sprintf("JAXA_03-0101%d", year), "Envoyée", 100)

	recorder = test.Request(suite.T(), http.MethodGet, "/api/factures?next_number=true&prefix=JAXA", "", suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("JAXA_04-"+today, response.Suggested)
}

func (suite *TestSuiteStandard) TestFactureCreateDefaults() {
	recorder := test.Request(suite.T(), http.MethodPost, "/api/factures", map[string]any{
		"numero_facture": "JAXA_05-01062025",
		"montant_ht":     "1000",
		"taxable":        true,
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var facture controllers.Transaction
	test.DecodeResponse(suite.T(), &recorder, &facture)

	// An invoice is always revenue and gets the invoicing defaults
	suite.Assert().Equal(models.TypeRevenu, facture.Type)
	suite.Assert().Equal("Envoyée", facture.StatutFacture)
	suite.Assert().Equal("Virement Interac", facture.ModePaiement)
	suite.Assert().Equal("Facture JAXA_05-01062025", facture.Description)
	suite.Assert().True(facture.TotalTTC.Equal(decimal.NewFromFloat(1149.75)), "got %s", facture.TotalTTC)
}

func (suite *TestSuiteStandard) TestFactureMarkPaid() {
	facture := suite.createTestFacture("JAXA_01-01012025", "Envoyée", 500)

	recorder := test.Request(suite.T(), http.MethodPut, "/api/factures", controllers.FactureUpdate{
		ID:            facture.ID,
		StatutFacture: "Payée",
		NumeroFacture: facture.NumeroFacture,
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated controllers.Transaction
	test.DecodeResponse(suite.T(), &recorder, &updated)

	suite.Assert().Equal("Payée", updated.StatutFacture)

	// Marking as paid stamps today as the payment date
	suite.Require().NotNil(updated.DatePaiement)
	suite.Assert().Equal(time.Now().UTC().Format("2006-01-02"), updated.DatePaiement.Format("2006-01-02"))
}

func (suite *TestSuiteStandard) TestFactureMarkPaidKeepsDate() {
	facture := suite.createTestFacture("JAXA_01-01012025", "Envoyée", 500)

	paid := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	recorder := test.Request(suite.T(), http.MethodPut, "/api/factures", controllers.FactureUpdate{
		ID:            facture.ID,
		StatutFacture: "Payée",
		DatePaiement:  &paid,
		NumeroFacture: facture.NumeroFacture,
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated controllers.Transaction
	test.DecodeResponse(suite.T(), &recorder, &updated)

	suite.Require().NotNil(updated.DatePaiement)
	suite.Assert().Equal("2025-05-10", updated.DatePaiement.Format("2006-01-02"))
}

func (suite *TestSuiteStandard) TestFactureUpdateNonexistent() {
	recorder := test.Request(suite.T(), http.MethodPut, "/api/factures", controllers.FactureUpdate{
		ID:            4096,
		StatutFacture: "Payée",
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
