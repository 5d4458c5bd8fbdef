package controllers_test

import (
	"net/http"

	"github.com/pierremichaudpm/jaxacompta/internal/controllers"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/pierremichaudpm/jaxacompta/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestComptesWithSoldes() {
	compte := suite.createTestCompte(models.CompteBancaire{
		Code:         "OP",
		Nom:          "Compte opérations",
		SoldeInitial: decimal.NewFromFloat(1000),
	})

	suite.createTestTransaction(models.Transaction{
		Type:      models.TypeRevenu,
		CompteID:  &compte.ID,
		MontantHT: decimal.NewFromFloat(250),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/api/comptes", "", suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var comptes []controllers.Compte
	test.DecodeResponse(suite.T(), &recorder, &comptes)

	suite.Require().Len(comptes, 1)
	suite.Assert().Equal("OP", comptes[0].Code)
	suite.Assert().True(comptes[0].SoldeInitial.Equal(decimal.NewFromFloat(1000)))
	suite.Assert().True(comptes[0].SoldeActuel.Equal(decimal.NewFromFloat(1250)), "got %s", comptes[0].SoldeActuel)
}

func (suite *TestSuiteStandard) TestCompteCreate() {
	recorder := test.Request(suite.T(), http.MethodPost, "/api/comptes", controllers.CompteEditable{
		Code:         "PROD",
		Nom:          "Compte production",
		Institution:  "Desjardins",
		SoldeInitial: decimal.NewFromFloat(2500),
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var compte controllers.Compte
	test.DecodeResponse(suite.T(), &recorder, &compte)

	suite.Assert().NotZero(compte.ID)
	suite.Assert().Equal("Desjardins", compte.Institution)

	// A fresh account's balance is its initial balance
	suite.Assert().True(compte.SoldeActuel.Equal(decimal.NewFromFloat(2500)))
}

func (suite *TestSuiteStandard) TestCompteCreateDuplicateCode() {
	suite.createTestCompte(models.CompteBancaire{Code: "OP", Nom: "Compte"})

	recorder := test.Request(suite.T(), http.MethodPost, "/api/comptes", controllers.CompteEditable{
		Code: "OP",
		Nom:  "Doublon",
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	suite.Assert().Equal(models.ErrCompteCodeNotUnique.Error(), test.DecodeError(suite.T(), recorder.Body.Bytes()))
}
