package models_test

import (
	"time"

	"github.com/pierremichaudpm/jaxacompta/internal/models"
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

func (suite *TestSuiteStandard) TestFactures() {
	suite.createTestFacture("JAXA_01-01012025", "Payée", 1000)
	suite.createTestFacture("JAXA_02-01022025", "Envoyée", 500)

	// Revenue without an invoice number is not an invoice
	suite.createTestTransaction(models.Transaction{
		Type:      models.TypeRevenu,
		MontantHT: decimal.NewFromFloat(200),
	})

	factures, err := models.Factures(models.DB, "")
	suite.Require().NoError(err)
	suite.Assert().Len(factures, 2)

	factures, err = models.Factures(models.DB, "Payée")
	suite.Require().NoError(err)
	suite.Require().Len(factures, 1)
	suite.Assert().Equal("JAXA_01-01012025", factures[0].NumeroFacture)
}

func (suite *TestSuiteStandard) TestSummarizeFactures() {
	factures := []models.Transaction{
		suite.createTestFacture("JAXA_01-01012025", "Payée", 1000),
		suite.createTestFacture("JAXA_02-01022025", "Envoyée", 500),
		suite.createTestFacture("JAXA_03-01032025", "En retard", 250),
		suite.createTestFacture("JAXA_04-01042025", "En attente", 100),
	}

	summary := models.SummarizeFactures(factures)

	suite.Assert().Equal(4, summary.Total)
	suite.Assert().Equal(1, summary.Payees)
	suite.Assert().Equal(1, summary.EnRetard)
	suite.Assert().Equal(2, summary.EnAttente)

	// Everything but the paid invoice is outstanding
	suite.Assert().True(summary.MontantImpaye.Equal(decimal.NewFromFloat(850)), "got %s", summary.MontantImpaye)
}

func (suite *TestSuiteStandard) TestSummarizeFacturesEmpty() {
	summary := models.SummarizeFactures(nil)

	suite.Assert().Equal(0, summary.Total)
	suite.Assert().True(summary.MontantImpaye.IsZero())
}

func (suite *TestSuiteStandard) TestLatestNumeroFacture() {
	latest, err := models.LatestNumeroFacture(models.DB, "JAXA", 2025)
	suite.Require().NoError(err)
	suite.Assert().Empty(latest)

	suite.createTestFacture("JAXA_01-01012025", "Payée", 1000)
	suite.createTestFacture("JAXA_03-15032025", "Envoyée", 500)

	// A different prefix and a different year are both excluded
	suite.createTestFacture("PROD_09-01062025", "Envoyée", 100)
	suite.createTestFacture("JAXA_99-01012024", "Payée", 100)

	latest, err = models.LatestNumeroFacture(models.DB, "JAXA", 2025)
	suite.Require().NoError(err)
	suite.Assert().Equal("JAXA_03-15032025", latest)
}

func (suite *TestSuiteStandard) TestFacturesOrder() {
	old := suite.createTestTransaction(models.Transaction{
		Type:            models.TypeRevenu,
		NumeroFacture:   "JAXA_01-01012025",
		DateTransaction: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		MontantHT:       decimal.NewFromFloat(100),
	})
	recent := suite.createTestTransaction(models.Transaction{
		Type:            models.TypeRevenu,
		NumeroFacture:   "JAXA_02-01032025",
		DateTransaction: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		MontantHT:       decimal.NewFromFloat(100),
	})

	factures, err := models.Factures(models.DB, "")
	suite.Require().NoError(err)
	suite.Require().Len(factures, 2)
	suite.Assert().Equal(recent.ID, factures[0].ID)
	suite.Assert().Equal(old.ID, factures[1].ID)
}
