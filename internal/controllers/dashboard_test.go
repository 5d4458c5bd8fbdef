package controllers_test

import (
	"net/http"
	"time"

	"github.com/pierremichaudpm/jaxacompta/internal/controllers"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/pierremichaudpm/jaxacompta/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestDashboard() {
	now := time.Now().In(time.UTC)

	compte := suite.createTestCompte(models.CompteBancaire{
		Code:         "OP",
		Nom:          "Compte opérations",
		SoldeInitial: decimal.NewFromFloat(1000),
	})
	suite.createTestProjet(models.Projet{Code: "PROD-2025-06", Nom: "En production"})
	suite.createTestProjet(models.Projet{Code: "PROD-2024-01", Nom: "Livré", Statut: "Terminé"})

	// This month
	suite.createTestTransaction(models.Transaction{
		Type:            models.TypeRevenu,
		DateTransaction: now,
		CompteID:        &compte.ID,
		MontantHT:       decimal.NewFromFloat(500),
	})
	suite.createTestTransaction(models.Transaction{
		Type:            models.TypeDepense,
		DateTransaction: now,
		CompteID:        &compte.ID,
		MontantHT:       decimal.NewFromFloat(120),
	})

	// An overdue invoice
	suite.createTestTransaction(models.Transaction{
		Type:            models.TypeRevenu,
		NumeroFacture:   "JAXA_01-01012025",
		StatutFacture:   "Envoyée",
		DateTransaction: now.AddDate(0, 0, -45),
		MontantHT:       decimal.NewFromFloat(750),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/api/dashboard", "", suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var dashboard controllers.Dashboard
	test.DecodeResponse(suite.T(), &recorder, &dashboard)

	suite.Assert().True(dashboard.Mois.Revenus.Equal(decimal.NewFromFloat(500)), "got %s", dashboard.Mois.Revenus)
	suite.Assert().True(dashboard.Mois.Depenses.Equal(decimal.NewFromFloat(120)), "got %s", dashboard.Mois.Depenses)

	suite.Require().Len(dashboard.Soldes, 1)
	suite.Assert().True(dashboard.Soldes[0].SoldeActuel.Equal(decimal.NewFromFloat(1380)), "got %s", dashboard.Soldes[0].SoldeActuel)

	suite.Assert().Len(dashboard.Evolution, 12)

	// Only running projects appear
	suite.Require().Len(dashboard.Projets, 1)
	suite.Assert().Equal("PROD-2025-06", dashboard.Projets[0].Code)

	suite.Require().Len(dashboard.FacturesRetard, 1)
	suite.Assert().Equal("JAXA_01-01012025", dashboard.FacturesRetard[0].NumeroFacture)
}

func (suite *TestSuiteStandard) TestDashboardEmpty() {
	recorder := test.Request(suite.T(), http.MethodGet, "/api/dashboard", "", suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var dashboard controllers.Dashboard
	test.DecodeResponse(suite.T(), &recorder, &dashboard)

	suite.Assert().True(dashboard.Mois.Revenus.IsZero())
	suite.Assert().Empty(dashboard.Soldes)
	suite.Assert().Len(dashboard.Evolution, 12)
	suite.Assert().Empty(dashboard.Projets)
	suite.Assert().Empty(dashboard.FacturesRetard)
}
