package models_test

import (
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestProjetDefaultStatut() {
	projet := suite.createTestProjet(models.Projet{Nom: "Documentaire"})
	suite.Assert().Equal(models.ProjetEnCours, projet.Statut)

	projet = suite.createTestProjet(models.Projet{Nom: "Archivé", Statut: "Terminé"})
	suite.Assert().Equal("Terminé", projet.Statut)
}

func (suite *TestSuiteStandard) TestProjetCodeUnique() {
	projet := suite.createTestProjet(models.Projet{Nom: "Projet"})

	err := models.DB.Create(&models.Projet{Code: projet.Code, Nom: "Doublon"}).Error
	suite.Require().Error(err)
	suite.Assert().ErrorIs(err, models.ErrProjetCodeNotUnique)
}

func (suite *TestSuiteStandard) TestProjetTotals() {
	projet := suite.createTestProjet(models.Projet{Nom: "Série web"})
	autre := suite.createTestProjet(models.Projet{Nom: "Autre projet"})

	// Primary association
	suite.createTestTransaction(models.Transaction{
		Type:      models.TypeRevenu,
		ProjetID:  &projet.ID,
		MontantHT: decimal.NewFromFloat(2000),
	})

	// Secondary association through the join table
	suite.createTestTransaction(models.Transaction{
		Type:      models.TypeDepense,
		ProjetID:  &autre.ID,
		MontantHT: decimal.NewFromFloat(300),
		Projets:   []models.Projet{{Model: models.Model{ID: projet.ID}}},
	})

	// Unrelated transaction
	suite.createTestTransaction(models.Transaction{
		Type:      models.TypeDepense,
		ProjetID:  &autre.ID,
		MontantHT: decimal.NewFromFloat(50),
	})

	revenus, depenses, err := projet.Totals(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(revenus.Equal(decimal.NewFromFloat(2000)), "got %s", revenus)
	suite.Assert().True(depenses.Equal(decimal.NewFromFloat(300)), "got %s", depenses)
}

func (suite *TestSuiteStandard) TestProjetTotalsNoDoubleCount() {
	projet := suite.createTestProjet(models.Projet{Nom: "Long métrage"})

	// Primary and secondary association on the same transaction must
	// count once
	suite.createTestTransaction(models.Transaction{
		Type:      models.TypeRevenu,
		ProjetID:  &projet.ID,
		MontantHT: decimal.NewFromFloat(1000),
		Projets:   []models.Projet{{Model: models.Model{ID: projet.ID}}},
	})

	revenus, _, err := projet.Totals(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(revenus.Equal(decimal.NewFromFloat(1000)), "got %s", revenus)
}

func (suite *TestSuiteStandard) TestProjetTransactions() {
	projet := suite.createTestProjet(models.Projet{Nom: "Capsules"})

	suite.createTestTransaction(models.Transaction{
		Type:        models.TypeDepense,
		Description: "Montage",
		ProjetID:    &projet.ID,
		MontantHT:   decimal.NewFromFloat(75),
	})

	transactions, err := projet.Transactions(models.DB)
	suite.Require().NoError(err)
	suite.Require().Len(transactions, 1)
	suite.Assert().Equal("Montage", transactions[0].Description)
}
