package controllers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/pierremichaudpm/jaxacompta/internal/controllers"
	"github.com/pierremichaudpm/jaxacompta/internal/models"
	"github.com/pierremichaudpm/jaxacompta/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestImportBatch() {
	compte := suite.createTestCompte(models.CompteBancaire{Code: "OP", Nom: "Compte"})

	recorder := test.Request(suite.T(), http.MethodPost, "/api/import-csv", controllers.ImportRequest{
		CompteID: &compte.ID,
		Transactions: []controllers.TransactionEditable{
			{Type: models.TypeDepense, Description: "EPICERIE METRO", MontantHT: decimal.NewFromFloat(45.67)},
			{Type: models.TypeRevenu, Description: "PAIEMENT CLIENT", MontantHT: decimal.NewFromFloat(1200)},
		},
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal(2, response.Imported)
	suite.Assert().Equal(2, response.Total)
	suite.Assert().Empty(response.Errors)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Where("compte_id = ?", compte.ID).Count(&count).Error)
	suite.Assert().Equal(int64(2), count)
}

func (suite *TestSuiteStandard) TestImportBatchPartialFailure() {
	recorder := test.Request(suite.T(), http.MethodPost, "/api/import-csv", controllers.ImportRequest{
		Transactions: []controllers.TransactionEditable{
			{Type: models.TypeDepense, Description: "OK", MontantHT: decimal.NewFromFloat(10)},
			{Type: "cadeau", Description: "BROKEN", MontantHT: decimal.NewFromFloat(20)},
			{Type: models.TypeDepense, Description: "OK AUSSI", MontantHT: decimal.NewFromFloat(30)},
		},
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// Inserted rows stay, the failing row is reported with its position
	suite.Assert().Equal(2, response.Imported)
	suite.Assert().Equal(3, response.Total)
	suite.Require().Len(response.Errors, 1)
	suite.Assert().Contains(response.Errors[0], "Ligne 2")

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(2), count)
}

func (suite *TestSuiteStandard) TestImportBatchEmpty() {
	recorder := test.Request(suite.T(), http.MethodPost, "/api/import-csv", controllers.ImportRequest{}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportAppliesRegles() {
	categorie := suite.createTestCategory(models.Category{Nom: "Électricité", Type: models.CategoryDepense})
	suite.createTestRegle(models.RegleCategorisation{Motif: "*HYDRO*", CategorieID: categorie.ID, Priorite: 10})

	recorder := test.Request(suite.T(), http.MethodPost, "/api/import-csv", controllers.ImportRequest{
		Transactions: []controllers.TransactionEditable{
			{Type: models.TypeDepense, Description: "Hydro-Québec facture", MontantHT: decimal.NewFromFloat(85)},
		},
	}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var transaction models.Transaction
	suite.Require().NoError(models.DB.First(&transaction).Error)
	suite.Require().NotNil(transaction.CategorieID)
	suite.Assert().Equal(categorie.ID, *transaction.CategorieID)
}

func (suite *TestSuiteStandard) TestImportFile() {
	compte := suite.createTestCompte(models.CompteBancaire{Code: "OP", Nom: "Compte"})

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	file, err := writer.CreateFormFile("file", "export.csv")
	suite.Require().NoError(err)
	_, err = file.Write([]byte("Date,Description,Retrait,Dépôt\n2025-01-15,EPICERIE METRO,\"45,67\",\n2025-01-20,PAIEMENT CLIENT,,1200.00\n"))
	suite.Require().NoError(err)

	suite.Require().NoError(writer.WriteField("compte_id", fmt.Sprint(compte.ID)))
	suite.Require().NoError(writer.Close())

	headers := suite.authHeader()
	headers["Content-Type"] = writer.FormDataContentType()

	recorder := test.Request(suite.T(), http.MethodPost, "/api/import-csv", &buffer, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response controllers.ImportResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal(2, response.Imported)
	suite.Assert().Equal(2, response.Total)

	var transactions []models.Transaction
	suite.Require().NoError(models.DB.Order("date_transaction ASC").Find(&transactions).Error)
	suite.Require().Len(transactions, 2)

	// File rows import untaxed with the import defaults
	suite.Assert().Equal(models.TypeDepense, transactions[0].Type)
	suite.Assert().False(transactions[0].Taxable)
	suite.Assert().Equal("Virement", transactions[0].ModePaiement)
	suite.Assert().True(transactions[0].TotalTTC.Equal(decimal.NewFromFloat(45.67)), "got %s", transactions[0].TotalTTC)

	suite.Assert().Equal(models.TypeRevenu, transactions[1].Type)
	suite.Require().NotNil(transactions[1].CompteID)
	suite.Assert().Equal(compte.ID, *transactions[1].CompteID)
}

func (suite *TestSuiteStandard) TestImportFileMissing() {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	suite.Require().NoError(writer.Close())

	headers := suite.authHeader()
	headers["Content-Type"] = writer.FormDataContentType()

	recorder := test.Request(suite.T(), http.MethodPost, "/api/import-csv", &buffer, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
