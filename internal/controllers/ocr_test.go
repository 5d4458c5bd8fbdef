package controllers_test

import (
	"net/http"

	"github.com/pierremichaudpm/jaxacompta/internal/controllers"
	"github.com/pierremichaudpm/jaxacompta/test"
)

func (suite *TestSuiteStandard) TestOCRWithoutImage() {
	recorder := test.Request(suite.T(), http.MethodPost, "/api/ocr", controllers.OCRRequest{MimeType: "image/jpeg"}, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestOCRInvalidBody() {
	recorder := test.Request(suite.T(), http.MethodPost, "/api/ocr", `{ "image": `, suite.authHeader())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
