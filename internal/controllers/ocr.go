package controllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/pierremichaudpm/jaxacompta/internal/httputil"
	"github.com/pierremichaudpm/jaxacompta/internal/ocr"
)

// RegisterOCRRoutes registers the receipt extraction route with the
// RouterGroup that is passed.
func RegisterOCRRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", ExtractReceipt)
}

// OCRRequest carries a base64 encoded receipt image.
type OCRRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType" example:"image/jpeg"`
}

// OCRErrorResponse is returned when the model could not produce a
// usable extraction. Raw carries the model's verbatim answer so the
// user can transcribe the receipt by hand.
type OCRErrorResponse struct {
	Error string `json:"error"`
	Raw   string `json:"raw,omitempty"`
}

var (
	ocrClient     *ocr.Client
	ocrClientOnce sync.Once
	ocrClientErr  error
)

func getOCRClient(c *gin.Context) (*ocr.Client, error) {
	ocrClientOnce.Do(func() {
		ocrClient, ocrClientErr = ocr.NewClient(c.Request.Context())
	})

	return ocrClient, ocrClientErr
}

// ExtractReceipt runs a receipt image through the vision model and
// returns the structured extraction. Upstream or parse failures map
// to 422 so the frontend can fall back to manual entry.
func ExtractReceipt(c *gin.Context) {
	var request OCRRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if request.Image == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: errNoImagePost.Error()})
		return
	}

	client, err := getOCRClient(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, OCRErrorResponse{Error: err.Error()})
		return
	}

	result, raw, err := client.Extract(c.Request.Context(), request.Image, request.MimeType)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, OCRErrorResponse{Error: err.Error(), Raw: raw})
		return
	}

	c.JSON(http.StatusOK, result)
}
