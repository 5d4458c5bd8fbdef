package controllers

import (
	"errors"
	"net/http"

	"github.com/pierremichaudpm/jaxacompta/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"Non authentifié"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Auth errors
var errMotDePasseIncorrect = errors.New("Mot de passe incorrect")

// Shared errors
var errIDParameter = errors.New("the id parameter must be set")

// Report errors
var (
	errRapportTypeInvalid = errors.New("the report type must be one of mensuel, trimestriel-taxes, projet, annuel")
	errMoisNotSetInQuery  = errors.New("the mois query parameter must be set")
	errAnneeNotSetInQuery = errors.New("the annee query parameter must be set")
	errProjetIDParameter  = errors.New("the projet_id parameter must be set")
)

// Import errors
var errNoFilePost = errors.New("you must send either a transactions array or a CSV file to this endpoint")

// OCR errors
var errNoImagePost = errors.New("the image field must contain a base64 encoded image")
