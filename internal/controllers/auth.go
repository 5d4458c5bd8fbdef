package controllers

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pierremichaudpm/jaxacompta/internal/auth"
	"github.com/pierremichaudpm/jaxacompta/internal/httputil"
)

// RegisterAuthRoutes registers the login route with the RouterGroup
// that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsPost)
	r.POST("", Login)
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login checks the submitted password against API_PASSWORD and issues
// a bearer token.
func Login(c *gin.Context) {
	var request LoginRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	password := os.Getenv("API_PASSWORD")
	if password == "" || subtle.ConstantTimeCompare([]byte(request.Password), []byte(password)) != 1 {
		c.JSON(http.StatusUnauthorized, httpError{Error: errMotDePasseIncorrect.Error()})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: auth.NewToken(auth.DefaultValidity)})
}
