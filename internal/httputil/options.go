package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OptionsGet(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}

func OptionsPost(c *gin.Context) {
	c.Header("allow", "POST")
	c.Status(http.StatusNoContent)
}

func OptionsGetPost(c *gin.Context) {
	c.Header("allow", "GET, POST")
	c.Status(http.StatusNoContent)
}

func OptionsGetPostPut(c *gin.Context) {
	c.Header("allow", "GET, POST, PUT")
	c.Status(http.StatusNoContent)
}

func OptionsGetPostPutDelete(c *gin.Context) {
	c.Header("allow", "GET, POST, PUT, DELETE")
	c.Status(http.StatusNoContent)
}
