package response

import (
	"github.com/gin-gonic/gin"

	"github.com/fatflowers/texttopay/pkg/apperr"
)

// ErrorBody is the JSON shape of every failed API call.
type ErrorBody struct {
	Error string `json:"error"`
}

// Error writes err with the status its class maps to.
func Error(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), ErrorBody{Error: err.Error()})
}

// Raw relays an already-encoded JSON document, e.g. a provider body.
func Raw(c *gin.Context, status int, body []byte) {
	c.Data(status, "application/json; charset=utf-8", body)
}
