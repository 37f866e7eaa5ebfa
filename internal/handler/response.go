package handler

import (
	"errors"
	"net/http"

	"weatherlookup/internal/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps err to a status code and writes a JSON error body.
// Untyped errors become a 500 without leaking their text.
func respondError(c *gin.Context, err error) {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		c.JSON(domainErr.HTTPStatus(), ErrorResponse{Error: domainErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
