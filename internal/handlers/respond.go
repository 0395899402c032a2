package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casa-certa-portal/internal/apperr"
)

// respondError maps an error's kind to an HTTP status and writes the
// message the acting user is meant to read. Remote failures surface
// the provider message verbatim.
func respondError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
