package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casa-certa-portal/internal/database"
	"casa-certa-portal/internal/services"
)

// CatalogHandler serves the public property endpoints.
type CatalogHandler struct {
	properties services.IPropertyService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(properties services.IPropertyService) *CatalogHandler {
	return &CatalogHandler{properties: properties}
}

// List handles GET /api/properties with optional q, type, purpose and
// sort query parameters. Empty or "all" filters match everything.
func (h *CatalogHandler) List(c *gin.Context) {
	params := database.FilterParams{
		Query:   c.Query("q"),
		Type:    c.Query("type"),
		Purpose: c.Query("purpose"),
		Sort:    c.DefaultQuery("sort", database.SortRecent),
	}

	props, err := h.properties.Catalog(params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": props,
		"count":      len(props),
	})
}

// Featured handles GET /api/properties/featured for the home grid.
func (h *CatalogHandler) Featured(c *gin.Context) {
	featured, err := h.properties.Featured()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": featured})
}

// Detail handles GET /api/properties/:slug.
func (h *CatalogHandler) Detail(c *gin.Context) {
	detail, err := h.properties.Detail(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
