package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casa-certa-portal/internal/middleware"
	"casa-certa-portal/internal/models"
	"casa-certa-portal/internal/scheduler"
	"casa-certa-portal/internal/services"
	"casa-certa-portal/internal/staging"
)

// AdminHandler serves the protected property CRUD and the manual
// janitor trigger.
type AdminHandler struct {
	properties services.IPropertyService
	staged     *staging.Store
	scheduler  *scheduler.Scheduler
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(properties services.IPropertyService, staged *staging.Store, sched *scheduler.Scheduler) *AdminHandler {
	return &AdminHandler{properties: properties, staged: staged, scheduler: sched}
}

// ListProperties handles GET /admin/api/properties.
func (h *AdminHandler) ListProperties(c *gin.Context) {
	props, err := h.properties.AdminList()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": props,
		"count":      len(props),
	})
}

// GetProperty handles GET /admin/api/properties/:id.
func (h *AdminHandler) GetProperty(c *gin.Context) {
	p, err := h.properties.AdminGet(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

type savePropertyRequest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Type         string   `json:"type"`
	Purpose      string   `json:"purpose"`
	Price        float64  `json:"price"`
	City         string   `json:"city"`
	Neighborhood string   `json:"neighborhood"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	ParkingSpots int      `json:"parking_spots"`
	BuiltArea    *float64 `json:"built_area"`
	TotalArea    *float64 `json:"total_area"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
	Featured     bool     `json:"featured"`
}

// SaveProperty handles POST /admin/api/properties. Create and update
// share the endpoint, disambiguated by the presence of id. Images the
// session has staged ride along with the save and the staging buffer
// is cleared only after the whole workflow succeeds.
func (h *AdminHandler) SaveProperty(c *gin.Context) {
	var req savePropertyRequest
	if err := bindStrictJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	buffer := h.staged.Buffer(c.GetString(middleware.ContextKeySessionID))

	p, err := h.properties.Save(c.Request.Context(), services.SaveInput{
		ID:           req.ID,
		Title:        req.Title,
		Slug:         req.Slug,
		Type:         models.PropertyType(req.Type),
		Purpose:      models.PropertyPurpose(req.Purpose),
		Price:        req.Price,
		City:         req.City,
		Neighborhood: req.Neighborhood,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		ParkingSpots: req.ParkingSpots,
		BuiltArea:    req.BuiltArea,
		TotalArea:    req.TotalArea,
		Description:  req.Description,
		Status:       models.PropertyStatus(req.Status),
		Featured:     req.Featured,
		Staged:       buffer.Images(),
		CoverIndex:   buffer.Cover(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	buffer.Clear()

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, p)
}

// DeleteProperty handles DELETE /admin/api/properties/:id.
func (h *AdminHandler) DeleteProperty(c *gin.Context) {
	if err := h.properties.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// RunCleanup handles POST /admin/api/cleanup/run, triggering a janitor
// pass outside the daily schedule.
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "janitor not available"})
		return
	}

	result, err := h.scheduler.RunNow(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
