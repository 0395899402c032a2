package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casa-certa-portal/internal/ratelimit"
	"casa-certa-portal/internal/services"
)

// LeadHandler serves the public lead form and the admin lead inbox.
type LeadHandler struct {
	leads   services.ILeadService
	limiter *ratelimit.RateLimiter
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(leads services.ILeadService, limiter *ratelimit.RateLimiter) *LeadHandler {
	return &LeadHandler{leads: leads, limiter: limiter}
}

type createLeadRequest struct {
	PropertyID string `json:"property_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

// Create handles POST /api/leads. Submissions beyond the sliding-window
// limit are answered with 429 before any validation runs.
func (h *LeadHandler) Create(c *gin.Context) {
	if h.limiter != nil && !h.limiter.AllowRequest() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
		return
	}

	var req createLeadRequest
	if err := bindStrictJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lead, err := h.leads.Create(services.CreateLeadInput{
		PropertyID: req.PropertyID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// RateLimitStats handles GET /admin/api/ratelimit/stats.
func (h *LeadHandler) RateLimitStats(c *gin.Context) {
	if h.limiter == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}
	c.JSON(http.StatusOK, h.limiter.Stats())
}

// List handles GET /admin/api/leads, newest first.
func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.leads.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": leads,
		"count": len(leads),
	})
}
