package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casa-certa-portal/internal/auth"
	"casa-certa-portal/internal/config"
	"casa-certa-portal/internal/middleware"
	"casa-certa-portal/internal/services"
	"casa-certa-portal/internal/staging"
)

// AuthHandler serves admin login and logout.
type AuthHandler struct {
	authService services.IAuthService
	staged      *staging.Store
	cfg         config.AuthConfig
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService services.IAuthService, staged *staging.Store, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{authService: authService, staged: staged, cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ReturnTo string `json:"return_to"`
}

// Login handles POST /admin/login. On success a signed session token
// is set as an HTTP-only cookie and the sanitized post-login target is
// returned for the client to navigate to.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.GenerateSessionToken(user.ID, user.Email, h.cfg.JWTSecret, h.cfg.SessionTTL())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, token, int(h.cfg.SessionTTL().Seconds()), "/", "", h.cfg.CookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"email":     user.Email,
		"return_to": middleware.SafeReturnTo(req.ReturnTo),
	})
}

// Logout handles POST /admin/logout. The session cookie is expired and
// any images the session had staged are released.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID := c.GetString(middleware.ContextKeySessionID); sessionID != "" {
		h.staged.Drop(sessionID)
	}

	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
