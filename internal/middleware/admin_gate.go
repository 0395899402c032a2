package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"casa-certa-portal/internal/auth"
	"casa-certa-portal/internal/config"
)

const (
	// ContextKeyAdminID holds the authenticated admin's user id.
	ContextKeyAdminID = "adminUserID"
	// ContextKeyAdminEmail holds the authenticated admin's email.
	ContextKeyAdminEmail = "adminEmail"
	// ContextKeySessionID holds the session token id; the staging
	// store keys buffers by it.
	ContextKeySessionID = "adminSessionID"

	// LoginPath is where unauthenticated admin requests are sent.
	LoginPath = "/admin/login"
)

// AdminGate guards everything under the admin prefix except the login
// endpoints. Requests without a valid session cookie are redirected to
// the login entry point carrying the original path as returnTo. The
// authenticated identity travels in the request context, never in a
// package-level variable.
func AdminGate(cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		claims, err := auth.ValidateSessionToken(token, cfg.JWTSecret)
		if err != nil {
			redirectToLogin(c)
			return
		}

		c.Set(ContextKeyAdminID, claims.UserID)
		c.Set(ContextKeyAdminEmail, claims.Email)
		c.Set(ContextKeySessionID, claims.ID)

		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	returnTo := c.Request.URL.Path
	if raw := c.Request.URL.RawQuery; raw != "" {
		returnTo += "?" + raw
	}

	target := LoginPath + "?returnTo=" + url.QueryEscape(returnTo)
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

// SafeReturnTo accepts a post-login redirect target only when it stays
// under the admin prefix; anything else is discarded in favor of the
// admin root. Protocol-relative targets ("//evil") are rejected too.
func SafeReturnTo(raw string) string {
	if strings.HasPrefix(raw, "/admin") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return "/admin"
}
