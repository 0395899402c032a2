package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casa-certa-portal/internal/apperr"
	"casa-certa-portal/internal/config"
	"casa-certa-portal/internal/handlers"
	"casa-certa-portal/internal/models"
	"casa-certa-portal/internal/services"
	"casa-certa-portal/internal/staging"
)

func authConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "test-secret",
		SessionTTLHours: 1,
		CookieName:      "portal_session",
	}
}

func authRouter(svc services.IAuthService, staged *staging.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewAuthHandler(svc, staged, authConfig())
	r := gin.New()
	r.POST("/admin/login", h.Login)
	r.POST("/admin/logout", h.Logout)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	mockSvc := new(MockAuthService)
	mockSvc.On("Login", "admin@casacerta.com", "s3cret").
		Return(&models.AdminUser{ID: "u1", Email: "admin@casacerta.com"}, nil)

	r := authRouter(mockSvc, staging.NewStore(0))
	w := postJSON(r, "/admin/login", `{"email":"admin@casacerta.com","password":"s3cret"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "portal_session" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestLogin_SanitizesReturnTo(t *testing.T) {
	mockSvc := new(MockAuthService)
	mockSvc.On("Login", "admin@casacerta.com", "s3cret").
		Return(&models.AdminUser{ID: "u1", Email: "admin@casacerta.com"}, nil)

	r := authRouter(mockSvc, staging.NewStore(0))

	cases := []struct {
		returnTo string
		want     string
	}{
		{"/admin/properties/42", "/admin/properties/42"},
		{"https://evil.example.com", "/admin"},
		{"//evil.example.com", "/admin"},
		{"/api/properties", "/admin"},
		{"", "/admin"},
	}
	for _, tc := range cases {
		payload, _ := json.Marshal(map[string]string{
			"email": "admin@casacerta.com", "password": "s3cret", "return_to": tc.returnTo,
		})
		w := postJSON(r, "/admin/login", string(payload))
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.want, body["return_to"], "returnTo %q", tc.returnTo)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	mockSvc := new(MockAuthService)
	mockSvc.On("Login", "admin@casacerta.com", "wrong").
		Return(nil, apperr.Validation("invalid email or password"))

	r := authRouter(mockSvc, staging.NewStore(0))
	w := postJSON(r, "/admin/login", `{"email":"admin@casacerta.com","password":"wrong"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestLogout_ExpiresCookie(t *testing.T) {
	r := authRouter(new(MockAuthService), staging.NewStore(0))
	w := postJSON(r, "/admin/logout", `{}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "portal_session" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Empty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.MaxAge < 0)
}
