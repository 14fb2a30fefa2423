package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
)

func newMiddlewareConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"
	cfg.SecretKey.Reset = "reset-secret-for-tests"

	return cfg
}

func newMiddlewareTokenService(t *testing.T, cfg *config.Config) service.TokenService {
	t.Helper()

	svc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

// newAuthTestServer wires an echo instance the way the real server does:
// middleware errors flow through the central error handler.
func newAuthTestServer(t *testing.T, tokenSvc service.TokenService) (*echo.Echo, *AuthMiddleware) {
	t.Helper()

	e := echo.New()
	errMw := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.HTTPErrorHandler = errMw.HandleHTTPError

	return e, NewAuthMiddleware(tokenSvc)
}

func TestAuthenticate_SetsIdentityOnContext(t *testing.T) {
	tokenSvc := newMiddlewareTokenService(t, newMiddlewareConfig())
	e, authMw := newAuthTestServer(t, tokenSvc)
	userID := uuid.New()

	var gotUserID uuid.UUID
	var gotRole entity.Role
	e.GET("/protected", func(c echo.Context) error {
		gotUserID, _ = UserIDFromContext(c)
		gotRole, _ = RoleFromContext(c)

		return c.NoContent(http.StatusOK)
	}, authMw.Authenticate)

	token, err := tokenSvc.GenerateAccessToken(userID, entity.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, entity.RoleUser, gotRole)
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	tokenSvc := newMiddlewareTokenService(t, newMiddlewareConfig())
	e, authMw := newAuthTestServer(t, tokenSvc)

	invoked := false
	e.GET("/protected", func(c echo.Context) error {
		invoked = true

		return c.NoContent(http.StatusOK)
	}, authMw.Authenticate)

	otherCfg := newMiddlewareConfig()
	otherCfg.SecretKey.Access = "a-completely-different-secret"
	otherSvc := newMiddlewareTokenService(t, otherCfg)
	wrongSecret, err := otherSvc.GenerateAccessToken(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	refreshToken, err := tokenSvc.GenerateRefreshToken(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{name: "missing header", header: "", wantCode: "UNAUTHENTICATED"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantCode: "UNAUTHENTICATED"},
		{name: "empty bearer", header: "Bearer ", wantCode: "UNAUTHENTICATED"},
		{name: "garbage token", header: "Bearer not.a.jwt", wantCode: "UNAUTHENTICATED"},
		{name: "wrong secret", header: "Bearer " + wrongSecret, wantCode: "UNAUTHENTICATED"},
		{name: "refresh token on access route", header: "Bearer " + refreshToken, wantCode: "UNAUTHENTICATED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
			assert.False(t, invoked)
		})
	}
}

func TestAuthenticate_ExpiredTokenIsDistinguishable(t *testing.T) {
	cfg := newMiddlewareConfig()
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: -time.Minute}
	expiredSvc := newMiddlewareTokenService(t, cfg)

	// The server validates with the same secrets but a normal TTL.
	tokenSvc := newMiddlewareTokenService(t, newMiddlewareConfig())
	e, authMw := newAuthTestServer(t, tokenSvc)

	e.GET("/protected", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, authMw.Authenticate)

	expired, err := expiredSvc.GenerateAccessToken(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+expired)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestRequireRole_AdminGate(t *testing.T) {
	tokenSvc := newMiddlewareTokenService(t, newMiddlewareConfig())
	e, authMw := newAuthTestServer(t, tokenSvc)

	invoked := false
	e.GET("/admin", func(c echo.Context) error {
		invoked = true

		return c.NoContent(http.StatusOK)
	}, authMw.Authenticate, authMw.RequireRole(entity.RoleAdmin))

	userToken, err := tokenSvc.GenerateAccessToken(uuid.New(), entity.RoleUser)
	require.NoError(t, err)
	adminToken, err := tokenSvc.GenerateAccessToken(uuid.New(), entity.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+userToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
	assert.False(t, invoked)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, invoked)
}
