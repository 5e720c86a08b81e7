package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/praxishq/praxis-backend/internal/identity"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func runMiddleware(t *testing.T, authHeader, path string) (*httptest.ResponseRecorder, *AuthUser) {
	t.Helper()
	e := echo.New()

	var captured *AuthUser
	handler := func(c echo.Context) error {
		if user, err := GetUserFromContext(c); err == nil {
			captured = user
		}
		return c.NoContent(http.StatusOK)
	}

	mw := JWTMiddleware(JWTConfig{
		Secret:    testSecret,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/health", "/sites"},
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	err := mw(handler)(c)
	assert.NoError(t, err)
	return rec, captured
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user_ext123",
		"email": "jane@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, user := runMiddleware(t, "Bearer "+token, "/api/v1/websites")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, user)
	assert.Equal(t, "user_ext123", user.ExternalID)
	assert.Equal(t, "jane@example.com", user.Email)

	// The internal id is the deterministic mapping of the subject, so
	// handlers never see a raw provider id.
	expected, ok := identity.MapToInternalID("user_ext123")
	assert.True(t, ok)
	assert.Equal(t, expected, user.InternalID)
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	rec, user := runMiddleware(t, "", "/api/v1/websites")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
	assert.Contains(t, rec.Body.String(), "MISSING_AUTH_HEADER")
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	rec, user := runMiddleware(t, "Token abc", "/api/v1/websites")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
	assert.Contains(t, rec.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user_ext123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, user := runMiddleware(t, "Bearer "+token, "/api/v1/websites")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user_ext123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	rec, _ := runMiddleware(t, "Bearer "+token, "/api/v1/websites")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestJWTMiddleware_MissingSubject(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "jane@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, user := runMiddleware(t, "Bearer "+token, "/api/v1/websites")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
	assert.Contains(t, rec.Body.String(), "INVALID_CLAIMS")
}

func TestJWTMiddleware_SkipPaths(t *testing.T) {
	for _, path := range []string{"/health", "/health/auth", "/sites/acme-clinic"} {
		rec, user := runMiddleware(t, "", path)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s must skip auth", path)
		assert.Nil(t, user)
	}
}

func TestGetUserFromContext_NoUser(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := GetUserFromContext(c)
	assert.Error(t, err)
}
