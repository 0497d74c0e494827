package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/newsbridge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "service-secret"

func signServiceToken(t *testing.T, secret string) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UID:  "svc-1",
		Role: "editor",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/posts", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminAuthMiddleware_AcceptsServiceToken(t *testing.T) {
	called := false
	handler := AdminAuthMiddleware(nil, testSecret)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusNoContent)
	})

	c, _ := newAuthContext("Bearer " + signServiceToken(t, testSecret))
	require.NoError(t, handler(c))

	assert.True(t, called)
	claims, ok := c.Get("serviceClaims").(*models.JwtCustomClaims)
	require.True(t, ok)
	assert.Equal(t, "svc-1", claims.UID)
	assert.Equal(t, "editor", claims.Role)
}

func TestAdminAuthMiddleware_MissingHeader(t *testing.T) {
	handler := AdminAuthMiddleware(nil, testSecret)(func(c echo.Context) error {
		t.Fatal("handler must not run without credentials")
		return nil
	})

	c, _ := newAuthContext("")
	err := handler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAdminAuthMiddleware_RejectsMalformedHeader(t *testing.T) {
	handler := AdminAuthMiddleware(nil, testSecret)(func(c echo.Context) error {
		t.Fatal("handler must not run without credentials")
		return nil
	})

	c, _ := newAuthContext("Token abc")
	err := handler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestParseServiceToken_RejectsWrongSecret(t *testing.T) {
	signed := signServiceToken(t, "some-other-secret")
	_, err := parseServiceToken(signed, testSecret)
	assert.Error(t, err)
}

func TestParseServiceToken_RejectsExpired(t *testing.T) {
	claims := &models.JwtCustomClaims{
		UID: "svc-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = parseServiceToken(signed, testSecret)
	assert.Error(t, err)
}

func TestParseServiceToken_RejectsUnsignedAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &models.JwtCustomClaims{UID: "svc-1"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = parseServiceToken(signed, testSecret)
	assert.Error(t, err)
}
