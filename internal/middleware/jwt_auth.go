package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/newsbridge/backend/internal/models"
)

// bearerToken extracts the credential from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
	}
	return parts[1], nil
}

// parseServiceToken validates an HMAC-signed internal service token and
// returns its claims.
func parseServiceToken(tokenString, secret string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// AdminAuthMiddleware guards the admin API when a service secret is
// configured: internal service tokens signed with the secret are accepted
// directly, anything else falls through to Firebase ID token verification.
func AdminAuthMiddleware(authClient *auth.Client, serviceSecret string) echo.MiddlewareFunc {
	firebase := FirebaseAuthMiddleware(authClient)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		fallback := firebase(next)
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if err != nil {
				return err
			}
			if claims, err := parseServiceToken(tokenString, serviceSecret); err == nil {
				c.Set("serviceClaims", claims)
				return next(c)
			}
			return fallback(c)
		}
	}
}
