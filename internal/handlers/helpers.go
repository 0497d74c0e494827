package handlers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newsbridge/backend/internal/apperrors"
)

// httpError maps the service error taxonomy onto HTTP responses.
// Infrastructure detail is logged but only echoed to the caller in
// development mode.
func httpError(err error, dev bool) *echo.HTTPError {
	switch {
	case apperrors.IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case apperrors.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, "slug already in use")
	default:
		log.Printf("infrastructure error: %v", err)
		msg := "internal server error"
		if dev {
			msg = err.Error()
		}
		return echo.NewHTTPError(http.StatusInternalServerError, msg)
	}
}
