// Package handler exposes the HTTP handlers of the reservation API.
// Public endpoints let guests browse restaurants and book tables;
// admin endpoints behind JWT auth manage the catalog and reservations.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/validator"
)

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseTimestamp accepts RFC 3339 ("2026-09-12T20:00:00Z") and the
// compact "2006-01-02 15:04" form used by the booking clients.  The
// result is normalized to UTC so slot comparisons are exact.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// parseDay parses a bare "2006-01-02" date.
func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// validationResponse maps a validation failure to a 422 JSON body.  Any
// other error falls through to a generic 500; repositories never leak
// driver errors to clients.
func validationResponse(c echo.Context, err error) error {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": verr.Message})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
