package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
)

// ListReservationsByRestaurant handles GET /v1/admin/restaurants/:id/reservations.
func (h *AdminHandler) ListReservationsByRestaurant(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.RestaurantRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.ReservationRepo.ListByRestaurant(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListReservationsByDate handles GET /v1/admin/reservations.  With
// ?date=2006-01-02 it lists a single day; with ?from=...&to=... an
// inclusive range.  One of the two forms is required.
func (h *AdminHandler) ListReservationsByDate(c echo.Context) error {
	ctx := c.Request().Context()
	if day := c.QueryParam("date"); day != "" {
		d, err := parseDay(day)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		}
		items, err := h.ReservationRepo.ListByExactDate(ctx, d)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}
	fromStr, toStr := c.QueryParam("from"), c.QueryParam("to")
	if fromStr == "" || toStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date or from/to required"})
	}
	from, err := parseTimestamp(fromStr)
	if err != nil {
		if from, err = parseDay(fromStr); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from"})
		}
	}
	to, err := parseTimestamp(toStr)
	if err != nil {
		if to, err = parseDay(toStr); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to"})
		}
	}
	items, err := h.ReservationRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateReservationStatus handles PATCH /v1/admin/reservations/:id/status
// and transitions a reservation between confirmed, cancelled and
// completed.  Re-confirming a reservation whose slot has since been
// taken fails with 409.
func (h *AdminHandler) UpdateReservationStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case model.StatusConfirmed, model.StatusCancelled, model.StatusCompleted:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	res, err := h.ReservationRepo.Update(c.Request().Context(), id, repository.ReservationUpdate{Status: &status})
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "table already reserved for this slot"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, res)
}

// PurgeReservation handles DELETE /v1/admin/reservations/:id.
// Reservations have no soft-delete flag; this removes the row outright
// and is meant for pruning old history.
func (h *AdminHandler) PurgeReservation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ok, err := h.ReservationRepo.HardDelete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
