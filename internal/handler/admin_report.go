package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
)

// occupancyResp reports how booked a restaurant is on a given day.
// Occupancy is confirmed reservations divided by active tables; a
// restaurant with no tables reports zero.
type occupancyResp struct {
	RestaurantID uint64  `json:"restaurant_id"`
	Date         string  `json:"date"`
	Tables       int     `json:"tables"`
	Confirmed    int     `json:"confirmed_reservations"`
	Occupancy    float64 `json:"occupancy_pct"`
}

// GetOccupancyReport handles GET /v1/admin/restaurants/:id/occupancy?date=2006-01-02.
func (h *AdminHandler) GetOccupancyReport(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	day, err := parseDay(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	ctx := c.Request().Context()
	if _, err := h.RestaurantRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	tables, err := h.TableRepo.CountActiveByRestaurant(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	confirmed, err := h.ReservationRepo.CountConfirmedByRestaurantOnDate(ctx, id, day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	resp := occupancyResp{
		RestaurantID: id,
		Date:         day.Format("2006-01-02"),
		Tables:       tables,
		Confirmed:    confirmed,
	}
	if tables > 0 {
		resp.Occupancy = float64(confirmed) / float64(tables) * 100
	}
	return c.JSON(http.StatusOK, resp)
}
