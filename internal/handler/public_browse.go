// This file defines handlers for the public browsing API.  These routes
// let unauthenticated guests explore restaurants, their environments and
// tables, and query slot availability before booking.

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/booking"
	"github.com/lmfraga/restaurant-table-reservation/internal/model"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
)

// PublicHandler aggregates the repositories and the booking engine
// needed for unauthenticated browsing and availability queries.
type PublicHandler struct {
	RestaurantRepo  *repository.RestaurantRepo
	EnvironmentRepo *repository.EnvironmentRepo
	TableRepo       *repository.TableRepo
	Engine          *booking.Service
}

// PublicRestaurant is a restaurant as exposed via the public API.
type PublicRestaurant struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email,omitempty"`
	Description *string `json:"description,omitempty"`
}

// PublicEnvironment is a seating area as exposed via the public API.
type PublicEnvironment struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// PublicTable is a table as exposed via the public API.
type PublicTable struct {
	ID       uint64 `json:"id"`
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
}

func toPublicRestaurant(r model.Restaurant) PublicRestaurant {
	return PublicRestaurant{ID: r.ID, Name: r.Name, Address: r.Address, Phone: r.Phone, Email: r.Email, Description: r.Description}
}

func toPublicTables(tables []model.Table) []PublicTable {
	out := make([]PublicTable, 0, len(tables))
	for _, t := range tables {
		out = append(out, PublicTable{ID: t.ID, Number: t.Number, Capacity: t.Capacity})
	}
	return out
}

// GetRestaurants handles GET /v1/restaurants and lists active restaurants.
func (h *PublicHandler) GetRestaurants(c echo.Context) error {
	ctx := c.Request().Context()
	restaurants, err := h.RestaurantRepo.GetAll(ctx, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, toPublicRestaurant(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// PublicRestaurantDetail is a restaurant with its active environments
// embedded, so clients can render the booking flow from one request.
type PublicRestaurantDetail struct {
	PublicRestaurant
	Environments []PublicEnvironment `json:"environments"`
}

// GetRestaurant handles GET /v1/restaurants/:id and returns the
// restaurant together with its active environments.
func (h *PublicHandler) GetRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	r, err := h.RestaurantRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !r.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}
	envs, err := h.EnvironmentRepo.GetByRestaurant(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	detail := PublicRestaurantDetail{PublicRestaurant: toPublicRestaurant(*r)}
	detail.Environments = make([]PublicEnvironment, 0, len(envs))
	for _, env := range envs {
		detail.Environments = append(detail.Environments, PublicEnvironment{ID: env.ID, Name: env.Name, Description: env.Description})
	}
	return c.JSON(http.StatusOK, detail)
}

// GetEnvironmentsByRestaurant handles GET /v1/restaurants/:id/environments.
// It validates the restaurant exists, then lists its active environments.
func (h *PublicHandler) GetEnvironmentsByRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.RestaurantRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	envs, err := h.EnvironmentRepo.GetByRestaurant(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicEnvironment, 0, len(envs))
	for _, env := range envs {
		out = append(out, PublicEnvironment{ID: env.ID, Name: env.Name, Description: env.Description})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetTablesByEnvironment handles GET /v1/environments/:id/tables and
// lists the active tables of an environment regardless of availability.
func (h *PublicHandler) GetTablesByEnvironment(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.EnvironmentRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "environment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	tables, err := h.TableRepo.GetByEnvironment(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toPublicTables(tables)})
}

// GetAvailableTables handles GET /v1/environments/:id/availability.
// Query parameters: datetime (RFC 3339 or "2006-01-02 15:04") and
// party_size.  The response lists tables free at that exact slot.
func (h *PublicHandler) GetAvailableTables(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	at, err := parseTimestamp(c.QueryParam("datetime"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid datetime"})
	}
	partySize, err := strconv.Atoi(c.QueryParam("party_size"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid party_size"})
	}
	tables, err := h.Engine.FindAvailableTables(ctx, id, at, partySize)
	if err != nil {
		return validationResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toPublicTables(tables)})
}
