package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
	"github.com/lmfraga/restaurant-table-reservation/internal/validator"
)

type restaurantReq struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email"`
	Description *string `json:"description"`
}

// CreateRestaurant handles POST /v1/admin/restaurants.
func (h *AdminHandler) CreateRestaurant(c echo.Context) error {
	var req restaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validator.ValidateName(req.Name); err != nil {
		return validationResponse(c, err)
	}
	if err := validator.ValidatePhone(req.Phone); err != nil {
		return validationResponse(c, err)
	}
	address := validator.CleanString(req.Address)
	if address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "address is required"})
	}
	if req.Email != nil {
		if err := validator.ValidateEmail(*req.Email); err != nil {
			return validationResponse(c, err)
		}
		normalized := validator.NormalizeEmail(*req.Email)
		req.Email = &normalized
	}
	rest := &model.Restaurant{
		Name:        validator.CleanString(req.Name),
		Address:     address,
		Phone:       strings.TrimSpace(req.Phone),
		Email:       req.Email,
		Description: req.Description,
	}
	if err := h.RestaurantRepo.Create(c.Request().Context(), rest); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create restaurant"})
	}
	return c.JSON(http.StatusCreated, rest)
}

// ListRestaurants handles GET /v1/admin/restaurants.  The optional
// ?include_inactive=true parameter also returns soft-deleted rows.
func (h *AdminHandler) ListRestaurants(c echo.Context) error {
	activeOnly := c.QueryParam("include_inactive") != "true"
	items, err := h.RestaurantRepo.GetAll(c.Request().Context(), activeOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateRestaurant handles PATCH /v1/admin/restaurants/:id.
func (h *AdminHandler) UpdateRestaurant(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req restaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var upd repository.RestaurantUpdate
	if req.Name != "" {
		if err := validator.ValidateName(req.Name); err != nil {
			return validationResponse(c, err)
		}
		name := validator.CleanString(req.Name)
		upd.Name = &name
	}
	if req.Address != "" {
		address := validator.CleanString(req.Address)
		upd.Address = &address
	}
	if req.Phone != "" {
		if err := validator.ValidatePhone(req.Phone); err != nil {
			return validationResponse(c, err)
		}
		phone := strings.TrimSpace(req.Phone)
		upd.Phone = &phone
	}
	if req.Email != nil {
		if err := validator.ValidateEmail(*req.Email); err != nil {
			return validationResponse(c, err)
		}
		normalized := validator.NormalizeEmail(*req.Email)
		upd.Email = &normalized
	}
	upd.Description = req.Description
	rest, err := h.RestaurantRepo.Update(c.Request().Context(), id, upd)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, rest)
}

// DeleteRestaurant handles DELETE /v1/admin/restaurants/:id.  The
// restaurant is soft-deleted and the deactivation cascades to its
// environments and tables; reservation history is preserved.
func (h *AdminHandler) DeleteRestaurant(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ok, err := h.RestaurantRepo.SoftDelete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
