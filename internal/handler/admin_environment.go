package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
	"github.com/lmfraga/restaurant-table-reservation/internal/validator"
)

type environmentReq struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	RestaurantID uint64  `json:"restaurant_id"`
}

// CreateEnvironment handles POST /v1/admin/environments.  The owning
// restaurant must exist and be active.
func (h *AdminHandler) CreateEnvironment(c echo.Context) error {
	var req environmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validator.ValidateName(req.Name); err != nil {
		return validationResponse(c, err)
	}
	if req.RestaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id is required"})
	}
	ctx := c.Request().Context()
	rest, err := h.RestaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil || !rest.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
	}
	env := &model.Environment{
		Name:         validator.CleanString(req.Name),
		Description:  req.Description,
		RestaurantID: req.RestaurantID,
	}
	if err := h.EnvironmentRepo.Create(ctx, env); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create environment"})
	}
	return c.JSON(http.StatusCreated, env)
}

// UpdateEnvironment handles PATCH /v1/admin/environments/:id.
func (h *AdminHandler) UpdateEnvironment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req environmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var upd repository.EnvironmentUpdate
	if req.Name != "" {
		if err := validator.ValidateName(req.Name); err != nil {
			return validationResponse(c, err)
		}
		name := validator.CleanString(req.Name)
		upd.Name = &name
	}
	upd.Description = req.Description
	env, err := h.EnvironmentRepo.Update(c.Request().Context(), id, upd)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "environment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, env)
}

// DeleteEnvironment handles DELETE /v1/admin/environments/:id and
// soft-deletes the environment together with its tables.
func (h *AdminHandler) DeleteEnvironment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ok, err := h.EnvironmentRepo.SoftDelete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "environment not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
