package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
	"github.com/lmfraga/restaurant-table-reservation/internal/validator"
)

type tableReq struct {
	Number        string  `json:"number"`
	Capacity      int     `json:"capacity"`
	EnvironmentID uint64  `json:"environment_id"`
	Notes         *string `json:"notes"`
}

// CreateTable handles POST /v1/admin/tables.  The owning environment
// must exist and be active; capacity is bounded to [1,20].
func (h *AdminHandler) CreateTable(c echo.Context) error {
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validator.ValidateTableNumber(req.Number); err != nil {
		return validationResponse(c, err)
	}
	if err := validator.ValidateCapacity(req.Capacity); err != nil {
		return validationResponse(c, err)
	}
	if req.EnvironmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "environment_id is required"})
	}
	ctx := c.Request().Context()
	env, err := h.EnvironmentRepo.GetByID(ctx, req.EnvironmentID)
	if err != nil || !env.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "environment not found"})
	}
	t := &model.Table{
		Number:        req.Number,
		Capacity:      req.Capacity,
		EnvironmentID: req.EnvironmentID,
		Notes:         req.Notes,
	}
	if err := h.TableRepo.Create(ctx, t); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "environment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create table"})
	}
	return c.JSON(http.StatusCreated, t)
}

// UpdateTable handles PATCH /v1/admin/tables/:id.
func (h *AdminHandler) UpdateTable(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var upd repository.TableUpdate
	if req.Number != "" {
		if err := validator.ValidateTableNumber(req.Number); err != nil {
			return validationResponse(c, err)
		}
		upd.Number = &req.Number
	}
	if req.Capacity != 0 {
		if err := validator.ValidateCapacity(req.Capacity); err != nil {
			return validationResponse(c, err)
		}
		upd.Capacity = &req.Capacity
	}
	upd.Notes = req.Notes
	t, err := h.TableRepo.Update(c.Request().Context(), id, upd)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteTable handles DELETE /v1/admin/tables/:id.  Soft-deleted tables
// never appear as available but their reservation history remains.
func (h *AdminHandler) DeleteTable(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ok, err := h.TableRepo.SoftDelete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
