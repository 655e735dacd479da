package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
)

// ListClients handles GET /v1/admin/clients.  The optional
// ?include_inactive=true parameter also returns soft-deleted rows.
func (h *AdminHandler) ListClients(c echo.Context) error {
	activeOnly := c.QueryParam("include_inactive") != "true"
	items, err := h.ClientRepo.GetAll(c.Request().Context(), activeOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetClient handles GET /v1/admin/clients/:id.
func (h *AdminHandler) GetClient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	client, err := h.ClientRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, client)
}

// UpdateClient handles PATCH /v1/admin/clients/:id.  Field validation
// and email-uniqueness checks run through the booking engine so the
// rules match client self-registration exactly.
func (h *AdminHandler) UpdateClient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	upd := repository.ClientUpdate{Name: req.Name, Email: req.Email, Phone: req.Phone}
	client, err := h.Engine.UpdateClient(c.Request().Context(), id, upd)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return validationResponse(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /v1/admin/clients/:id and soft-deletes
// the client; their reservation history is preserved.
func (h *AdminHandler) DeleteClient(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ok, err := h.ClientRepo.SoftDelete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
