package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/booking"
	"github.com/lmfraga/restaurant-table-reservation/internal/model"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
)

// BookingHandler exposes client registration and reservation endpoints.
// These routes are public: clients identify themselves by email at
// registration time and by reservation id afterwards.
type BookingHandler struct {
	Engine          *booking.Service
	ClientRepo      *repository.ClientRepo
	ReservationRepo *repository.ReservationRepo
}

func NewBookingHandler(engine *booking.Service, clients *repository.ClientRepo, reservations *repository.ReservationRepo) *BookingHandler {
	if engine == nil || clients == nil || reservations == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine, ClientRepo: clients, ReservationRepo: reservations}
}

// ----- DTOs -----

type registerClientReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type createReservationReq struct {
	ClientID  uint64  `json:"client_id"`
	TableID   uint64  `json:"table_id"`
	Datetime  string  `json:"datetime"`
	PartySize int     `json:"party_size"`
	Notes     *string `json:"notes"`
}

type updateReservationReq struct {
	Datetime  *string `json:"datetime"`
	PartySize *int    `json:"party_size"`
	Notes     *string `json:"notes"`
}

type clientResp struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registered_at"`
}

type reservationResp struct {
	ID         uint64    `json:"id"`
	ClientID   uint64    `json:"client_id"`
	TableID    uint64    `json:"table_id"`
	ReservedAt time.Time `json:"reserved_at"`
	PartySize  int       `json:"party_size"`
	Notes      *string   `json:"notes,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toClientResp(c *model.Client) clientResp {
	return clientResp{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, RegisteredAt: c.RegisteredAt}
}

func toReservationResp(r *model.Reservation) reservationResp {
	return reservationResp{
		ID: r.ID, ClientID: r.ClientID, TableID: r.TableID,
		ReservedAt: r.ReservedAt, PartySize: r.PartySize,
		Notes: r.Notes, Status: r.Status, CreatedAt: r.CreatedAt,
	}
}

// RegisterClient handles POST /v1/clients.
func (h *BookingHandler) RegisterClient(c echo.Context) error {
	var req registerClientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	client, err := h.Engine.RegisterClient(c.Request().Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		return validationResponse(c, err)
	}
	return c.JSON(http.StatusCreated, toClientResp(client))
}

// LookupClient handles GET /v1/clients/lookup?email=... and resolves a
// client by case-insensitive email.
func (h *BookingHandler) LookupClient(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}
	client, err := h.Engine.LookupClientByEmail(c.Request().Context(), email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toClientResp(client))
}

// CreateReservation handles POST /v1/reservations.  A slot conflict or a
// failed precondition yields 422 with a message naming the violated rule.
func (h *BookingHandler) CreateReservation(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	at, err := parseTimestamp(req.Datetime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid datetime"})
	}
	res, err := h.Engine.CreateReservation(c.Request().Context(), req.ClientID, req.TableID, at, req.PartySize, req.Notes)
	if err != nil {
		return validationResponse(c, err)
	}
	return c.JSON(http.StatusCreated, toReservationResp(res))
}

// GetReservation handles GET /v1/reservations/:id.
func (h *BookingHandler) GetReservation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	res, err := h.ReservationRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}

// UpdateReservation handles PATCH /v1/reservations/:id.
func (h *BookingHandler) UpdateReservation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	var upd repository.ReservationUpdate
	if req.Datetime != nil {
		at, err := parseTimestamp(*req.Datetime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid datetime"})
		}
		upd.ReservedAt = &at
	}
	upd.PartySize = req.PartySize
	upd.Notes = req.Notes
	res, err := h.Engine.UpdateReservation(c.Request().Context(), id, upd)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "table already reserved for this slot"})
		}
		return validationResponse(c, err)
	}
	return c.JSON(http.StatusOK, toReservationResp(res))
}

// CancelReservation handles POST /v1/reservations/:id/cancel.  The
// operation is idempotent: cancelling twice succeeds both times, only a
// missing reservation yields 404.
func (h *BookingHandler) CancelReservation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ok, err := h.Engine.CancelReservation(c.Request().Context(), id)
	if err != nil {
		return validationResponse(c, err)
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListClientReservations handles GET /v1/clients/:id/reservations and
// returns the client's reservations, newest slot first.
func (h *BookingHandler) ListClientReservations(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	if _, err := h.ClientRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reservations, err := h.ReservationRepo.ListByClient(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]reservationResp, 0, len(reservations))
	for i := range reservations {
		out = append(out, toReservationResp(&reservations[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
