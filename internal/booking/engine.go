// Package booking implements the availability and conflict-prevention
// engine: it decides which tables may be booked for a given slot and
// executes the booking transaction so that no table is ever double-booked.
// The engine is stateless between calls; every operation receives the
// full request as explicit parameters and talks to storage through the
// narrow store interfaces below, which the repository layer satisfies.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
	"github.com/lmfraga/restaurant-table-reservation/internal/queue"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
	"github.com/lmfraga/restaurant-table-reservation/internal/validator"
)

// ClientStore is the slice of the client repository the engine needs.
type ClientStore interface {
	Create(ctx context.Context, c *model.Client) error
	GetByID(ctx context.Context, id uint64) (*model.Client, error)
	GetByEmail(ctx context.Context, email string) (*model.Client, error)
	Update(ctx context.Context, id uint64, upd repository.ClientUpdate) (*model.Client, error)
}

// EnvironmentStore resolves environments for availability queries.
type EnvironmentStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Environment, error)
}

// TableStore resolves tables and runs the availability query.
type TableStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Table, error)
	GetAvailable(ctx context.Context, environmentID uint64, at time.Time, partySize int) ([]model.Table, error)
}

// ReservationStore persists reservations. Create must be atomic with
// respect to the confirmed-slot conflict check (see repository docs).
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	Cancel(ctx context.Context, id uint64) (bool, error)
	Update(ctx context.Context, id uint64, upd repository.ReservationUpdate) (*model.Reservation, error)
}

// EventPublisher emits domain events for confirmed bookings. Publishing
// is best-effort: a broker failure never fails the booking.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

// Service is the booking engine. All fields except Publisher are
// required; a nil Publisher disables event emission.
type Service struct {
	Clients      ClientStore
	Environments EnvironmentStore
	Tables       TableStore
	Reservations ReservationStore
	Publisher    EventPublisher
}

// NewService constructs the engine and panics if a required store is nil.
func NewService(clients ClientStore, environments EnvironmentStore, tables TableStore, reservations ReservationStore, publisher EventPublisher) *Service {
	if clients == nil || environments == nil || tables == nil || reservations == nil {
		panic("nil store passed to booking.NewService")
	}
	return &Service{
		Clients:      clients,
		Environments: environments,
		Tables:       tables,
		Reservations: reservations,
		Publisher:    publisher,
	}
}

// FindAvailableTables returns the active tables of an environment that
// seat at least partySize people and hold no confirmed reservation for
// the exact timestamp. Slots are atomic: only an identical timestamp
// conflicts, there is no duration arithmetic. The order of the result
// carries no meaning; callers may re-sort.
func (s *Service) FindAvailableTables(ctx context.Context, environmentID uint64, at time.Time, partySize int) ([]model.Table, error) {
	if environmentID == 0 {
		return nil, validator.NewValidationError("Ambiente é obrigatório")
	}
	if err := validator.ValidateCapacity(partySize); err != nil {
		return nil, err
	}
	env, err := s.Environments.GetByID(ctx, environmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validator.NewValidationError("Ambiente não encontrado")
		}
		return nil, err
	}
	if !env.IsActive {
		return nil, validator.NewValidationError("Ambiente não encontrado")
	}
	return s.Tables.GetAvailable(ctx, environmentID, at, partySize)
}

// CreateReservation books a table for a client at an exact slot. The
// preconditions run in a fixed order, each failing fast with a
// validation message naming the violated rule:
//
//  1. client and table ids are set
//  2. the timestamp is not in the past and at most 90 days ahead
//  3. the party size is within [1,20]
//  4. the client exists
//  5. the table exists
//  6. the party fits the table's capacity
//  7. no confirmed reservation occupies the same (table, timestamp) slot
//
// Steps 1–6 run here; step 7 is enforced atomically by the reservation
// store together with the insert, so two concurrent attempts on the
// same slot cannot both succeed.
func (s *Service) CreateReservation(ctx context.Context, clientID, tableID uint64, at time.Time, partySize int, notes *string) (*model.Reservation, error) {
	if clientID == 0 {
		return nil, validator.NewValidationError("Cliente é obrigatório")
	}
	if tableID == 0 {
		return nil, validator.NewValidationError("Mesa é obrigatória")
	}
	if err := validator.ValidateReservationDate(at); err != nil {
		return nil, err
	}
	if err := validator.ValidateCapacity(partySize); err != nil {
		return nil, err
	}
	if _, err := s.Clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validator.NewValidationError("Cliente não encontrado")
		}
		return nil, err
	}
	table, err := s.Tables.GetByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validator.NewValidationError("Mesa não encontrada")
		}
		return nil, err
	}
	if partySize > table.Capacity {
		return nil, validator.NewValidationError(
			fmt.Sprintf("Mesa comporta apenas %d pessoas", table.Capacity))
	}

	res := &model.Reservation{
		ClientID:   clientID,
		TableID:    tableID,
		ReservedAt: at.UTC(),
		PartySize:  partySize,
		Notes:      cleanNotes(notes),
		Status:     model.StatusConfirmed,
	}
	if err := s.Reservations.Create(ctx, res); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, validator.NewValidationError("Mesa já reservada para este horário")
		}
		return nil, err
	}

	if s.Publisher != nil {
		ev := queue.ReservationConfirmedEvent{
			ReservationID: res.ID,
			ClientID:      res.ClientID,
			TableID:       res.TableID,
			TableNumber:   table.Number,
			PartySize:     res.PartySize,
			ReservedAt:    res.ReservedAt.UTC().Format(time.RFC3339),
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.Publisher.PublishReservationConfirmed(ctx, ev); err != nil {
			log.Printf("booking: publish reservation.confirmed failed: %v", err)
		}
	}
	return res, nil
}

// CancelReservation transitions a reservation to cancelled, freeing its
// slot for rebooking. The operation is idempotent: cancelling an
// already-cancelled reservation reports success. It reports false only
// when the reservation does not exist.
func (s *Service) CancelReservation(ctx context.Context, id uint64) (bool, error) {
	if id == 0 {
		return false, validator.NewValidationError("Reserva é obrigatória")
	}
	return s.Reservations.Cancel(ctx, id)
}

// UpdateReservation re-validates any touched field with the same rules
// as creation and re-checks the table capacity when the party size
// changes. A timestamp change does not re-run the slot-conflict check
// here; the confirmed-slot index still rejects a move onto an occupied
// slot at the storage layer.
func (s *Service) UpdateReservation(ctx context.Context, id uint64, upd repository.ReservationUpdate) (*model.Reservation, error) {
	if id == 0 {
		return nil, validator.NewValidationError("Reserva é obrigatória")
	}
	if upd.ReservedAt != nil {
		if err := validator.ValidateReservationDate(*upd.ReservedAt); err != nil {
			return nil, err
		}
	}
	if upd.PartySize != nil {
		if err := validator.ValidateCapacity(*upd.PartySize); err != nil {
			return nil, err
		}
		res, err := s.Reservations.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		table, err := s.Tables.GetByID(ctx, res.TableID)
		if err != nil {
			return nil, err
		}
		if *upd.PartySize > table.Capacity {
			return nil, validator.NewValidationError(
				fmt.Sprintf("Mesa comporta apenas %d pessoas", table.Capacity))
		}
	}
	return s.Reservations.Update(ctx, id, upd)
}

// cleanNotes trims and collapses whitespace; empty notes become nil.
func cleanNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	cleaned := validator.CleanString(*notes)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
