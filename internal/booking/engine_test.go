package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
	"github.com/lmfraga/restaurant-table-reservation/internal/validator"
)

func reservationUpdateAt(at time.Time) repository.ReservationUpdate {
	return repository.ReservationUpdate{ReservedAt: &at}
}

func reservationUpdatePartySize(n int) repository.ReservationUpdate {
	return repository.ReservationUpdate{PartySize: &n}
}

func assertValidationMessage(t *testing.T, err error, want string) {
	t.Helper()
	var verr *validator.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error %q, got %v", want, err)
	}
	if verr.Message != want {
		t.Fatalf("expected message %q, got %q", want, verr.Message)
	}
}

func TestFindAvailableTablesFiltersByCapacity(t *testing.T) {
	fx := newTestFixture()
	at := slot()

	tables, err := fx.engine.FindAvailableTables(context.Background(), 1, at, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tables) != 1 || tables[0].Number != "T2" {
		t.Fatalf("expected only T2 (capacity 4) for a party of 3, got %v", tables)
	}
}

func TestFindAvailableTablesExcludesInactive(t *testing.T) {
	fx := newTestFixture()

	tables, err := fx.engine.FindAvailableTables(context.Background(), 1, slot(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tbl := range tables {
		if tbl.Number == "T3" {
			t.Fatal("inactive table T3 must never appear as available")
		}
	}
	if len(tables) != 2 {
		t.Fatalf("expected T1 and T2, got %v", tables)
	}
}

func TestFindAvailableTablesExcludesConfirmedSlot(t *testing.T) {
	fx := newTestFixture()
	at := slot()

	if _, err := fx.engine.CreateReservation(context.Background(), fx.clientID, 2, at, 4, nil); err != nil {
		t.Fatalf("setup reservation failed: %v", err)
	}

	tables, err := fx.engine.FindAvailableTables(context.Background(), 1, at, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tables) != 1 || tables[0].Number != "T1" {
		t.Fatalf("expected only T1 once T2's slot is taken, got %v", tables)
	}

	// A different timestamp does not conflict.
	other, err := fx.engine.FindAvailableTables(context.Background(), 1, at.Add(30*time.Minute), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other) != 2 {
		t.Fatalf("expected both tables free at a different slot, got %v", other)
	}
}

func TestFindAvailableTablesUnknownEnvironment(t *testing.T) {
	fx := newTestFixture()

	_, err := fx.engine.FindAvailableTables(context.Background(), 99, slot(), 2)
	assertValidationMessage(t, err, "Ambiente não encontrado")

	// Soft-deleted environment behaves exactly like a missing one.
	_, err = fx.engine.FindAvailableTables(context.Background(), 2, slot(), 2)
	assertValidationMessage(t, err, "Ambiente não encontrado")
}

func TestCreateReservationSuccess(t *testing.T) {
	fx := newTestFixture()
	at := slot()
	notes := "  aniversário  "

	res, err := fx.engine.CreateReservation(context.Background(), fx.clientID, 2, at, 4, &notes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID == 0 {
		t.Fatal("expected persisted reservation to carry an id")
	}
	if res.Status != model.StatusConfirmed {
		t.Fatalf("expected status %q, got %q", model.StatusConfirmed, res.Status)
	}
	if res.Notes == nil || *res.Notes != "aniversário" {
		t.Fatalf("expected cleaned notes, got %v", res.Notes)
	}
	if len(fx.publisher.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(fx.publisher.events))
	}
	ev := fx.publisher.events[0]
	if ev.ReservationID != res.ID || ev.TableNumber != "T2" || ev.PartySize != 4 {
		t.Fatalf("unexpected event payload: %+v", ev)
	}
}

func TestCreateReservationPartySizeAtCapacityBoundary(t *testing.T) {
	fx := newTestFixture()

	// Exactly the capacity passes.
	if _, err := fx.engine.CreateReservation(context.Background(), fx.clientID, 1, slot(), 2, nil); err != nil {
		t.Fatalf("party size equal to capacity must be allowed: %v", err)
	}

	// One above the capacity fails.
	_, err := fx.engine.CreateReservation(context.Background(), fx.clientID, 1, slot().Add(time.Hour), 3, nil)
	assertValidationMessage(t, err, "Mesa comporta apenas 2 pessoas")
}

func TestCreateReservationDuplicateSlotConflicts(t *testing.T) {
	fx := newTestFixture()
	at := slot()

	if _, err := fx.engine.CreateReservation(context.Background(), fx.clientID, 1, at, 2, nil); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// A second client hitting the identical (table, timestamp) slot loses.
	other := &model.Client{Name: "João Santos", Email: "joao@example.com", Phone: "+351913333333"}
	if err := fx.clients.Create(context.Background(), other); err != nil {
		t.Fatalf("setup second client failed: %v", err)
	}
	_, err := fx.engine.CreateReservation(context.Background(), other.ID, 1, at, 2, nil)
	assertValidationMessage(t, err, "Mesa já reservada para este horário")
}

func TestCreateReservationValidationOrder(t *testing.T) {
	fx := newTestFixture()
	past := time.Now().UTC().Add(-time.Hour)

	cases := []struct {
		name      string
		clientID  uint64
		tableID   uint64
		at        time.Time
		partySize int
		want      string
	}{
		{"missing client", 0, 1, slot(), 2, "Cliente é obrigatório"},
		{"missing table", fx.clientID, 0, slot(), 2, "Mesa é obrigatória"},
		{"past date", fx.clientID, 1, past, 2, "Não é possível fazer reservas para datas passadas"},
		{"party size zero", fx.clientID, 1, slot(), 0, "Capacidade deve ser pelo menos 1"},
		{"unknown client", 999, 1, slot(), 2, "Cliente não encontrado"},
		{"unknown table", fx.clientID, 999, slot(), 2, "Mesa não encontrada"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.engine.CreateReservation(context.Background(), tc.clientID, tc.tableID, tc.at, tc.partySize, nil)
			assertValidationMessage(t, err, tc.want)
		})
	}
}

func TestCreateReservationPublisherFailureDoesNotFailBooking(t *testing.T) {
	fx := newTestFixture()
	fx.publisher.fail = true

	res, err := fx.engine.CreateReservation(context.Background(), fx.clientID, 1, slot(), 2, nil)
	if err != nil {
		t.Fatalf("booking must succeed despite publish failure: %v", err)
	}
	if res.Status != model.StatusConfirmed {
		t.Fatalf("expected confirmed reservation, got %q", res.Status)
	}
}

func TestCancelThenRebookSucceeds(t *testing.T) {
	fx := newTestFixture()
	at := slot()

	res, err := fx.engine.CreateReservation(context.Background(), fx.clientID, 1, at, 2, nil)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	ok, err := fx.engine.CancelReservation(context.Background(), res.ID)
	if err != nil || !ok {
		t.Fatalf("cancel failed: ok=%v err=%v", ok, err)
	}

	// The slot is free again.
	if _, err := fx.engine.CreateReservation(context.Background(), fx.clientID, 1, at, 2, nil); err != nil {
		t.Fatalf("rebooking a cancelled slot must succeed: %v", err)
	}
}

func TestCancelReservationIdempotent(t *testing.T) {
	fx := newTestFixture()

	res, err := fx.engine.CreateReservation(context.Background(), fx.clientID, 1, slot(), 2, nil)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		ok, err := fx.engine.CancelReservation(context.Background(), res.ID)
		if err != nil {
			t.Fatalf("cancel attempt %d errored: %v", i+1, err)
		}
		if !ok {
			t.Fatalf("cancel attempt %d reported not found", i+1)
		}
	}

	ok, err := fx.engine.CancelReservation(context.Background(), 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("cancelling a missing reservation must report false")
	}
}

func TestUpdateReservationRevalidates(t *testing.T) {
	fx := newTestFixture()

	res, err := fx.engine.CreateReservation(context.Background(), fx.clientID, 1, slot(), 2, nil)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	past := time.Now().UTC().Add(-time.Hour)
	_, err = fx.engine.UpdateReservation(context.Background(), res.ID, reservationUpdateAt(past))
	assertValidationMessage(t, err, "Não é possível fazer reservas para datas passadas")

	tooBig := 3
	_, err = fx.engine.UpdateReservation(context.Background(), res.ID, reservationUpdatePartySize(tooBig))
	assertValidationMessage(t, err, "Mesa comporta apenas 2 pessoas")

	moved := slot().Add(2 * time.Hour)
	updated, err := fx.engine.UpdateReservation(context.Background(), res.ID, reservationUpdateAt(moved))
	if err != nil {
		t.Fatalf("valid update failed: %v", err)
	}
	if !updated.ReservedAt.Equal(moved.UTC()) {
		t.Fatalf("expected reservation moved to %v, got %v", moved, updated.ReservedAt)
	}
}
