package model

import "time"

// Reservation status values.  Only a confirmed reservation blocks its
// (table, timestamp) slot; cancellation is a status transition, not a
// soft delete.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Reservation records a client's booking of one table for an exact
// date and time.  Slots are atomic: two reservations conflict only
// when they reference the same table and the identical timestamp,
// and both are confirmed.  This struct corresponds to a row in the
// `reservations` table.
//
// Fields:
//  ID         – primary key identifier.
//  ClientID   – client who made the reservation.
//  TableID    – table being reserved.
//  ReservedAt – exact date and time of the slot (UTC).
//  PartySize  – number of people; never exceeds the table capacity.
//  Notes      – optional free-text notes.
//  Status     – state of the reservation (confirmed, cancelled, completed).
//  CreatedAt  – creation timestamp.
type Reservation struct {
	ID         uint64    // reservations.id
	ClientID   uint64    // reservations.client_id
	TableID    uint64    // reservations.table_id
	ReservedAt time.Time // reservations.reserved_at
	PartySize  int       // reservations.party_size
	Notes      *string   // reservations.notes (nullable)
	Status     string    // reservations.status
	CreatedAt  time.Time // reservations.created_at
}

// IsConfirmed reports whether the reservation currently blocks its slot.
func (r *Reservation) IsConfirmed() bool { return r.Status == StatusConfirmed }
