package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
)

// ReservationRepo provides data access to the reservations table.
// Reservations have no soft-delete flag: cancellation transitions the
// status to "cancelled" and Delete performs an administrative purge.
// All timestamp fields are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

func scanReservation(scan func(dest ...interface{}) error, res *model.Reservation) error {
	var notes sql.NullString
	if err := scan(&res.ID, &res.ClientID, &res.TableID, &res.ReservedAt,
		&res.PartySize, &notes, &res.Status, &res.CreatedAt); err != nil {
		return err
	}
	if notes.Valid {
		v := notes.String
		res.Notes = &v
	}
	return nil
}

const reservationCols = "id, client_id, table_id, reserved_at, party_size, notes, status, created_at"

// Create inserts a confirmed reservation after verifying, inside one
// transaction, that no other confirmed reservation occupies the same
// (table, timestamp) slot. The conflict check locks any matching row
// with FOR UPDATE; a concurrent attempt that slips past the check still
// trips the unique confirmed-slot index, which is also mapped to
// ErrConflict. On success the generated ID, status and creation
// timestamp are populated on the provided model.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var existing uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM reservations
		 WHERE table_id = ? AND reserved_at = ? AND status = 'confirmed'
		 LIMIT 1 FOR UPDATE`,
		res.TableID, res.ReservedAt.UTC()).Scan(&existing)
	if err == nil {
		return ErrConflict
	}
	if err != sql.ErrNoRows {
		return err
	}

	result, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (client_id, table_id, reserved_at, party_size, notes) VALUES (?, ?, ?, ?, ?)",
		res.ClientID, res.TableID, res.ReservedAt.UTC(), res.PartySize, res.Notes)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	row := tx.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE id = ?", res.ID)
	if err := scanReservation(row.Scan, res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches a reservation by id. Returns ErrNotFound when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	var res model.Reservation
	row := r.db.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE id = ? LIMIT 1", id)
	if err := scanReservation(row.Scan, &res); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// Cancel transitions a reservation to cancelled, freeing its slot.
// Cancelling an already-cancelled reservation succeeds silently so the
// operation is idempotent. It reports false only when the reservation
// does not exist.
func (r *ReservationRepo) Cancel(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET status = ? WHERE id = ?", model.StatusCancelled, id)
	if err != nil {
		return false, err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return true, nil
	}
	// No rows changed: either absent or already cancelled.
	return existsActive(ctx, r.db, KindReservation, id)
}

// ReservationUpdate lists the updatable reservation fields. Nil pointers
// leave the corresponding column untouched.
type ReservationUpdate struct {
	ReservedAt *time.Time
	PartySize  *int
	Notes      *string
	Status     *string
}

// Update applies the non-nil fields and returns the updated reservation.
// A status or timestamp change that collides with the confirmed-slot
// index is reported as ErrConflict.
func (r *ReservationRepo) Update(ctx context.Context, id uint64, upd ReservationUpdate) (*model.Reservation, error) {
	sets := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	if upd.ReservedAt != nil {
		sets = append(sets, "reserved_at = ?")
		args = append(args, upd.ReservedAt.UTC())
	}
	if upd.PartySize != nil {
		sets = append(sets, "party_size = ?")
		args = append(args, *upd.PartySize)
	}
	if upd.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *upd.Notes)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	if _, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrConflict
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ListByClient returns a client's reservations, newest slot first.
func (r *ReservationRepo) ListByClient(ctx context.Context, clientID uint64) ([]model.Reservation, error) {
	return r.list(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE client_id = ? ORDER BY reserved_at DESC",
		clientID)
}

// ListByRestaurant returns the reservations placed on any table of a
// restaurant, joining through environments, newest slot first.
func (r *ReservationRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Reservation, error) {
	return r.list(ctx,
		`SELECT res.id, res.client_id, res.table_id, res.reserved_at, res.party_size, res.notes, res.status, res.created_at
		 FROM reservations res
		 JOIN restaurant_tables t ON t.id = res.table_id
		 JOIN environments e ON e.id = t.environment_id
		 WHERE e.restaurant_id = ?
		 ORDER BY res.reserved_at DESC`,
		restaurantID)
}

// ListByDateRange returns reservations whose slot falls inside the
// inclusive [from, to] range, oldest first.
func (r *ReservationRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Reservation, error) {
	return r.list(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE reserved_at >= ? AND reserved_at <= ? ORDER BY reserved_at",
		from.UTC(), to.UTC())
}

// ListByExactDate returns the reservations of a single calendar day.
func (r *ReservationRepo) ListByExactDate(ctx context.Context, day time.Time) ([]model.Reservation, error) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Second)
	return r.ListByDateRange(ctx, start, end)
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows.Scan, &res); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// HardDelete permanently removes a reservation (administrative purge).
// It reports whether a row was affected.
func (r *ReservationRepo) HardDelete(ctx context.Context, id uint64) (bool, error) {
	return deleteByID(ctx, r.db, KindReservation, id)
}

// Count returns the total number of reservations. The activeOnly flag is
// accepted for contract symmetry but has no effect since reservations do
// not soft-delete.
func (r *ReservationRepo) Count(ctx context.Context, activeOnly bool) (int, error) {
	return countRows(ctx, r.db, KindReservation, activeOnly)
}

// CountConfirmedByRestaurantOnDate counts the confirmed reservations of
// a restaurant whose slot falls on the given calendar day. Used by the
// occupancy report.
func (r *ReservationRepo) CountConfirmedByRestaurantOnDate(ctx context.Context, restaurantID uint64, day time.Time) (int, error) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Second)
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM reservations res
		 JOIN restaurant_tables t ON t.id = res.table_id
		 JOIN environments e ON e.id = t.environment_id
		 WHERE e.restaurant_id = ? AND res.status = 'confirmed'
		   AND res.reserved_at >= ? AND res.reserved_at <= ?`,
		restaurantID, start, end).Scan(&n)
	return n, err
}
