package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// EntityKind describes a stored entity for the generic store operations:
// the backing table and whether rows support soft deletion. Repositories
// dispatch on the descriptor instead of probing attributes at runtime,
// so the delete semantics of every entity are declared in one place.
type EntityKind struct {
	Table      string // backing table name
	SoftDelete bool   // rows carry an is_active flag
}

// Descriptors for the five stored entities plus the admin credential
// store. Reservations have no is_active flag: cancellation is a status
// transition and Delete performs a hard delete (administrative purge).
var (
	KindClient      = EntityKind{Table: "clients", SoftDelete: true}
	KindRestaurant  = EntityKind{Table: "restaurants", SoftDelete: true}
	KindEnvironment = EntityKind{Table: "environments", SoftDelete: true}
	KindTable       = EntityKind{Table: "restaurant_tables", SoftDelete: true}
	KindReservation = EntityKind{Table: "reservations", SoftDelete: false}
	KindAdmin       = EntityKind{Table: "admins", SoftDelete: true}
)

// deleteByID removes the row with the given id according to the kind's
// delete capability: soft-deleting kinds have their is_active flag
// cleared, others are deleted outright. It reports whether a row was
// affected. Table names come from the fixed descriptors above, never
// from user input.
func deleteByID(ctx context.Context, db *sql.DB, kind EntityKind, id uint64) (bool, error) {
	var q string
	if kind.SoftDelete {
		q = fmt.Sprintf("UPDATE %s SET is_active = 0 WHERE id = ?", kind.Table)
	} else {
		q = fmt.Sprintf("DELETE FROM %s WHERE id = ?", kind.Table)
	}
	res, err := db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// countRows counts rows of the kind, restricted to active rows when the
// kind supports soft deletion and activeOnly is set.
func countRows(ctx context.Context, db *sql.DB, kind EntityKind, activeOnly bool) (int, error) {
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", kind.Table)
	if activeOnly && kind.SoftDelete {
		q += " WHERE is_active = 1"
	}
	var n int
	if err := db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// existsActive reports whether an active row with the given id exists.
// Kinds without soft deletion only check for presence.
func existsActive(ctx context.Context, db *sql.DB, kind EntityKind, id uint64) (bool, error) {
	q := fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", kind.Table)
	if kind.SoftDelete {
		q += " AND is_active = 1"
	}
	var one int
	err := db.QueryRowContext(ctx, q+" LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
