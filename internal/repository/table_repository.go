package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
)

// TableRepo provides data access to the restaurant_tables table,
// including the availability query that excludes tables already holding
// a confirmed reservation for an exact timestamp.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// Create inserts a new table and populates the generated ID on the
// provided model. The owning environment must exist; a failing foreign
// key is reported as ErrNotFound.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO restaurant_tables (number, capacity, environment_id, notes) VALUES (?, ?, ?, ?)",
		t.Number, t.Capacity, t.EnvironmentID, t.Notes)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1452") {
			return ErrNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	t.IsActive = true
	return nil
}

func scanTable(scan func(dest ...interface{}) error, t *model.Table) error {
	var notes sql.NullString
	if err := scan(&t.ID, &t.Number, &t.Capacity, &t.EnvironmentID, &t.IsActive, &notes); err != nil {
		return err
	}
	if notes.Valid {
		v := notes.String
		t.Notes = &v
	}
	return nil
}

// GetByID fetches a table by id. Returns ErrNotFound when no row exists.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	var t model.Table
	row := r.db.QueryRowContext(ctx,
		"SELECT id, number, capacity, environment_id, is_active, notes FROM restaurant_tables WHERE id = ? LIMIT 1",
		id)
	if err := scanTable(row.Scan, &t); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetByEnvironment returns the active tables of an environment, ordered
// by their number label.
func (r *TableRepo) GetByEnvironment(ctx context.Context, environmentID uint64) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, number, capacity, environment_id, is_active, notes
		 FROM restaurant_tables WHERE environment_id = ? AND is_active = 1 ORDER BY number`,
		environmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := scanTable(rows.Scan, &t); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// GetAvailable returns the active tables of an environment that seat at
// least partySize people and have no confirmed reservation for the exact
// timestamp. The anti-join pushes the whole availability rule into one
// statement so the result is consistent with a single read snapshot.
// Ordering by number is for stable output only; callers may re-sort.
func (r *TableRepo) GetAvailable(ctx context.Context, environmentID uint64, at time.Time, partySize int) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.number, t.capacity, t.environment_id, t.is_active, t.notes
		 FROM restaurant_tables t
		 WHERE t.environment_id = ? AND t.is_active = 1 AND t.capacity >= ?
		   AND NOT EXISTS (
		       SELECT 1 FROM reservations res
		       WHERE res.table_id = t.id AND res.reserved_at = ? AND res.status = 'confirmed'
		   )
		 ORDER BY t.number`,
		environmentID, partySize, at.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := scanTable(rows.Scan, &t); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// TableUpdate lists the updatable table fields. Nil pointers leave the
// corresponding column untouched.
type TableUpdate struct {
	Number   *string
	Capacity *int
	Notes    *string
}

// Update applies the non-nil fields and returns the updated table.
func (r *TableRepo) Update(ctx context.Context, id uint64, upd TableUpdate) (*model.Table, error) {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if upd.Number != nil {
		sets = append(sets, "number = ?")
		args = append(args, *upd.Number)
	}
	if upd.Capacity != nil {
		sets = append(sets, "capacity = ?")
		args = append(args, *upd.Capacity)
	}
	if upd.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *upd.Notes)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	if _, err := r.db.ExecContext(ctx,
		"UPDATE restaurant_tables SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// SoftDelete flips the table's active flag. It reports whether a row was
// affected.
func (r *TableRepo) SoftDelete(ctx context.Context, id uint64) (bool, error) {
	return deleteByID(ctx, r.db, KindTable, id)
}

// Count returns the number of tables, optionally restricted to active ones.
func (r *TableRepo) Count(ctx context.Context, activeOnly bool) (int, error) {
	return countRows(ctx, r.db, KindTable, activeOnly)
}

// CountActiveByRestaurant counts the active tables across all
// environments of a restaurant. Used by the occupancy report.
func (r *TableRepo) CountActiveByRestaurant(ctx context.Context, restaurantID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM restaurant_tables t
		 JOIN environments e ON e.id = t.environment_id
		 WHERE e.restaurant_id = ? AND t.is_active = 1 AND e.is_active = 1`,
		restaurantID).Scan(&n)
	return n, err
}
