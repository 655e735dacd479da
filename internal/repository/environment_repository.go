package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
)

// EnvironmentRepo provides data access to the environments table.
type EnvironmentRepo struct {
	db *sql.DB
}

// NewEnvironmentRepo returns a new EnvironmentRepo bound to the given database.
func NewEnvironmentRepo(db *sql.DB) *EnvironmentRepo { return &EnvironmentRepo{db: db} }

// Create inserts a new environment and populates the generated ID on the
// provided model. The owning restaurant must exist; a failing foreign key
// is reported as ErrNotFound.
func (r *EnvironmentRepo) Create(ctx context.Context, env *model.Environment) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO environments (name, description, restaurant_id) VALUES (?, ?, ?)",
		env.Name, env.Description, env.RestaurantID)
	if err != nil {
		// 1452: foreign key constraint fails (missing restaurant)
		if strings.Contains(strings.ToLower(err.Error()), "1452") {
			return ErrNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	env.ID = uint64(id)
	env.IsActive = true
	return nil
}

// GetByID fetches an environment by id. Returns ErrNotFound when no row exists.
func (r *EnvironmentRepo) GetByID(ctx context.Context, id uint64) (*model.Environment, error) {
	var env model.Environment
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, restaurant_id, is_active FROM environments WHERE id = ? LIMIT 1",
		id).Scan(&env.ID, &env.Name, &desc, &env.RestaurantID, &env.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		v := desc.String
		env.Description = &v
	}
	return &env, nil
}

// GetByRestaurant returns the active environments of a restaurant,
// ordered by name.
func (r *EnvironmentRepo) GetByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Environment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, restaurant_id, is_active
		 FROM environments WHERE restaurant_id = ? AND is_active = 1 ORDER BY name`,
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	envs := make([]model.Environment, 0)
	for rows.Next() {
		var env model.Environment
		var desc sql.NullString
		if err := rows.Scan(&env.ID, &env.Name, &desc, &env.RestaurantID, &env.IsActive); err != nil {
			return nil, err
		}
		if desc.Valid {
			v := desc.String
			env.Description = &v
		}
		envs = append(envs, env)
	}
	return envs, rows.Err()
}

// EnvironmentUpdate lists the updatable environment fields. Nil pointers
// leave the corresponding column untouched.
type EnvironmentUpdate struct {
	Name        *string
	Description *string
}

// Update applies the non-nil fields and returns the updated environment.
func (r *EnvironmentRepo) Update(ctx context.Context, id uint64, upd EnvironmentUpdate) (*model.Environment, error) {
	sets := make([]string, 0, 2)
	args := make([]interface{}, 0, 3)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	if _, err := r.db.ExecContext(ctx,
		"UPDATE environments SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// SoftDelete deactivates an environment and its tables in one
// transaction. It reports whether the environment row was affected.
func (r *EnvironmentRepo) SoftDelete(ctx context.Context, id uint64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx, "UPDATE environments SET is_active = 0 WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE restaurant_tables SET is_active = 0 WHERE environment_id = ?", id); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return n > 0, nil
}

// Count returns the number of environments, optionally restricted to
// active ones.
func (r *EnvironmentRepo) Count(ctx context.Context, activeOnly bool) (int, error) {
	return countRows(ctx, r.db, KindEnvironment, activeOnly)
}
