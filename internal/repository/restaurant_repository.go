package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
)

// RestaurantRepo provides data access to the restaurants table.
// Restaurants sit at the top of the ownership chain, so deactivation
// cascades to environments and tables inside a single transaction.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo returns a new RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// Create inserts a new restaurant and populates the generated ID and
// creation timestamp on the provided model.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO restaurants (name, address, phone, email, description) VALUES (?, ?, ?, ?, ?)",
		rest.Name, rest.Address, rest.Phone, rest.Email, rest.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rest.ID = uint64(id)
	return r.scanByID(ctx, rest.ID, rest)
}

func (r *RestaurantRepo) scanByID(ctx context.Context, id uint64, rest *model.Restaurant) error {
	var email, desc sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, address, phone, email, description, is_active, created_at FROM restaurants WHERE id = ? LIMIT 1",
		id).Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Phone, &email, &desc, &rest.IsActive, &rest.CreatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if email.Valid {
		v := email.String
		rest.Email = &v
	} else {
		rest.Email = nil
	}
	if desc.Valid {
		v := desc.String
		rest.Description = &v
	} else {
		rest.Description = nil
	}
	return nil
}

// GetByID fetches a restaurant by id. Returns ErrNotFound when no row exists.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
	var rest model.Restaurant
	if err := r.scanByID(ctx, id, &rest); err != nil {
		return nil, err
	}
	return &rest, nil
}

// GetAll returns restaurants ordered by name. When activeOnly is set,
// only active restaurants are included.
func (r *RestaurantRepo) GetAll(ctx context.Context, activeOnly bool) ([]model.Restaurant, error) {
	q := "SELECT id, name, address, phone, email, description, is_active, created_at FROM restaurants"
	if activeOnly {
		q += " WHERE is_active = 1"
	}
	q += " ORDER BY name"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	restaurants := make([]model.Restaurant, 0)
	for rows.Next() {
		var rest model.Restaurant
		var email, desc sql.NullString
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Phone, &email, &desc, &rest.IsActive, &rest.CreatedAt); err != nil {
			return nil, err
		}
		if email.Valid {
			v := email.String
			rest.Email = &v
		}
		if desc.Valid {
			v := desc.String
			rest.Description = &v
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

// RestaurantUpdate lists the updatable restaurant fields. Nil pointers
// leave the corresponding column untouched.
type RestaurantUpdate struct {
	Name        *string
	Address     *string
	Phone       *string
	Email       *string
	Description *string
}

// Update applies the non-nil fields and returns the updated restaurant.
func (r *RestaurantRepo) Update(ctx context.Context, id uint64, upd RestaurantUpdate) (*model.Restaurant, error) {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *upd.Address)
	}
	if upd.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *upd.Phone)
	}
	if upd.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*upd.Email)))
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
		"UPDATE restaurants SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// SoftDelete deactivates a restaurant and cascades to its environments
// and their tables in one transaction, so a logically removed restaurant
// never surfaces bookable tables. It reports whether the restaurant row
// was affected.
func (r *RestaurantRepo) SoftDelete(ctx context.Context, id uint64) (bool, error) {
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
	res, err := tx.ExecContext(ctx, "UPDATE restaurants SET is_active = 0 WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE restaurant_tables SET is_active = 0
		 WHERE environment_id IN (SELECT id FROM environments WHERE restaurant_id = ?)`, id); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE environments SET is_active = 0 WHERE restaurant_id = ?", id); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return n > 0, nil
}

// Count returns the number of restaurants, optionally restricted to
// active ones.
func (r *RestaurantRepo) Count(ctx context.Context, activeOnly bool) (int, error) {
	return countRows(ctx, r.db, KindRestaurant, activeOnly)
}
