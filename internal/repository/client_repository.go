package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lmfraga/restaurant-table-reservation/internal/model"
)

// ClientRepo provides data access to the clients table. Emails are
// normalized to lowercase before every write and lookup so the unique
// key behaves case-insensitively regardless of collation.
type ClientRepo struct {
	db *sql.DB
}

// NewClientRepo returns a new ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

// Create inserts a new client and populates the generated ID and
// registration timestamp on the provided model. A duplicate email is
// reported as ErrEmailExists.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	email := strings.ToLower(strings.TrimSpace(c.Email))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO clients (name, email, phone) VALUES (?, ?, ?)",
		c.Name, email, c.Phone)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	return r.db.QueryRowContext(ctx,
		"SELECT id, name, email, phone, registered_at, is_active FROM clients WHERE id = ?",
		c.ID).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.RegisteredAt, &c.IsActive)
}

// GetByID fetches a client by id. Returns ErrNotFound when no row exists.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (*model.Client, error) {
	var c model.Client
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, phone, registered_at, is_active FROM clients WHERE id = ? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.RegisteredAt, &c.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByEmail fetches a client by normalized email. Returns ErrNotFound
// when no client is registered under that address.
func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var c model.Client
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, phone, registered_at, is_active FROM clients WHERE email = ? LIMIT 1",
		email).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.RegisteredAt, &c.IsActive)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetAll returns clients ordered by name. When activeOnly is set, only
// active clients are included.
func (r *ClientRepo) GetAll(ctx context.Context, activeOnly bool) ([]model.Client, error) {
	q := "SELECT id, name, email, phone, registered_at, is_active FROM clients"
	if activeOnly {
		q += " WHERE is_active = 1"
	}
	q += " ORDER BY name"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	clients := make([]model.Client, 0)
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.RegisteredAt, &c.IsActive); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// ClientUpdate lists the updatable client fields. Nil pointers leave the
// corresponding column untouched.
type ClientUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

// Update applies the non-nil fields and returns the updated client.
// A duplicate email is reported as ErrEmailExists; a missing row as
// ErrNotFound.
func (r *ClientRepo) Update(ctx context.Context, id uint64, upd ClientUpdate) (*model.Client, error) {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*upd.Email)))
	}
	if upd.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *upd.Phone)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE clients SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Distinguish "row absent" from "values unchanged".
		if ok, exErr := existsActive(ctx, r.db, KindClient, id); exErr == nil && !ok {
			return nil, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// SoftDelete flips the client's active flag. It reports whether a row
// was affected.
func (r *ClientRepo) SoftDelete(ctx context.Context, id uint64) (bool, error) {
	return deleteByID(ctx, r.db, KindClient, id)
}

// Count returns the number of clients, optionally restricted to active ones.
func (r *ClientRepo) Count(ctx context.Context, activeOnly bool) (int, error) {
	return countRows(ctx, r.db, KindClient, activeOnly)
}
