package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Admin mirrors the admins table. Administrators authenticate with an
// email and bcrypt-hashed password; the store replaces the fixed
// credentials of earlier iterations of the system.
type Admin struct {
	ID           uint64
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

// AdminRepo provides data access to the admins credential store.
type AdminRepo struct{ DB *sql.DB }

// NewAdminRepo returns a new AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// Create inserts an admin with a precomputed password hash and returns
// its ID. A duplicate email is reported as ErrEmailExists.
func (r *AdminRepo) Create(ctx context.Context, email, passwordHash string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admins (email, password_hash) VALUES (?, ?)",
		email, passwordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an active admin by normalized email. Returns
// ErrNotFound when no matching admin exists.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, password_hash, is_active, created_at FROM admins WHERE email = ? AND is_active = 1 LIMIT 1",
		email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.IsActive, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID fetches an active admin by primary key.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (*Admin, error) {
	var a Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, password_hash, is_active, created_at FROM admins WHERE id = ? AND is_active = 1 LIMIT 1",
		id).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.IsActive, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
