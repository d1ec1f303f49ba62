package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/user-admin-portal/internal/model"
	"github.com/iliyamo/user-admin-portal/internal/utils"
)

// UserRepo mirrors the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,display_name,photo_url,role,is_active,created_at,updated_at"

// Create inserts a user and returns its generated id. Passwords are
// hashed with bcrypt before they touch the database.
func (r *UserRepo) Create(ctx context.Context, email, password, displayName, photoURL, role string, cost int) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, display_name, photo_url, role, is_active) VALUES (?,?,?,?,?,?,1)",
		id, email, hash, displayName, photoURL, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return "", ErrEmailExists
		}
		return "", err
	}
	return id, nil
}

// GetByEmail fetches a user by normalized email, password hash included.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.UserProfile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.UserProfile, error) {
	u, _, err := r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	return u, err
}

// List returns every user record ordered by creation time.
func (r *UserRepo) List(ctx context.Context) ([]model.UserProfile, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.UserProfile
	for rows.Next() {
		var (
			u    model.UserProfile
			hash string
		)
		if err := rows.Scan(&u.ID, &u.Email, &hash, &u.DisplayName, &u.PhotoURL,
			&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update rewrites the editable profile columns and returns the fresh
// record. Email and id are immutable and never part of the SET list.
func (r *UserRepo) Update(ctx context.Context, id, displayName, photoURL, role string, isActive bool) (model.UserProfile, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET display_name=?, photo_url=?, role=?, is_active=?, updated_at=NOW() WHERE id=?",
		displayName, photoURL, role, isActive, id)
	if err != nil {
		return model.UserProfile{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero rows can also mean "nothing changed"; confirm existence.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return model.UserProfile{}, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user row.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(row *sql.Row) (model.UserProfile, string, error) {
	var (
		u    model.UserProfile
		hash string
	)
	err := row.Scan(&u.ID, &u.Email, &hash, &u.DisplayName, &u.PhotoURL,
		&u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.UserProfile{}, "", ErrNotFound
	}
	return u, hash, err
}
