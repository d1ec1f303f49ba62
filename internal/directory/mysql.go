package directory

import (
	"context"
	"errors"

	"github.com/iliyamo/user-admin-portal/internal/model"
	"github.com/iliyamo/user-admin-portal/internal/repository"
)

// MySQL serves directory reads and writes from the portal's own
// database. Token verification happens in the HTTP middleware, so
// the token parameter is unused here beyond the interface contract.
type MySQL struct {
	Users *repository.UserRepo
}

func NewMySQL(users *repository.UserRepo) *MySQL { return &MySQL{Users: users} }

func (m *MySQL) GetByID(ctx context.Context, _ string, id string) (model.UserProfile, error) {
	u, err := m.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.UserProfile{}, ErrNotFound
	}
	return u, err
}

func (m *MySQL) List(ctx context.Context, _ string) ([]model.UserProfile, error) {
	return m.Users.List(ctx)
}

func (m *MySQL) Update(ctx context.Context, _ string, id string, in UpdateRecord) (model.UserProfile, error) {
	u, err := m.Users.Update(ctx, id, in.DisplayName, in.PhotoURL, in.Role, in.IsActive)
	if errors.Is(err, repository.ErrNotFound) {
		return model.UserProfile{}, ErrNotFound
	}
	return u, err
}

// Create is only reached through registration, which goes through the
// credential backend first; the row already exists at that point, so
// this just reads it back.
func (m *MySQL) Create(ctx context.Context, _ string, id string, _ model.UserProfile) (model.UserProfile, error) {
	u, err := m.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.UserProfile{}, ErrNotFound
	}
	return u, err
}

func (m *MySQL) Delete(ctx context.Context, _ string, id string) error {
	err := m.Users.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
