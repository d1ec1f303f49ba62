// Package directory abstracts the user directory: the remote source
// of truth for user profile records. Two backends exist, a REST
// client for the hosted platform and a MySQL implementation for
// self-contained deployments, plus a caching decorator shared by
// both.
package directory

import (
	"context"
	"errors"

	"github.com/iliyamo/user-admin-portal/internal/model"
)

// ErrNotFound is returned when no record exists for the given id.
var ErrNotFound = errors.New("user not found in directory")

// ErrRejected is returned when the directory answers with a
// success:false envelope instead of an error status. The flows treat
// it exactly like a transport failure.
var ErrRejected = errors.New("directory rejected the operation")

// UpdateRecord is the wire body of an update: the four editable
// fields, with defaults already applied by the caller.
type UpdateRecord struct {
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Role        string `json:"role"`
	IsActive    bool   `json:"isActive"`
}

// Directory is the full capability set over user records. Every call
// carries the identity token of the current session; backends that
// do their own verification (REST) check it, the MySQL backend
// relies on the portal's middleware having done so.
type Directory interface {
	GetByID(ctx context.Context, token, id string) (model.UserProfile, error)
	List(ctx context.Context, token string) ([]model.UserProfile, error)
	Create(ctx context.Context, token, id string, u model.UserProfile) (model.UserProfile, error)
	Update(ctx context.Context, token, id string, in UpdateRecord) (model.UserProfile, error)
	Delete(ctx context.Context, token, id string) error
}
