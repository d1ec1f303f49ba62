package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/user-admin-portal/internal/directory"
	"github.com/iliyamo/user-admin-portal/internal/model"
)

// List fetches every directory record for the dashboard. A missing
// session token short-circuits to ErrNoSession without touching the
// directory. Failures are non-fatal for the caller: the error is
// recorded in the session state and whatever list the caller already
// displays stays valid.
func (f *Flows) List(ctx context.Context) ([]model.UserProfile, error) {
	token := f.Session.Token()
	if token == "" {
		return nil, ErrNoSession
	}
	if err := f.Session.Begin(); err != nil {
		return nil, err
	}
	users, err := f.Directory.List(ctx, token)
	if err != nil {
		err = fmt.Errorf("could not load users: %w", err)
		f.Session.Fail(err.Error())
		return nil, err
	}
	f.Session.End()
	return users, nil
}

// Update validates and submits a dashboard edit, then re-fetches the
// collection so the displayed list matches the directory
// (read-your-writes by re-fetch, never by local patching). It
// returns the updated record and the resynchronized list. A
// success:false answer from the directory is treated exactly like a
// failed call: error notification, list untouched.
func (f *Flows) Update(ctx context.Context, id string, in model.UpdateUserInput) (model.UserProfile, []model.UserProfile, error) {
	if strings.TrimSpace(in.DisplayName) == "" || strings.TrimSpace(in.Role) == "" {
		return model.UserProfile{}, nil, ErrValidation
	}
	token := f.Session.Token()
	if token == "" {
		return model.UserProfile{}, nil, ErrNoSession
	}

	record := directory.UpdateRecord{
		DisplayName: in.DisplayName,
		Role:        in.Role,
		PhotoURL:    "",
		IsActive:    true,
	}
	if in.PhotoURL != nil {
		record.PhotoURL = *in.PhotoURL
	}
	if in.IsActive != nil {
		record.IsActive = *in.IsActive
	}

	if err := f.Session.Begin(); err != nil {
		return model.UserProfile{}, nil, err
	}
	updated, err := f.Directory.Update(ctx, token, id, record)
	if err != nil {
		err = fmt.Errorf("could not update user: %w", err)
		f.Session.Fail(err.Error())
		f.Notifier.Error(ctx, err.Error())
		return model.UserProfile{}, nil, err
	}
	f.Session.End()
	f.Notifier.Success(ctx, "user "+updated.DisplayName+" updated")

	// The edited record is also the signed-in user when admins edit
	// themselves; keep the session profile in step.
	if current := f.Session.User(); current != nil && current.ID == updated.ID {
		refreshed := updated
		refreshed.Token = current.Token
		f.Session.SetUser(&refreshed)
	}

	users, listErr := f.List(ctx)
	if listErr != nil {
		// The write went through; only the resync failed. The caller
		// keeps its previous list and the session carries the error.
		return updated, nil, nil
	}
	return updated, users, nil
}
