package flow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/user-admin-portal/internal/model"
	"github.com/iliyamo/user-admin-portal/internal/utils"
)

// Login exchanges the credentials for an identity token, loads the
// matching profile from the directory, and installs both in the
// session. The durable token is written only on success; on any
// failure a single human-readable message lands in the session error
// and the loading flag is released.
func (f *Flows) Login(ctx context.Context, email, password string) (model.UserProfile, error) {
	if err := f.Session.Begin(); err != nil {
		return model.UserProfile{}, err
	}

	token, err := f.Provider.SignIn(ctx, email, password)
	if err != nil {
		f.Session.Fail(err.Error())
		return model.UserProfile{}, err
	}
	profile, err := f.fetchProfile(ctx, token)
	if err != nil {
		f.Session.Fail(err.Error())
		return model.UserProfile{}, err
	}
	if err := f.Tokens.Save(token); err != nil {
		err = fmt.Errorf("could not persist session: %w", err)
		f.Session.Fail(err.Error())
		return model.UserProfile{}, err
	}
	f.Session.SetUser(&profile)
	return profile, nil
}

// Register creates the account with the credential provider, writes
// the initial directory record, and signs the new user in. New
// accounts default to the "user" role, an active flag, and a
// generated avatar.
func (f *Flows) Register(ctx context.Context, email, password, displayName string) (model.UserProfile, error) {
	if err := f.Session.Begin(); err != nil {
		return model.UserProfile{}, err
	}

	token, err := f.Provider.SignUp(ctx, email, password, displayName)
	if err != nil {
		f.Session.Fail(err.Error())
		return model.UserProfile{}, err
	}
	id, err := utils.TokenSubject(token)
	if err != nil {
		err = fmt.Errorf("provider issued an unusable token: %w", err)
		f.Session.Fail(err.Error())
		return model.UserProfile{}, err
	}

	now := time.Now().UTC()
	record := model.UserProfile{
		ID:          id,
		Email:       strings.ToLower(strings.TrimSpace(email)),
		DisplayName: displayName,
		PhotoURL:    "https://api.dicebear.com/7.x/avatars/svg?seed=" + strings.ToLower(strings.TrimSpace(email)),
		Role:        "user",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	profile, err := f.Directory.Create(ctx, token, id, record)
	if err != nil {
		err = fmt.Errorf("could not create user record: %w", err)
		f.Session.Fail(err.Error())
		return model.UserProfile{}, err
	}
	if err := f.Tokens.Save(token); err != nil {
		err = fmt.Errorf("could not persist session: %w", err)
		f.Session.Fail(err.Error())
		return model.UserProfile{}, err
	}
	profile.Token = token
	f.Session.SetUser(&profile)
	return profile, nil
}

// Logout revokes the credential with the provider (best effort),
// removes the durable token and resets the session. The session is
// gone afterwards even when the provider call fails.
func (f *Flows) Logout(ctx context.Context) error {
	signOutErr := f.Provider.SignOut(ctx)
	clearErr := f.Tokens.Clear()
	f.Session.Reset()
	if signOutErr != nil {
		return signOutErr
	}
	return clearErr
}

// fetchProfile resolves the token's subject to a directory record
// and attaches the token to it.
func (f *Flows) fetchProfile(ctx context.Context, token string) (model.UserProfile, error) {
	id, err := utils.TokenSubject(token)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("provider issued an unusable token: %w", err)
	}
	profile, err := f.Directory.GetByID(ctx, token, id)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("could not load user profile: %w", err)
	}
	profile.Token = token
	return profile, nil
}
