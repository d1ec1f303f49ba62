// Package flow orchestrates the portal's state transitions: signing
// in, restoring a session after a restart, and keeping the displayed
// user list consistent with the directory after edits. Each flow
// drives the session store through Begin/End/Fail so the loading and
// error invariants hold on every exit path, success or failure.
package flow

import (
	"errors"

	"github.com/iliyamo/user-admin-portal/internal/directory"
	"github.com/iliyamo/user-admin-portal/internal/notify"
	"github.com/iliyamo/user-admin-portal/internal/provider"
	"github.com/iliyamo/user-admin-portal/internal/session"
)

// ErrNoSession is returned when an operation needs a valid session
// and none exists. Callers route to the login screen instead of
// calling the directory.
var ErrNoSession = errors.New("no active session")

// ErrValidation is returned by Update when required fields are
// missing. No network call has been made when it is returned.
var ErrValidation = errors.New("displayName and role are required")

// Flows bundles the collaborators every flow needs. All fields are
// plain constructor parameters; there is no container or global
// state.
type Flows struct {
	Session   *session.Store
	Tokens    session.TokenStore
	Provider  provider.CredentialProvider
	Directory directory.Directory
	Notifier  notify.Notifier
}

func New(s *session.Store, t session.TokenStore, p provider.CredentialProvider, d directory.Directory, n notify.Notifier) *Flows {
	if n == nil {
		n = notify.Log{}
	}
	return &Flows{Session: s, Tokens: t, Provider: p, Directory: d, Notifier: n}
}
