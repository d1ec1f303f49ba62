// Package session owns the client-local authentication state: who is
// currently signed in, whether an auth operation is in flight, and
// the last error surfaced to the user. One Store is created at
// process start and injected into every flow; it is never global.
package session

import (
	"errors"
	"sync"

	"github.com/iliyamo/user-admin-portal/internal/model"
)

// ErrBusy is returned by Begin when another auth operation is still
// in flight. Flows use it to reject duplicate submissions instead of
// letting two logins or updates interleave.
var ErrBusy = errors.New("another operation is in progress")

// State is a snapshot of the session at one point in time.
// Invariants: Loading is true only while a flow is in flight; Err is
// cleared whenever a new attempt starts or succeeds; User is nil iff
// no valid session exists.
type State struct {
	User    *model.UserProfile `json:"user"`
	Loading bool               `json:"loading"`
	Err     string             `json:"error,omitempty"`
}

// Store holds the mutable session state behind a mutex. The mutation
// methods mirror the state transitions a flow may perform: Begin at
// entry, then exactly one of SetUser, End or Fail on exit, or Reset
// to drop the session entirely.
type Store struct {
	mu      sync.Mutex
	user    *model.UserProfile
	loading bool
	err     string
}

// NewStore returns an empty, signed-out session store.
func NewStore() *Store { return &Store{} }

// Begin marks an operation as in flight and clears any previous
// error. It fails with ErrBusy while another operation is running.
func (s *Store) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrBusy
	}
	s.loading = true
	s.err = ""
	return nil
}

// SetUser installs the authenticated profile and ends the in-flight
// operation successfully.
func (s *Store) SetUser(u *model.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.loading = false
	s.err = ""
}

// End finishes the in-flight operation successfully without touching
// the current user (used by list/update flows).
func (s *Store) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = ""
}

// Fail finishes the in-flight operation with a human-readable error.
func (s *Store) Fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = msg
}

// Reset drops the session entirely: no user, not loading, no error.
// Called on logout and on restore failure.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.loading = false
	s.err = ""
}

// User returns a copy of the current profile, or nil when signed out.
func (s *Store) User() *model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the identity token of the current session, or the
// empty string when no session exists.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.Token
}

// Snapshot returns the current state for rendering.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{Loading: s.loading, Err: s.err}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}
