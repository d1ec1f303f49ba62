package flow

import "context"

// Restore rebuilds the in-memory session from the durable token at
// application start. Behavior:
//
//   - no stored token: ErrNoSession, zero network calls;
//   - session already populated: no-op (safe to call repeatedly);
//   - token present: re-fetch the profile; on success the session is
//     repopulated, on any failure the durable token is deleted, the
//     session reset, and ErrNoSession returned so the caller routes
//     to the login screen.
func (f *Flows) Restore(ctx context.Context) error {
	token, err := f.Tokens.Load()
	if err != nil || token == "" {
		return ErrNoSession
	}
	if f.Session.User() != nil {
		return nil
	}
	if err := f.Session.Begin(); err != nil {
		return err
	}
	profile, err := f.fetchProfile(ctx, token)
	if err != nil {
		// Expired or invalid token, or the directory is unreachable:
		// either way the stored credential is no longer trusted.
		_ = f.Tokens.Clear()
		f.Session.Reset()
		return ErrNoSession
	}
	f.Session.SetUser(&profile)
	return nil
}
