// Package provider abstracts the credential provider: the external
// party that validates email/password pairs and issues identity
// tokens. The portal never checks passwords itself unless the
// built-in backend is selected.
package provider

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned when the provider rejects the
// email/password pair (or the account is disabled). Handlers
// translate it into HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialProvider issues and revokes identity tokens. IDToken
// returns the token of the most recent successful sign-in, or the
// empty string after SignOut; it never performs network I/O.
type CredentialProvider interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignUp(ctx context.Context, email, password, displayName string) (string, error)
	SignOut(ctx context.Context) error
	IDToken() string
}
