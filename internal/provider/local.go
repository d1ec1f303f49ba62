package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/iliyamo/user-admin-portal/internal/repository"
	"github.com/iliyamo/user-admin-portal/internal/utils"
)

// Local is the built-in credential backend: users and refresh tokens
// live in MySQL and identity tokens are HS256 JWTs signed with the
// portal's own secret. It exists for deployments without an external
// identity platform and sits behind the same CredentialProvider
// boundary as the REST client.
type Local struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo

	Secret         string
	AccessTTLMin   int
	RefreshTTLDays int
	BcryptCost     int

	mu      sync.Mutex
	token   string
	userID  string
	refresh string // raw refresh token of the current sign-in
}

func NewLocal(users *repository.UserRepo, tokens *repository.TokenRepo, secret string, accessTTLMin, refreshTTLDays, bcryptCost int) *Local {
	return &Local{
		Users:          users,
		Tokens:         tokens,
		Secret:         secret,
		AccessTTLMin:   accessTTLMin,
		RefreshTTLDays: refreshTTLDays,
		BcryptCost:     bcryptCost,
	}
}

// SignIn verifies the password against the stored bcrypt hash and
// issues a fresh identity token plus a hashed refresh token row.
// Disabled accounts are rejected the same way as wrong passwords.
func (l *Local) SignIn(ctx context.Context, email, password string) (string, error) {
	u, hash, err := l.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up user: %w", err)
	}
	if !u.IsActive || !utils.VerifyPassword(hash, password) {
		return "", ErrInvalidCredentials
	}
	return l.issue(ctx, u.ID, u.Role)
}

// SignUp creates the account and signs it in immediately. New users
// get the "user" role and an avatar seeded from their email, matching
// what the registration screen promises.
func (l *Local) SignUp(ctx context.Context, email, password, displayName string) (string, error) {
	photoURL := "https://api.dicebear.com/7.x/avatars/svg?seed=" + strings.ToLower(strings.TrimSpace(email))
	id, err := l.Users.Create(ctx, email, password, displayName, photoURL, "user", l.BcryptCost)
	if err != nil {
		return "", err
	}
	return l.issue(ctx, id, "user")
}

// SignOut revokes every refresh token of the signed-in user and
// forgets the current identity token.
func (l *Local) SignOut(ctx context.Context) error {
	l.mu.Lock()
	userID := l.userID
	l.token, l.userID, l.refresh = "", "", ""
	l.mu.Unlock()
	if userID == "" {
		return nil
	}
	return l.Tokens.RevokeAllForUser(ctx, userID)
}

func (l *Local) IDToken() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.token
}

func (l *Local) issue(ctx context.Context, userID, role string) (string, error) {
	access, err := utils.NewAccessToken(l.Secret, userID, role, l.AccessTTLMin)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := utils.NewRefreshToken(l.RefreshTTLDays)
	if err != nil {
		return "", fmt.Errorf("issue refresh token: %w", err)
	}
	if err := l.Tokens.StoreRefresh(ctx, userID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return "", fmt.Errorf("save refresh token: %w", err)
	}
	l.mu.Lock()
	l.token, l.userID, l.refresh = access.Token, userID, refresh.Raw
	l.mu.Unlock()
	return access.Token, nil
}
