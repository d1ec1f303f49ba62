package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-admin-portal/internal/directory"
	"github.com/iliyamo/user-admin-portal/internal/flow"
	"github.com/iliyamo/user-admin-portal/internal/model"
	"github.com/iliyamo/user-admin-portal/internal/provider"
	"github.com/iliyamo/user-admin-portal/internal/session"
	"github.com/iliyamo/user-admin-portal/internal/utils"
)

// In-memory collaborators so handler tests exercise the real flows
// without any network or database.

type stubProvider struct {
	token string
	err   error
}

func (p *stubProvider) SignIn(context.Context, string, string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.token, nil
}
func (p *stubProvider) SignUp(context.Context, string, string, string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.token, nil
}
func (p *stubProvider) SignOut(context.Context) error { return nil }
func (p *stubProvider) IDToken() string               { return p.token }

type stubDirectory struct {
	users     map[string]model.UserProfile
	updateErr error
}

func (d *stubDirectory) GetByID(_ context.Context, _, id string) (model.UserProfile, error) {
	u, ok := d.users[id]
	if !ok {
		return model.UserProfile{}, directory.ErrNotFound
	}
	return u, nil
}

func (d *stubDirectory) List(context.Context, string) ([]model.UserProfile, error) {
	out := make([]model.UserProfile, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u)
	}
	return out, nil
}

func (d *stubDirectory) Update(_ context.Context, _, id string, in directory.UpdateRecord) (model.UserProfile, error) {
	if d.updateErr != nil {
		return model.UserProfile{}, d.updateErr
	}
	u := d.users[id]
	u.DisplayName = in.DisplayName
	u.Role = in.Role
	u.PhotoURL = in.PhotoURL
	u.IsActive = in.IsActive
	d.users[id] = u
	return u, nil
}

func (d *stubDirectory) Create(_ context.Context, _, id string, u model.UserProfile) (model.UserProfile, error) {
	u.ID = id
	d.users[id] = u
	return u, nil
}

func (d *stubDirectory) Delete(_ context.Context, _, id string) error {
	delete(d.users, id)
	return nil
}

type stubTokens struct{ token string }

func (s *stubTokens) Load() (string, error) { return s.token, nil }
func (s *stubTokens) Save(t string) error   { s.token = t; return nil }
func (s *stubTokens) Clear() error          { s.token = ""; return nil }

func testFlows(p *stubProvider, d *stubDirectory) *flow.Flows {
	return flow.New(session.NewStore(), &stubTokens{}, p, d, nil)
}

func signedToken(t *testing.T, id, role string) string {
	t.Helper()
	at, err := utils.NewAccessToken("secret", id, role, 60)
	require.NoError(t, err)
	return at.Token
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestLoginHandlerSuccess(t *testing.T) {
	token := signedToken(t, "u1", "user")
	flows := testFlows(
		&stubProvider{token: token},
		&stubDirectory{users: map[string]model.UserProfile{
			"u1": {ID: "u1", Email: "a@b.com", DisplayName: "A", Role: "user", IsActive: true},
		}},
	)
	h := NewAuthHandler(flows)

	rec := doJSON(t, h.Login, http.MethodPost, "/v1/auth/login", `{"email":"a@b.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User model.UserProfile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, token, resp.User.Token)
}

func TestLoginHandlerMissingFields(t *testing.T) {
	h := NewAuthHandler(testFlows(&stubProvider{}, &stubDirectory{users: map[string]model.UserProfile{}}))

	rec := doJSON(t, h.Login, http.MethodPost, "/v1/auth/login", `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	flows := testFlows(
		&stubProvider{err: provider.ErrInvalidCredentials},
		&stubDirectory{users: map[string]model.UserProfile{}},
	)
	h := NewAuthHandler(flows)

	rec := doJSON(t, h.Login, http.MethodPost, "/v1/auth/login", `{"email":"a@b.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestSessionHandlerWithoutStoredToken(t *testing.T) {
	h := NewAuthHandler(testFlows(&stubProvider{}, &stubDirectory{users: map[string]model.UserProfile{}}))

	rec := doJSON(t, h.Session, http.MethodGet, "/v1/session", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "/login")
}

func TestSessionHandlerRestoresFromToken(t *testing.T) {
	token := signedToken(t, "u1", "user")
	dir := &stubDirectory{users: map[string]model.UserProfile{
		"u1": {ID: "u1", Email: "a@b.com", DisplayName: "A", Role: "user", IsActive: true},
	}}
	flows := flow.New(session.NewStore(), &stubTokens{token: token}, &stubProvider{}, dir, nil)
	h := NewAuthHandler(flows)

	rec := doJSON(t, h.Session, http.MethodGet, "/v1/session", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sessionResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
	assert.False(t, resp.Loading)
	assert.Empty(t, resp.Error)
}

func TestLogoutHandler(t *testing.T) {
	flows := testFlows(&stubProvider{}, &stubDirectory{users: map[string]model.UserProfile{}})
	flows.Session.SetUser(&model.UserProfile{ID: "u1", Token: "T1"})
	h := NewAuthHandler(flows)

	rec := doJSON(t, h.Logout, http.MethodPost, "/v1/auth/logout", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, flows.Session.User())
}
