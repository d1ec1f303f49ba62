package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-admin-portal/internal/model"
	"github.com/iliyamo/user-admin-portal/internal/provider"
	"github.com/iliyamo/user-admin-portal/internal/session"
)

func newTestFlows(p *fakeProvider, d *fakeDirectory) (*Flows, *memTokens, *recordingNotifier) {
	tokens := &memTokens{}
	noter := &recordingNotifier{}
	return New(session.NewStore(), tokens, p, d, noter), tokens, noter
}

func TestLoginSuccess(t *testing.T) {
	token := testToken("u1", "user")
	prov := &fakeProvider{token: token}
	dir := newFakeDirectory(model.UserProfile{
		ID: "u1", Email: "a@b.com", DisplayName: "A", Role: "user", IsActive: true,
	})
	flows, tokens, _ := newTestFlows(prov, dir)

	u, err := flows.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "A", u.DisplayName)
	assert.Equal(t, "user", u.Role)
	assert.True(t, u.IsActive)
	assert.Equal(t, token, u.Token)

	st := flows.Session.Snapshot()
	require.NotNil(t, st.User)
	assert.Equal(t, u, *st.User)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)

	// Durable token equals the token the provider issued.
	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestLoginInvalidCredentials(t *testing.T) {
	prov := &fakeProvider{signInErr: provider.ErrInvalidCredentials}
	dir := newFakeDirectory()
	flows, tokens, _ := newTestFlows(prov, dir)

	_, err := flows.Login(context.Background(), "a@b.com", "wrong")
	require.ErrorIs(t, err, provider.ErrInvalidCredentials)

	st := flows.Session.Snapshot()
	assert.Nil(t, st.User)
	assert.False(t, st.Loading)
	assert.NotEmpty(t, st.Err)

	// No durable token on a failed login, and no directory traffic.
	stored, _ := tokens.Load()
	assert.Empty(t, stored)
	assert.Zero(t, dir.networkCalls())
}

func TestLoginProfileFetchFailure(t *testing.T) {
	prov := &fakeProvider{token: testToken("u1", "user")}
	dir := newFakeDirectory() // u1 missing
	flows, tokens, _ := newTestFlows(prov, dir)

	_, err := flows.Login(context.Background(), "a@b.com", "secret")
	require.Error(t, err)

	st := flows.Session.Snapshot()
	assert.Nil(t, st.User)
	assert.False(t, st.Loading)
	assert.NotEmpty(t, st.Err)

	stored, _ := tokens.Load()
	assert.Empty(t, stored, "failed login must not persist a token")
}

func TestLoginRejectsDuplicateSubmission(t *testing.T) {
	prov := &fakeProvider{token: testToken("u1", "user")}
	dir := newFakeDirectory()
	flows, _, _ := newTestFlows(prov, dir)

	// Simulate a login still in flight.
	require.NoError(t, flows.Session.Begin())

	_, err := flows.Login(context.Background(), "a@b.com", "secret")
	require.ErrorIs(t, err, session.ErrBusy)
	assert.Zero(t, prov.signInCalls)
}

func TestRegisterCreatesRecordWithDefaults(t *testing.T) {
	token := testToken("u9", "user")
	prov := &fakeProvider{token: token}
	dir := newFakeDirectory()
	flows, tokens, _ := newTestFlows(prov, dir)

	u, err := flows.Register(context.Background(), "New@B.com", "secret", "Newbie")
	require.NoError(t, err)

	assert.Equal(t, "u9", u.ID)
	assert.Equal(t, "new@b.com", u.Email)
	assert.Equal(t, "Newbie", u.DisplayName)
	assert.Equal(t, "user", u.Role)
	assert.True(t, u.IsActive)
	assert.Contains(t, u.PhotoURL, "dicebear")
	assert.Equal(t, token, u.Token)

	stored, _ := tokens.Load()
	assert.Equal(t, token, stored)
}

func TestLogoutClearsEverything(t *testing.T) {
	token := testToken("u1", "user")
	prov := &fakeProvider{token: token}
	dir := newFakeDirectory(model.UserProfile{ID: "u1", Email: "a@b.com", DisplayName: "A", Role: "user", IsActive: true})
	flows, tokens, _ := newTestFlows(prov, dir)

	_, err := flows.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)

	require.NoError(t, flows.Logout(context.Background()))

	assert.True(t, prov.signedOut)
	assert.Nil(t, flows.Session.User())
	stored, _ := tokens.Load()
	assert.Empty(t, stored)
}
