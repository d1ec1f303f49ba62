package flow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-admin-portal/internal/model"
)

func TestRestoreWithoutStoredToken(t *testing.T) {
	dir := newFakeDirectory()
	flows, _, _ := newTestFlows(&fakeProvider{}, dir)

	err := flows.Restore(context.Background())
	require.ErrorIs(t, err, ErrNoSession)

	// Routed to login without any network calls.
	assert.Zero(t, dir.networkCalls())
	assert.Nil(t, flows.Session.User())
}

func TestRestoreRepopulatesSession(t *testing.T) {
	token := testToken("u1", "admin")
	dir := newFakeDirectory(model.UserProfile{ID: "u1", Email: "a@b.com", DisplayName: "A", Role: "admin", IsActive: true})
	flows, tokens, _ := newTestFlows(&fakeProvider{}, dir)
	require.NoError(t, tokens.Save(token))

	require.NoError(t, flows.Restore(context.Background()))

	st := flows.Session.Snapshot()
	require.NotNil(t, st.User)
	assert.Equal(t, "u1", st.User.ID)
	assert.Equal(t, token, st.User.Token)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Err)
}

func TestRestoreIsIdempotent(t *testing.T) {
	token := testToken("u1", "user")
	dir := newFakeDirectory(model.UserProfile{ID: "u1", Email: "a@b.com", DisplayName: "A", Role: "user", IsActive: true})
	flows, tokens, _ := newTestFlows(&fakeProvider{}, dir)
	require.NoError(t, tokens.Save(token))

	require.NoError(t, flows.Restore(context.Background()))
	first := flows.Session.Snapshot()
	calls := dir.networkCalls()

	// The second invocation is a no-op: same state, no new traffic.
	require.NoError(t, flows.Restore(context.Background()))
	assert.Equal(t, first, flows.Session.Snapshot())
	assert.Equal(t, calls, dir.networkCalls())
}

func TestRestoreFailureClearsDurableToken(t *testing.T) {
	token := testToken("u1", "user")
	dir := newFakeDirectory() // profile gone: token no longer valid
	dir.getErr = errBoom
	flows, tokens, _ := newTestFlows(&fakeProvider{}, dir)
	require.NoError(t, tokens.Save(token))

	err := flows.Restore(context.Background())
	require.ErrorIs(t, err, ErrNoSession)

	stored, _ := tokens.Load()
	assert.Empty(t, stored, "failed restore must delete the stored token")

	st := flows.Session.Snapshot()
	assert.Nil(t, st.User)
	assert.False(t, st.Loading)
}

func TestRestoreWithUnparsableToken(t *testing.T) {
	dir := newFakeDirectory()
	flows, tokens, _ := newTestFlows(&fakeProvider{}, dir)
	require.NoError(t, tokens.Save("not-a-jwt"))

	err := flows.Restore(context.Background())
	require.ErrorIs(t, err, ErrNoSession)

	stored, _ := tokens.Load()
	assert.Empty(t, stored)
	assert.Zero(t, dir.networkCalls())
}
