package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/pkg/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		Subject:   "1",
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func newSession(store tokenstore.Store) *Session {
	return New(store, WithClock(func() time.Time { return fixedNow }))
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	s := newSession(store)

	assert.False(t, s.IsAuthenticated(ctx))
	assert.Nil(t, s.CurrentUser())
	assert.Equal(t, State{}, s.Snapshot(ctx))

	user := &models.User{ID: "2", Email: "sarah.johnson@company.com", Role: models.RoleAdmin}
	require.NoError(t, s.Establish(ctx, "opaque-token", user))

	assert.True(t, s.IsAuthenticated(ctx))
	assert.True(t, s.IsAdmin())
	snap := s.Snapshot(ctx)
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, "opaque-token", snap.Token)

	persisted, ok, err := store.Get(ctx, DefaultTokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "opaque-token", persisted)

	require.NoError(t, s.Clear(ctx))
	assert.False(t, s.IsAuthenticated(ctx))
	assert.Nil(t, s.CurrentUser())
	assert.False(t, s.IsAdmin())
}

func TestCurrentUserIsCopy(t *testing.T) {
	ctx := context.Background()
	s := newSession(tokenstore.NewMemoryStore())

	user := &models.User{ID: "1", Email: "john.doe@company.com"}
	require.NoError(t, s.Establish(ctx, "t", user))

	user.Email = "mutated"
	got := s.CurrentUser()
	got.Email = "also mutated"
	assert.Equal(t, "john.doe@company.com", s.CurrentUser().Email)
}

func TestInvalidateDemotes(t *testing.T) {
	ctx := context.Background()
	s := newSession(tokenstore.NewMemoryStore())
	require.NoError(t, s.Establish(ctx, "t", &models.User{ID: "1"}))

	s.Invalidate(ctx)
	assert.False(t, s.IsAuthenticated(ctx))
	assert.Nil(t, s.CurrentUser())
}

func TestExpiredJWTDemotes(t *testing.T) {
	ctx := context.Background()
	s := newSession(tokenstore.NewMemoryStore())

	require.NoError(t, s.Establish(ctx, signedToken(t, fixedNow.Add(-time.Minute)), &models.User{ID: "1"}))
	assert.Equal(t, "", s.Token(ctx))
	assert.Nil(t, s.CurrentUser())
}

func TestLiveJWTKept(t *testing.T) {
	ctx := context.Background()
	s := newSession(tokenstore.NewMemoryStore())

	token := signedToken(t, fixedNow.Add(time.Hour))
	require.NoError(t, s.Establish(ctx, token, &models.User{ID: "1"}))
	assert.Equal(t, token, s.Token(ctx))
}

func TestTokenSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()

	first := newSession(store)
	require.NoError(t, first.Establish(ctx, "persisted", &models.User{ID: "1"}))

	second := New(store, WithTokenKey(DefaultTokenKey))
	assert.True(t, second.IsAuthenticated(ctx))
	// the user pointer is in-memory only
	assert.Nil(t, second.CurrentUser())
	assert.False(t, second.Snapshot(ctx).IsAuthenticated)
}

func TestCustomTokenKey(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()
	s := New(store, WithTokenKey("portal.token"))
	require.NoError(t, s.Establish(ctx, "x", nil))

	_, ok, err := store.Get(ctx, "portal.token")
	require.NoError(t, err)
	assert.True(t, ok)
}
