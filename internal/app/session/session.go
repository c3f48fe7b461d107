// Package session holds the authenticated user and the persisted token.
// A Session is created once at startup and passed to whatever needs it.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/pkg/tokenstore"
	"github.com/rs/zerolog"
)

// DefaultTokenKey is the well-known key the token is persisted under
const DefaultTokenKey = "authToken"

// State is a snapshot of the session
type State struct {
	IsAuthenticated bool
	User            *models.User
	Token           string
}

// Session tracks the current user. The token lives in the store so it
// survives a restart; the user lives in memory only.
type Session struct {
	store    tokenstore.Store
	tokenKey string
	logger   zerolog.Logger
	now      func() time.Time

	mu   sync.RWMutex
	user *models.User
}

// Option configures a Session
type Option func(*Session)

// WithTokenKey overrides DefaultTokenKey
func WithTokenKey(key string) Option {
	return func(s *Session) {
		if key != "" {
			s.tokenKey = key
		}
	}
}

// WithLogger sets the session logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithClock overrides time.Now for token expiry checks
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates an anonymous session backed by store
func New(store tokenstore.Store, opts ...Option) *Session {
	s := &Session{
		store:    store,
		tokenKey: DefaultTokenKey,
		logger:   zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Establish moves the session to authenticated
func (s *Session) Establish(ctx context.Context, token string, user *models.User) error {
	if err := s.store.Set(ctx, s.tokenKey, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = cloneUser(user)
	s.mu.Unlock()

	s.logger.Info().Str("user", userEmail(user)).Msg("Session authenticated")
	return nil
}

// SetUser replaces the in-memory user without touching the token
func (s *Session) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = cloneUser(user)
}

// Clear moves the session to anonymous, removing both token and user
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	hadUser := s.user != nil
	s.user = nil
	s.mu.Unlock()

	err := s.store.Delete(ctx, s.tokenKey)
	if hadUser {
		s.logger.Info().Msg("Session cleared")
	}
	return err
}

// Invalidate is called when the gateway reports an authorization failure
func (s *Session) Invalidate(ctx context.Context) {
	s.logger.Warn().Msg("Gateway rejected credentials, demoting session to anonymous")
	if err := s.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Failed to clear persisted token")
	}
}

// Token returns the persisted token, or "" when anonymous. A JWT whose
// exp claim has passed demotes the session instead of being returned.
func (s *Session) Token(ctx context.Context) string {
	token, ok, err := s.store.Get(ctx, s.tokenKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read persisted token")
		return ""
	}
	if !ok || token == "" {
		return ""
	}

	if expired(token, s.now()) {
		s.logger.Info().Msg("Persisted token expired")
		s.Invalidate(ctx)
		return ""
	}
	return token
}

// CurrentUser returns a copy of the current user, or nil
func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

// IsAuthenticated reports whether a usable token is persisted
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// IsAdmin reports whether the current user has the admin role
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}

// Snapshot returns the current state. It is authenticated only when both
// a token and a user are present.
func (s *Session) Snapshot(ctx context.Context) State {
	token := s.Token(ctx)
	user := s.CurrentUser()
	if token == "" || user == nil {
		return State{}
	}
	return State{IsAuthenticated: true, User: user, Token: token}
}

// expired reports whether token is a JWT with a past exp claim.
// Opaque tokens never expire client-side.
func expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func userEmail(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.Email
}
