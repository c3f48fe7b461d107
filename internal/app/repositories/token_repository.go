package repositories

import (
	"context"
	"sync"
	"time"
)

// TokenRepository tracks revoked access tokens until they expire
type TokenRepository struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     Clock
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(clock Clock) *TokenRepository {
	return &TokenRepository{
		revoked: make(map[string]time.Time),
		now:     clock,
	}
}

// RevokeToken marks the token with the given id as revoked
func (r *TokenRepository) RevokeToken(_ context.Context, tokenID string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, exp := range r.revoked {
		if exp.Before(now) {
			delete(r.revoked, id)
		}
	}
	r.revoked[tokenID] = expiresAt
}

// IsRevoked reports whether the token id has been revoked
func (r *TokenRepository) IsRevoked(_ context.Context, tokenID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.revoked[tokenID]
	return ok
}
