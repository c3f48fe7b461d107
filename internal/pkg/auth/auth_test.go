package auth

import (
	"testing"
	"time"

	"github.com/mustso/portal/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "portal"})
	user := &models.User{ID: "2", Email: "sarah.johnson@company.com", Role: models.RoleAdmin}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "2", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: time.Minute})
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := svc.GenerateToken(&models.User{ID: "1"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecret(t *testing.T) {
	issuer := NewJWTService(JWTConfig{SecretKey: "a", AccessTokenExp: time.Hour})
	verifier := NewJWTService(JWTConfig{SecretKey: "b", AccessTokenExp: time.Hour})

	token, err := issuer.GenerateToken(&models.User{ID: "1"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractToken(t *testing.T) {
	tok, err := ExtractToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = ExtractToken("Token abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	for _, bad := range []string{"", "abc", "Bearer ", "Basic abc"} {
		_, err := ExtractToken(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPasswordCost("password123", FixtureCost)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "nope"))
}
