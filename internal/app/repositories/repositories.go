// Package repositories is the in-memory record store behind the mock gateway.
package repositories

import (
	"errors"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mustso/portal/internal/app/models"
)

// Shared repository errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailAlreadyExists = errors.New("a user with this email already exists")
	ErrUsernameTaken      = errors.New("a user with this username already exists")
)

// Clock returns the current time
type Clock func() time.Time

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	AnnouncementRepository *AnnouncementRepository
	LeaderRepository       *LeaderRepository
	CollegeRepository      *CollegeRepository
}

// NewRepositories initializes all repositories
func NewRepositories(clock Clock) *Repositories {
	if clock == nil {
		clock = time.Now
	}
	colleges := NewCollegeRepository()
	return &Repositories{
		UserRepository:         NewUserRepository(clock),
		TokenRepository:        NewTokenRepository(clock),
		AnnouncementRepository: NewAnnouncementRepository(clock),
		LeaderRepository:       NewLeaderRepository(colleges),
		CollegeRepository:      colleges,
	}
}

// sequence hands out increasing numeric identifiers
type sequence struct {
	n atomic.Int64
}

func (s *sequence) next() models.ID {
	return models.ID(strconv.FormatInt(s.n.Add(1), 10))
}

// matchesSearch reports whether query fuzzily matches any of fields,
// ignoring case. An empty query matches everything.
func matchesSearch(query string, fields ...string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	for _, f := range fields {
		if fuzzy.MatchFold(query, f) {
			return true
		}
	}
	return false
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// compareIDs orders numeric identifiers numerically
func compareIDs(a, b models.ID) int {
	ai, aerr := strconv.ParseInt(a.String(), 10, 64)
	bi, berr := strconv.ParseInt(b.String(), 10, 64)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a.String(), b.String())
}
