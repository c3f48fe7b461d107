package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mustso/portal/internal/app/models"
)

// userRecord is a stored account
type userRecord struct {
	user          models.User
	passwordHash  string
	active        bool
	activities    []models.Activity
	notifications []models.Notification
}

// UserRepository stores accounts with their activity feed and notifications
type UserRepository struct {
	mu      sync.RWMutex
	users   map[models.ID]*userRecord
	byEmail map[string]models.ID
	ids     sequence
	feed    sequence
	now     Clock
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(clock Clock) *UserRepository {
	return &UserRepository{
		users:   make(map[models.ID]*userRecord),
		byEmail: make(map[string]models.ID),
		now:     clock,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser stores a new account and returns it with its assigned id
func (r *UserRepository) CreateUser(_ context.Context, user models.User, passwordHash string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return models.User{}, ErrEmailAlreadyExists
	}
	if user.Username != "" {
		for _, rec := range r.users {
			if strings.EqualFold(rec.user.Username, user.Username) {
				return models.User{}, ErrUsernameTaken
			}
		}
	}

	if user.ID == "" {
		user.ID = r.ids.next()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.JoinDate == "" {
		user.JoinDate = r.now().UTC().Format("2006-01-02")
	}

	r.users[user.ID] = &userRecord{user: user, passwordHash: passwordHash, active: true}
	r.byEmail[key] = user.ID
	return user, nil
}

// GetUserByEmail returns the account and its password hash
func (r *UserRepository) GetUserByEmail(_ context.Context, email string) (models.User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return models.User{}, "", ErrNotFound
	}
	rec := r.users[id]
	return rec.user, rec.passwordHash, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(_ context.Context, id models.ID) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return rec.user, nil
}

// PasswordHash returns the stored hash for the account
func (r *UserRepository) PasswordHash(_ context.Context, id models.ID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[id]
	if !ok {
		return "", ErrNotFound
	}
	return rec.passwordHash, nil
}

// UpdateUser applies mutate to the stored user and returns the result.
// Changing the email to one owned by another account fails.
func (r *UserRepository) UpdateUser(_ context.Context, id models.ID, mutate func(*models.User)) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}

	updated := rec.user
	mutate(&updated)
	updated.ID = rec.user.ID

	oldKey, newKey := emailKey(rec.user.Email), emailKey(updated.Email)
	if oldKey != newKey {
		if owner, taken := r.byEmail[newKey]; taken && owner != id {
			return models.User{}, ErrEmailAlreadyExists
		}
		delete(r.byEmail, oldKey)
		r.byEmail[newKey] = id
	}

	rec.user = updated
	return updated, nil
}

// SetPasswordHash replaces the stored password hash
func (r *UserRepository) SetPasswordHash(_ context.Context, id models.ID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	rec.passwordHash = hash
	return nil
}

// AddActivity prepends an entry to the user's activity feed
func (r *UserRepository) AddActivity(_ context.Context, id models.ID, kind, title string) (models.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[id]
	if !ok {
		return models.Activity{}, ErrNotFound
	}
	activity := models.Activity{
		ID:        r.feed.next(),
		Type:      kind,
		Title:     title,
		Timestamp: formatTime(r.now()),
	}
	rec.activities = append([]models.Activity{activity}, rec.activities...)
	return activity, nil
}

// GetActivities returns up to limit of the most recent activities
func (r *UserRepository) GetActivities(_ context.Context, id models.ID, limit int) ([]models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	items := rec.activities
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return append([]models.Activity{}, items...), nil
}

// AddNotification prepends an unread notification for the user
func (r *UserRepository) AddNotification(_ context.Context, id models.ID, title string) (models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[id]
	if !ok {
		return models.Notification{}, ErrNotFound
	}
	n := models.Notification{
		ID:        r.feed.next(),
		Title:     title,
		Timestamp: formatTime(r.now()),
	}
	rec.notifications = append([]models.Notification{n}, rec.notifications...)
	return n, nil
}

// GetNotifications returns up to limit of the most recent notifications
func (r *UserRepository) GetNotifications(_ context.Context, id models.ID, limit int) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	items := rec.notifications
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return append([]models.Notification{}, items...), nil
}

// MarkNotificationRead flags one of the user's notifications as read
func (r *UserRepository) MarkNotificationRead(_ context.Context, userID, notificationID models.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	for i := range rec.notifications {
		if rec.notifications[i].ID == notificationID {
			rec.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

// ListUsers returns all users ordered by id
func (r *UserRepository) ListUsers(_ context.Context) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.users))
	for _, rec := range r.users {
		out = append(out, rec.user)
	}
	sort.Slice(out, func(i, j int) bool { return compareIDs(out[i].ID, out[j].ID) < 0 })
	return out
}

// GetStats counts users, active users and users who joined this month
func (r *UserRepository) GetStats(_ context.Context) models.UserStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now().UTC()
	var stats models.UserStats
	for _, rec := range r.users {
		stats.TotalUsers++
		if rec.active {
			stats.ActiveUsers++
		}
		if joined, ok := models.ParseTimestamp(rec.user.JoinDate); ok &&
			joined.Year() == now.Year() && joined.Month() == now.Month() {
			stats.NewUsersThisMonth++
		}
	}
	return stats
}

// SeedFeed replaces the user's activities and notifications, newest first
func (r *UserRepository) SeedFeed(_ context.Context, id models.ID, activities []models.Activity, notifications []models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	rec.activities = rec.activities[:0:0]
	for _, a := range activities {
		a.ID = r.feed.next()
		rec.activities = append(rec.activities, a)
	}
	rec.notifications = rec.notifications[:0:0]
	for _, n := range notifications {
		n.ID = r.feed.next()
		rec.notifications = append(rec.notifications, n)
	}
	return nil
}
