package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mustso/portal/internal/app/models"
)

// LeaderInput carries the writable leader fields.
// A nil Achievements leaves the stored list unchanged on update.
type LeaderInput struct {
	Name         string
	Position     string
	Department   string
	Description  string
	Email        string
	Phone        string
	Location     string
	JoinDate     string
	TeamSize     int
	Image        *string
	IsCabinet    bool
	College      string
	Achievements []string
}

type leaderRecord struct {
	leader    models.Leader
	collegeID models.ID
}

// LeaderRepository stores leader profiles. Colleges are resolved through
// the college repository when leaders are read.
type LeaderRepository struct {
	mu       sync.RWMutex
	leaders  map[models.ID]*leaderRecord
	colleges *CollegeRepository
	ids      sequence
}

// NewLeaderRepository creates a new LeaderRepository
func NewLeaderRepository(colleges *CollegeRepository) *LeaderRepository {
	return &LeaderRepository{
		leaders:  make(map[models.ID]*leaderRecord),
		colleges: colleges,
	}
}

// CreateLeader stores a new leader
func (r *LeaderRepository) CreateLeader(ctx context.Context, in LeaderInput) models.Leader {
	r.mu.Lock()
	rec := &leaderRecord{leader: models.Leader{ID: r.ids.next(), Achievements: models.Achievements{}}}
	r.apply(ctx, rec, in)
	r.leaders[rec.leader.ID] = rec
	r.mu.Unlock()

	return r.render(ctx, rec.leader, rec.collegeID)
}

// UpdateLeader replaces the leader fields with in
func (r *LeaderRepository) UpdateLeader(ctx context.Context, id models.ID, in LeaderInput) (models.Leader, error) {
	r.mu.Lock()
	rec, ok := r.leaders[id]
	if !ok {
		r.mu.Unlock()
		return models.Leader{}, ErrNotFound
	}
	r.apply(ctx, rec, in)
	leader, collegeID := rec.leader, rec.collegeID
	r.mu.Unlock()

	return r.render(ctx, leader, collegeID), nil
}

func (r *LeaderRepository) apply(ctx context.Context, rec *leaderRecord, in LeaderInput) {
	l := &rec.leader
	l.Name = in.Name
	l.Position = in.Position
	l.Department = in.Department
	l.Description = in.Description
	l.Email = in.Email
	l.Phone = in.Phone
	l.Location = in.Location
	l.JoinDate = in.JoinDate
	l.TeamSize = in.TeamSize
	l.IsCabinet = in.IsCabinet
	if in.Image != nil {
		l.Image = *in.Image
	}
	if in.Achievements != nil {
		l.Achievements = append(models.Achievements{}, in.Achievements...)
	}
	rec.collegeID = ""
	if in.College != "" {
		if c, ok := r.colleges.FindCollege(ctx, in.College); ok {
			rec.collegeID = c.ID
		}
	}
}

// DeleteLeader removes a leader
func (r *LeaderRepository) DeleteLeader(_ context.Context, id models.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leaders[id]; !ok {
		return ErrNotFound
	}
	delete(r.leaders, id)
	return nil
}

// GetLeader retrieves a leader by ID
func (r *LeaderRepository) GetLeader(ctx context.Context, id models.ID) (models.Leader, error) {
	r.mu.RLock()
	rec, ok := r.leaders[id]
	if !ok {
		r.mu.RUnlock()
		return models.Leader{}, ErrNotFound
	}
	leader, collegeID := rec.leader, rec.collegeID
	r.mu.RUnlock()

	return r.render(ctx, leader, collegeID), nil
}

// ListLeaders returns leaders matching filter ordered by name
func (r *LeaderRepository) ListLeaders(ctx context.Context, filter models.LeaderFilter) []models.Leader {
	type match struct {
		leader    models.Leader
		collegeID models.ID
	}

	r.mu.RLock()
	matched := make([]match, 0, len(r.leaders))
	for _, rec := range r.leaders {
		l := rec.leader
		if !filterValue(filter.Department, l.Department) || !filterValue(filter.Position, l.Position) {
			continue
		}
		if filter.College != "" && filter.College != "all" && filter.College != rec.collegeID.String() {
			continue
		}
		if filter.IsCabinet != nil && l.IsCabinet != *filter.IsCabinet {
			continue
		}
		if !matchesSearch(filter.Search, l.Name, l.Position, l.Department, l.Description) {
			continue
		}
		matched = append(matched, match{leader: l, collegeID: rec.collegeID})
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].leader.Name != matched[j].leader.Name {
			return matched[i].leader.Name < matched[j].leader.Name
		}
		return compareIDs(matched[i].leader.ID, matched[j].leader.ID) < 0
	})

	out := make([]models.Leader, 0, len(matched))
	for _, m := range matched {
		out = append(out, r.render(ctx, m.leader, m.collegeID))
	}
	return out
}

// GetStats summarises the leader directory
func (r *LeaderRepository) GetStats(_ context.Context) models.LeaderStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := models.LeaderStats{DepartmentCounts: make(map[string]int), Departments: []string{}}
	for _, rec := range r.leaders {
		stats.TotalLeaders++
		stats.TotalTeamSize += rec.leader.TeamSize
		if _, seen := stats.DepartmentCounts[rec.leader.Department]; !seen {
			stats.Departments = append(stats.Departments, rec.leader.Department)
		}
		stats.DepartmentCounts[rec.leader.Department]++
	}
	sort.Strings(stats.Departments)
	return stats
}

func (r *LeaderRepository) render(ctx context.Context, l models.Leader, collegeID models.ID) models.Leader {
	l.Achievements = append(models.Achievements{}, l.Achievements...)
	l.College = nil
	if collegeID != "" {
		if c, err := r.colleges.GetCollege(ctx, collegeID); err == nil {
			l.College = &c
		}
	}
	return l
}

// filterValue matches exact values; empty and "all" match everything
func filterValue(want, have string) bool {
	return want == "" || strings.EqualFold(want, "all") || want == have
}
