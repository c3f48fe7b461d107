package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/mustso/portal/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func boolPtr(b bool) *bool { return &b }

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(fixedClock)

	u, err := repo.CreateUser(ctx, models.User{Email: "John.Doe@company.com", FirstName: "John"}, "hash")
	require.NoError(t, err)
	assert.Equal(t, models.ID("1"), u.ID)
	assert.Equal(t, models.RoleUser, u.Role)

	_, err = repo.CreateUser(ctx, models.User{Email: "john.doe@company.com"}, "hash")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	found, hash, err := repo.GetUserByEmail(ctx, "JOHN.DOE@company.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "hash", hash)

	_, _, err = repo.GetUserByEmail(ctx, "nobody@company.com")
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := repo.UpdateUser(ctx, u.ID, func(u *models.User) { u.Bio = "hello" })
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Bio)

	_, err = repo.AddActivity(ctx, u.ID, models.ActivityLike, "first")
	require.NoError(t, err)
	_, err = repo.AddActivity(ctx, u.ID, models.ActivityComment, "second")
	require.NoError(t, err)
	acts, err := repo.GetActivities(ctx, u.ID, 1)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "second", acts[0].Title)

	n, err := repo.AddNotification(ctx, u.ID, "Welcome")
	require.NoError(t, err)
	require.NoError(t, repo.MarkNotificationRead(ctx, u.ID, n.ID))
	notes, err := repo.GetNotifications(ctx, u.ID, 0)
	require.NoError(t, err)
	assert.True(t, notes[0].Read)
	assert.ErrorIs(t, repo.MarkNotificationRead(ctx, u.ID, "999"), ErrNotFound)

	stats := repo.GetStats(ctx)
	assert.Equal(t, models.UserStats{TotalUsers: 1, ActiveUsers: 1, NewUsersThisMonth: 1}, stats)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(fixedClock)
	a, _ := repo.CreateUser(ctx, models.User{Email: "a@x.com"}, "")
	_, _ = repo.CreateUser(ctx, models.User{Email: "b@x.com"}, "")

	_, err := repo.UpdateUser(ctx, a.ID, func(u *models.User) { u.Email = "b@x.com" })
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func newAnnouncementRepo(t *testing.T) (*AnnouncementRepository, models.Category) {
	t.Helper()
	repo := NewAnnouncementRepository(fixedClock)
	academic := repo.CreateCategory(context.Background(), models.Category{Name: "Academic", IsActive: true})
	repo.CreateCategory(context.Background(), models.Category{Name: "Archived", IsActive: false})
	return repo, academic
}

func TestAnnouncementListOrderingAndFilters(t *testing.T) {
	ctx := context.Background()
	repo, academic := newAnnouncementRepo(t)
	author := models.NewPersonName("Sarah Johnson")

	older := repo.SeedAnnouncement(ctx, models.Announcement{
		Title: "Older", Description: "old news", Author: author, IsPublished: true,
		Timestamp: fixedNow.Add(-48 * time.Hour).Format(time.RFC3339),
	}, []string{"campus"}, nil)
	newer := repo.SeedAnnouncement(ctx, models.Announcement{
		Title: "Newer", Description: "fresh news", Author: author, IsPublished: true,
		Category: models.NewCategoryName("Academic"), Timestamp: fixedNow.Format(time.RFC3339),
	}, []string{"#Research"}, nil)
	pinned := repo.SeedAnnouncement(ctx, models.Announcement{
		Title: "Pinned", Description: "important", Author: author, IsPublished: true, IsPinned: true,
		Timestamp: fixedNow.Add(-72 * time.Hour).Format(time.RFC3339),
	}, nil, nil)
	repo.SeedAnnouncement(ctx, models.Announcement{Title: "Draft", Author: author}, nil, nil)

	all := repo.ListAnnouncements(ctx, AnnouncementFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, []models.ID{pinned.ID, newer.ID, older.ID}, []models.ID{all[0].ID, all[1].ID, all[2].ID})
	assert.Nil(t, all[0].Comments)

	byCategory := repo.ListAnnouncements(ctx, AnnouncementFilter{Category: academic.Slug})
	require.Len(t, byCategory, 1)
	info, ok := byCategory[0].Category.Ref.(models.CategoryInfo)
	require.True(t, ok)
	assert.Equal(t, "Academic", *info.Name)

	byTag := repo.ListAnnouncements(ctx, AnnouncementFilter{Hashtags: []string{"research"}})
	require.Len(t, byTag, 1)
	assert.Equal(t, []string{"research"}, byTag[0].HashtagList)

	searched := repo.ListAnnouncements(ctx, AnnouncementFilter{Search: "fresh"})
	require.Len(t, searched, 1)
	assert.Equal(t, newer.ID, searched[0].ID)

	pinnedOnly := repo.ListAnnouncements(ctx, AnnouncementFilter{IsPinned: boolPtr(true)})
	require.Len(t, pinnedOnly, 1)

	_, err := repo.GetAnnouncement(ctx, "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnnouncementLifecycle(t *testing.T) {
	ctx := context.Background()
	repo, academic := newAnnouncementRepo(t)
	author := models.NewIdentity(models.Identity{ID: "2", FirstName: "Sarah", LastName: "Johnson"})

	created := repo.CreateAnnouncement(ctx, author, AnnouncementInput{
		Title:        "Welcome",
		Description:  "Hello",
		CategoryID:   &academic.ID,
		HashtagNames: []string{"news", "#News", "campus"},
	})
	assert.True(t, created.IsPublished)
	assert.Equal(t, []string{"news", "campus"}, created.HashtagList)
	assert.Equal(t, fixedNow.Format(time.RFC3339), created.Timestamp)

	like, title, err := repo.ToggleLike(ctx, created.ID, "1")
	require.NoError(t, err)
	assert.Equal(t, "Welcome", title)
	assert.Equal(t, models.LikeResult{Success: true, Action: "liked", Likes: 1}, like)
	like, _, err = repo.ToggleLike(ctx, created.ID, "1")
	require.NoError(t, err)
	assert.Equal(t, "unliked", like.Action)
	assert.Equal(t, 0, like.Likes)

	c, _, err := repo.AddComment(ctx, created.ID, models.NewPersonName("Mike Chen"), "Great")
	require.NoError(t, err)
	got, err := repo.GetAnnouncement(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, c.ID, got.Comments[0].ID)
	assert.Equal(t, 1, got.CommentsCount)

	pin, err := repo.TogglePin(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PinResult{Success: true, Action: "pinned", IsPinned: true}, pin)

	updated, err := repo.UpdateAnnouncement(ctx, created.ID, AnnouncementInput{HashtagNames: []string{"campus"}})
	require.NoError(t, err)
	assert.Equal(t, "Welcome", updated.Title)
	assert.Equal(t, []string{"campus"}, updated.HashtagList)

	tags := repo.GetHashtags(ctx)
	counts := map[string]int{}
	for _, h := range tags {
		counts[h.Name] = h.UsageCount
	}
	assert.Equal(t, map[string]int{"news": 0, "campus": 1}, counts)

	stats := repo.GetStats(ctx)
	assert.Equal(t, 1, stats.TotalAnnouncements)
	assert.Equal(t, 1, stats.TotalComments)
	assert.Equal(t, 1, stats.TotalCategories)
	require.Len(t, stats.CategoryStats, 1)
	assert.Equal(t, 1, stats.CategoryStats[0].Count)

	require.NoError(t, repo.DeleteAnnouncement(ctx, created.ID))
	assert.ErrorIs(t, repo.DeleteAnnouncement(ctx, created.ID), ErrNotFound)
	assert.Len(t, repo.GetCategories(ctx), 1)
}

func TestCollegesAndLeaders(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories(fixedClock)

	eng := repos.CollegeRepository.CreateCollege(ctx, CollegeInput{
		Name:       "College of Engineering & Technology",
		LeaderName: "Dr. Sarah Johnson",
		Departments: []models.Department{
			{Name: "Mechanical Engineering"},
			{Name: "Civil Engineering"},
		},
	})
	repos.CollegeRepository.CreateCollege(ctx, CollegeInput{Name: "College of Education", LeaderName: "Dr. James Thompson"})

	depts, err := repos.CollegeRepository.GetDepartments(ctx, eng.ID)
	require.NoError(t, err)
	assert.Equal(t, "Civil Engineering", depts[0].Name)
	assert.Len(t, repos.CollegeRepository.GetAllDepartments(ctx), 2)
	assert.Len(t, repos.CollegeRepository.ListColleges(ctx, "thompson"), 1)

	stats := repos.CollegeRepository.GetStats(ctx)
	assert.Equal(t, 2, stats.TotalColleges)
	assert.Equal(t, 2, stats.TotalDepartments)

	leaders := repos.LeaderRepository
	alex := leaders.CreateLeader(ctx, LeaderInput{
		Name: "Alex Rodriguez", Position: "President", Department: "Executive",
		TeamSize: 5, IsCabinet: true, College: eng.ID.String(),
		Achievements: []string{"Led orientation"},
	})
	require.NotNil(t, alex.College)
	assert.Equal(t, eng.Name, alex.College.Name)
	leaders.CreateLeader(ctx, LeaderInput{Name: "Emma Davis", Position: "Secretary", Department: "Operations", TeamSize: 3})

	cabinet := leaders.ListLeaders(ctx, models.LeaderFilter{IsCabinet: boolPtr(true)})
	require.Len(t, cabinet, 1)
	assert.Equal(t, "Alex Rodriguez", cabinet[0].Name)

	all := leaders.ListLeaders(ctx, models.LeaderFilter{Department: "all"})
	assert.Len(t, all, 2)

	byCollege := leaders.ListLeaders(ctx, models.LeaderFilter{College: eng.ID.String()})
	assert.Len(t, byCollege, 1)

	ls := leaders.GetStats(ctx)
	assert.Equal(t, 8, ls.TotalTeamSize)
	assert.Equal(t, []string{"Executive", "Operations"}, ls.Departments)

	require.NoError(t, repos.CollegeRepository.DeleteCollege(ctx, eng.ID))
	got, err := leaders.GetLeader(ctx, alex.ID)
	require.NoError(t, err)
	assert.Nil(t, got.College)
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepository(fixedClock)

	repo.RevokeToken(ctx, "old", fixedNow.Add(-time.Minute))
	repo.RevokeToken(ctx, "jti", fixedNow.Add(time.Hour))
	assert.True(t, repo.IsRevoked(ctx, "jti"))
	assert.False(t, repo.IsRevoked(ctx, "old"))
	assert.False(t, repo.IsRevoked(ctx, "other"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "engineering-technology", Slugify("Engineering & Technology"))
	assert.Equal(t, "it-security", Slugify(" IT Security "))
}
