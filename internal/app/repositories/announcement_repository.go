package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/normalize"
)

// AnnouncementFilter narrows the announcement list. Zero values match all.
type AnnouncementFilter struct {
	// Category matches a category id, slug or name
	Category string
	Author   string
	IsPinned *bool
	Hashtags []string
	Search   string
}

// AnnouncementInput carries the writable announcement fields.
// Nil pointers and a nil HashtagNames leave the stored value unchanged on update.
type AnnouncementInput struct {
	Title        string
	Description  string
	CategoryID   *models.ID
	HashtagNames []string
	IsPinned     *bool
	IsPublished  *bool
	Media        *string
}

type announcementRecord struct {
	announcement models.Announcement
	categoryID   models.ID
	hashtags     []string
	likedBy      map[models.ID]bool
	comments     []models.Comment
}

// AnnouncementRepository stores announcements, comments, categories and hashtags
type AnnouncementRepository struct {
	mu            sync.RWMutex
	announcements map[models.ID]*announcementRecord
	categories    map[models.ID]*models.Category
	hashtags      map[string]*models.Hashtag
	ids           sequence
	commentIDs    sequence
	categoryIDs   sequence
	hashtagIDs    sequence
	now           Clock
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(clock Clock) *AnnouncementRepository {
	return &AnnouncementRepository{
		announcements: make(map[models.ID]*announcementRecord),
		categories:    make(map[models.ID]*models.Category),
		hashtags:      make(map[string]*models.Hashtag),
		now:           clock,
	}
}

// Slugify lowercases s and joins its alphanumeric runs with '-'
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

// CreateCategory stores a category
func (r *AnnouncementRepository) CreateCategory(_ context.Context, c models.Category) models.Category {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = r.categoryIDs.next()
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	stored := c
	r.categories[c.ID] = &stored
	return c
}

// GetCategories returns the active categories ordered by name
func (r *AnnouncementRepository) GetCategories(_ context.Context) []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetHashtags returns hashtags ordered by usage, most used first
func (r *AnnouncementRepository) GetHashtags(_ context.Context) []models.Hashtag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedHashtags()
}

func (r *AnnouncementRepository) sortedHashtags() []models.Hashtag {
	out := make([]models.Hashtag, 0, len(r.hashtags))
	for _, h := range r.hashtags {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UsageCount != out[j].UsageCount {
			return out[i].UsageCount > out[j].UsageCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// CreateAnnouncement stores a new announcement written by author
func (r *AnnouncementRepository) CreateAnnouncement(_ context.Context, author models.Person, in AnnouncementInput) models.Announcement {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := formatTime(r.now())
	rec := &announcementRecord{
		announcement: models.Announcement{
			ID:          r.ids.next(),
			Author:      author,
			Timestamp:   now,
			UpdatedAt:   now,
			IsPublished: true,
		},
		likedBy: make(map[models.ID]bool),
	}
	r.apply(rec, in)
	r.announcements[rec.announcement.ID] = rec
	return r.render(rec, true)
}

// SeedAnnouncement stores a fixture announcement as given, keeping its
// timestamp, likes and category label
func (r *AnnouncementRepository) SeedAnnouncement(_ context.Context, a models.Announcement, hashtags []string, comments []models.Comment) models.Announcement {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		a.ID = r.ids.next()
	}
	rec := &announcementRecord{announcement: a, likedBy: make(map[models.ID]bool)}
	if label, ok := a.Category.Ref.(models.CategoryName); ok {
		for _, c := range r.categories {
			if strings.EqualFold(c.Name, string(label)) {
				rec.categoryID = c.ID
				break
			}
		}
	}
	for _, c := range comments {
		if c.ID == "" {
			c.ID = r.commentIDs.next()
		}
		rec.comments = append(rec.comments, c)
	}
	r.setHashtags(rec, hashtags)
	r.announcements[a.ID] = rec
	return r.render(rec, true)
}

// UpdateAnnouncement applies in to the stored announcement
func (r *AnnouncementRepository) UpdateAnnouncement(_ context.Context, id models.ID, in AnnouncementInput) (models.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.announcements[id]
	if !ok {
		return models.Announcement{}, ErrNotFound
	}
	r.apply(rec, in)
	rec.announcement.UpdatedAt = formatTime(r.now())
	return r.render(rec, true), nil
}

func (r *AnnouncementRepository) apply(rec *announcementRecord, in AnnouncementInput) {
	a := &rec.announcement
	if in.Title != "" {
		a.Title = in.Title
	}
	if in.Description != "" {
		a.Description = in.Description
	}
	if in.IsPinned != nil {
		a.IsPinned = *in.IsPinned
	}
	if in.IsPublished != nil {
		a.IsPublished = *in.IsPublished
	}
	if in.Media != nil {
		a.Media = *in.Media
	}
	if in.CategoryID != nil {
		// Unknown or inactive categories clear the category
		rec.categoryID = ""
		a.Category = models.CategoryField{}
		if c, ok := r.categories[*in.CategoryID]; ok && c.IsActive {
			rec.categoryID = c.ID
		}
	}
	if in.HashtagNames != nil {
		r.setHashtags(rec, in.HashtagNames)
	}
}

// setHashtags replaces the record's hashtags and refreshes usage counts
func (r *AnnouncementRepository) setHashtags(rec *announcementRecord, names []string) {
	old := rec.hashtags
	rec.hashtags = rec.hashtags[:0:0]
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "#", "")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := r.hashtags[name]; !ok {
			r.hashtags[name] = &models.Hashtag{ID: r.hashtagIDs.next(), Name: name, Slug: Slugify(name)}
		}
		rec.hashtags = append(rec.hashtags, name)
	}
	for _, name := range old {
		if !seen[name] {
			if h, ok := r.hashtags[name]; ok && h.UsageCount > 0 {
				h.UsageCount--
			}
		}
	}
	oldSet := make(map[string]bool, len(old))
	for _, name := range old {
		oldSet[name] = true
	}
	for _, name := range rec.hashtags {
		if !oldSet[name] {
			r.hashtags[name].UsageCount++
		}
	}
}

// DeleteAnnouncement removes the announcement with its comments
func (r *AnnouncementRepository) DeleteAnnouncement(_ context.Context, id models.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.announcements[id]
	if !ok {
		return ErrNotFound
	}
	r.setHashtags(rec, nil)
	delete(r.announcements, id)
	return nil
}

// GetAnnouncement returns a published announcement with its comments
func (r *AnnouncementRepository) GetAnnouncement(_ context.Context, id models.ID) (models.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.announcements[id]
	if !ok || !rec.announcement.IsPublished {
		return models.Announcement{}, ErrNotFound
	}
	return r.render(rec, true), nil
}

// ListAnnouncements returns published announcements matching filter,
// pinned first and newest first
func (r *AnnouncementRepository) ListAnnouncements(_ context.Context, filter AnnouncementFilter) []models.Announcement {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*announcementRecord, 0, len(r.announcements))
	for _, rec := range r.announcements {
		if rec.announcement.IsPublished && r.matches(rec, filter) {
			matched = append(matched, rec)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i].announcement, matched[j].announcement
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		ta, _ := models.ParseTimestamp(a.Timestamp)
		tb, _ := models.ParseTimestamp(b.Timestamp)
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return compareIDs(a.ID, b.ID) > 0
	})

	out := make([]models.Announcement, 0, len(matched))
	for _, rec := range matched {
		out = append(out, r.render(rec, false))
	}
	return out
}

func (r *AnnouncementRepository) matches(rec *announcementRecord, f AnnouncementFilter) bool {
	a := rec.announcement
	if f.Category != "" {
		if !r.categoryMatches(rec, f.Category) {
			return false
		}
	}
	authorName := normalize.Person(a.Author)
	if f.Author != "" && !strings.EqualFold(f.Author, authorName) {
		if id, ok := a.Author.Ref.(models.Identity); !ok || id.ID.String() != f.Author {
			return false
		}
	}
	if f.IsPinned != nil && a.IsPinned != *f.IsPinned {
		return false
	}
	for _, want := range f.Hashtags {
		want = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(want)), "#", "")
		if want == "" {
			continue
		}
		found := false
		for _, have := range rec.hashtags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	fields := append([]string{a.Title, a.Description, authorName}, rec.hashtags...)
	return matchesSearch(f.Search, fields...)
}

func (r *AnnouncementRepository) categoryMatches(rec *announcementRecord, want string) bool {
	if c, ok := r.categories[rec.categoryID]; ok {
		return c.ID.String() == want || strings.EqualFold(c.Slug, want) || strings.EqualFold(c.Name, want)
	}
	if label, ok := rec.announcement.Category.Ref.(models.CategoryName); ok {
		return strings.EqualFold(string(label), want) || Slugify(string(label)) == strings.ToLower(want)
	}
	return false
}

// render copies the record into its wire form
func (r *AnnouncementRepository) render(rec *announcementRecord, withComments bool) models.Announcement {
	a := rec.announcement
	if c, ok := r.categories[rec.categoryID]; ok {
		name := c.Name
		a.Category = models.CategoryField{Ref: models.CategoryInfo{ID: c.ID, Name: &name, Slug: c.Slug}}
	}
	a.HashtagList = append([]string{}, rec.hashtags...)
	a.Hashtags = make([]models.Hashtag, 0, len(rec.hashtags))
	for _, name := range rec.hashtags {
		a.Hashtags = append(a.Hashtags, *r.hashtags[name])
	}
	a.CommentsCount = len(rec.comments)
	a.Comments = nil
	if withComments {
		a.Comments = append([]models.Comment{}, rec.comments...)
	}
	return a
}

// GetComments returns the comments of an announcement, oldest first
func (r *AnnouncementRepository) GetComments(_ context.Context, id models.ID) ([]models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.announcements[id]
	if !ok || !rec.announcement.IsPublished {
		return nil, ErrNotFound
	}
	return append([]models.Comment{}, rec.comments...), nil
}

// AddComment appends a comment and returns it with the announcement title
func (r *AnnouncementRepository) AddComment(_ context.Context, id models.ID, author models.Person, content string) (models.Comment, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.announcements[id]
	if !ok || !rec.announcement.IsPublished {
		return models.Comment{}, "", ErrNotFound
	}
	now := formatTime(r.now())
	c := models.Comment{
		ID:        r.commentIDs.next(),
		Author:    author,
		Content:   content,
		Timestamp: now,
		UpdatedAt: now,
	}
	rec.comments = append(rec.comments, c)
	return c, rec.announcement.Title, nil
}

// ToggleLike likes the announcement for userID, or unlikes it when
// already liked
func (r *AnnouncementRepository) ToggleLike(_ context.Context, id, userID models.ID) (models.LikeResult, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.announcements[id]
	if !ok || !rec.announcement.IsPublished {
		return models.LikeResult{}, "", ErrNotFound
	}

	action := "liked"
	if rec.likedBy[userID] {
		delete(rec.likedBy, userID)
		if rec.announcement.Likes > 0 {
			rec.announcement.Likes--
		}
		action = "unliked"
	} else {
		rec.likedBy[userID] = true
		rec.announcement.Likes++
	}
	return models.LikeResult{Success: true, Action: action, Likes: rec.announcement.Likes}, rec.announcement.Title, nil
}

// TogglePin flips the pinned flag
func (r *AnnouncementRepository) TogglePin(_ context.Context, id models.ID) (models.PinResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.announcements[id]
	if !ok {
		return models.PinResult{}, ErrNotFound
	}
	rec.announcement.IsPinned = !rec.announcement.IsPinned
	action := "unpinned"
	if rec.announcement.IsPinned {
		action = "pinned"
	}
	return models.PinResult{Success: true, Action: action, IsPinned: rec.announcement.IsPinned}, nil
}

// GetStats summarises published announcements
func (r *AnnouncementRepository) GetStats(_ context.Context) models.AnnouncementStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats models.AnnouncementStats
	perCategory := make(map[models.ID]int)
	for _, rec := range r.announcements {
		if !rec.announcement.IsPublished {
			continue
		}
		stats.TotalAnnouncements++
		stats.TotalComments += len(rec.comments)
		stats.TotalLikes += rec.announcement.Likes
		if rec.categoryID != "" {
			perCategory[rec.categoryID]++
		}
	}

	stats.CategoryStats = []models.CategoryStat{}
	for _, c := range r.categories {
		if !c.IsActive {
			continue
		}
		stats.TotalCategories++
		stats.CategoryStats = append(stats.CategoryStats, models.CategoryStat{
			ID:    c.ID,
			Name:  c.Name,
			Slug:  c.Slug,
			Color: c.Color,
			Count: perCategory[c.ID],
		})
	}
	sort.Slice(stats.CategoryStats, func(i, j int) bool {
		return stats.CategoryStats[i].Name < stats.CategoryStats[j].Name
	})

	stats.TotalHashtags = len(r.hashtags)
	popular := r.sortedHashtags()
	if len(popular) > 10 {
		popular = popular[:10]
	}
	stats.PopularHashtags = popular
	return stats
}
