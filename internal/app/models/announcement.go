package models

import "time"

// Announcement represents a post on the announcement board
type Announcement struct {
	ID            ID            `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Content       string        `json:"content,omitempty"`
	Category      CategoryField `json:"category"`
	Author        Person        `json:"author"`
	Timestamp     string        `json:"timestamp"`
	UpdatedAt     string        `json:"updated_at,omitempty"`
	Likes         int           `json:"likes"`
	Media         string        `json:"media,omitempty"`
	Hashtags      []Hashtag     `json:"hashtags,omitempty"`
	HashtagList   []string      `json:"hashtag_list,omitempty"`
	Comments      []Comment     `json:"comments,omitempty"`
	CommentsCount int           `json:"comments_count"`
	IsPinned      bool          `json:"is_pinned"`
	IsPublished   bool          `json:"is_published"`
}

// Comment belongs to exactly one announcement
type Comment struct {
	ID        ID     `json:"id"`
	Author    Person `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Category groups announcements
type Category struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// Hashtag is a free-form tag attached to announcements
type Hashtag struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	UsageCount int    `json:"usage_count"`
}

// LikeResult is returned by the like toggle endpoint
type LikeResult struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
	Likes   int    `json:"likes"`
}

// PinResult is returned by the pin toggle endpoint
type PinResult struct {
	Success  bool   `json:"success"`
	Action   string `json:"action"`
	IsPinned bool   `json:"is_pinned"`
}

// CategoryStat is one row of the announcement statistics
type CategoryStat struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color,omitempty"`
	Count int    `json:"count"`
}

// AnnouncementStats summarises the announcement board
type AnnouncementStats struct {
	TotalAnnouncements int            `json:"total_announcements"`
	TotalComments      int            `json:"total_comments"`
	TotalLikes         int            `json:"total_likes"`
	TotalCategories    int            `json:"total_categories"`
	TotalHashtags      int            `json:"total_hashtags"`
	CategoryStats      []CategoryStat `json:"category_stats"`
	PopularHashtags    []Hashtag      `json:"popular_hashtags"`
}

// ParseTimestamp interprets the timestamp formats the gateway is known to
// emit. ok is false for legacy free-text values such as "2 hours ago".
func ParseTimestamp(value string) (t time.Time, ok bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
