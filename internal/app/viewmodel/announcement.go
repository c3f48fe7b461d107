package viewmodel

import (
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/normalize"
)

// AnnouncementView is what an announcement card or detail page renders
type AnnouncementView struct {
	ID                models.ID
	Title             string
	Description       string
	Excerpt           string
	Body              string
	CategoryLabel     string
	AuthorDisplayName string
	AuthorInitials    string
	Timestamp         string
	TimestampLabel    string
	Likes             int
	CommentCount      int
	IsLongDescription bool
	IsPinned          bool
	Media             string
	Hashtags          []string
	// Comments is only populated in the Detail context
	Comments []CommentView
}

// CommentView is a single rendered comment
type CommentView struct {
	ID                models.ID
	AuthorDisplayName string
	AuthorInitials    string
	Content           string
	Timestamp         string
	TimestampLabel    string
}

// Announcement projects an announcement
func Announcement(a models.Announcement, opts Options) AnnouncementView {
	author := normalize.Person(a.Author)

	view := AnnouncementView{
		ID:                a.ID,
		Title:             a.Title,
		Description:       a.Description,
		Excerpt:           Excerpt(a.Description),
		CategoryLabel:     normalize.Category(a.Category),
		AuthorDisplayName: author,
		AuthorInitials:    normalize.Initials(author),
		Timestamp:         a.Timestamp,
		TimestampLabel:    RelativeTime(a.Timestamp, opts.Now),
		Likes:             a.Likes,
		CommentCount:      commentCount(a),
		IsLongDescription: IsLong(a.Description),
		IsPinned:          a.IsPinned,
		Media:             a.Media,
		Hashtags:          hashtags(a),
	}

	if opts.Context == Detail {
		view.Body = a.Description
		if a.Content != "" {
			view.Body = a.Content
		}
		view.Comments = Comments(a.Comments, opts)
	}

	return view
}

// Announcements projects a list of announcements
func Announcements(items []models.Announcement, opts Options) []AnnouncementView {
	views := make([]AnnouncementView, 0, len(items))
	for _, a := range items {
		views = append(views, Announcement(a, opts))
	}
	return views
}

// Comment projects a comment
func Comment(c models.Comment, opts Options) CommentView {
	author := normalize.Person(c.Author)
	return CommentView{
		ID:                c.ID,
		AuthorDisplayName: author,
		AuthorInitials:    normalize.Initials(author),
		Content:           c.Content,
		Timestamp:         c.Timestamp,
		TimestampLabel:    RelativeTime(c.Timestamp, opts.Now),
	}
}

// Comments projects comments in their original order
func Comments(items []models.Comment, opts Options) []CommentView {
	views := make([]CommentView, 0, len(items))
	for _, c := range items {
		views = append(views, Comment(c, opts))
	}
	return views
}

func commentCount(a models.Announcement) int {
	if len(a.Comments) > 0 {
		return len(a.Comments)
	}
	return a.CommentsCount
}

func hashtags(a models.Announcement) []string {
	if len(a.HashtagList) > 0 {
		return append([]string(nil), a.HashtagList...)
	}
	if len(a.Hashtags) == 0 {
		return nil
	}
	names := make([]string, 0, len(a.Hashtags))
	for _, h := range a.Hashtags {
		names = append(names, h.Name)
	}
	return names
}
