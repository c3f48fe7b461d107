package dto

import (
	"strconv"
	"strings"
)

// AnnouncementQuery filters the announcement list.
// Category "all" means no category filter.
type AnnouncementQuery struct {
	Page     int
	PageSize int
	Category string
	Search   string
	Hashtag  string
}

// AnnouncementRequest creates or updates an announcement.
// A non-nil Media sends the request as multipart/form-data.
type AnnouncementRequest struct {
	Title        string      `json:"title" form:"title" binding:"required,max=200"`
	Description  string      `json:"description" form:"description" binding:"required"`
	CategoryID   *int64      `json:"category_id,omitempty" form:"category_id"`
	HashtagNames []string    `json:"hashtag_names,omitempty" form:"hashtag_names"`
	IsPinned     bool        `json:"is_pinned" form:"is_pinned"`
	IsPublished  *bool       `json:"is_published,omitempty" form:"is_published"`
	Media        *FileUpload `json:"-" form:"-"`
}

// FormFields flattens the request into multipart values
func (r AnnouncementRequest) FormFields() map[string][]string {
	fields := map[string][]string{
		"title":       {r.Title},
		"description": {r.Description},
		"is_pinned":   {strconv.FormatBool(r.IsPinned)},
	}
	if r.CategoryID != nil {
		fields["category_id"] = []string{strconv.FormatInt(*r.CategoryID, 10)}
	}
	if r.IsPublished != nil {
		fields["is_published"] = []string{strconv.FormatBool(*r.IsPublished)}
	}
	if len(r.HashtagNames) > 0 {
		fields["hashtag_names"] = r.HashtagNames
	}
	return fields
}

// NormalizeHashtag lowercases a hashtag and strips the leading '#'
func NormalizeHashtag(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "#", "")
}

// CommentRequest appends a comment
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}
