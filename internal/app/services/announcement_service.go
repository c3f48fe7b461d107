package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mustso/portal/internal/app/gateway"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

const (
	announcementsPath          = "/announcements/"
	announcementCategoriesPath = "/announcements/categories/"
	announcementHashtagsPath   = "/announcements/hashtags/"
	announcementStatsPath      = "/announcements/stats/"
)

func announcementPath(id models.ID) string {
	return announcementsPath + url.PathEscape(id.String()) + "/"
}

// AnnouncementService reads and manages announcements
type AnnouncementService interface {
	List(ctx context.Context) dto.Envelope[[]models.Announcement]
	ListPage(ctx context.Context, query dto.AnnouncementQuery) dto.Envelope[[]models.Announcement]
	Get(ctx context.Context, id models.ID) dto.Envelope[*models.Announcement]
	Comments(ctx context.Context, id models.ID) dto.Envelope[[]models.Comment]
	AddComment(ctx context.Context, id models.ID, content string) dto.Envelope[*models.Comment]
	ToggleLike(ctx context.Context, id models.ID) dto.Envelope[*models.LikeResult]
	Categories(ctx context.Context) dto.Envelope[[]models.Category]
	Hashtags(ctx context.Context) dto.Envelope[[]models.Hashtag]
	Stats(ctx context.Context) dto.Envelope[*models.AnnouncementStats]
	Create(ctx context.Context, req dto.AnnouncementRequest) dto.Envelope[*models.Announcement]
	Update(ctx context.Context, id models.ID, req dto.AnnouncementRequest) dto.Envelope[*models.Announcement]
	Delete(ctx context.Context, id models.ID) dto.Envelope[bool]
	TogglePin(ctx context.Context, id models.ID) dto.Envelope[*models.PinResult]
}

type announcementServiceImpl struct {
	api    API
	logger zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(api API, logger zerolog.Logger) AnnouncementService {
	return &announcementServiceImpl{
		api:    api,
		logger: logger.With().Str("service", "announcements").Logger(),
	}
}

// List returns all published announcements
func (s *announcementServiceImpl) List(ctx context.Context) dto.Envelope[[]models.Announcement] {
	return fetchList[models.Announcement](ctx, s.api, s.logger, "failed to fetch announcements", announcementsPath, nil)
}

// ListPage returns one page of announcements matching query
func (s *announcementServiceImpl) ListPage(ctx context.Context, query dto.AnnouncementQuery) dto.Envelope[[]models.Announcement] {
	page := query.Page
	if page < 1 {
		page = helpers.DefaultPage
	}
	limit := query.PageSize
	if limit <= 0 {
		limit = helpers.DefaultPageSize
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(limit))
	setFilter(q, "category", query.Category)
	setFilter(q, "search", query.Search)
	setFilter(q, "hashtags", query.Hashtag)

	return fetchPage[models.Announcement](ctx, s.api, s.logger, "failed to fetch announcements", announcementsPath, q, page, limit)
}

// Get returns one announcement with its comments
func (s *announcementServiceImpl) Get(ctx context.Context, id models.ID) dto.Envelope[*models.Announcement] {
	return fetchOne[models.Announcement](ctx, s.api, s.logger, "failed to fetch announcement", announcementPath(id), nil)
}

// Comments lists the comments of an announcement
func (s *announcementServiceImpl) Comments(ctx context.Context, id models.ID) dto.Envelope[[]models.Comment] {
	return fetchList[models.Comment](ctx, s.api, s.logger, "failed to fetch comments", announcementPath(id)+"comments/", nil)
}

// AddComment appends a comment as the current user
func (s *announcementServiceImpl) AddComment(ctx context.Context, id models.ID, content string) dto.Envelope[*models.Comment] {
	var comment models.Comment
	if err := s.api.Post(ctx, announcementPath(id)+"comments/", dto.CommentRequest{Content: content}, &comment); err != nil {
		return fail[*models.Comment](s.logger, "failed to add comment", err)
	}
	return dto.Ok(&comment, "Comment added successfully")
}

// ToggleLike likes or unlikes an announcement
func (s *announcementServiceImpl) ToggleLike(ctx context.Context, id models.ID) dto.Envelope[*models.LikeResult] {
	var result models.LikeResult
	if err := s.api.Post(ctx, announcementPath(id)+"like/", nil, &result); err != nil {
		return fail[*models.LikeResult](s.logger, "failed to toggle like", err)
	}
	return dto.Ok(&result, "")
}

// Categories lists active categories
func (s *announcementServiceImpl) Categories(ctx context.Context) dto.Envelope[[]models.Category] {
	return fetchList[models.Category](ctx, s.api, s.logger, "failed to fetch categories", announcementCategoriesPath, nil)
}

// Hashtags lists hashtags by popularity
func (s *announcementServiceImpl) Hashtags(ctx context.Context) dto.Envelope[[]models.Hashtag] {
	return fetchList[models.Hashtag](ctx, s.api, s.logger, "failed to fetch hashtags", announcementHashtagsPath, nil)
}

// Stats returns announcement statistics
func (s *announcementServiceImpl) Stats(ctx context.Context) dto.Envelope[*models.AnnouncementStats] {
	return fetchOne[models.AnnouncementStats](ctx, s.api, s.logger, "failed to fetch announcement statistics", announcementStatsPath, nil)
}

// Create publishes a new announcement. Media switches the body to multipart.
func (s *announcementServiceImpl) Create(ctx context.Context, req dto.AnnouncementRequest) dto.Envelope[*models.Announcement] {
	var created models.Announcement
	var err error
	if req.Media != nil {
		form := gateway.Form{Fields: req.FormFields(), Files: filesOf("media", req.Media)}
		err = s.api.PostForm(ctx, announcementsPath, form, &created)
	} else {
		err = s.api.Post(ctx, announcementsPath, req, &created)
	}
	if err != nil {
		return fail[*models.Announcement](s.logger, "failed to create announcement", err)
	}
	return dto.Ok(&created, "Announcement created successfully")
}

// Update modifies an announcement
func (s *announcementServiceImpl) Update(ctx context.Context, id models.ID, req dto.AnnouncementRequest) dto.Envelope[*models.Announcement] {
	var updated models.Announcement
	var err error
	if req.Media != nil {
		form := gateway.Form{Fields: req.FormFields(), Files: filesOf("media", req.Media)}
		err = s.api.PatchForm(ctx, announcementPath(id), form, &updated)
	} else {
		err = s.api.Patch(ctx, announcementPath(id), req, &updated)
	}
	if err != nil {
		return fail[*models.Announcement](s.logger, "failed to update announcement", err)
	}
	return dto.Ok(&updated, "Announcement updated successfully")
}

// Delete removes an announcement
func (s *announcementServiceImpl) Delete(ctx context.Context, id models.ID) dto.Envelope[bool] {
	if err := s.api.Delete(ctx, announcementPath(id), nil); err != nil {
		return fail[bool](s.logger, "failed to delete announcement", err)
	}
	return dto.Ok(true, "Announcement deleted successfully")
}

// TogglePin pins or unpins an announcement
func (s *announcementServiceImpl) TogglePin(ctx context.Context, id models.ID) dto.Envelope[*models.PinResult] {
	var result models.PinResult
	if err := s.api.Post(ctx, announcementPath(id)+"pin/", nil, &result); err != nil {
		return fail[*models.PinResult](s.logger, "failed to toggle pin", err)
	}
	return dto.Ok(&result, "")
}
