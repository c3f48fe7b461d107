package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/repositories"
	"github.com/mustso/portal/internal/middleware"
	"github.com/mustso/portal/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// AnnouncementController handles announcements, comments, likes and taxonomy
type AnnouncementController struct {
	announcementRepo *repositories.AnnouncementRepository
	userRepo         *repositories.UserRepository
	storage          filestorage.FileStorage
	logger           zerolog.Logger
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementRepo *repositories.AnnouncementRepository, userRepo *repositories.UserRepository, storage filestorage.FileStorage, logger zerolog.Logger) *AnnouncementController {
	return &AnnouncementController{
		announcementRepo: announcementRepo,
		userRepo:         userRepo,
		storage:          storage,
		logger:           logger,
	}
}

// GetAnnouncements lists published announcements.
// Filters: category (id, slug or name), category_slug, author, is_pinned,
// hashtags (comma separated), search.
func (c *AnnouncementController) GetAnnouncements(ctx *gin.Context) {
	filter := repositories.AnnouncementFilter{
		Category: firstQuery(ctx, "category", "category_slug"),
		Author:   ctx.Query("author"),
		Search:   ctx.Query("search"),
	}
	if v, err := strconv.ParseBool(ctx.Query("is_pinned")); err == nil {
		filter.IsPinned = &v
	}
	if tags := ctx.Query("hashtags"); tags != "" {
		filter.Hashtags = strings.Split(tags, ",")
	}

	respondList(ctx, c.announcementRepo.ListAnnouncements(ctx.Request.Context(), filter))
}

// GetAnnouncement returns one announcement with its comments
func (c *AnnouncementController) GetAnnouncement(ctx *gin.Context) {
	a, err := c.announcementRepo.GetAnnouncement(ctx.Request.Context(), models.ID(ctx.Param("id")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, a)
}

// CreateAnnouncement publishes an announcement as the current user. A
// multipart body may carry a "media" file.
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var req dto.AnnouncementRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	in := repositories.AnnouncementInput{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		CategoryID:   categoryID(req.CategoryID),
		HashtagNames: req.HashtagNames,
		IsPinned:     &req.IsPinned,
		IsPublished:  req.IsPublished,
	}
	if !c.attachMedia(ctx, &in) {
		return
	}

	created := c.announcementRepo.CreateAnnouncement(ctx.Request.Context(), models.NewIdentity(user.Identity()), in)
	c.recordActivity(ctx, user.ID, models.ActivityPost, "Posted announcement: "+created.Title)

	ctx.JSON(http.StatusCreated, created)
}

// announcementPatch is the partial update body
type announcementPatch struct {
	Title        string   `json:"title" form:"title" binding:"max=200"`
	Description  string   `json:"description" form:"description"`
	CategoryID   *int64   `json:"category_id" form:"category_id"`
	HashtagNames []string `json:"hashtag_names" form:"hashtag_names"`
	IsPinned     *bool    `json:"is_pinned" form:"is_pinned"`
	IsPublished  *bool    `json:"is_published" form:"is_published"`
}

// UpdateAnnouncement applies a partial update
func (c *AnnouncementController) UpdateAnnouncement(ctx *gin.Context) {
	var req announcementPatch
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	in := repositories.AnnouncementInput{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		CategoryID:   categoryID(req.CategoryID),
		HashtagNames: req.HashtagNames,
		IsPinned:     req.IsPinned,
		IsPublished:  req.IsPublished,
	}
	if !c.attachMedia(ctx, &in) {
		return
	}

	updated, err := c.announcementRepo.UpdateAnnouncement(ctx.Request.Context(), models.ID(ctx.Param("id")), in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteAnnouncement removes an announcement
func (c *AnnouncementController) DeleteAnnouncement(ctx *gin.Context) {
	id := models.ID(ctx.Param("id"))

	existing, err := c.announcementRepo.GetAnnouncement(ctx.Request.Context(), id)
	if err == nil && existing.Media != "" {
		if derr := c.storage.DeleteFile(existing.Media); derr != nil {
			c.logger.Warn().Err(derr).Str("media", existing.Media).Msg("Failed to delete announcement media")
		}
	}

	if err := c.announcementRepo.DeleteAnnouncement(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetComments lists an announcement's comments
func (c *AnnouncementController) GetComments(ctx *gin.Context) {
	comments, err := c.announcementRepo.GetComments(ctx.Request.Context(), models.ID(ctx.Param("id")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, comments)
}

// AddComment appends a comment as the current user
func (c *AnnouncementController) AddComment(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var req dto.CommentRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	comment, title, err := c.announcementRepo.AddComment(ctx.Request.Context(), models.ID(ctx.Param("id")),
		models.NewIdentity(user.Identity()), strings.TrimSpace(req.Content))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.recordActivity(ctx, user.ID, models.ActivityComment, "Commented on: "+title)

	ctx.JSON(http.StatusCreated, comment)
}

// ToggleLike likes or unlikes an announcement for the current user
func (c *AnnouncementController) ToggleLike(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	result, title, err := c.announcementRepo.ToggleLike(ctx.Request.Context(), models.ID(ctx.Param("id")), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if result.Action == "liked" {
		c.recordActivity(ctx, user.ID, models.ActivityLike, "Liked: "+title)
	}
	ctx.JSON(http.StatusOK, result)
}

// TogglePin pins or unpins an announcement
func (c *AnnouncementController) TogglePin(ctx *gin.Context) {
	result, err := c.announcementRepo.TogglePin(ctx.Request.Context(), models.ID(ctx.Param("id")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetCategories lists active categories
func (c *AnnouncementController) GetCategories(ctx *gin.Context) {
	respondList(ctx, c.announcementRepo.GetCategories(ctx.Request.Context()))
}

// GetHashtags lists hashtags by usage
func (c *AnnouncementController) GetHashtags(ctx *gin.Context) {
	respondList(ctx, c.announcementRepo.GetHashtags(ctx.Request.Context()))
}

// GetStats returns announcement statistics
func (c *AnnouncementController) GetStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.announcementRepo.GetStats(ctx.Request.Context()))
}

// attachMedia stores an optional "media" upload and records its URL in in
func (c *AnnouncementController) attachMedia(ctx *gin.Context, in *repositories.AnnouncementInput) bool {
	fh, err := ctx.FormFile("media")
	if err != nil {
		return true
	}
	url, err := c.storage.SaveFileWithPath(fh, "announcements")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return false
	}
	in.Media = &url
	return true
}

func (c *AnnouncementController) recordActivity(ctx *gin.Context, userID models.ID, kind, title string) {
	if _, err := c.userRepo.AddActivity(ctx.Request.Context(), userID, kind, title); err != nil {
		c.logger.Warn().Err(err).Str("userID", userID.String()).Msg("Failed to record activity")
	}
}

func categoryID(id *int64) *models.ID {
	if id == nil {
		return nil
	}
	v := models.ID(strconv.FormatInt(*id, 10))
	return &v
}

func firstQuery(ctx *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := ctx.Query(k); v != "" {
			return v
		}
	}
	return ""
}
