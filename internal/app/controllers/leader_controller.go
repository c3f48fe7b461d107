package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/repositories"
	"github.com/mustso/portal/internal/middleware"
	"github.com/mustso/portal/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// LeaderController handles leader profiles
type LeaderController struct {
	leaderRepo *repositories.LeaderRepository
	storage    filestorage.FileStorage
	logger     zerolog.Logger
}

// NewLeaderController creates a new LeaderController
func NewLeaderController(leaderRepo *repositories.LeaderRepository, storage filestorage.FileStorage, logger zerolog.Logger) *LeaderController {
	return &LeaderController{
		leaderRepo: leaderRepo,
		storage:    storage,
		logger:     logger,
	}
}

// GetLeaders lists leaders. Filters: department, position, college,
// is_cabinet, search.
func (c *LeaderController) GetLeaders(ctx *gin.Context) {
	filter := models.LeaderFilter{
		Department: ctx.Query("department"),
		Position:   ctx.Query("position"),
		College:    ctx.Query("college"),
		Search:     ctx.Query("search"),
	}
	if v, err := strconv.ParseBool(ctx.Query("is_cabinet")); err == nil {
		filter.IsCabinet = &v
	}

	respondList(ctx, c.leaderRepo.ListLeaders(ctx.Request.Context(), filter))
}

// GetLeader returns one leader
func (c *LeaderController) GetLeader(ctx *gin.Context) {
	leader, err := c.leaderRepo.GetLeader(ctx.Request.Context(), models.ID(ctx.Param("id")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, leader)
}

// CreateLeader adds a leader. A multipart body may carry an "image" file.
func (c *LeaderController) CreateLeader(ctx *gin.Context) {
	in, ok := c.bind(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusCreated, c.leaderRepo.CreateLeader(ctx.Request.Context(), in))
}

// UpdateLeader replaces a leader's fields
func (c *LeaderController) UpdateLeader(ctx *gin.Context) {
	id := models.ID(ctx.Param("id"))
	previous, err := c.leaderRepo.GetLeader(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	in, ok := c.bind(ctx)
	if !ok {
		return
	}

	updated, err := c.leaderRepo.UpdateLeader(ctx.Request.Context(), id, in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if in.Image != nil && previous.Image != "" {
		c.deleteFile(previous.Image)
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteLeader removes a leader
func (c *LeaderController) DeleteLeader(ctx *gin.Context) {
	id := models.ID(ctx.Param("id"))
	existing, err := c.leaderRepo.GetLeader(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.leaderRepo.DeleteLeader(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if existing.Image != "" {
		c.deleteFile(existing.Image)
	}
	ctx.Status(http.StatusNoContent)
}

// GetStats returns leader statistics
func (c *LeaderController) GetStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.leaderRepo.GetStats(ctx.Request.Context()))
}

func (c *LeaderController) bind(ctx *gin.Context) (repositories.LeaderInput, bool) {
	var req dto.LeaderRequest
	if !middleware.BindRequest(ctx, &req) {
		return repositories.LeaderInput{}, false
	}

	in := repositories.LeaderInput{
		Name:         req.Name,
		Position:     req.Position,
		Department:   req.Department,
		Description:  req.Description,
		Email:        req.Email,
		Phone:        req.Phone,
		Location:     req.Location,
		JoinDate:     req.JoinDate,
		TeamSize:     req.TeamSize,
		IsCabinet:    req.IsCabinet,
		College:      req.College,
		Achievements: req.Achievements,
	}

	if fh, err := ctx.FormFile("image"); err == nil {
		url, err := c.storage.SaveFileWithPath(fh, "leaders")
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return repositories.LeaderInput{}, false
		}
		in.Image = &url
	}
	return in, true
}

func (c *LeaderController) deleteFile(url string) {
	if err := c.storage.DeleteFile(url); err != nil {
		c.logger.Warn().Err(err).Str("file", url).Msg("Failed to delete leader image")
	}
}
