package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/repositories"
	"github.com/mustso/portal/internal/middleware"
	"github.com/rs/zerolog"
)

// feedLimit caps the activity and notification lists
const feedLimit = 50

// UserController handles the current user's feeds and user statistics
type UserController struct {
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userRepo *repositories.UserRepository, logger zerolog.Logger) *UserController {
	return &UserController{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetActivities lists the current user's recent activity
func (c *UserController) GetActivities(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	activities, err := c.userRepo.GetActivities(ctx.Request.Context(), user.ID, feedLimit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, activities)
}

// AddActivity records an activity for the current user
func (c *UserController) AddActivity(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var req dto.ActivityRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	activity, err := c.userRepo.AddActivity(ctx.Request.Context(), user.ID, req.Type, req.Title)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, activity)
}

// GetNotifications lists the current user's notifications
func (c *UserController) GetNotifications(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	notifications, err := c.userRepo.GetNotifications(ctx.Request.Context(), user.ID, feedLimit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, notifications)
}

// MarkNotificationRead marks one of the current user's notifications as read
func (c *UserController) MarkNotificationRead(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	id := models.ID(ctx.Param("id"))
	if err := c.userRepo.MarkNotificationRead(ctx.Request.Context(), user.ID, id); err != nil {
		ctx.JSON(http.StatusNotFound, dto.MessageResponse{Success: false, Message: "Notification not found"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Notification marked as read"})
}

// GetStats returns user statistics
func (c *UserController) GetStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.userRepo.GetStats(ctx.Request.Context()))
}
