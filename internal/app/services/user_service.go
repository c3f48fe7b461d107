package services

import (
	"context"
	"net/url"

	"github.com/mustso/portal/internal/app/gateway"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/session"
	"github.com/rs/zerolog"
)

const (
	userActivitiesPath    = "/auth/activities/"
	userNotificationsPath = "/auth/notifications/"
	userStatsPath         = "/auth/stats/"
)

// UserService manages the current user's profile and feeds
type UserService interface {
	FetchProfile(ctx context.Context) dto.Envelope[*models.User]
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) dto.Envelope[*models.User]
	UploadAvatar(ctx context.Context, avatar dto.FileUpload) dto.Envelope[*models.User]
	Activities(ctx context.Context) dto.Envelope[[]models.Activity]
	AddActivity(ctx context.Context, req dto.ActivityRequest) dto.Envelope[*models.Activity]
	Notifications(ctx context.Context) dto.Envelope[[]models.Notification]
	MarkNotificationRead(ctx context.Context, id models.ID) dto.Envelope[struct{}]
	Stats(ctx context.Context) dto.Envelope[*models.UserStats]
}

type userServiceImpl struct {
	api     API
	session *session.Session
	logger  zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(api API, sess *session.Session, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		api:     api,
		session: sess,
		logger:  logger.With().Str("service", "users").Logger(),
	}
}

// FetchProfile loads the profile and makes it the session user
func (s *userServiceImpl) FetchProfile(ctx context.Context) dto.Envelope[*models.User] {
	env := fetchOne[models.User](ctx, s.api, s.logger, "failed to fetch user profile", authProfilePath, nil)
	if env.Success {
		s.session.SetUser(env.Data)
	}
	return env
}

// UpdateProfile applies a partial profile update
func (s *userServiceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) dto.Envelope[*models.User] {
	var user models.User
	if err := s.api.Patch(ctx, authProfilePath, req, &user); err != nil {
		return fail[*models.User](s.logger, "failed to update profile", err)
	}
	s.session.SetUser(&user)
	return dto.Ok(&user, "Profile updated successfully")
}

// UploadAvatar replaces the profile picture
func (s *userServiceImpl) UploadAvatar(ctx context.Context, avatar dto.FileUpload) dto.Envelope[*models.User] {
	form := gateway.Form{Files: filesOf("avatar", &avatar)}

	var user models.User
	if err := s.api.PatchForm(ctx, authProfilePath, form, &user); err != nil {
		return fail[*models.User](s.logger, "failed to upload avatar", err)
	}
	s.session.SetUser(&user)
	return dto.Ok(&user, "Avatar uploaded successfully")
}

// Activities lists the user's recent activity
func (s *userServiceImpl) Activities(ctx context.Context) dto.Envelope[[]models.Activity] {
	return fetchList[models.Activity](ctx, s.api, s.logger, "failed to fetch activities", userActivitiesPath, nil)
}

// AddActivity records an activity entry
func (s *userServiceImpl) AddActivity(ctx context.Context, req dto.ActivityRequest) dto.Envelope[*models.Activity] {
	var activity models.Activity
	if err := s.api.Post(ctx, userActivitiesPath, req, &activity); err != nil {
		return fail[*models.Activity](s.logger, "failed to add activity", err)
	}
	return dto.Ok(&activity, "")
}

// Notifications lists the user's notifications
func (s *userServiceImpl) Notifications(ctx context.Context) dto.Envelope[[]models.Notification] {
	return fetchList[models.Notification](ctx, s.api, s.logger, "failed to fetch notifications", userNotificationsPath, nil)
}

// MarkNotificationRead marks one notification as read
func (s *userServiceImpl) MarkNotificationRead(ctx context.Context, id models.ID) dto.Envelope[struct{}] {
	var resp dto.MessageResponse
	if err := s.api.Post(ctx, userNotificationsPath+url.PathEscape(id.String())+"/read/", nil, &resp); err != nil {
		return fail[struct{}](s.logger, "failed to mark notification as read", err)
	}
	return dto.Ok(struct{}{}, messageOr(resp.Message, "Notification marked as read"))
}

// Stats returns user statistics
func (s *userServiceImpl) Stats(ctx context.Context) dto.Envelope[*models.UserStats] {
	return fetchOne[models.UserStats](ctx, s.api, s.logger, "failed to fetch user statistics", userStatsPath, nil)
}
