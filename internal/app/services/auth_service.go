package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/session"
	"github.com/mustso/portal/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

const (
	authLoginPath          = "/auth/login/"
	authRegisterPath       = "/auth/register/"
	authLogoutPath         = "/auth/logout/"
	authProfilePath        = "/auth/profile/"
	authChangePasswordPath = "/auth/change-password/"
	authPasswordResetPath  = "/auth/password-reset/"
)

// AuthService handles login, registration and the session lifecycle
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) dto.Envelope[*models.User]
	Register(ctx context.Context, req dto.RegisterRequest) dto.Envelope[*models.User]
	Logout(ctx context.Context) dto.Envelope[struct{}]
	CurrentSession(ctx context.Context) session.State
	IsAdmin() bool
	ValidateSession(ctx context.Context) dto.Envelope[session.State]
	RefreshProfile(ctx context.Context) dto.Envelope[*models.User]
	ChangePassword(ctx context.Context, currentPassword, newPassword string) dto.Envelope[struct{}]
	RequestPasswordReset(ctx context.Context, email string) dto.Envelope[struct{}]
}

type authServiceImpl struct {
	api     API
	session *session.Session
	users   UserService
	logger  zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(api API, sess *session.Session, users UserService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		api:     api,
		session: sess,
		users:   users,
		logger:  logger.With().Str("service", "auth").Logger(),
	}
}

// Login authenticates and establishes the session
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) dto.Envelope[*models.User] {
	req.Email = strings.TrimSpace(req.Email)

	var resp dto.AuthResponse
	if err := s.api.Post(ctx, authLoginPath, req, &resp); err != nil {
		return fail[*models.User](s.logger, "login failed", err)
	}
	return s.establish(ctx, resp, "Login successful", "Logged into the system")
}

// Register creates an account and establishes the session.
// The username defaults to the email.
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) dto.Envelope[*models.User] {
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" {
		req.Username = req.Email
	}

	var resp dto.AuthResponse
	if err := s.api.Post(ctx, authRegisterPath, req, &resp); err != nil {
		return fail[*models.User](s.logger, "registration failed", err)
	}
	return s.establish(ctx, resp, "Registration successful", "Created new account")
}

func (s *authServiceImpl) establish(ctx context.Context, resp dto.AuthResponse, defaultMsg, activity string) dto.Envelope[*models.User] {
	if !resp.Success || resp.User == nil || resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = "authentication failed"
		}
		return fail[*models.User](s.logger, "authentication failed", errors.New(msg))
	}

	if err := s.session.Establish(ctx, resp.Token, resp.User); err != nil {
		return fail[*models.User](s.logger, "failed to persist session", err)
	}

	// best effort; the session is already established
	if env := s.users.AddActivity(ctx, dto.ActivityRequest{Type: models.ActivityView, Title: activity}); !env.Success {
		s.logger.Debug().Str("error", env.Error).Msg("Failed to record activity")
	}

	msg := resp.Message
	if msg == "" {
		msg = defaultMsg
	}
	return dto.Ok(resp.User, msg)
}

// Logout always clears the local session, even when the gateway call fails
func (s *authServiceImpl) Logout(ctx context.Context) dto.Envelope[struct{}] {
	remoteErr := s.api.Post(ctx, authLogoutPath, nil, nil)
	if remoteErr != nil {
		s.logger.Warn().Err(remoteErr).Msg("Logout call failed, clearing local session anyway")
	}

	if err := s.session.Clear(ctx); err != nil {
		return fail[struct{}](s.logger, "failed to clear session", err)
	}

	if remoteErr != nil {
		return dto.Ok(struct{}{}, "Logged out locally")
	}
	return dto.Ok(struct{}{}, "Logout successful")
}

// CurrentSession returns the session snapshot
func (s *authServiceImpl) CurrentSession(ctx context.Context) session.State {
	return s.session.Snapshot(ctx)
}

// IsAdmin reports whether the current user is an admin
func (s *authServiceImpl) IsAdmin() bool {
	return s.session.IsAdmin()
}

// ValidateSession checks the persisted token against the gateway. An
// authorization failure demotes the session to anonymous; other failures
// leave it untouched and are reported in the envelope.
func (s *authServiceImpl) ValidateSession(ctx context.Context) dto.Envelope[session.State] {
	if !s.session.IsAuthenticated(ctx) {
		return dto.Ok(session.State{}, "Not authenticated")
	}

	var user models.User
	if err := s.api.Get(ctx, authProfilePath, nil, &user); err != nil {
		if apperrors.IsAuthFailure(err) {
			if clearErr := s.session.Clear(ctx); clearErr != nil {
				s.logger.Error().Err(clearErr).Msg("Failed to clear session")
			}
			return dto.Ok(session.State{}, "Session expired")
		}
		return fail[session.State](s.logger, "failed to validate session", err)
	}

	s.session.SetUser(&user)
	return dto.Ok(s.session.Snapshot(ctx), "")
}

// RefreshProfile reloads the current user from the gateway
func (s *authServiceImpl) RefreshProfile(ctx context.Context) dto.Envelope[*models.User] {
	var user models.User
	if err := s.api.Get(ctx, authProfilePath, nil, &user); err != nil {
		return fail[*models.User](s.logger, "failed to refresh profile", err)
	}
	s.session.SetUser(&user)
	return dto.Ok(&user, "")
}

// ChangePassword changes the current user's password
func (s *authServiceImpl) ChangePassword(ctx context.Context, currentPassword, newPassword string) dto.Envelope[struct{}] {
	req := dto.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}

	var resp dto.MessageResponse
	if err := s.api.Post(ctx, authChangePasswordPath, req, &resp); err != nil {
		return fail[struct{}](s.logger, "failed to change password", err)
	}
	return dto.Ok(struct{}{}, messageOr(resp.Message, "Password changed successfully"))
}

// RequestPasswordReset asks the gateway to send reset instructions
func (s *authServiceImpl) RequestPasswordReset(ctx context.Context, email string) dto.Envelope[struct{}] {
	req := dto.PasswordResetRequest{Email: strings.TrimSpace(email)}

	var resp dto.MessageResponse
	if err := s.api.Post(ctx, authPasswordResetPath, req, &resp); err != nil {
		return fail[struct{}](s.logger, "failed to request password reset", err)
	}
	return dto.Ok(struct{}{}, messageOr(resp.Message, "Password reset instructions have been sent to your email."))
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
