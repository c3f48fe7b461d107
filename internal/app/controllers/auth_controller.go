// Package controllers implements the mock gateway's HTTP handlers
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/repositories"
	"github.com/mustso/portal/internal/middleware"
	"github.com/mustso/portal/internal/pkg/auth"
	"github.com/mustso/portal/internal/pkg/email"
	"github.com/mustso/portal/internal/pkg/filestorage"
	"github.com/mustso/portal/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// AuthController handles login, registration and the profile
type AuthController struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
	storage    filestorage.FileStorage
	mailer     email.EmailService
	logger     zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(userRepo *repositories.UserRepository, tokenRepo *repositories.TokenRepository, jwtService *auth.JWTService, storage filestorage.FileStorage, mailer email.EmailService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		storage:    storage,
		mailer:     mailer,
		logger:     logger,
	}
}

// Register handles user registration
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindWrapped(ctx, &req) {
		return
	}

	if req.Password != req.PasswordConfirm {
		ctx.JSON(http.StatusBadRequest, dto.ValidationFailedResponse{
			Success: false,
			Errors:  dto.FieldErrors{validation.NonFieldErrors: {"Passwords don't match."}},
			Message: "Validation failed",
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = req.Email
	}

	user, err := c.userRepo.CreateUser(ctx.Request.Context(), models.User{
		Username:  username,
		Email:     strings.TrimSpace(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleUser,
	}, hash)
	if err != nil {
		field, msg := "email", "A user with this email already exists."
		switch {
		case errors.Is(err, repositories.ErrUsernameTaken):
			field, msg = "username", "A user with this username already exists."
		case !errors.Is(err, repositories.ErrEmailAlreadyExists):
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.ValidationFailedResponse{
			Success: false,
			Errors:  dto.FieldErrors{field: {msg}},
			Message: "Validation failed",
		})
		return
	}

	token, err := c.jwtService.GenerateToken(&user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("email", user.Email).Str("userID", user.ID.String()).Msg("User registered")
	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		User:    &user,
		Token:   token,
		Message: "Registration successful",
	})
}

// Login handles user login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	user, hash, err := c.userRepo.GetUserByEmail(ctx.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(hash, req.Password) {
		c.logger.Debug().Str("email", req.Email).Msg("Login rejected")
		ctx.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	token, err := c.jwtService.GenerateToken(&user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		User:    &user,
		Token:   token,
		Message: "Login successful",
	})
}

// Logout revokes the presented token
func (c *AuthController) Logout(ctx *gin.Context) {
	if claims, ok := middleware.CurrentClaims(ctx); ok {
		c.tokenRepo.RevokeToken(ctx.Request.Context(), claims.ID, claims.ExpiresAt.Time)
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Logout successful"})
}

// GetProfile returns the authenticated user
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)
	ctx.JSON(http.StatusOK, user)
}

// profileForm is the writable profile. Both camelCase and snake_case names
// are accepted for the name fields.
type profileForm struct {
	FirstName  *string `json:"firstName" form:"firstName"`
	LastName   *string `json:"lastName" form:"lastName"`
	FirstNameS *string `json:"first_name" form:"first_name"`
	LastNameS  *string `json:"last_name" form:"last_name"`
	Phone      *string `json:"phone" form:"phone" binding:"omitempty,phone"`
	Location   *string `json:"location" form:"location"`
	Department *string `json:"department" form:"department"`
	Position   *string `json:"position" form:"position"`
	Bio        *string `json:"bio" form:"bio"`
}

// UpdateProfile applies a partial update. A multipart body may carry an
// "avatar" file.
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	current, _ := middleware.CurrentUser(ctx)

	var form profileForm
	if !middleware.BindRequest(ctx, &form) {
		return
	}

	var avatarURL string
	if fh, err := ctx.FormFile("avatar"); err == nil {
		avatarURL, err = c.storage.SaveFileWithPath(fh, "avatars")
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	set := func(dst *string, values ...*string) {
		for _, v := range values {
			if v != nil {
				*dst = *v
				return
			}
		}
	}

	updated, err := c.userRepo.UpdateUser(ctx.Request.Context(), current.ID, func(u *models.User) {
		set(&u.FirstName, form.FirstName, form.FirstNameS)
		set(&u.LastName, form.LastName, form.LastNameS)
		set(&u.Phone, form.Phone)
		set(&u.Location, form.Location)
		set(&u.Department, form.Department)
		set(&u.Position, form.Position)
		set(&u.Bio, form.Bio)
		if avatarURL != "" {
			u.Avatar = avatarURL
		}
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if avatarURL != "" && current.Avatar != "" {
		if err := c.storage.DeleteFile(current.Avatar); err != nil {
			c.logger.Warn().Err(err).Str("avatar", current.Avatar).Msg("Failed to delete previous avatar")
		}
	}

	ctx.JSON(http.StatusOK, updated)
}

// ChangePassword verifies the current password and stores the new one
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var req dto.ChangePasswordRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	hash, err := c.userRepo.PasswordHash(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !auth.CheckPassword(hash, req.CurrentPassword) {
		ctx.JSON(http.StatusBadRequest, dto.FieldErrors{"current_password": {"Current password is incorrect."}})
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.userRepo.SetPasswordHash(ctx.Request.Context(), user.ID, newHash); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Password changed successfully"})
}

// RequestPasswordReset always answers success so account existence is not revealed
func (c *AuthController) RequestPasswordReset(ctx *gin.Context) {
	var req dto.PasswordResetRequest
	if !middleware.BindRequest(ctx, &req) {
		return
	}

	if user, _, err := c.userRepo.GetUserByEmail(ctx.Request.Context(), req.Email); err == nil {
		c.sendPasswordReset(user)
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Password reset instructions have been sent to your email.",
	})
}

func (c *AuthController) sendPasswordReset(user models.User) {
	token, err := email.GenerateToken()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to generate reset token")
		return
	}
	if err := c.mailer.SendPasswordReset(user.Email, user.FirstName, token); err != nil {
		c.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send password reset email")
		return
	}
	c.logger.Info().Str("email", user.Email).Msg("Password reset requested")
}
