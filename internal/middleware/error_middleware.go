package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/repositories"
	"github.com/mustso/portal/internal/pkg/apperrors"
	"github.com/mustso/portal/internal/pkg/logger"
)

// HandleAPIError writes the DRF-style body for err
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.DetailResponse{Detail: "Not found."})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.DetailResponse{Detail: "You do not have permission to perform this action."})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "Invalid credentials"})
	case errors.Is(err, repositories.ErrEmailAlreadyExists), errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.FieldErrors{"email": {"A user with this email already exists."}})
	case errors.Is(err, repositories.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, dto.FieldErrors{"username": {"A user with this username already exists."}})
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled mock gateway error")
		c.JSON(http.StatusInternalServerError, dto.DetailResponse{Detail: "A server error occurred."})
	}
}

// Recovery turns panics into a 500 response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.DetailResponse{Detail: "A server error occurred."})
	})
}
