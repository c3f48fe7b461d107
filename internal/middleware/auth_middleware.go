package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/repositories"
	"github.com/mustso/portal/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserKey   = "user"
	ContextClaimsKey = "claims"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo *repositories.UserRepository, tokenRepo *repositories.TokenRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
	}
}

// JWTAuth middleware for JWT token validation. Both "Bearer" and "Token"
// authorization schemes are accepted.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.DetailResponse{
				Detail: "Authentication credentials were not provided.",
			})
			return
		}

		tokenString, err := auth.ExtractToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.DetailResponse{
				Detail: "Invalid token header.",
			})
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			detail := "Invalid token."
			if errors.Is(err, auth.ErrExpiredToken) {
				detail = "Token has expired."
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.DetailResponse{Detail: detail})
			return
		}

		if m.tokenRepo.IsRevoked(c.Request.Context(), claims.ID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.DetailResponse{Detail: "Invalid token."})
			return
		}

		user, err := m.userRepo.GetUserByID(c.Request.Context(), models.ID(claims.UserID))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.DetailResponse{
				Detail: "User inactive or deleted.",
			})
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// AdminRequired rejects non-admin users. JWTAuth must run first.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.DetailResponse{
				Detail: "Authentication credentials were not provided.",
			})
			return
		}

		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.DetailResponse{
				Detail: "You do not have permission to perform this action.",
			})
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by JWTAuth
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// CurrentClaims returns the token claims stored by JWTAuth
func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
