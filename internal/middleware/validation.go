package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/pkg/validation"
)

// BindRequest binds the JSON or multipart body into obj and validates it.
// On failure it writes a 400 with a field → messages map and returns false.
func BindRequest(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.FieldErrors(validation.FieldErrors(err)))
		return false
	}
	return true
}

// BindWrapped is BindRequest for endpoints that answer validation errors
// inside a {success, errors, message} body
func BindWrapped(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ValidationFailedResponse{
			Success: false,
			Errors:  validation.FieldErrors(err),
			Message: "Validation failed",
		})
		return false
	}
	return true
}
