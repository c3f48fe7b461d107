package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/repositories"
	"github.com/mustso/portal/internal/middleware"
	"github.com/mustso/portal/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

// CollegeController handles colleges and departments
type CollegeController struct {
	collegeRepo *repositories.CollegeRepository
	storage     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(collegeRepo *repositories.CollegeRepository, storage filestorage.FileStorage, logger zerolog.Logger) *CollegeController {
	return &CollegeController{
		collegeRepo: collegeRepo,
		storage:     storage,
		logger:      logger,
	}
}

// GetColleges lists colleges, optionally filtered by search
func (c *CollegeController) GetColleges(ctx *gin.Context) {
	respondList(ctx, c.collegeRepo.ListColleges(ctx.Request.Context(), ctx.Query("search")))
}

// GetCollege returns one college with its departments
func (c *CollegeController) GetCollege(ctx *gin.Context) {
	college, err := c.collegeRepo.GetCollege(ctx.Request.Context(), models.ID(ctx.Param("id")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, college)
}

// CreateCollege adds a college
func (c *CollegeController) CreateCollege(ctx *gin.Context) {
	in, ok := c.bind(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusCreated, c.collegeRepo.CreateCollege(ctx.Request.Context(), in))
}

// UpdateCollege modifies a college. Departments are replaced when sent.
func (c *CollegeController) UpdateCollege(ctx *gin.Context) {
	id := models.ID(ctx.Param("id"))
	previous, err := c.collegeRepo.GetCollege(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	in, ok := c.bind(ctx)
	if !ok {
		return
	}

	updated, err := c.collegeRepo.UpdateCollege(ctx.Request.Context(), id, in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if in.LeaderImage != nil && previous.LeaderImage != "" {
		c.deleteFile(previous.LeaderImage)
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeleteCollege removes a college and its departments
func (c *CollegeController) DeleteCollege(ctx *gin.Context) {
	id := models.ID(ctx.Param("id"))
	existing, err := c.collegeRepo.GetCollege(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.collegeRepo.DeleteCollege(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if existing.LeaderImage != "" {
		c.deleteFile(existing.LeaderImage)
	}
	ctx.Status(http.StatusNoContent)
}

// GetDepartments lists one college's departments
func (c *CollegeController) GetDepartments(ctx *gin.Context) {
	departments, err := c.collegeRepo.GetDepartments(ctx.Request.Context(), models.ID(ctx.Param("id")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondList(ctx, departments)
}

// GetAllDepartments lists departments across colleges
func (c *CollegeController) GetAllDepartments(ctx *gin.Context) {
	respondList(ctx, c.collegeRepo.GetAllDepartments(ctx.Request.Context()))
}

// GetStats returns college statistics
func (c *CollegeController) GetStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.collegeRepo.GetStats(ctx.Request.Context()))
}

// bind reads a JSON or multipart college body. In multipart bodies the
// departments travel as a JSON-encoded "departments" value.
func (c *CollegeController) bind(ctx *gin.Context) (repositories.CollegeInput, bool) {
	var req dto.CollegeRequest
	if !middleware.BindRequest(ctx, &req) {
		return repositories.CollegeInput{}, false
	}

	if raw, ok := ctx.GetPostForm("departments"); ok && strings.HasPrefix(ctx.ContentType(), "multipart/") {
		if err := json.Unmarshal([]byte(raw), &req.Departments); err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.FieldErrors{"departments": {"Invalid JSON."}})
			return repositories.CollegeInput{}, false
		}
		for _, d := range req.Departments {
			if strings.TrimSpace(d.Name) == "" {
				ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.FieldErrors{"departments": {"Each department needs a name."}})
				return repositories.CollegeInput{}, false
			}
		}
	}

	in := repositories.CollegeInput{
		Name:       req.Name,
		LeaderName: req.LeaderName,
	}
	if req.Departments != nil {
		in.Departments = make([]models.Department, 0, len(req.Departments))
		for _, d := range req.Departments {
			in.Departments = append(in.Departments, models.Department{
				Name:       d.Name,
				LeaderName: d.LeaderName,
				Email:      d.Email,
				Phone:      d.Phone,
			})
		}
	}

	if fh, err := ctx.FormFile("leader_image"); err == nil {
		url, err := c.storage.SaveFileWithPath(fh, "colleges")
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return repositories.CollegeInput{}, false
		}
		in.LeaderImage = &url
	}
	return in, true
}

func (c *CollegeController) deleteFile(url string) {
	if err := c.storage.DeleteFile(url); err != nil {
		c.logger.Warn().Err(err).Str("file", url).Msg("Failed to delete college image")
	}
}
