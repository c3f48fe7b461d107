package services

import (
	"context"
	"net/url"

	"github.com/mustso/portal/internal/app/gateway"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/rs/zerolog"
)

const (
	collegesPath       = "/colleges/"
	allDepartmentsPath = "/colleges/departments/"
	collegeStatsPath   = "/colleges/stats/"
)

func collegePath(id models.ID) string {
	return collegesPath + url.PathEscape(id.String()) + "/"
}

// CollegeService reads and manages colleges and their departments
type CollegeService interface {
	List(ctx context.Context, search string) dto.Envelope[[]models.College]
	Get(ctx context.Context, id models.ID) dto.Envelope[*models.College]
	Create(ctx context.Context, req dto.CollegeRequest) dto.Envelope[*models.College]
	Update(ctx context.Context, id models.ID, req dto.CollegeRequest) dto.Envelope[*models.College]
	Delete(ctx context.Context, id models.ID) dto.Envelope[bool]
	Departments(ctx context.Context, collegeID models.ID) dto.Envelope[[]models.Department]
	AllDepartments(ctx context.Context) dto.Envelope[[]models.Department]
	Stats(ctx context.Context) dto.Envelope[*models.CollegeStats]
}

type collegeServiceImpl struct {
	api    API
	logger zerolog.Logger
}

// NewCollegeService creates a new CollegeService
func NewCollegeService(api API, logger zerolog.Logger) CollegeService {
	return &collegeServiceImpl{
		api:    api,
		logger: logger.With().Str("service", "colleges").Logger(),
	}
}

// List returns colleges, optionally filtered by search
func (s *collegeServiceImpl) List(ctx context.Context, search string) dto.Envelope[[]models.College] {
	q := url.Values{}
	setFilter(q, "search", search)
	return fetchList[models.College](ctx, s.api, s.logger, "failed to fetch colleges", collegesPath, q)
}

// Get returns one college with its departments
func (s *collegeServiceImpl) Get(ctx context.Context, id models.ID) dto.Envelope[*models.College] {
	return fetchOne[models.College](ctx, s.api, s.logger, "failed to fetch college", collegePath(id), nil)
}

// Create adds a college. A dean image switches the body to multipart.
func (s *collegeServiceImpl) Create(ctx context.Context, req dto.CollegeRequest) dto.Envelope[*models.College] {
	var created models.College
	if err := s.send(ctx, collegesPath, false, req, &created); err != nil {
		return fail[*models.College](s.logger, "failed to create college", err)
	}
	return dto.Ok(&created, "College created successfully")
}

// Update modifies a college
func (s *collegeServiceImpl) Update(ctx context.Context, id models.ID, req dto.CollegeRequest) dto.Envelope[*models.College] {
	var updated models.College
	if err := s.send(ctx, collegePath(id), true, req, &updated); err != nil {
		return fail[*models.College](s.logger, "failed to update college", err)
	}
	return dto.Ok(&updated, "College updated successfully")
}

func (s *collegeServiceImpl) send(ctx context.Context, path string, patch bool, req dto.CollegeRequest, out *models.College) error {
	if req.LeaderImage == nil {
		if patch {
			return s.api.Patch(ctx, path, req, out)
		}
		return s.api.Post(ctx, path, req, out)
	}

	fields, err := req.FormFields()
	if err != nil {
		return err
	}
	form := gateway.Form{Fields: fields, Files: filesOf("leader_image", req.LeaderImage)}
	if patch {
		return s.api.PatchForm(ctx, path, form, out)
	}
	return s.api.PostForm(ctx, path, form, out)
}

// Delete removes a college
func (s *collegeServiceImpl) Delete(ctx context.Context, id models.ID) dto.Envelope[bool] {
	if err := s.api.Delete(ctx, collegePath(id), nil); err != nil {
		return fail[bool](s.logger, "failed to delete college", err)
	}
	return dto.Ok(true, "College deleted successfully")
}

// Departments lists the departments of one college
func (s *collegeServiceImpl) Departments(ctx context.Context, collegeID models.ID) dto.Envelope[[]models.Department] {
	return fetchList[models.Department](ctx, s.api, s.logger, "failed to fetch departments", collegePath(collegeID)+"departments/", nil)
}

// AllDepartments lists departments across colleges
func (s *collegeServiceImpl) AllDepartments(ctx context.Context) dto.Envelope[[]models.Department] {
	return fetchList[models.Department](ctx, s.api, s.logger, "failed to fetch departments", allDepartmentsPath, nil)
}

// Stats returns college statistics
func (s *collegeServiceImpl) Stats(ctx context.Context) dto.Envelope[*models.CollegeStats] {
	return fetchOne[models.CollegeStats](ctx, s.api, s.logger, "failed to fetch college statistics", collegeStatsPath, nil)
}
