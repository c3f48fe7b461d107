package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mustso/portal/internal/app/gateway"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/rs/zerolog"
)

const (
	leadersPath     = "/leaders/"
	leaderStatsPath = "/leaders/stats/"
)

func leaderPath(id models.ID) string {
	return leadersPath + url.PathEscape(id.String()) + "/"
}

// LeaderService reads and manages leader profiles
type LeaderService interface {
	List(ctx context.Context, filter models.LeaderFilter) dto.Envelope[[]models.Leader]
	Get(ctx context.Context, id models.ID) dto.Envelope[*models.Leader]
	Create(ctx context.Context, req dto.LeaderRequest) dto.Envelope[*models.Leader]
	Update(ctx context.Context, id models.ID, req dto.LeaderRequest) dto.Envelope[*models.Leader]
	Delete(ctx context.Context, id models.ID) dto.Envelope[bool]
	Stats(ctx context.Context) dto.Envelope[*models.LeaderStats]
}

type leaderServiceImpl struct {
	api    API
	logger zerolog.Logger
}

// NewLeaderService creates a new LeaderService
func NewLeaderService(api API, logger zerolog.Logger) LeaderService {
	return &leaderServiceImpl{
		api:    api,
		logger: logger.With().Str("service", "leaders").Logger(),
	}
}

// List returns leaders matching filter
func (s *leaderServiceImpl) List(ctx context.Context, filter models.LeaderFilter) dto.Envelope[[]models.Leader] {
	q := url.Values{}
	setFilter(q, "department", filter.Department)
	setFilter(q, "position", filter.Position)
	setFilter(q, "college", filter.College)
	setFilter(q, "search", filter.Search)
	if filter.IsCabinet != nil {
		q.Set("is_cabinet", strconv.FormatBool(*filter.IsCabinet))
	}

	return fetchList[models.Leader](ctx, s.api, s.logger, "failed to fetch leaders", leadersPath, q)
}

// Get returns one leader
func (s *leaderServiceImpl) Get(ctx context.Context, id models.ID) dto.Envelope[*models.Leader] {
	return fetchOne[models.Leader](ctx, s.api, s.logger, "failed to fetch leader", leaderPath(id), nil)
}

// Create adds a leader. An image switches the body to multipart.
func (s *leaderServiceImpl) Create(ctx context.Context, req dto.LeaderRequest) dto.Envelope[*models.Leader] {
	var created models.Leader
	var err error
	if req.Image != nil {
		form := gateway.Form{Fields: req.FormFields(), Files: filesOf("image", req.Image)}
		err = s.api.PostForm(ctx, leadersPath, form, &created)
	} else {
		err = s.api.Post(ctx, leadersPath, req, &created)
	}
	if err != nil {
		return fail[*models.Leader](s.logger, "failed to create leader", err)
	}
	return dto.Ok(&created, "Leader created successfully")
}

// Update modifies a leader
func (s *leaderServiceImpl) Update(ctx context.Context, id models.ID, req dto.LeaderRequest) dto.Envelope[*models.Leader] {
	var updated models.Leader
	var err error
	if req.Image != nil {
		form := gateway.Form{Fields: req.FormFields(), Files: filesOf("image", req.Image)}
		err = s.api.PatchForm(ctx, leaderPath(id), form, &updated)
	} else {
		err = s.api.Patch(ctx, leaderPath(id), req, &updated)
	}
	if err != nil {
		return fail[*models.Leader](s.logger, "failed to update leader", err)
	}
	return dto.Ok(&updated, "Leader updated successfully")
}

// Delete removes a leader
func (s *leaderServiceImpl) Delete(ctx context.Context, id models.ID) dto.Envelope[bool] {
	if err := s.api.Delete(ctx, leaderPath(id), nil); err != nil {
		return fail[bool](s.logger, "failed to delete leader", err)
	}
	return dto.Ok(true, "Leader deleted successfully")
}

// Stats returns leader statistics
func (s *leaderServiceImpl) Stats(ctx context.Context) dto.Envelope[*models.LeaderStats] {
	return fetchOne[models.LeaderStats](ctx, s.api, s.logger, "failed to fetch leader statistics", leaderStatsPath, nil)
}
