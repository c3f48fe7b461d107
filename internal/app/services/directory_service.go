package services

import (
	"context"

	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"golang.org/x/sync/errgroup"
)

// Directory holds the independently loaded leaders and colleges.
// Each slot succeeds or fails on its own.
type Directory struct {
	Leaders  dto.Envelope[[]models.Leader]
	Colleges dto.Envelope[[]models.College]
}

// DirectoryService loads the leaders page
type DirectoryService interface {
	LoadDirectory(ctx context.Context, filter models.LeaderFilter) Directory
}

type directoryServiceImpl struct {
	leaders  LeaderService
	colleges CollegeService
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(leaders LeaderService, colleges CollegeService) DirectoryService {
	return &directoryServiceImpl{leaders: leaders, colleges: colleges}
}

// LoadDirectory fetches leaders and colleges concurrently. A failure in one
// does not cancel the other.
func (s *directoryServiceImpl) LoadDirectory(ctx context.Context, filter models.LeaderFilter) Directory {
	var dir Directory
	g, gctx := errgroup.WithContext(ctx)

	// Failures land in each slot's envelope, so the goroutines never return
	// an error and gctx is only cancelled by the caller's ctx.
	g.Go(func() error {
		dir.Leaders = s.leaders.List(gctx, filter)
		return nil
	})
	g.Go(func() error {
		dir.Colleges = s.colleges.List(gctx, "")
		return nil
	})

	_ = g.Wait()
	return dir
}
