// Package services is the data access layer. Every call returns a
// dto.Envelope; failures are reported in the envelope, never returned as
// bare errors or panics.
package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mustso/portal/internal/app/gateway"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/session"
	"github.com/mustso/portal/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// API is the subset of the gateway client the services call
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
	Patch(ctx context.Context, path string, body any, out any) error
	Delete(ctx context.Context, path string, out any) error
	PostForm(ctx context.Context, path string, form gateway.Form, out any) error
	PatchForm(ctx context.Context, path string, form gateway.Form, out any) error
}

// Services bundles every data access service
type Services struct {
	Auth          AuthService
	Users         UserService
	Announcements AnnouncementService
	Leaders       LeaderService
	Colleges      CollegeService
	Directory     DirectoryService
}

// New wires the services against api and sess
func New(api API, sess *session.Session, logger zerolog.Logger) *Services {
	users := NewUserService(api, sess, logger)
	leaders := NewLeaderService(api, logger)
	colleges := NewCollegeService(api, logger)

	return &Services{
		Auth:          NewAuthService(api, sess, users, logger),
		Users:         users,
		Announcements: NewAnnouncementService(api, logger),
		Leaders:       leaders,
		Colleges:      colleges,
		Directory:     NewDirectoryService(leaders, colleges),
	}
}

// fail wraps err with the operation description and logs it
func fail[T any](logger zerolog.Logger, op string, err error) dto.Envelope[T] {
	wrapped := fmt.Errorf("%s: %w", op, err)
	logger.Warn().Err(err).Str("operation", op).Msg("Data access call failed")
	return dto.Fail[T](wrapped)
}

// fetchList GETs a list endpoint that may answer with a bare array or a
// paginated object. Pagination is attached only when the gateway sent a count.
func fetchList[T any](ctx context.Context, api API, logger zerolog.Logger, op, path string, query url.Values) dto.Envelope[[]T] {
	var payload dto.ListPayload[T]
	if err := api.Get(ctx, path, query, &payload); err != nil {
		return fail[[]T](logger, op, err)
	}

	env := dto.Ok(payload.Items(), "")
	if payload.Paginated {
		env = env.WithPagination(helpers.NewPaginationInfo(payload.Total(), helpers.DefaultPage, len(payload.Items())))
	}
	return env
}

// fetchPage GETs one page of a list endpoint. The pagination metadata
// reflects the requested page and limit.
func fetchPage[T any](ctx context.Context, api API, logger zerolog.Logger, op, path string, query url.Values, page, limit int) dto.Envelope[[]T] {
	var payload dto.ListPayload[T]
	if err := api.Get(ctx, path, query, &payload); err != nil {
		return fail[[]T](logger, op, err)
	}

	return dto.Ok(payload.Items(), "").
		WithPagination(helpers.NewPaginationInfo(payload.Total(), page, limit))
}

// fetchOne GETs a single record
func fetchOne[T any](ctx context.Context, api API, logger zerolog.Logger, op, path string, query url.Values) dto.Envelope[*T] {
	var out T
	if err := api.Get(ctx, path, query, &out); err != nil {
		return fail[*T](logger, op, err)
	}
	return dto.Ok(&out, "")
}

// setFilter adds a query parameter unless it is empty or "all"
func setFilter(q url.Values, key, value string) {
	if value != "" && value != "all" {
		q.Set(key, value)
	}
}

// filesOf converts an optional upload into multipart file parts
func filesOf(field string, upload *dto.FileUpload) []gateway.FormFile {
	if upload == nil {
		return nil
	}
	return []gateway.FormFile{{Field: field, Filename: upload.Filename, Content: upload.Content}}
}
