package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/bootstrap"
	"github.com/mustso/portal/internal/config"
	"github.com/mustso/portal/internal/pkg/apperrors"
	"github.com/mustso/portal/internal/seed"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newMockClient(t *testing.T) *bootstrap.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("PORTAL_DATA_SOURCE", config.DataSourceMock)
	t.Setenv("PORTAL_SESSION_STORE", config.StoreMemory)
	t.Setenv("PORTAL_GATEWAY_STORAGE_PATH", t.TempDir())

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	client, err := bootstrap.BuildClient(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestMockLoginLikeCommentLogout(t *testing.T) {
	client := newMockClient(t)
	svc := client.Services
	ctx := context.Background()

	env := svc.Auth.Login(ctx, dto.LoginRequest{Email: "john.doe@company.com", Password: seed.UserPassword})
	require.True(t, env.Success, env.Error)
	assert.Equal(t, "Login successful", env.Message)
	assert.True(t, svc.Auth.CurrentSession(ctx).IsAuthenticated)
	assert.False(t, svc.Auth.IsAdmin())

	like := svc.Announcements.ToggleLike(ctx, "1")
	require.True(t, like.Success, like.Error)
	assert.Equal(t, "liked", like.Data.Action)

	comment := svc.Announcements.AddComment(ctx, "1", "Count me in")
	require.True(t, comment.Success, comment.Error)
	assert.Equal(t, "Count me in", comment.Data.Content)

	activities := svc.Users.Activities(ctx)
	require.True(t, activities.Success)
	require.NotEmpty(t, activities.Data)
	assert.Equal(t, "Commented on: Q4 Company All-Hands Meeting", activities.Data[0].Title)

	out := svc.Auth.Logout(ctx)
	require.True(t, out.Success)
	assert.Equal(t, "Logout successful", out.Message)
	assert.False(t, svc.Auth.CurrentSession(ctx).IsAuthenticated)

	anon := svc.Announcements.ToggleLike(ctx, "1")
	assert.False(t, anon.Success)
	assert.ErrorIs(t, anon.Err(), apperrors.ErrUnauthorized)
}

func TestMockInvalidLogin(t *testing.T) {
	client := newMockClient(t)

	env := client.Services.Auth.Login(context.Background(), dto.LoginRequest{Email: "john.doe@company.com", Password: "wrong"})
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "Invalid credentials")
	assert.ErrorIs(t, env.Err(), apperrors.ErrRemote)
}

func TestMockAdminOnly(t *testing.T) {
	client := newMockClient(t)
	svc := client.Services
	ctx := context.Background()
	req := dto.AnnouncementRequest{Title: "Parking update", Description: "Lot B closes on Friday."}

	require.True(t, svc.Auth.Login(ctx, dto.LoginRequest{Email: "john.doe@company.com", Password: seed.UserPassword}).Success)
	denied := svc.Announcements.Create(ctx, req)
	assert.False(t, denied.Success)
	assert.ErrorIs(t, denied.Err(), apperrors.ErrPermissionDenied)

	require.True(t, svc.Auth.Login(ctx, dto.LoginRequest{Email: "sarah.johnson@company.com", Password: seed.AdminPassword}).Success)
	assert.True(t, svc.Auth.IsAdmin())

	req.Media = &dto.FileUpload{Filename: "map.jpg", Content: strings.NewReader("jpeg")}
	req.HashtagNames = []string{"#Parking", "campus"}
	created := svc.Announcements.Create(ctx, req)
	require.True(t, created.Success, created.Error)
	assert.True(t, strings.HasPrefix(created.Data.Media, "/media/announcements/"))
	assert.ElementsMatch(t, []string{"parking", "campus"}, created.Data.HashtagList)

	pin := svc.Announcements.TogglePin(ctx, created.Data.ID)
	require.True(t, pin.Success, pin.Error)
	assert.True(t, pin.Data.IsPinned)

	deleted := svc.Announcements.Delete(ctx, created.Data.ID)
	require.True(t, deleted.Success, deleted.Error)
	assert.True(t, deleted.Data)

	gone := svc.Announcements.Get(ctx, created.Data.ID)
	assert.ErrorIs(t, gone.Err(), apperrors.ErrResourceNotFound)
}

func TestMockRegisterValidation(t *testing.T) {
	client := newMockClient(t)
	ctx := context.Background()

	env := client.Services.Auth.Register(ctx, dto.RegisterRequest{
		Email: "john.doe@company.com", FirstName: "J", LastName: "D",
		Password: "password123", PasswordConfirm: "password123",
	})
	assert.False(t, env.Success)
	assert.ErrorIs(t, env.Err(), apperrors.ErrValidationFailed)

	var apiErr *apperrors.APIError
	require.ErrorAs(t, env.Err(), &apiErr)
	assert.Contains(t, apiErr.FieldErrors, "email")
}

func TestMockLoadDirectory(t *testing.T) {
	client := newMockClient(t)
	defer goleak.VerifyNone(t)

	dir := client.Services.Directory.LoadDirectory(context.Background(), models.LeaderFilter{})
	require.True(t, dir.Leaders.Success, dir.Leaders.Error)
	require.True(t, dir.Colleges.Success, dir.Colleges.Error)
	assert.Len(t, dir.Leaders.Data, 5)
	assert.Len(t, dir.Colleges.Data, 6)
}
