package services

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"

	"github.com/mustso/portal/internal/app/gateway"
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/models/dto"
	"github.com/mustso/portal/internal/app/session"
	"github.com/mustso/portal/internal/pkg/apperrors"
	"github.com/mustso/portal/internal/pkg/tokenstore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI answers GETs from canned bodies keyed by path
type fakeAPI struct {
	mu      sync.Mutex
	bodies  map[string]string
	errs    map[string]error
	queries map[string]url.Values
	posts   []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{bodies: map[string]string{}, errs: map[string]error{}, queries: map[string]url.Values{}}
}

func (f *fakeAPI) Get(_ context.Context, path string, query url.Values, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries[path] = query
	if err := f.errs[path]; err != nil {
		return err
	}
	return json.Unmarshal([]byte(f.bodies[path]), out)
}

func (f *fakeAPI) Post(_ context.Context, path string, _ any, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, path)
	if err := f.errs[path]; err != nil {
		return err
	}
	if body, ok := f.bodies[path]; ok && out != nil {
		return json.Unmarshal([]byte(body), out)
	}
	return nil
}

func (f *fakeAPI) Patch(ctx context.Context, path string, body any, out any) error {
	return f.Post(ctx, path, body, out)
}

func (f *fakeAPI) Delete(ctx context.Context, path string, out any) error {
	return f.Post(ctx, path, nil, out)
}

func (f *fakeAPI) PostForm(ctx context.Context, path string, _ gateway.Form, out any) error {
	return f.Post(ctx, path, nil, out)
}

func (f *fakeAPI) PatchForm(ctx context.Context, path string, _ gateway.Form, out any) error {
	return f.Post(ctx, path, nil, out)
}

func newTestServices(api API) (*Services, *session.Session) {
	sess := session.New(tokenstore.NewMemoryStore())
	return New(api, sess, zerolog.Nop()), sess
}

func TestLeadersBareArray(t *testing.T) {
	api := newFakeAPI()
	api.bodies[leadersPath] = `[{"id": 1, "name": "Alex"}, {"id": "2", "name": "Lisa"}]`
	svc, _ := newTestServices(api)

	env := svc.Leaders.List(context.Background(), models.LeaderFilter{})
	require.True(t, env.Success, env.Error)
	require.Len(t, env.Data, 2)
	assert.Equal(t, models.ID("1"), env.Data[0].ID)
	assert.Equal(t, models.ID("2"), env.Data[1].ID)
	assert.Nil(t, env.Pagination)
}

func TestLeadersPaginatedObject(t *testing.T) {
	api := newFakeAPI()
	api.bodies[leadersPath] = `{"count": 2, "next": null, "previous": null, "results": [{"id": 1}, {"id": 2}]}`
	svc, _ := newTestServices(api)

	env := svc.Leaders.List(context.Background(), models.LeaderFilter{Department: "all", Position: "President"})
	require.True(t, env.Success)
	assert.Len(t, env.Data, 2)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 2, env.Pagination.Total)

	q := api.queries[leadersPath]
	assert.False(t, q.Has("department"))
	assert.Equal(t, "President", q.Get("position"))
}

func TestFailureKeepsCause(t *testing.T) {
	api := newFakeAPI()
	api.errs[collegesPath] = apperrors.ErrTimeout
	svc, _ := newTestServices(api)

	env := svc.Colleges.List(context.Background(), "")
	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	assert.ErrorIs(t, env.Err(), apperrors.ErrTimeout)
	assert.Contains(t, env.Error, "failed to fetch colleges")
}

func TestAnnouncementPageQuery(t *testing.T) {
	api := newFakeAPI()
	api.bodies[announcementsPath] = `{"count": 25, "results": [{"id": 1, "title": "A", "author": "Admin", "category": "General"}]}`
	svc, _ := newTestServices(api)

	env := svc.Announcements.ListPage(context.Background(), dto.AnnouncementQuery{
		Page: 2, PageSize: 10, Category: "all", Search: "grant",
	})
	require.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 3, env.Pagination.TotalPages)

	q := api.queries[announcementsPath]
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "10", q.Get("page_size"))
	assert.Equal(t, "grant", q.Get("search"))
	assert.False(t, q.Has("category"))
}

func TestLogoutClearsLocallyWhenGatewayFails(t *testing.T) {
	api := newFakeAPI()
	api.errs[authLogoutPath] = apperrors.ErrNetwork
	svc, sess := newTestServices(api)
	ctx := context.Background()

	require.NoError(t, sess.Establish(ctx, "token", &models.User{ID: "1", Email: "a@b.c"}))
	env := svc.Auth.Logout(ctx)

	require.True(t, env.Success)
	assert.Equal(t, "Logged out locally", env.Message)
	assert.False(t, sess.IsAuthenticated(ctx))
}

func TestValidateSessionDemotesOnAuthFailure(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantSuccess   bool
		authenticated bool
	}{
		{"unauthorized", apperrors.NewAPIError(401, "", nil), true, false},
		{"network", apperrors.ErrNetwork, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			api.errs[authProfilePath] = tt.err
			svc, sess := newTestServices(api)
			ctx := context.Background()
			require.NoError(t, sess.Establish(ctx, "token", &models.User{ID: "1"}))

			env := svc.Auth.ValidateSession(ctx)
			assert.Equal(t, tt.wantSuccess, env.Success)
			assert.Equal(t, tt.authenticated, sess.IsAuthenticated(ctx))
		})
	}
}

func TestLoginRejectedResponse(t *testing.T) {
	api := newFakeAPI()
	api.bodies[authLoginPath] = `{"success": false, "message": "Invalid credentials"}`
	svc, sess := newTestServices(api)

	env := svc.Auth.Login(context.Background(), dto.LoginRequest{Email: "x@y.z", Password: "nope"})
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "Invalid credentials")
	assert.False(t, sess.IsAuthenticated(context.Background()))
}

func TestLoadDirectorySlotsAreIndependent(t *testing.T) {
	api := newFakeAPI()
	api.errs[leadersPath] = apperrors.ErrNetwork
	api.bodies[collegesPath] = `[{"id": 1, "name": "College of Engineering"}]`
	svc, _ := newTestServices(api)

	dir := svc.Directory.LoadDirectory(context.Background(), models.LeaderFilter{})

	assert.False(t, dir.Leaders.Success)
	assert.ErrorIs(t, dir.Leaders.Cause, apperrors.ErrNetwork)
	require.True(t, dir.Colleges.Success, dir.Colleges.Error)
	assert.Len(t, dir.Colleges.Data, 1)
}

func TestIDsAreEscapedInPaths(t *testing.T) {
	api := newFakeAPI()
	api.bodies["/announcements/a%2Fb/"] = `{"id": "a/b", "title": "Escaped"}`
	svc, _ := newTestServices(api)

	env := svc.Announcements.Get(context.Background(), models.ID("a/b"))
	require.True(t, env.Success, env.Error)
	assert.Equal(t, "Escaped", env.Data.Title)

	svc.Leaders.Delete(context.Background(), models.ID("../stats"))
	svc.Colleges.Delete(context.Background(), models.ID("1 2"))
	assert.Equal(t, []string{"/leaders/..%2Fstats/", "/colleges/1%202/"}, api.posts)
}
