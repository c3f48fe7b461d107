package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mustso/portal/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentials struct {
	mu          sync.Mutex
	token       string
	invalidated int
}

func (f *fakeCredentials) Token(context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeCredentials) Invalidate(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	f.token = ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc, creds Credentials, scheme string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/api/", Timeout: time.Second, AuthScheme: scheme}, creds, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "not a url"}, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestAuthorizationHeader(t *testing.T) {
	var got, requestID string
	handler := func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		requestID = r.Header.Get("X-Request-ID")
		assert.Equal(t, "/api/leaders/", r.URL.Path)
		assert.Equal(t, "Cabinet", r.URL.Query().Get("department"))
		writeJSON(w, http.StatusOK, `[]`)
	}

	t.Run("token scheme", func(t *testing.T) {
		c := newTestClient(t, handler, &fakeCredentials{token: "abc"}, "Token")
		var out []map[string]any
		require.NoError(t, c.Get(context.Background(), "/leaders/", url.Values{"department": {"Cabinet"}}, &out))
		assert.Equal(t, "Token abc", got)
		assert.NotEmpty(t, requestID)
	})

	t.Run("default bearer", func(t *testing.T) {
		c := newTestClient(t, handler, &fakeCredentials{token: "abc"}, "")
		require.NoError(t, c.Get(context.Background(), "/leaders/", url.Values{"department": {"Cabinet"}}, nil))
		assert.Equal(t, "Bearer abc", got)
	})

	t.Run("anonymous", func(t *testing.T) {
		c := newTestClient(t, handler, &fakeCredentials{}, "")
		require.NoError(t, c.Get(context.Background(), "/leaders/", url.Values{"department": {"Cabinet"}}, nil))
		assert.Empty(t, got)
	})
}

func TestErrorBodies(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMsg     string
		wantClass   error
	}{
		{
			name: "message wins", status: 400, contentType: "application/json",
			body:    `{"success": false, "message": "Invalid credentials"}`,
			wantMsg: "Invalid credentials", wantClass: apperrors.ErrRemote,
		},
		{
			name: "field errors flattened", status: 400, contentType: "application/json",
			body:    `{"title": ["This field is required."], "description": "Too short"}`,
			wantMsg: "description: Too short; title: This field is required.", wantClass: apperrors.ErrValidationFailed,
		},
		{
			name: "detail", status: 403, contentType: "application/json",
			body:    `{"detail": "You do not have permission to perform this action."}`,
			wantMsg: "detail: You do not have permission to perform this action.", wantClass: apperrors.ErrPermissionDenied,
		},
		{
			name: "non-string values ignored", status: 500, contentType: "application/json",
			body:    `{"success": false, "code": 12}`,
			wantMsg: "HTTP error! status: 500", wantClass: apperrors.ErrRemote,
		},
		{
			name: "plain text", status: 502, contentType: "text/html",
			body:    `<h1>Bad gateway</h1>`,
			wantMsg: "HTTP error! status: 502", wantClass: apperrors.ErrRemote,
		},
		{
			name: "not found", status: 404, contentType: "application/json",
			body:    `{"detail": "Not found."}`,
			wantMsg: "detail: Not found.", wantClass: apperrors.ErrResourceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, nil, "")

			err := c.Post(context.Background(), "/announcements/", map[string]string{"title": ""}, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.ErrorIs(t, err, tt.wantClass)
		})
	}
}

func TestNestedRegistrationErrorsKept(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 400, `{"success": false, "errors": {"email": ["A user with this email already exists."]}, "message": "Validation failed"}`)
	}, nil, "")

	err := c.Post(context.Background(), "/auth/register/", map[string]string{}, nil)
	var apiErr *apperrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Validation failed", apiErr.Error())
	assert.Equal(t, []string{"A user with this email already exists."}, apiErr.FieldErrors["email"])
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUnauthorizedInvalidatesCredentials(t *testing.T) {
	creds := &fakeCredentials{token: "stale"}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"detail": "Invalid token."}`)
	}, creds, "Token")

	err := c.Get(context.Background(), "/auth/profile/", nil, nil)
	assert.True(t, apperrors.IsAuthFailure(err))
	assert.Equal(t, 1, creds.invalidated)
	assert.Empty(t, creds.token)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil, zerolog.Nop())
	require.NoError(t, err)

	err = c.Get(context.Background(), "/leaders/", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrTimeout)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: base}, nil, zerolog.Nop())
	require.NoError(t, err)

	err = c.Get(context.Background(), "/leaders/", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrNetwork)
}

func TestMalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":`)
	}, nil, "")

	var out map[string]any
	err := c.Get(context.Background(), "/leaders/1/", nil, &out)
	assert.ErrorIs(t, err, apperrors.ErrDecode)
}

func TestTextResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "pong")
	}, nil, "")

	var out string
	require.NoError(t, c.Get(context.Background(), "/ping", nil, &out))
	assert.Equal(t, "pong", out)
}

func TestMultipartForm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, []string{"Grace Hopper"}, r.MultipartForm.Value["name"])
		assert.Equal(t, []string{"first", "second"}, r.MultipartForm.Value["achievements"])

		files := r.MultipartForm.File["image"]
		require.Len(t, files, 1)
		assert.Equal(t, "grace.png", files[0].Filename)
		writeJSON(w, http.StatusCreated, `{"id": 1}`)
	}, nil, "")

	var out struct {
		ID int `json:"id"`
	}
	err := c.PostForm(context.Background(), "/leaders/", Form{
		Fields: map[string][]string{
			"name":         {"Grace Hopper"},
			"achievements": {"first", "second"},
		},
		Files: []FormFile{{Field: "image", Filename: "grace.png", Content: strings.NewReader("png")}},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, out.ID)
}

func TestNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}, nil, "")

	var out map[string]any
	require.NoError(t, c.Delete(context.Background(), "/leaders/1/", &out))
	assert.Nil(t, out)
}
