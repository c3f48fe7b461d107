package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockEnv(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	t.Setenv("PORTAL_DATA_SOURCE", "")
	t.Setenv("PORTAL_SESSION_STORE", "sqlite")
	t.Setenv("PORTAL_SESSION_PATH", filepath.Join(dir, "storage.db"))
	t.Setenv("PORTAL_GATEWAY_STORAGE_PATH", filepath.Join(dir, "media"))
	t.Setenv("PORTAL_LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	base := []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "--data-source", "mock"}
	err := execute(append(base, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestAnnouncementsListAgainstMockGateway(t *testing.T) {
	mockEnv(t)

	out, _, err := run(t, "announcements", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Q4 Company All-Hands Meeting")
}

func TestDirectoryPrintsBothSlots(t *testing.T) {
	mockEnv(t)

	out, _, err := run(t, "directory")
	require.NoError(t, err)
	assert.Contains(t, out, "== Leaders ==")
	assert.Contains(t, out, "== Colleges ==")
	assert.NotContains(t, out, "Failed to")
}

func TestWhoamiAnonymous(t *testing.T) {
	mockEnv(t)

	out, _, err := run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestFailedCommandStillClosesStore(t *testing.T) {
	mockEnv(t)

	_, errOut, err := run(t, "announcements", "show", "999")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "Failed to load the announcement")
	assert.Contains(t, errOut, "retry")

	require.NotNil(t, app)
	_, _, getErr := app.Store.Get(context.Background(), "authToken")
	assert.Error(t, getErr, "store should be closed after a failed command")
}
