package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, AuthSchemeBearer, cfg.API.AuthScheme)
	assert.Equal(t, DataSourceLive, cfg.DataSource)
	assert.False(t, cfg.IsMock())
	assert.Equal(t, StoreSQLite, cfg.Session.Store)
	assert.Equal(t, "authToken", cfg.Session.TokenKey)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
}

func TestFileThenEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
api:
  base_url: https://portal.example.edu/api
  timeout: 3s
data_source: mock
session:
  store: memory
gateway:
  page_size: 5
`)
	t.Setenv("PORTAL_API_AUTH_SCHEME", "Token")
	t.Setenv("PORTAL_GATEWAY_PAGE_SIZE", "7")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://portal.example.edu/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout())
	assert.Equal(t, "Token", cfg.API.AuthScheme)
	assert.True(t, cfg.IsMock())
	assert.Equal(t, StoreMemory, cfg.Session.Store)
	assert.Equal(t, 7, cfg.Gateway.PageSize)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"relative base url", map[string]string{"PORTAL_API_BASE_URL": "/api"}},
		{"zero timeout", map[string]string{"PORTAL_API_TIMEOUT": "0s"}},
		{"bad timeout", map[string]string{"PORTAL_API_TIMEOUT": "soon"}},
		{"unknown data source", map[string]string{"PORTAL_DATA_SOURCE": "cache"}},
		{"unknown store", map[string]string{"PORTAL_SESSION_STORE": "redis"}},
		{"bad page size", map[string]string{"PORTAL_GATEWAY_PAGE_SIZE": "ten"}},
		{"unknown auth scheme", map[string]string{"PORTAL_API_AUTH_SCHEME": "Basic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	path := writeFile(t, ".env", "PORTAL_DATA_SOURCE=mock\n")
	t.Setenv("PORTAL_DATA_SOURCE", "")
	os.Unsetenv("PORTAL_DATA_SOURCE")

	require.NoError(t, LoadEnvFiles(path))
	t.Cleanup(func() { os.Unsetenv("PORTAL_DATA_SOURCE") })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.IsMock())

	assert.Error(t, LoadEnvFiles(filepath.Join(t.TempDir(), "nope.env")))
}
