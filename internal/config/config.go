package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mustso/portal/internal/pkg/helpers"
	"gopkg.in/yaml.v3"
)

// Data sources
const (
	DataSourceLive = "live"
	DataSourceMock = "mock"
)

// Authorization header schemes. The Django REST backend uses
// TokenAuthentication, so live deployments set PORTAL_API_AUTH_SCHEME=Token;
// the mock gateway accepts both.
const (
	AuthSchemeBearer = "Bearer"
	AuthSchemeToken  = "Token"
)

// Session stores
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config structure represents the application configuration
type Config struct {
	API struct {
		BaseURL    string `yaml:"base_url" env:"PORTAL_API_BASE_URL"`
		Timeout    string `yaml:"timeout" env:"PORTAL_API_TIMEOUT"`
		AuthScheme string `yaml:"auth_scheme" env:"PORTAL_API_AUTH_SCHEME"`
	} `yaml:"api"`

	DataSource string `yaml:"data_source" env:"PORTAL_DATA_SOURCE"`

	Session struct {
		Store    string `yaml:"store" env:"PORTAL_SESSION_STORE"`
		Path     string `yaml:"path" env:"PORTAL_SESSION_PATH"`
		TokenKey string `yaml:"token_key" env:"PORTAL_SESSION_TOKEN_KEY"`
	} `yaml:"session"`

	Gateway struct {
		Port        string `yaml:"port" env:"PORTAL_GATEWAY_PORT"`
		Mode        string `yaml:"mode" env:"PORTAL_GATEWAY_MODE"`
		StoragePath string `yaml:"storage_path" env:"PORTAL_GATEWAY_STORAGE_PATH"`
		JWTSecret   string `yaml:"jwt_secret" env:"PORTAL_GATEWAY_JWT_SECRET"`
		TokenTTL    string `yaml:"token_ttl" env:"PORTAL_GATEWAY_TOKEN_TTL"`
		PageSize    int    `yaml:"page_size" env:"PORTAL_GATEWAY_PAGE_SIZE"`
		// FrontendURL is where password reset links point
		FrontendURL string `yaml:"frontend_url" env:"PORTAL_GATEWAY_FRONTEND_URL"`

		SMTP struct {
			Host      string `yaml:"host" env:"PORTAL_SMTP_HOST"`
			Port      int    `yaml:"port" env:"PORTAL_SMTP_PORT"`
			Username  string `yaml:"username" env:"PORTAL_SMTP_USERNAME"`
			Password  string `yaml:"password" env:"PORTAL_SMTP_PASSWORD"`
			FromName  string `yaml:"from_name" env:"PORTAL_SMTP_FROM_NAME"`
			FromEmail string `yaml:"from_email" env:"PORTAL_SMTP_FROM_EMAIL"`
		} `yaml:"smtp"`
	} `yaml:"gateway"`

	Logging struct {
		Level  string `yaml:"level" env:"PORTAL_LOG_LEVEL"`
		Format string `yaml:"format" env:"PORTAL_LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}

			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadEnvFiles loads .env files into the process environment without
// overriding variables that are already set
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.API.BaseURL = "http://127.0.0.1:8000/api"
	config.API.Timeout = "10s"
	config.API.AuthScheme = AuthSchemeBearer

	config.DataSource = DataSourceLive

	config.Session.Store = StoreSQLite
	config.Session.Path = defaultSessionPath()
	config.Session.TokenKey = "authToken"

	config.Gateway.Port = "8000"
	config.Gateway.Mode = "development"
	config.Gateway.StoragePath = filepath.Join(os.TempDir(), "portal-media")
	config.Gateway.JWTSecret = "portal-mock-secret"
	config.Gateway.TokenTTL = "24h"
	config.Gateway.PageSize = helpers.DefaultPageSize
	config.Gateway.FrontendURL = "http://localhost:5173"
	config.Gateway.SMTP.Port = 587
	config.Gateway.SMTP.FromName = "Portal"
	config.Gateway.SMTP.FromEmail = "noreply@portal.local"

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "portal", "storage.db")
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	parsed, err := url.Parse(config.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api base URL %q must include a scheme and host", config.API.BaseURL)
	}

	timeout, err := time.ParseDuration(config.API.Timeout)
	if err != nil {
		return fmt.Errorf("invalid api timeout format: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}

	switch config.API.AuthScheme {
	case AuthSchemeBearer, AuthSchemeToken:
	default:
		return fmt.Errorf("api auth scheme must be %q or %q, got %q", AuthSchemeBearer, AuthSchemeToken, config.API.AuthScheme)
	}

	switch config.DataSource {
	case DataSourceLive, DataSourceMock:
	default:
		return fmt.Errorf("data source must be %q or %q, got %q", DataSourceLive, DataSourceMock, config.DataSource)
	}

	switch config.Session.Store {
	case StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("session store must be %q or %q, got %q", StoreSQLite, StoreMemory, config.Session.Store)
	}
	if config.Session.Store == StoreSQLite && config.Session.Path == "" {
		return fmt.Errorf("session path is required for the sqlite store")
	}
	if config.Session.TokenKey == "" {
		return fmt.Errorf("session token key is required")
	}

	if config.Gateway.JWTSecret == "" {
		return fmt.Errorf("gateway JWT secret is required")
	}
	if _, err := time.ParseDuration(config.Gateway.TokenTTL); err != nil {
		return fmt.Errorf("invalid gateway token TTL format: %w", err)
	}
	if config.Gateway.PageSize <= 0 {
		return fmt.Errorf("gateway page size must be positive")
	}

	return nil
}

// Timeout returns the API request timeout
func (c *Config) Timeout() time.Duration {
	return helpers.ParseDuration(c.API.Timeout, 10*time.Second)
}

// TokenTTL returns the lifetime of tokens issued by the mock gateway
func (c *Config) TokenTTL() time.Duration {
	return helpers.ParseDuration(c.Gateway.TokenTTL, 24*time.Hour)
}

// IsMock reports whether requests go to the in-process mock gateway
func (c *Config) IsMock() bool {
	return c.DataSource == DataSourceMock
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
