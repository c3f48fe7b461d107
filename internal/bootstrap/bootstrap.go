package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/mustso/portal/internal/app/controllers"
	"github.com/mustso/portal/internal/app/gateway"
	appRepos "github.com/mustso/portal/internal/app/repositories"
	appRoutes "github.com/mustso/portal/internal/app/routes"
	"github.com/mustso/portal/internal/app/services"
	"github.com/mustso/portal/internal/app/session"
	"github.com/mustso/portal/internal/config"
	appMiddleware "github.com/mustso/portal/internal/middleware"
	pkgAuth "github.com/mustso/portal/internal/pkg/auth"
	"github.com/mustso/portal/internal/pkg/email"
	"github.com/mustso/portal/internal/pkg/filestorage"
	"github.com/mustso/portal/internal/pkg/logger"
	"github.com/mustso/portal/internal/pkg/tokenstore"
	"github.com/mustso/portal/internal/pkg/validation"
	"github.com/mustso/portal/internal/seed"
)

// Gateway holds the mock gateway dependencies
type Gateway struct {
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	FileStorage            *filestorage.LocalStorage
	EmailService           *email.EmailServiceImpl
	AuthMiddleware         *appMiddleware.AuthMiddleware
	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	AnnouncementController *appControllers.AnnouncementController
	LeaderController       *appControllers.LeaderController
	CollegeController      *appControllers.CollegeController
	Router                 *gin.Engine
	Logger                 zerolog.Logger
}

// Client holds the client-side dependencies
type Client struct {
	Store    tokenstore.Store
	Session  *session.Session
	API      *gateway.Client
	Services *services.Services
	// Gateway is set when the mock data source is in use
	Gateway *Gateway
	Logger  zerolog.Logger
}

// Close releases the token store
func (c *Client) Close() error {
	return c.Store.Close()
}

// LoadConfigAndSetupLogger loads .env files, configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string, envFiles ...string) (*config.Config, zerolog.Logger, error) {
	if err := config.LoadEnvFiles(envFiles...); err != nil {
		logger.Error().Err(err).Msg("Failed to load env files")
		return nil, zerolog.Logger{}, err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Debug().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger configures the global logger from cfg
func SetupLogger(cfg *config.Config) zerolog.Logger {
	return logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
}

// BuildGateway builds the seeded mock gateway. now anchors seed
// timestamps; the zero time means time.Now.
func BuildGateway(ctx context.Context, cfg *config.Config, lgr zerolog.Logger, now time.Time) (*Gateway, error) {
	if now.IsZero() {
		now = time.Now()
	}
	gw := &Gateway{Logger: lgr.With().Str("component", "mock-gateway").Logger()}

	gw.Repos = appRepos.NewRepositories(nil)
	if err := seed.CreateDefaultData(ctx, gw.Repos, now, gw.Logger); err != nil {
		return nil, fmt.Errorf("failed to seed mock data: %w", err)
	}

	var err error
	gw.FileStorage, err = filestorage.NewLocalStorage(cfg.Gateway.StoragePath, filestorage.DefaultURLPrefix)
	if err != nil {
		gw.Logger.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	gw.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.Gateway.JWTSecret,
		AccessTokenExp: cfg.TokenTTL(),
		TokenIssuer:    "portal-mock",
	})

	gw.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.Gateway.SMTP.Host,
		Port:      cfg.Gateway.SMTP.Port,
		Username:  cfg.Gateway.SMTP.Username,
		Password:  cfg.Gateway.SMTP.Password,
		FromName:  cfg.Gateway.SMTP.FromName,
		FromEmail: cfg.Gateway.SMTP.FromEmail,
		BaseURL:   cfg.Gateway.FrontendURL,
	}, gw.Logger)

	gw.AuthMiddleware = appMiddleware.NewAuthMiddleware(gw.JWTService, gw.Repos.UserRepository, gw.Repos.TokenRepository)

	gw.AuthController = appControllers.NewAuthController(gw.Repos.UserRepository, gw.Repos.TokenRepository, gw.JWTService, gw.FileStorage, gw.EmailService, gw.Logger)
	gw.UserController = appControllers.NewUserController(gw.Repos.UserRepository, gw.Logger)
	gw.AnnouncementController = appControllers.NewAnnouncementController(gw.Repos.AnnouncementRepository, gw.Repos.UserRepository, gw.FileStorage, gw.Logger)
	gw.LeaderController = appControllers.NewLeaderController(gw.Repos.LeaderRepository, gw.FileStorage, gw.Logger)
	gw.CollegeController = appControllers.NewCollegeController(gw.Repos.CollegeRepository, gw.FileStorage, gw.Logger)

	gw.Router = SetupRouter(cfg, gw)
	return gw, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, gw *Gateway) *gin.Engine {
	if strings.ToLower(cfg.Gateway.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	validation.RegisterRules()
	appControllers.SetPageSize(cfg.Gateway.PageSize)

	router := gin.New()
	router.Use(appMiddleware.Recovery(), appMiddleware.RequestLogger(gw.Logger))

	appRoutes.SetupRouter(router,
		gw.AuthController,
		gw.UserController,
		gw.AnnouncementController,
		gw.LeaderController,
		gw.CollegeController,
		gw.AuthMiddleware,
		gw.FileStorage,
		gw.FileStorage.URLPrefix(),
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return router
}

// OpenTokenStore opens the configured token store
func OpenTokenStore(cfg *config.Config, lgr zerolog.Logger) (tokenstore.Store, error) {
	if cfg.Session.Store == config.StoreMemory {
		return tokenstore.NewMemoryStore(), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Session.Path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	store, err := tokenstore.NewSQLiteStore(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	lgr.Debug().Str("path", store.Path()).Msg("Session store opened")
	return store, nil
}

// BuildClient wires the token store, session, gateway client and
// services. With the mock data source the gateway client talks to an
// in-process mock gateway.
func BuildClient(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Client, error) {
	store, err := OpenTokenStore(cfg, lgr)
	if err != nil {
		return nil, err
	}

	c := &Client{Store: store, Logger: lgr}
	c.Session = session.New(store,
		session.WithTokenKey(cfg.Session.TokenKey),
		session.WithLogger(lgr.With().Str("component", "session").Logger()),
	)

	gwCfg := gateway.Config{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.Timeout(),
		AuthScheme: cfg.API.AuthScheme,
	}
	if cfg.IsMock() {
		c.Gateway, err = BuildGateway(ctx, cfg, lgr, time.Time{})
		if err != nil {
			store.Close()
			return nil, err
		}
		gwCfg.Transport = gateway.NewHandlerTransport(c.Gateway.Router)
		lgr.Debug().Msg("Using the in-process mock gateway")
	}

	c.API, err = gateway.NewClient(gwCfg, c.Session, lgr)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}

	c.Services = services.New(c.API, c.Session, lgr)
	return c, nil
}
