package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/mustso/portal/internal/bootstrap"
	"github.com/mustso/portal/internal/config"
	"github.com/mustso/portal/internal/pkg/logger"
	"github.com/mustso/portal/internal/server"
)

func main() {
	configPath := flag.String("config", config.GetEnv("PORTAL_CONFIG", "configs/config.yaml"), "path to the config file")
	envFile := flag.String("env", "", "optional .env file")
	flag.Parse()

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath, envFiles...)
	if err != nil {
		os.Exit(1)
	}

	ctx := context.Background()
	gw, err := bootstrap.BuildGateway(ctx, cfg, lgr, time.Time{})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build mock gateway")
		os.Exit(1)
	}

	srv := server.NewServer(cfg.Gateway.Port, gw.Router, lgr)
	lgr.Info().
		Str("addr", srv.Addr()).
		Str("media", gw.FileStorage.Root()).
		Msg("Mock gateway ready; demo logins john.doe@company.com/password123, sarah.johnson@company.com/admin123")

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}
	logger.Info().Msg("Mock gateway finished gracefully.")
}
