package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/lobby-accounts/internal/api"
	"github.com/mcoot/lobby-accounts/internal/config"
	"github.com/mcoot/lobby-accounts/internal/factory"
	"github.com/mcoot/lobby-accounts/internal/services/auth"
	redisstorage "github.com/mcoot/lobby-accounts/internal/storage/redis"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		AuthConfig:  auth.Config{SessionDuration: cfg.TokenTTL},
		BcryptCost:  cfg.BcryptCost,
		Logger:      logger,
		StorageType: cfg.StorageType,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close failed", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedAdmin() {
		if err := app.Bootstrap(ctx, cfg.AdminName, cfg.AdminPassword, cfg.AdminColour); err != nil {
			logger.Error("admin bootstrap failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		logger.Warn("no admin password configured, skipping admin bootstrap")
	}

	go sweepTokens(ctx, app.AuthService)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		AccountService:  app.AccountService,
		RegistryService: app.RegistryService,
		LobbyController: app.LobbyController,
		Hub:             app.Hub,
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = cfg.Host
	serverCfg.Port = cfg.Port
	server := api.NewServer(router, serverCfg, logger)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// sweepTokens drops expired login tokens until ctx ends
func sweepTokens(ctx context.Context, authService *auth.Service) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			authService.CleanExpiredSessions()
		}
	}
}
