// Command cf-server starts the ContentForge REST API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/avaskin/contentforge/internal/ai"
	"github.com/avaskin/contentforge/internal/ai/openai"
	"github.com/avaskin/contentforge/internal/config"
	"github.com/avaskin/contentforge/internal/limiter"
	"github.com/avaskin/contentforge/internal/migrate"
	"github.com/avaskin/contentforge/internal/repository/postgres"
	httpserver "github.com/avaskin/contentforge/internal/server/http"
	"github.com/avaskin/contentforge/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and starts the HTTP server.
func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.App.Addr),
	)

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("missing JWT_SECRET")
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.Database.DSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("pgxpool.New", zap.Error(err))
	}
	defer pool.Close()

	// Repositories
	db := &postgres.DB{Pool: pool}
	userRepo := postgres.NewUserRepo(db)
	contentRepo := postgres.NewContentRepo(db)

	lim := limiter.NewPG(pool, cfg.Auth.LoginWindow, cfg.Auth.LoginMaxFail, cfg.Auth.LoginBlock)

	// Generator: real provider when a key is configured, canned templates otherwise.
	var gen ai.Generator = ai.Mock{}
	if cfg.AI.OpenAIAPIKey != "" {
		gen = openai.NewProvider(cfg.AI.OpenAIBaseURL, cfg.AI.OpenAIAPIKey, cfg.AI.Model)
	} else {
		logger.Warn("OPENAI_API_KEY not set, serving mock content")
	}

	// Services
	authSvc := service.NewAuthService(userRepo, []byte(cfg.Auth.JWTSecret), cfg.Auth.AccessTTL, lim)
	contentSvc := service.NewContentService(contentRepo, gen)

	app := httpserver.New(authSvc, contentSvc, cfg, logger).App()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr))
		errCh <- app.Listen(cfg.App.Addr)
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
