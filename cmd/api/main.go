// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Newsgate HTTP gateway.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations (idempotent).
//  5. Wire the token service, the auth service and the downstream clients.
//  6. Start HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/newsgate/internal/api"
	"github.com/taibuivan/newsgate/internal/content/comment"
	"github.com/taibuivan/newsgate/internal/content/news"
	"github.com/taibuivan/newsgate/internal/platform/config"
	"github.com/taibuivan/newsgate/internal/platform/constants"
	"github.com/taibuivan/newsgate/internal/platform/httpclient"
	"github.com/taibuivan/newsgate/internal/platform/middleware"
	"github.com/taibuivan/newsgate/internal/platform/migration"
	pgstore "github.com/taibuivan/newsgate/internal/platform/postgres"
	redisstore "github.com/taibuivan/newsgate/internal/platform/redis"
	"github.com/taibuivan/newsgate/internal/platform/sec"
	"github.com/taibuivan/newsgate/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("news_service", cfg.NewsServiceURL),
		slog.String("comment_service", cfg.CommentServiceURL),
	)

	// Misconfiguration should fail fast rather than hang.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Storage ────────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log, pgstore.WithMaxConns(cfg.DBMaxConns))
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecretKey, constants.AuthIssuer, cfg.JWTTokenTTL)
	must(log, err, "initialize token service")

	authService := auth.NewService(
		auth.NewUserRepository(pool),
		tokens,
		log,
		auth.WithThrottle(auth.NewAttemptRepository(rdb), cfg.SignInMaxAttempts, cfg.SignInAttemptWindow),
	)

	newsClient := news.NewHTTPClient(httpclient.New("News", cfg.NewsServiceURL, cfg.DownstreamTimeout))
	commentClient := comment.NewHTTPClient(httpclient.New("Comment", cfg.CommentServiceURL, cfg.DownstreamTimeout))

	liveness, readiness := api.NewHealthHandlers(log, probes(pool, rdb)...)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		News:      news.NewHandler(news.NewService(newsClient, log)),
		Comment:   comment.NewHandler(comment.NewService(commentClient, log)),
	}

	security := api.Security{
		Verifier: tokens,
		Resolver: authService,
		Policy:   middleware.DefaultPolicy(),
	}

	// The rate limiter's janitor stops with this context.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, security, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

func probes(pool *pgxpool.Pool, rdb *redis.Client) []api.Probe {
	return []api.Probe{
		{Name: "postgres", Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
	}
}

// must logs a structured fatal error and exits if err is non-nil.
// Only used during startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
