package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/razdine10/Groovify/internal/app"
	"github.com/razdine10/Groovify/internal/config"
	"github.com/razdine10/Groovify/internal/database"
	"github.com/razdine10/Groovify/internal/logging"
	"github.com/razdine10/Groovify/internal/redis"
	"github.com/razdine10/Groovify/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(cfg *config.Config) *redis.Client {
	client, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	theme, err := config.LoadTheme(cfg.ThemeFile)
	if err != nil {
		slog.Error("Failed to load theme", "error", err)
		os.Exit(1)
	}

	pool := setupDB(cfg)
	defer pool.Close()

	healthChecks := []server.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
	}

	// Redis is optional. Without it reports hit PostgreSQL directly.
	var cache *redis.ReportCache
	if cfg.RedisURL != "" {
		redisClient := setupRedis(cfg)
		defer func() { _ = redisClient.Close() }()

		cache = redis.NewReportCache(redisClient.Underlying(), cfg.CacheTTL)
		healthChecks = append(healthChecks, server.HealthCheck{Name: "redis", Check: redisClient.Ping})
	}

	financeRepo := database.NewFinanceRepo(pool)
	customerRepo := database.NewCustomerRepo(pool)
	musicRepo := database.NewMusicRepo(pool)
	employeeRepo := database.NewEmployeeRepo(pool)
	alertRepo := database.NewAlertRepo(pool)
	schemaRepo := database.NewSchemaRepo(pool)

	appSvc := app.NewService(financeRepo, customerRepo, musicRepo, employeeRepo, alertRepo, schemaRepo, financeRepo, cache, clock)

	srv := server.NewServer(cfg, theme, appSvc, healthChecks, clock)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
