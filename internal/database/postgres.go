package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/razdine10/Groovify/internal/metrics"
)

// Connect opens a pgx connection pool against the Chinook database and
// verifies it with a ping. The schema is external and read-only; no
// migrations run here.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Connection pool settings for production use
	cfg.MaxConns = 25
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// observeQuery records query latency for a report. Use as
// defer observeQuery("finance_kpis")().
func observeQuery(report string) func() {
	start := time.Now()
	return func() {
		metrics.QueryDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
	}
}
