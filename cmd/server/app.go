package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/gate-api/internal/config"
	"github.com/phrazzld/gate-api/internal/platform/logger"
	"github.com/phrazzld/gate-api/internal/platform/postgres"
	"github.com/phrazzld/gate-api/internal/ratelimit"
	"github.com/phrazzld/gate-api/internal/service/auth"
	"github.com/phrazzld/gate-api/internal/store"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when no database URL is configured; principals then
	// come from the in-memory store.
	db         *sql.DB
	principals store.PrincipalStore

	authority auth.TokenAuthority
	guard     *auth.Guard
	limiter   *ratelimit.Limiter
}

// newApplication loads configuration and constructs every service the
// router needs, in dependency order.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"env", cfg.Server.Env,
		"requests_per_minute", cfg.RateLimit.RequestsPerMinute,
		"burst_capacity", cfg.RateLimit.BurstCapacity)

	app := &application{config: cfg, logger: log}

	if cfg.Database.URL != "" {
		db, err := setupDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.principals = postgres.NewPrincipalStore(db)
	} else {
		log.Warn("no database URL configured, using in-memory principal store")
		app.principals = store.NewMemoryPrincipalStore()
	}

	authority, err := auth.NewTokenAuthority(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token authority: %w", err)
	}
	app.authority = authority
	app.guard = auth.NewGuard(authority, app.principals)

	app.limiter = ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		BurstCapacity:     cfg.RateLimit.BurstCapacity,
		EvictionIdle:      time.Duration(cfg.RateLimit.EvictionIdleMinutes) * time.Minute,
	})

	return app, nil
}

// cleanup releases resources held by the application. Called after the
// HTTP server has drained.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
