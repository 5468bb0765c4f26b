// Package main is the entry point for the taskboard API server: an
// authenticated, cursor-paginated task service backed by PostgreSQL.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/taskboardhq/taskboard-api/internal/config"
	"github.com/taskboardhq/taskboard-api/internal/platform/logger"
	"github.com/taskboardhq/taskboard-api/internal/redact"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status) and exit")
	migrationsDir := flag.String("migrations-dir", "migrations",
		"directory containing goose migration files")
	flag.Parse()

	if err := run(*migrateCmd, *migrationsDir); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run(migrateCmd, migrationsDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"pool_size", cfg.Database.PoolSize)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %s", redact.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", "error", redact.Error(err))
		}
	}()

	if migrateCmd != "" {
		return runMigrations(db, migrateCmd, migrationsDir, appLogger)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	return app.startHTTPServer(app.setupRouter())
}
