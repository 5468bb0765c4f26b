package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskboardhq/taskboard-api/internal/config"
	"github.com/taskboardhq/taskboard-api/internal/platform/postgres"
	"github.com/taskboardhq/taskboard-api/internal/service/auth"
	"github.com/taskboardhq/taskboard-api/internal/service/tasks"
	"github.com/taskboardhq/taskboard-api/internal/store"
)

// application holds the wired dependencies for the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore

	taskService      tasks.TaskService
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
}

// newApplication wires stores and services from configuration. Every store
// call runs under the pool wait timeout, so an exhausted pool surfaces as
// unavailable instead of hanging.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	waitTimeout := time.Duration(cfg.Database.PoolWaitTimeoutMS) * time.Millisecond

	taskStore := postgres.NewPostgresTaskStore(db, waitTimeout, logger)
	userStore := postgres.NewPostgresUserStore(db, waitTimeout, logger)

	taskService, err := tasks.NewService(taskStore, cfg.Pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        userStore,
		taskService:      taskService,
		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(cfg.Auth.BcryptCost),
	}, nil
}
