package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/taskboardhq/taskboard-api/internal/domain"
	"github.com/taskboardhq/taskboard-api/internal/platform/logger"
	"github.com/taskboardhq/taskboard-api/internal/store"
)

// Retry policy for transient transport failures. The request is only
// retried when the driver guarantees it was never sent.
const (
	maxTransientRetries = 2
	retryBaseDelay      = 50 * time.Millisecond
)

// taskColumns is the column list shared by every task SELECT.
const taskColumns = "id, owner_id, title, description, priority, status, due_date, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db          store.DBTX
	logger      *slog.Logger
	waitTimeout time.Duration
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. waitTimeout bounds how long a single operation may
// wait on the connection pool plus the round trip; when it elapses the
// operation fails as store.ErrUnavailable.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, waitTimeout time.Duration, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:          db,
		logger:      logger.With(slog.String("component", "task_store")),
		waitTimeout: waitTimeout,
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface.
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create. The tasks.id sequence assigns
// the monotonically increasing ID that pagination tie-breaks on.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (owner_id, title, description, priority, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := s.withRetry(ctx, func(ctx context.Context) error {
		return s.db.QueryRowContext(
			ctx,
			query,
			task.OwnerID,
			task.Title,
			task.Description,
			task.Priority,
			task.Status,
			task.DueDate,
			task.CreatedAt,
			task.UpdatedAt,
		).Scan(&task.ID)
	})
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("owner_id", task.OwnerID.String()))
		return MapError(err)
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.String("owner_id", task.OwnerID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID. The owner predicate is part
// of the lookup, so a foreign task is indistinguishable from an absent one.
func (s *PostgresTaskStore) GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1 AND owner_id = $2`, taskColumns)

	var task domain.Task
	err := s.withRetry(ctx, func(ctx context.Context) error {
		return scanTask(s.db.QueryRowContext(ctx, query, id, ownerID), &task)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}

	return &task, nil
}

// List implements store.TaskStore.List: the single bounded range query.
// The seek predicate compares row tuples so PostgreSQL can serve it from a
// prefix of the (owner_id, priority, id) or (owner_id, id) index.
func (s *PostgresTaskStore) List(ctx context.Context, q store.TaskListQuery) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := listTasksQuery(q)

	var tasks []*domain.Task
	err := s.withRetry(ctx, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer func() {
			if err := rows.Close(); err != nil {
				log.Error("failed to close rows", slog.String("error", err.Error()))
			}
		}()

		tasks = tasks[:0]
		for rows.Next() {
			var task domain.Task
			if err := scanTask(rows, &task); err != nil {
				return err
			}
			tasks = append(tasks, &task)
		}
		return rows.Err()
	})
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("owner_id", q.OwnerID.String()))
		return nil, MapError(err)
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// Update implements store.TaskStore.Update. Owner scoping in the WHERE
// clause enforces row-level access; last writer wins on updated_at.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, status = $4, due_date = $5, updated_at = $6
		WHERE id = $7 AND owner_id = $8
	`

	var result sql.Result
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.db.ExecContext(
			ctx,
			query,
			task.Title,
			task.Description,
			task.Priority,
			task.Status,
			task.DueDate,
			task.UpdatedAt,
			task.ID,
			task.OwnerID,
		)
		return err
	})
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete. Hard delete; a second delete of
// the same ID reports not found.
func (s *PostgresTaskStore) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`

	var result sql.Result
	err := s.withRetry(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.db.ExecContext(ctx, query, id, ownerID)
		return err
	})
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// withRetry runs op under the pool wait timeout, retrying a bounded number
// of times on transient transport failures before giving up. Cancellation
// of the caller's context stops the operation and the backoff immediately.
func (s *PostgresTaskStore) withRetry(ctx context.Context, op func(context.Context) error) error {
	if s.waitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.waitTimeout)
		defer cancel()
	}

	backoff := retry.WithMaxRetries(maxTransientRetries, retry.NewFibonacci(retryBaseDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err != nil && IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row in taskColumns order.
func scanTask(row rowScanner, task *domain.Task) error {
	var status string
	err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&status,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return err
	}
	task.Status = domain.TaskStatus(status)
	return nil
}

// listTasksQuery builds the SQL and arguments for a TaskListQuery. Kept
// pure so the generated predicate and ordering can be tested without a
// database.
func listTasksQuery(q store.TaskListQuery) (string, []any) {
	var sb strings.Builder
	args := []any{q.OwnerID}

	fmt.Fprintf(&sb, "SELECT %s FROM tasks WHERE owner_id = $1", taskColumns)

	if q.Priority != nil {
		args = append(args, *q.Priority)
		fmt.Fprintf(&sb, " AND priority = $%d", len(args))
	}

	if q.Status != nil {
		args = append(args, string(*q.Status))
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}

	if q.After != nil {
		if q.SortByPriority {
			args = append(args, q.After.Priority, q.After.ID)
			fmt.Fprintf(&sb, " AND (priority, id) > ($%d, $%d)", len(args)-1, len(args))
		} else {
			args = append(args, q.After.ID)
			fmt.Fprintf(&sb, " AND id > $%d", len(args))
		}
	}

	if q.SortByPriority {
		sb.WriteString(" ORDER BY priority ASC, id ASC")
	} else {
		sb.WriteString(" ORDER BY id ASC")
	}

	args = append(args, q.Limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))

	return sb.String(), args
}
