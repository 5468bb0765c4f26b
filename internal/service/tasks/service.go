package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskboardhq/taskboard-api/internal/config"
	"github.com/taskboardhq/taskboard-api/internal/domain"
	"github.com/taskboardhq/taskboard-api/internal/pagination"
	"github.com/taskboardhq/taskboard-api/internal/platform/logger"
	"github.com/taskboardhq/taskboard-api/internal/store"
)

// ListParams carries the caller's retrieval request before planning.
// Limit distinguishes "not supplied" (nil, use the default) from an
// explicit value; explicit non-positive values are rejected.
type ListParams struct {
	Priority       *int
	Status         *domain.TaskStatus
	SortByPriority bool
	Cursor         string
	Limit          *int
}

// CreateInput carries the caller-supplied fields for a new task.
type CreateInput struct {
	Title       string
	Description *string
	Priority    int
	DueDate     *time.Time
}

// Page is one page of results plus the opaque token for the next page.
// NextCursor is empty on the final page.
type Page struct {
	Tasks      []*domain.Task
	NextCursor string
}

// TaskService is the application core for tasks: retrieval planning and
// lifecycle writes, both scoped to the authenticated owner.
type TaskService interface {
	// List plans and executes one bounded page query. Returns
	// ErrInvalidFilter, ErrInvalidLimit, or pagination.ErrInvalidCursor
	// on bad input.
	List(ctx context.Context, ownerID uuid.UUID, params ListParams) (*Page, error)

	// Create validates and persists a new task with status pending.
	Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*domain.Task, error)

	// Get retrieves a single task. A task owned by someone else is
	// indistinguishable from a missing one: both are ErrTaskNotFound.
	Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Task, error)

	// Update applies a partial update, enforcing field invariants and the
	// status state machine. Returns domain.ErrInvalidTransition when the
	// requested status move is not permitted.
	Update(ctx context.Context, ownerID uuid.UUID, id int64, patch TaskPatch) (*domain.Task, error)

	// Delete removes a task. Deleting twice returns ErrTaskNotFound the
	// second time.
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error
}

// Service implements TaskService on top of a TaskStore.
type Service struct {
	taskStore       store.TaskStore
	defaultPageSize int
	maxPageSize     int
}

var _ TaskService = (*Service)(nil)

// NewService creates the task service. Page size bounds come from
// configuration and are validated at load time.
func NewService(taskStore store.TaskStore, cfg config.PaginationConfig) (*Service, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if cfg.DefaultPageSize < 1 || cfg.MaxPageSize < cfg.DefaultPageSize {
		return nil, fmt.Errorf("invalid pagination bounds: default=%d max=%d",
			cfg.DefaultPageSize, cfg.MaxPageSize)
	}

	return &Service{
		taskStore:       taskStore,
		defaultPageSize: cfg.DefaultPageSize,
		maxPageSize:     cfg.MaxPageSize,
	}, nil
}

// List resolves the request into a single seek query: validate the filter,
// resolve the effective limit, decode the cursor under the active sort
// mode, then fetch limit+1 rows so the presence of a further page is known
// without a second query.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, params ListParams) (*Page, error) {
	log := logger.FromContext(ctx)

	if params.Priority != nil {
		if err := domain.ValidatePriority(*params.Priority); err != nil {
			return nil, fmt.Errorf("%w: priority %d", ErrInvalidFilter, *params.Priority)
		}
	}
	if params.Status != nil && !params.Status.IsValid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidFilter, *params.Status)
	}

	limit := s.defaultPageSize
	if params.Limit != nil {
		if *params.Limit <= 0 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, *params.Limit)
		}
		limit = *params.Limit
		if limit > s.maxPageSize {
			limit = s.maxPageSize
		}
	}

	mode := pagination.SortByID
	if params.SortByPriority {
		mode = pagination.SortByPriority
	}

	var after *pagination.Cursor
	if params.Cursor != "" {
		c, err := pagination.Decode(params.Cursor, mode)
		if err != nil {
			return nil, err
		}
		after = &c
	}

	rows, err := s.taskStore.List(ctx, store.TaskListQuery{
		OwnerID:        ownerID,
		Priority:       params.Priority,
		Status:         params.Status,
		SortByPriority: params.SortByPriority,
		After:          after,
		Limit:          limit + 1,
	})
	if err != nil {
		log.Error("task list query failed",
			"error", err,
			"owner_id", ownerID,
			"sort_mode", mode)
		return nil, err
	}

	page := &Page{Tasks: rows}
	if len(rows) > limit {
		page.Tasks = rows[:limit]

		last := page.Tasks[limit-1]
		next := pagination.Cursor{Mode: mode, ID: last.ID}
		if params.SortByPriority {
			next.Priority = last.Priority
		}

		token, err := pagination.Encode(next)
		if err != nil {
			log.Error("failed to encode next cursor",
				"error", err,
				"owner_id", ownerID,
				"task_id", last.ID)
			return nil, fmt.Errorf("failed to encode next cursor: %w", err)
		}
		page.NextCursor = token
	}

	return page, nil
}

// Create validates the input via the domain constructor and persists the
// task. New tasks always start pending; the store assigns the ID.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	task, err := domain.NewTask(ownerID, input.Title, input.Description, input.Priority, input.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			"error", err,
			"owner_id", ownerID)
		return nil, err
	}

	log.Debug("task created",
		"task_id", task.ID,
		"owner_id", ownerID)
	return task, nil
}

// Get retrieves one task scoped to the owner.
func (s *Service) Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Task, error) {
	return s.taskStore.GetByID(ctx, ownerID, id)
}

// Update loads the task under the ownership predicate, validates and
// applies the patch, and persists the result. A status field equal to the
// current status is a no-op, not a transition, so it never trips the state
// machine.
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, id int64, patch TaskPatch) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	task, err := s.taskStore.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// An empty patch still enforces ownership above, but writes nothing.
	if patch.IsEmpty() {
		return task, nil
	}

	if patch.Status.IsSet() {
		next := patch.Status.Value()
		if next != task.Status && !task.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: %s -> %s",
				domain.ErrInvalidTransition, task.Status, next)
		}
		task.Status = next
	}
	if patch.Title.IsSet() {
		task.Title = patch.Title.Value()
	}
	if patch.Description.IsSet() {
		if patch.Description.IsNull() {
			task.Description = nil
		} else {
			v := patch.Description.Value()
			task.Description = &v
		}
	}
	if patch.Priority.IsSet() {
		task.Priority = patch.Priority.Value()
	}
	if patch.DueDate.IsSet() {
		if patch.DueDate.IsNull() {
			task.DueDate = nil
		} else {
			v := patch.DueDate.Value()
			task.DueDate = &v
		}
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.taskStore.Update(ctx, task); err != nil {
		log.Error("failed to update task",
			"error", err,
			"task_id", id,
			"owner_id", ownerID)
		return nil, err
	}

	return task, nil
}

// Delete removes the task owned by ownerID.
func (s *Service) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	log := logger.FromContext(ctx)

	if err := s.taskStore.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	log.Debug("task deleted",
		"task_id", id,
		"owner_id", ownerID)
	return nil
}
