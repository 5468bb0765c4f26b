package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboardhq/taskboard-api/internal/domain"
	"github.com/taskboardhq/taskboard-api/internal/pagination"
)

// TaskListQuery describes the single bounded range query the task store
// exposes. The predicate is always owner-scoped; After, when set, is an
// exclusive seek position on the active ordering key.
type TaskListQuery struct {
	// OwnerID scopes the query to one owner's rows. Required.
	OwnerID uuid.UUID

	// Priority, when non-nil, restricts rows to exactly that priority.
	Priority *int

	// Status, when non-nil, restricts rows to exactly that status.
	Status *domain.TaskStatus

	// SortByPriority selects the ordering key: (priority, id) when true,
	// (id) alone when false. The id component makes the order total.
	SortByPriority bool

	// After resumes strictly after this ordering key. Its mode must match
	// SortByPriority; the planner guarantees that by decoding the cursor
	// for the active mode.
	After *pagination.Cursor

	// Limit bounds the number of rows returned. Must be positive; the
	// planner passes page size + 1 to detect a further page.
	Limit int
}

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create saves a new task and assigns its ID from the store's
	// monotonically increasing sequence. The task's ID field is populated
	// on return.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID, scoped to the owner. Returns
	// ErrTaskNotFound when no such task exists for that owner — whether
	// the row is absent or owned by someone else.
	GetByID(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Task, error)

	// List executes the range query and returns rows in ordering-key
	// order. Returns at most q.Limit rows; an empty slice when nothing
	// matches.
	List(ctx context.Context, q TaskListQuery) ([]*domain.Task, error)

	// Update persists the task's mutable fields (title, description,
	// priority, status, due_date, updated_at), keyed by (owner, id).
	// Returns ErrTaskNotFound under the same ownership rule as GetByID.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task owned by ownerID. Hard delete; returns
	// ErrTaskNotFound when nothing was deleted, so a repeated delete
	// fails rather than silently succeeding.
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error
}
