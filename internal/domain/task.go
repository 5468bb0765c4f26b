package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Priority and title bounds for tasks.
const (
	MinPriority = 1
	MaxPriority = 10

	MaxTitleLength = 255
)

// Task-specific validation errors. All wrap ErrValidation so callers can
// classify them with a single errors.Is check.
var (
	// ErrTaskOwnerEmpty is returned when a task's owner ID is empty or nil.
	ErrTaskOwnerEmpty = fmt.Errorf("%w: task owner ID cannot be empty", ErrValidation)

	// ErrTitleEmpty is returned when a task's title is empty.
	ErrTitleEmpty = fmt.Errorf("%w: title cannot be empty", ErrValidation)

	// ErrTitleTooLong is returned when a task's title exceeds MaxTitleLength.
	ErrTitleTooLong = fmt.Errorf("%w: title cannot exceed %d characters", ErrValidation, MaxTitleLength)

	// ErrPriorityOutOfRange is returned when a priority is outside [MinPriority, MaxPriority].
	// Out-of-range priorities are rejected, never clamped.
	ErrPriorityOutOfRange = fmt.Errorf(
		"%w: priority must be between %d and %d", ErrValidation, MinPriority, MaxPriority)

	// ErrInvalidStatus is returned when a status value is not one of the
	// enumerated task statuses.
	ErrInvalidStatus = fmt.Errorf("%w: invalid task status", ErrValidation)
)

// TaskStatus enumerates the lifecycle states of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsValid reports whether the status is one of the enumerated values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// CanTransitionTo reports whether the state machine permits moving from s
// to next. The machine is pending -> in_progress -> completed, with any
// non-terminal state allowed to move to cancelled. Completed and cancelled
// are absorbing.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if next == TaskStatusCancelled {
		return true
	}

	switch s {
	case TaskStatusPending:
		return next == TaskStatusInProgress
	case TaskStatusInProgress:
		return next == TaskStatusCompleted
	}
	return false
}

// Task represents a unit of work owned by a single user. The ID is assigned
// by the store on creation and increases strictly, which makes it the
// deterministic tie-break for priority-ordered pagination. OwnerID is set
// once at creation and never mutated.
type Task struct {
	ID          int64      `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Priority    int        `json:"priority"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by ownerID with status pending and both
// timestamps set to now. The ID stays zero until the store assigns it.
// Returns an error if validation fails.
func NewTask(
	ownerID uuid.UUID,
	title string,
	description *string,
	priority int,
	dueDate *time.Time,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      TaskStatusPending,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.OwnerID == uuid.Nil {
		return ErrTaskOwnerEmpty
	}

	if err := ValidateTitle(t.Title); err != nil {
		return err
	}

	if err := ValidatePriority(t.Priority); err != nil {
		return err
	}

	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}

	return nil
}

// ValidateTitle checks the title invariant: non-empty, at most
// MaxTitleLength characters. Counted in runes to match the store's
// length() CHECK constraint.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrTitleEmpty
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// ValidatePriority checks the priority invariant. Values outside
// [MinPriority, MaxPriority] are rejected, never clamped.
func ValidatePriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return ErrPriorityOutOfRange
	}
	return nil
}
