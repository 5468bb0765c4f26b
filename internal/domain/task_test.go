package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	desc := "write the design doc"
	due := time.Now().UTC().Add(48 * time.Hour)

	task, err := NewTask(ownerID, "Design review", &desc, 3, &due)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID != 0 {
		t.Errorf("Expected zero ID before store assignment, got %d", task.ID)
	}
	if task.OwnerID != ownerID {
		t.Errorf("Expected owner ID %s, got %s", ownerID, task.OwnerID)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("Expected status %q, got %q", TaskStatusPending, task.Status)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Error("Expected created_at == updated_at on creation")
	}
}

func TestNewTaskValidation(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	cases := []struct {
		name     string
		ownerID  uuid.UUID
		title    string
		priority int
		wantErr  error
	}{
		{"empty owner", uuid.Nil, "a task", 5, ErrTaskOwnerEmpty},
		{"empty title", ownerID, "", 5, ErrTitleEmpty},
		{"title too long", ownerID, strings.Repeat("x", MaxTitleLength+1), 5, ErrTitleTooLong},
		{"priority zero", ownerID, "a task", 0, ErrPriorityOutOfRange},
		{"priority eleven", ownerID, "a task", 11, ErrPriorityOutOfRange},
		{"priority negative", ownerID, "a task", -3, ErrPriorityOutOfRange},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewTask(tc.ownerID, tc.title, nil, tc.priority, nil)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected error to wrap ErrValidation, got %v", err)
			}
		})
	}
}

func TestNewTaskPriorityBoundaries(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	for _, priority := range []int{MinPriority, MaxPriority} {
		if _, err := NewTask(ownerID, "boundary", nil, priority, nil); err != nil {
			t.Errorf("Expected priority %d to be accepted, got %v", priority, err)
		}
	}
}

func TestTaskTitleMaxLengthAccepted(t *testing.T) {
	t.Parallel()

	_, err := NewTask(uuid.New(), strings.Repeat("x", MaxTitleLength), nil, 5, nil)
	if err != nil {
		t.Errorf("Expected max-length title to be accepted, got %v", err)
	}
}

func TestTaskTitleLengthCountsRunes(t *testing.T) {
	t.Parallel()

	// 255 multibyte characters exceed 255 bytes but match the store's
	// character-counting CHECK constraint, so they must be accepted.
	if _, err := NewTask(uuid.New(), strings.Repeat("ü", MaxTitleLength), nil, 5, nil); err != nil {
		t.Errorf("Expected 255-rune multibyte title to be accepted, got %v", err)
	}

	_, err := NewTask(uuid.New(), strings.Repeat("ü", MaxTitleLength+1), nil, 5, nil)
	if !errors.Is(err, ErrTitleTooLong) {
		t.Errorf("Expected ErrTitleTooLong for 256-rune title, got %v", err)
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []TaskStatus{
		TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled,
	} {
		if !s.IsValid() {
			t.Errorf("Expected %q to be valid", s)
		}
	}

	if TaskStatus("archived").IsValid() {
		t.Error("Expected unknown status to be invalid")
	}
}

func TestTaskStatusTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from    TaskStatus
		to      TaskStatus
		allowed bool
	}{
		{TaskStatusPending, TaskStatusInProgress, true},
		{TaskStatusInProgress, TaskStatusCompleted, true},
		{TaskStatusPending, TaskStatusCancelled, true},
		{TaskStatusInProgress, TaskStatusCancelled, true},

		{TaskStatusPending, TaskStatusCompleted, false},
		{TaskStatusCompleted, TaskStatusPending, false},
		{TaskStatusCompleted, TaskStatusCancelled, false},
		{TaskStatusCancelled, TaskStatusPending, false},
		{TaskStatusCancelled, TaskStatusInProgress, false},
		{TaskStatusInProgress, TaskStatusPending, false},
		{TaskStatusCompleted, TaskStatusInProgress, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTaskStatusIsTerminal(t *testing.T) {
	t.Parallel()

	if !TaskStatusCompleted.IsTerminal() || !TaskStatusCancelled.IsTerminal() {
		t.Error("Expected completed and cancelled to be terminal")
	}
	if TaskStatusPending.IsTerminal() || TaskStatusInProgress.IsTerminal() {
		t.Error("Expected pending and in_progress to be non-terminal")
	}
}

func TestTaskValidateInvalidStatus(t *testing.T) {
	t.Parallel()

	task := &Task{
		OwnerID:  uuid.New(),
		Title:    "a task",
		Priority: 5,
		Status:   TaskStatus("archived"),
	}

	if err := task.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}
