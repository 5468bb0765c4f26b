package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskboardhq/taskboard-api/internal/domain"
)

// Field carries a single patched value and distinguishes the three JSON
// states a partial update can express: the key absent (leave the field
// alone), the key present with null (clear the field), and the key present
// with a value (replace the field).
type Field[T any] struct {
	set   bool
	null  bool
	value T
}

// SetField returns a Field holding the given value.
func SetField[T any](v T) Field[T] {
	return Field[T]{set: true, value: v}
}

// NullField returns a Field representing an explicit null.
func NullField[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// IsSet reports whether the field appeared in the patch at all.
func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the field was explicitly set to null.
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Value returns the patched value. Only meaningful when IsSet and not
// IsNull.
func (f Field[T]) Value() T { return f.value }

// UnmarshalJSON is only invoked for keys present in the document, so its
// very execution marks the field as set.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if string(data) == "null" {
		f.null = true
		return nil
	}
	return json.Unmarshal(data, &f.value)
}

// TaskPatch is a partial update to a task. Fields left unset keep their
// current value.
type TaskPatch struct {
	Title       Field[string]            `json:"title"`
	Description Field[string]            `json:"description"`
	Priority    Field[int]               `json:"priority"`
	Status      Field[domain.TaskStatus] `json:"status"`
	DueDate     Field[time.Time]         `json:"due_date"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return !p.Title.IsSet() && !p.Description.IsSet() && !p.Priority.IsSet() &&
		!p.Status.IsSet() && !p.DueDate.IsSet()
}

// Validate checks every supplied field against the task field invariants.
// Status transitions are checked separately since they depend on the
// current row.
func (p TaskPatch) Validate() error {
	if p.Title.IsSet() {
		if p.Title.IsNull() {
			return domain.ErrTitleEmpty
		}
		if err := domain.ValidateTitle(p.Title.Value()); err != nil {
			return err
		}
	}
	if p.Priority.IsSet() {
		if p.Priority.IsNull() {
			return fmt.Errorf("%w: priority cannot be null", domain.ErrValidation)
		}
		if err := domain.ValidatePriority(p.Priority.Value()); err != nil {
			return err
		}
	}
	if p.Status.IsSet() {
		if p.Status.IsNull() || !p.Status.Value().IsValid() {
			return domain.ErrInvalidStatus
		}
	}
	return nil
}
