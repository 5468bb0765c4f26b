package tasks

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboardhq/taskboard-api/internal/domain"
)

func TestFieldDistinguishesAbsentNullAndValue(t *testing.T) {
	t.Parallel()

	var p TaskPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"new","description":null}`), &p))

	// Present with a value.
	assert.True(t, p.Title.IsSet())
	assert.False(t, p.Title.IsNull())
	assert.Equal(t, "new", p.Title.Value())

	// Present as explicit null.
	assert.True(t, p.Description.IsSet())
	assert.True(t, p.Description.IsNull())

	// Absent entirely.
	assert.False(t, p.Priority.IsSet())
	assert.False(t, p.Status.IsSet())
	assert.False(t, p.DueDate.IsSet())
}

func TestTaskPatchUnmarshalFullDocument(t *testing.T) {
	t.Parallel()

	var p TaskPatch
	doc := `{
		"title": "ship it",
		"description": "before friday",
		"priority": 8,
		"status": "in_progress",
		"due_date": "2026-09-01T00:00:00Z"
	}`
	require.NoError(t, json.Unmarshal([]byte(doc), &p))

	assert.Equal(t, "ship it", p.Title.Value())
	assert.Equal(t, "before friday", p.Description.Value())
	assert.Equal(t, 8, p.Priority.Value())
	assert.Equal(t, domain.TaskStatusInProgress, p.Status.Value())
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), p.DueDate.Value().UTC())
}

func TestTaskPatchUnmarshalWrongType(t *testing.T) {
	t.Parallel()

	var p TaskPatch
	err := json.Unmarshal([]byte(`{"priority":"high"}`), &p)
	assert.Error(t, err)
}

func TestTaskPatchIsEmpty(t *testing.T) {
	t.Parallel()

	var p TaskPatch
	assert.True(t, p.IsEmpty())

	require.NoError(t, json.Unmarshal([]byte(`{"due_date":null}`), &p))
	assert.False(t, p.IsEmpty())
}

func TestTaskPatchValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, TaskPatch{}.Validate())
	assert.NoError(t, TaskPatch{
		Title:    SetField("ok"),
		Priority: SetField(10),
		Status:   SetField(domain.TaskStatusCancelled),
	}.Validate())

	assert.ErrorIs(t, TaskPatch{Title: SetField("")}.Validate(), domain.ErrTitleEmpty)
	assert.ErrorIs(t, TaskPatch{Title: NullField[string]()}.Validate(), domain.ErrTitleEmpty)
	assert.ErrorIs(t, TaskPatch{Priority: SetField(11)}.Validate(), domain.ErrPriorityOutOfRange)
	assert.ErrorIs(t, TaskPatch{Priority: NullField[int]()}.Validate(), domain.ErrValidation)
	assert.ErrorIs(t,
		TaskPatch{Status: SetField(domain.TaskStatus("paused"))}.Validate(),
		domain.ErrInvalidStatus)
}
