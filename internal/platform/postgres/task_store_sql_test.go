package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/taskboardhq/taskboard-api/internal/domain"
	"github.com/taskboardhq/taskboard-api/internal/pagination"
	"github.com/taskboardhq/taskboard-api/internal/store"
)

func TestListTasksQueryCreationOrder(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	query, args := listTasksQuery(store.TaskListQuery{
		OwnerID: owner,
		Limit:   21,
	})

	assert.Contains(t, query, "WHERE owner_id = $1")
	assert.Contains(t, query, "ORDER BY id ASC")
	assert.NotContains(t, query, "priority =")
	assert.NotContains(t, query, "(priority, id)")
	assert.Contains(t, query, "LIMIT $2")
	assert.Equal(t, []any{owner, 21}, args)
}

func TestListTasksQueryPriorityOrder(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	query, args := listTasksQuery(store.TaskListQuery{
		OwnerID:        owner,
		SortByPriority: true,
		Limit:          11,
	})

	assert.Contains(t, query, "ORDER BY priority ASC, id ASC")
	assert.Equal(t, []any{owner, 11}, args)
}

func TestListTasksQuerySeekPredicateByID(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	query, args := listTasksQuery(store.TaskListQuery{
		OwnerID: owner,
		After:   &pagination.Cursor{Mode: pagination.SortByID, ID: 42},
		Limit:   6,
	})

	assert.Contains(t, query, "AND id > $2")
	assert.Contains(t, query, "LIMIT $3")
	assert.Equal(t, []any{owner, int64(42), 6}, args)
}

func TestListTasksQuerySeekPredicateByPriority(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	query, args := listTasksQuery(store.TaskListQuery{
		OwnerID:        owner,
		SortByPriority: true,
		After:          &pagination.Cursor{Mode: pagination.SortByPriority, Priority: 3, ID: 42},
		Limit:          6,
	})

	// Row-tuple comparison keeps the predicate index-servable.
	assert.Contains(t, query, "AND (priority, id) > ($2, $3)")
	assert.Contains(t, query, "ORDER BY priority ASC, id ASC")
	assert.Equal(t, []any{owner, 3, int64(42), 6}, args)
}

func TestListTasksQueryPriorityFilterWithSeek(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	priority := 7
	query, args := listTasksQuery(store.TaskListQuery{
		OwnerID:        owner,
		Priority:       &priority,
		SortByPriority: true,
		After:          &pagination.Cursor{Mode: pagination.SortByPriority, Priority: 7, ID: 99},
		Limit:          3,
	})

	assert.Contains(t, query, "AND priority = $2")
	assert.Contains(t, query, "AND (priority, id) > ($3, $4)")
	assert.Contains(t, query, "LIMIT $5")
	assert.Equal(t, []any{owner, 7, 7, int64(99), 3}, args)
}

func TestListTasksQueryStatusFilter(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	status := domain.TaskStatusPending
	query, args := listTasksQuery(store.TaskListQuery{
		OwnerID: owner,
		Status:  &status,
		After:   &pagination.Cursor{Mode: pagination.SortByID, ID: 5},
		Limit:   4,
	})

	assert.Contains(t, query, "AND status = $2")
	assert.Contains(t, query, "AND id > $3")
	assert.Contains(t, query, "LIMIT $4")
	assert.Equal(t, []any{owner, "pending", int64(5), 4}, args)
}

func TestListTasksQueryPriorityFilterCreationOrder(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	priority := 2
	query, args := listTasksQuery(store.TaskListQuery{
		OwnerID:  owner,
		Priority: &priority,
		Limit:    10,
	})

	assert.Contains(t, query, "AND priority = $2")
	assert.Contains(t, query, "ORDER BY id ASC")
	assert.Equal(t, []any{owner, 2, 10}, args)
}
