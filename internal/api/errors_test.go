package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskboardhq/taskboard-api/internal/domain"
	"github.com/taskboardhq/taskboard-api/internal/pagination"
	"github.com/taskboardhq/taskboard-api/internal/service/auth"
	"github.com/taskboardhq/taskboard-api/internal/service/tasks"
	"github.com/taskboardhq/taskboard-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusConflict},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"validation", domain.ErrTitleEmpty, http.StatusBadRequest},
		{"priority out of range", domain.ErrPriorityOutOfRange, http.StatusBadRequest},
		{"invalid cursor", pagination.ErrInvalidCursor, http.StatusBadRequest},
		{"invalid filter", tasks.ErrInvalidFilter, http.StatusBadRequest},
		{"invalid limit", tasks.ErrInvalidLimit, http.StatusBadRequest},
		{"unavailable", store.ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("loading: %w", store.ErrTaskNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	t.Parallel()

	// A raw driver error must map to the generic message, not its own text.
	driverErr := errors.New(`pq: connection to "postgres://user:pass@db:5432" refused`)
	msg := GetSafeErrorMessage(driverErr)
	assert.Equal(t, "An unexpected error occurred", msg)

	wrapped := fmt.Errorf("query failed: %w", store.ErrUnavailable)
	assert.Equal(t, "Service temporarily unavailable", GetSafeErrorMessage(wrapped))

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestGetSafeErrorMessageKnownErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "Invalid cursor", GetSafeErrorMessage(pagination.ErrInvalidCursor))
	assert.Equal(t, "Invalid status transition", GetSafeErrorMessage(domain.ErrInvalidTransition))
	assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))

	// Domain validation errors carry their own safe text.
	assert.Contains(t, GetSafeErrorMessage(domain.ErrPriorityOutOfRange), "priority must be between")
}
