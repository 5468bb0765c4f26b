package api

import (
	"errors"
	"net/http"

	"github.com/taskboardhq/taskboard-api/internal/api/shared"
	"github.com/taskboardhq/taskboard-api/internal/domain"
	"github.com/taskboardhq/taskboard-api/internal/pagination"
	"github.com/taskboardhq/taskboard-api/internal/service/auth"
	"github.com/taskboardhq/taskboard-api/internal/service/tasks"
	"github.com/taskboardhq/taskboard-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so handler
// code never leaks internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found covers both missing rows and rows owned by someone else.
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, pagination.ErrInvalidCursor),
		errors.Is(err, tasks.ErrInvalidFilter),
		errors.Is(err, tasks.ErrInvalidLimit),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Pool exhaustion or transport failure to the store.
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for err.
// Validation-family errors carry their own safe text; everything else maps
// to a fixed phrase.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, domain.ErrInvalidTransition):
		return "Invalid status transition"

	case errors.Is(err, pagination.ErrInvalidCursor):
		return "Invalid cursor"

	case errors.Is(err, tasks.ErrInvalidFilter):
		return "Invalid filter value"

	case errors.Is(err, tasks.ErrInvalidLimit):
		return "Limit must be a positive integer"

	// Field-level validation messages are constructed from domain
	// constants, never from user input, so they are safe to echo.
	case errors.Is(err, domain.ErrValidation):
		return err.Error()

	case errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError maps err to a status and safe message and writes the
// response, logging the redacted cause.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
