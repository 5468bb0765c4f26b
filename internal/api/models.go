package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskboardhq/taskboard-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse is the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// CreateTaskRequest defines the payload for creating a task. Priority is a
// pointer so an omitted priority is caught by validation rather than
// defaulting to zero.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description *string    `json:"description"`
	Priority    *int       `json:"priority"    validate:"required"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskResponse is the wire shape of a single task.
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Priority    int        `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskListResponse is one page of tasks. NextCursor is omitted on the final
// page.
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// taskToResponse converts a domain task to its wire shape. The owner ID is
// deliberately not echoed: every task returned belongs to the caller.
func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
