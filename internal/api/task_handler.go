package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskboardhq/taskboard-api/internal/api/shared"
	"github.com/taskboardhq/taskboard-api/internal/domain"
	"github.com/taskboardhq/taskboard-api/internal/service/tasks"
)

// TaskHandler handles task-related HTTP requests. All routes require the
// auth middleware; the owner ID always comes from the request context,
// never from the payload.
type TaskHandler struct {
	taskService tasks.TaskService
}

// NewTaskHandler creates a TaskHandler backed by the given service.
func NewTaskHandler(taskService tasks.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List handles GET /api/tasks.
//
// Query parameters: priority and status (exact-match filters),
// sort=priority (switch to priority ordering), cursor (opaque token from a
// previous page), limit.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := getOwnerID(w, r)
	if !ok {
		return
	}

	params := tasks.ListParams{
		SortByPriority: r.URL.Query().Get("sort") == "priority",
		Cursor:         r.URL.Query().Get("cursor"),
	}

	if raw := r.URL.Query().Get("priority"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid priority parameter")
			return
		}
		params.Priority = &p
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		params.Status = &status
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		params.Limit = &l
	}

	page, err := h.taskService.List(r.Context(), ownerID, params)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	resp := TaskListResponse{
		Tasks:      make([]TaskResponse, len(page.Tasks)),
		NextCursor: page.NextCursor,
	}
	for i, t := range page.Tasks {
		resp.Tasks[i] = taskToResponse(t)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := getOwnerID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title and priority are required")
		return
	}

	task, err := h.taskService.Create(r.Context(), ownerID, tasks.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    *req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := getOwnerID(w, r)
	if !ok {
		return
	}
	id, ok := getTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), ownerID, id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Update handles PATCH /api/tasks/{id}. The body is a partial document:
// absent keys keep their value, null keys clear nullable fields.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := getOwnerID(w, r)
	if !ok {
		return
	}
	id, ok := getTaskID(w, r)
	if !ok {
		return
	}

	var patch tasks.TaskPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.Update(r.Context(), ownerID, id, patch)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := getOwnerID(w, r)
	if !ok {
		return
	}
	id, ok := getTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), ownerID, id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// getOwnerID extracts the authenticated owner's UUID from the request
// context. Writes a 401 and returns false when the middleware did not run
// or left no identity.
func getOwnerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ownerID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || ownerID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return ownerID, true
}

// getTaskID parses the {id} path parameter. Task IDs are positive integers;
// anything else is a 404, matching how a well-formed ID for a missing row
// answers.
func getTaskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return 0, false
	}
	return id, true
}
