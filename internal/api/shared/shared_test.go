package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDRoundtrip(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, 32)

	// Two contexts get distinct IDs.
	other := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, traceID, other)

	assert.Empty(t, GetTraceID(context.Background()))
}

func TestRespondWithErrorIncludesTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Task not found", resp.Error)
	assert.Equal(t, GetTraceID(req.Context()), resp.TraceID)
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	type payload struct {
		Title string `json:"title"`
	}

	req := httptest.NewRequest(http.MethodPost, "/api/tasks",
		strings.NewReader(`{"title":"x","titel":"typo"}`))
	var p payload
	assert.Error(t, DecodeJSON(req, &p))

	req = httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":"x"}`))
	require.NoError(t, DecodeJSON(req, &p))
	assert.Equal(t, "x", p.Title)
}
