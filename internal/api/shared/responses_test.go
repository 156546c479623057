package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError_IncludesCorrelationID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/api/tasks", nil)
	req = req.WithContext(WithCorrelationID(req.Context(), "corr-123"))
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusUnauthorized, "unauthorized", "Invalid credentials")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body.Error)
	assert.Equal(t, "Invalid credentials", body.Message)
	assert.Equal(t, "corr-123", body.CorrelationID)
}

func TestRespondWithErrorAndLog_NeverLeaksRawError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/api/tasks", nil)
	rec := httptest.NewRecorder()

	rawErr := errors.New("pq: connection to postgres://user:hunter2@db failed")
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError,
		"internal_error", "An unexpected error occurred", rawErr)

	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.NotContains(t, rec.Body.String(), "postgres://")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred", body.Message)
}

func TestCorrelationIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetCorrelationID(ctx))

	ctx = WithCorrelationID(ctx, "abc")
	assert.Equal(t, "abc", GetCorrelationID(ctx))
}

func TestNewCorrelationID_Unique(t *testing.T) {
	t.Parallel()

	a := NewCorrelationID()
	b := NewCorrelationID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
