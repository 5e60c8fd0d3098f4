package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambarishg/AmbarishWEBSITE/internal/requestctx"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteErrorEnvelope(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	ctx = requestctx.WithTrace(ctx, requestctx.TraceInfo{TraceID: "trace-1"})
	rec := httptest.NewRecorder()

	WriteError(ctx, rec, BadRequest("missing_path", "path\nis required", "path"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, contentTypeJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	body := decode(t, rec)
	assert.Equal(t, "missing_path", body["error"])
	assert.Equal(t, "path is required", body["message"])
	assert.EqualValues(t, 400, body["status"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.Equal(t, "trace-1", body["trace_id"])
	assert.Equal(t, "path", body["param"])
}

func TestWriteErrorKeepsReservedKeys(t *testing.T) {
	rec := httptest.NewRecorder()
	err := NotFound("route_not_found", "no route").WithDetails(map[string]any{"status": "shadow", "error": "shadow", "path": "/x"})
	WriteError(context.Background(), rec, err)

	body := decode(t, rec)
	assert.Equal(t, "route_not_found", body["error"])
	assert.EqualValues(t, 404, body["status"])
	assert.Equal(t, "/x", body["path"])
	_, hasRequestID := body["request_id"]
	assert.False(t, hasRequestID)
}

func TestWriteErrorWrapsPlainErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), rec, errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "internal_error", body["error"])
	assert.NotContains(t, rec.Body.String(), "disk on fire")

	rec = httptest.NewRecorder()
	WriteError(context.Background(), rec, fmt.Errorf("outer: %w", NotFound("gone", "gone")))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWithDetailsCopies(t *testing.T) {
	base := NewError("x", "y", 0)
	withA := base.WithDetails(map[string]any{"a": 1})
	withB := withA.WithDetails(map[string]any{"b": 2})

	assert.Equal(t, http.StatusInternalServerError, base.Status)
	assert.Nil(t, base.Details)
	assert.Len(t, withA.Details, 1)
	assert.Len(t, withB.Details, 2)
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "encode_failed", decode(t, rec)["error"])
}
