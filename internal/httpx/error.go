// Package httpx writes the JSON bodies of the /api endpoints and their error envelope.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ambarishg/AmbarishWEBSITE/internal/requestctx"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Error is an API failure. It is written as
// {"error": code, "message": ..., "status": ..., "request_id": ..., "trace_id": ..., <details>}.
type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]any
}

// NewError builds an Error. Code and message are flattened to one line and
// truncated; a zero status means 500.
func NewError(code, message string, status int) *Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &Error{
		Code:    oneLine(code, 80),
		Message: oneLine(message, 512),
		Status:  status,
	}
}

// BadRequest reports an invalid or missing query parameter.
func BadRequest(code, message, param string) *Error {
	return NewError(code, message, http.StatusBadRequest).WithDetails(map[string]any{"param": param})
}

// NotFound reports an unknown resource.
func NotFound(code, message string) *Error {
	return NewError(code, message, http.StatusNotFound)
}

// Internal hides the cause behind a generic 500.
func Internal(code string) *Error {
	return NewError(code, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// WithDetails returns a copy of e carrying extra top-level fields. Reserved
// envelope keys are not overwritten.
func (e *Error) WithDetails(details map[string]any) *Error {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	for k, v := range details {
		cp.Details[k] = v
	}
	return &cp
}

// As extracts an *Error from err, or wraps err as an internal error.
func As(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal("internal_error")
}

var reserved = map[string]struct{}{"error": {}, "message": {}, "status": {}, "request_id": {}, "trace_id": {}}

// WriteError writes err as the JSON envelope, stamped with the request and trace ids from ctx.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	apiErr := As(err)
	status := apiErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	payload := make(map[string]any, len(apiErr.Details)+5)
	for k, v := range apiErr.Details {
		if _, ok := reserved[k]; !ok {
			payload[k] = v
		}
	}
	payload["error"] = apiErr.Code
	payload["message"] = apiErr.Message
	payload["status"] = status
	if id := oneLine(middleware.GetReqID(ctx), 80); id != "" {
		payload["request_id"] = id
	}
	if id := oneLine(requestctx.TraceID(ctx), 64); id != "" {
		payload["trace_id"] = id
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, status, payload)
}

// WriteJSON encodes v before writing any header, so an unencodable value yields
// a clean 500 instead of a truncated body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"encode_failed","message":"response could not be encoded","status":500}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func oneLine(value string, limit int) string {
	value = strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(value))
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
