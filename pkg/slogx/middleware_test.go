package slogx

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithRequestID(WithContext(context.Background(), logger), "req-123")
	FromContext(ctx).Info("hello")

	require.Contains(t, buf.String(), `"req_id":"req-123"`)
}

func TestHTTPMiddlewareStampsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Downstream handlers log through the context logger and
		// inherit the request id.
		FromContext(r.Context()).Info("handled")
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/badge", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	out := buf.String()
	require.Contains(t, out, `"msg":"handled"`)
	require.Contains(t, out, `"msg":"http_request"`)
	require.Contains(t, out, `"status":204`)

	// Both the handler line and the access line carry the stamped id.
	require.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"req_id":"req-123"`)))
}

func TestHTTPMiddlewareGeneratesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/badge", nil))

	require.Contains(t, buf.String(), `"req_id":"`)
}
