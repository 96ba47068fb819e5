package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notepad/internal/logging"
)

func TestLoggingMiddlewareAssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Info)
	handler := LoggingMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	reqID := rec.Header().Get("X-Request-Id")
	if reqID == "" {
		t.Fatalf("expected generated request id")
	}
	line := buf.String()
	for _, want := range []string{"msg=http_request", "request_id=" + reqID, "method=GET", "path=/api/notes", "status=418"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in log line %q", want, line)
		}
	}
}

func TestLoggingMiddlewareKeepsIncomingRequestID(t *testing.T) {
	handler := LoggingMiddleware(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "abc123" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}
}

func TestCORSMiddlewareAnswersPreflight(t *testing.T) {
	called := false
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/notes/1", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatalf("expected preflight to short-circuit")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected wildcard origin")
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut) {
		t.Fatalf("expected PUT in allowed methods, got %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
	if rec.Header().Get("Access-Control-Allow-Headers") != "content-type" {
		t.Fatalf("expected requested headers echoed")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	if !called || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected simple request to pass through with CORS header")
	}
}
