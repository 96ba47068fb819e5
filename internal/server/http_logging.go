package server

import (
	"net/http"
	"strings"
	"time"

	"notepad/internal/logging"
)

const corsAllowMethods = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"

type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func LoggingMiddleware(logger logging.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = logging.NewRequestID()
		}
		w.Header().Set("X-Request-Id", reqID)
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		fields := []logging.Field{
			logging.F("request_id", reqID),
			logging.F("method", r.Method),
			logging.F("path", r.URL.Path),
			logging.F("status", rec.status),
			logging.F("bytes", rec.bytes),
			logging.F("latency_ms", time.Since(start).Milliseconds()),
		}
		if rec.status >= http.StatusInternalServerError {
			logger.Error("http_request", fields...)
			return
		}
		logger.Info("http_request", fields...)
	})
}

// CORSMiddleware allows any origin and answers preflight requests directly.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Add("Vary", "Origin")
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			header.Set("Access-Control-Allow-Methods", corsAllowMethods)
			if requested := strings.TrimSpace(r.Header.Get("Access-Control-Request-Headers")); requested != "" {
				header.Set("Access-Control-Allow-Headers", requested)
			}
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
