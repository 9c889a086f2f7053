package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/ivanachess/internal/errors"
	"github.com/vytor/ivanachess/internal/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 64
)

// statusRecorder remembers what a handler wrote so it can be logged.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.written += n
	return n, err
}

// requestID reuses the caller's id when it is short and printable.
func requestID(r *http.Request) string {
	id := r.Header.Get(requestIDHeader)
	if id == "" || len(id) > maxRequestIDLen {
		return uuid.NewString()
	}
	for _, c := range id {
		if c < '!' || c > '~' {
			return uuid.NewString()
		}
	}
	return id
}

// loggingMiddleware puts a request-scoped logger in the context and logs
// one line per request once the handler is done.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestID(r)
		w.Header().Set(requestIDHeader, id)

		log := logger.Default().WithPrefix("http").WithFields(map[string]any{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logger.NewContext(r.Context(), log)))

		log = log.WithFields(map[string]any{
			"status":      rec.status,
			"bytes":       rec.written,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		switch {
		case rec.status >= 500:
			log.Error("%s %s failed", r.Method, r.URL.Path)
		case rec.status >= 400:
			log.Warn("%s %s rejected", r.Method, r.URL.Path)
		default:
			log.Info("%s %s", r.Method, r.URL.Path)
		}
	})
}

// recoveryMiddleware turns a panic into an INTERNAL_ERROR response. It must
// run inside loggingMiddleware so the panic is logged with the request id.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.FromContext(r.Context()).Error("handler panicked: %v\n%s", rec, debug.Stack())
			handleError(w, r, errors.NewInternalError(fmt.Errorf("panic: %v", rec)))
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware sets headers every response carries. Game views
// change with each move, so nothing is cacheable.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// timeoutMiddleware answers 503 with a JSON error body when a handler runs
// longer than timeout.
func timeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	body, _ := json.Marshal(errorResponse{Error: errorBody{
		Code:    "TIMEOUT",
		Message: fmt.Sprintf("request took longer than %s", timeout),
	}})
	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, timeout, string(body))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Handlers set their own content type; this one only reaches the
			// timeout body.
			w.Header().Set("Content-Type", "application/json")
			th.ServeHTTP(w, r)
		})
	}
}
