package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fitstudio/internal/adapters/http/perf"
)

// DefaultSlowRequest applies when STUDIO_SLOW_REQUEST_MS is unset or invalid.
const DefaultSlowRequest = 200 * time.Millisecond

// SlowRequestThresholdFromEnv reads STUDIO_SLOW_REQUEST_MS.
func SlowRequestThresholdFromEnv() time.Duration {
	if v := os.Getenv("STUDIO_SLOW_REQUEST_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return DefaultSlowRequest
}

var requestSeq atomic.Uint64

// statusWriter records the status code written through it.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

var statusWriterPool = sync.Pool{
	New: func() any { return &statusWriter{} },
}

// Timing logs each request's duration, at WARN when it reaches threshold and
// at DEBUG otherwise, and records it to collector when non-nil. Paths under
// /static/ and the wasm bundle are not timed.
// POST: a panicking handler is still recorded before the panic propagates
func Timing(collector *perf.Collector, threshold time.Duration) func(http.Handler) http.Handler {
	if threshold <= 0 {
		threshold = DefaultSlowRequest
	}
	thresholdMs := float64(threshold.Milliseconds())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if strings.HasPrefix(path, "/static/") || strings.HasSuffix(path, ".wasm") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			id := requestSeq.Add(1)
			sw := statusWriterPool.Get().(*statusWriter)
			sw.ResponseWriter, sw.status = w, http.StatusOK

			defer func() {
				ms := float64(time.Since(start).Microseconds()) / 1000.0
				attrs := []any{
					"request_id", id,
					"method", r.Method,
					"path", path,
					"status", sw.status,
					"duration_ms", ms,
				}
				if ms >= thresholdMs {
					slog.Warn("slow_request", attrs...)
				} else {
					slog.Debug("request", attrs...)
				}
				if collector != nil {
					collector.Record(perf.Entry{
						Kind:       perf.KindRequest,
						Path:       r.Method + " " + path,
						StatusCode: sw.status,
						DurationMs: ms,
						Timestamp:  start,
					})
				}
				sw.ResponseWriter = nil
				statusWriterPool.Put(sw)
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
