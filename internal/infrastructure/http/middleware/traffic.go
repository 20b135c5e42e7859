package middleware

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/cookbook/catalog/internal/infrastructure/config"
	apperrors "github.com/cookbook/catalog/pkg/errors"
)

// RateLimitRecorder counts rejected requests
type RateLimitRecorder interface {
	RateLimited()
}

// RateLimit limits the whole process to the configured request rate.
// recorder may be nil.
func RateLimit(cfg config.RateLimitConfig, recorder RateLimitRecorder) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(
		rate.Limit(cfg.RequestsPerMin)/60,
		cfg.BurstSize,
	)
	retryAfter := strconv.Itoa(max(1, 60/max(1, cfg.RequestsPerMin)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if recorder != nil {
					recorder.RateLimited()
				}
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, r, apperrors.NewTooManyRequestsError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HTTPRecorder observes served requests
type HTTPRecorder interface {
	HTTPRequest(method, route string, status, size int, duration time.Duration)
}

// Metrics records every request under its chi route pattern, so ids in the
// path do not explode label cardinality.
func Metrics(recorder HTTPRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			recorder.HTTPRequest(r.Method, route, status, ww.BytesWritten(), time.Since(start))
		})
	}
}

// Compress compresses JSON responses with brotli when the client accepts it
// and gzip or deflate otherwise.
func Compress(level int) func(http.Handler) http.Handler {
	compressor := chimiddleware.NewCompressor(level, "application/json", "text/plain")
	compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	return compressor.Handler
}
