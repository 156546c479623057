// Package middleware implements the cross-cutting request pipeline:
// correlation logging, rate limiting, security headers, and bearer
// token authentication. Each stage is a plain
// func(http.Handler) http.Handler so the router composes them without
// any framework base type.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/gate-api/internal/api/shared"
	"github.com/phrazzld/gate-api/internal/platform/logger"
)

// CorrelationHeader is the header a caller may use to supply its own
// correlation ID; the same header carries the ID back on every response.
const CorrelationHeader = "X-Correlation-ID"

// statusRecorder captures the status code written downstream so the
// completion record can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// Correlation assigns or propagates a correlation ID, attaches a
// request-scoped logger carrying it, and emits structured start,
// completion, and failure records with wall-clock timing. It wraps the
// whole chain: the measured duration spans every downstream stage
// including handler I/O.
//
// A panic escaping downstream is logged as a request failure and then
// re-raised unchanged; this stage observes errors, it never swallows
// them.
func Correlation(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			correlationID := r.Header.Get(CorrelationHeader)
			if correlationID == "" {
				correlationID = shared.NewCorrelationID()
			}

			ctx := shared.WithCorrelationID(r.Context(), correlationID)
			reqLog := log.With(slog.String("correlation_id", correlationID))
			ctx = logger.WithLogger(ctx, reqLog)

			// Set the response header up front so error paths and
			// panics still carry it.
			w.Header().Set(CorrelationHeader, correlationID)

			reqLog.Info("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr))

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			defer func() {
				duration := elapsedMillis(start)
				if p := recover(); p != nil {
					reqLog.Error("request failed",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("duration_ms", duration),
						slog.String("panic", fmt.Sprintf("%v", p)),
						slog.String("panic_type", fmt.Sprintf("%T", p)))
					panic(p)
				}
				reqLog.Info("request completed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", rec.status),
					slog.String("duration_ms", duration))
			}()

			next.ServeHTTP(rec, r.WithContext(ctx))
		})
	}
}

// elapsedMillis formats the time since start as milliseconds with
// two-decimal precision.
func elapsedMillis(start time.Time) string {
	return fmt.Sprintf("%.2f", float64(time.Since(start).Microseconds())/1000.0)
}
