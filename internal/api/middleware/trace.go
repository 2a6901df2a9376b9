package middleware

import (
	"log/slog"
	"net/http"

	"github.com/deadlineai/remind-api/internal/api/shared"
	"github.com/deadlineai/remind-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and stores a
// trace-annotated logger alongside it, so that handlers, services, and
// stores retrieving the logger via logger.FromContextOrDefault emit the
// trace ID on every line. Apply it early in the middleware chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Add a trace ID to the context
		ctx, traceID := shared.SetTraceID(r.Context())

		// Annotate the logger and propagate it with the request
		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		// Log the incoming request with trace ID
		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		// Continue with the updated context
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
