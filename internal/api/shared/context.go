package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"
)

// ContextKey is the type for context values owned by this package.
type ContextKey string

const (
	// TraceIDKey is the context key under which the request trace ID lives.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID; the
	// rendered hex form is twice as long.
	TraceIDLength = 16
)

// SetTraceID generates a trace ID, stores it in the context, and returns the
// derived context together with the ID. Error responses and log lines carry
// the same ID, so a client report can be matched to its server-side trail.
func SetTraceID(ctx context.Context) (context.Context, string) {
	traceID := generateTraceID()
	return context.WithValue(ctx, TraceIDKey, traceID), traceID
}

// GetTraceID returns the trace ID stored in the context, or an empty string
// when the context does not carry one.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns a TraceIDLength-byte random ID in hex form. When
// the system random source fails it degrades to a clock-derived ID rather
// than a constant.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		slog.Error("failed to generate random trace ID",
			"error", err,
			"fallback", "clock-derived trace ID")
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID builds a trace ID from consecutive clock readings. Not
// random, but keeps IDs distinct while the random source is broken.
func fallbackTraceID() string {
	b := make([]byte, TraceIDLength)
	binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint64(b[8:], uint64(time.Now().UnixNano()))
	return hex.EncodeToString(b)
}
