// Package logging is the service's structured logger: a small context-aware
// interface with a log/slog backend.
package logging

import "context"

// Logger writes leveled records. args are alternating keys and values:
//
//	logger.Error(ctx, "create user", "error", err)
//
// Records written with a request context carry that request's id.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	With(args ...any) Logger
}

type requestIDKey struct{}

// WithRequestID returns a copy of ctx tagged with the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
