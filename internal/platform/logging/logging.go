package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is the key type used to store the logger in a context.
// Using a custom type prevents collisions.
type contextKey string

const loggerKey = contextKey("logger")

// New builds the application's base structured logger.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithCommandScope derives a command-scoped logger carrying a generated
// command id and the command name, and stores it in the context. Every
// REPL command runs under its own scope so log lines from one
// invocation can be correlated.
func WithCommandScope(ctx context.Context, baseLogger *slog.Logger, command string) context.Context {
	commandLogger := baseLogger.With(
		slog.String("command_id", uuid.NewString()),
		slog.String("command", command),
	)
	return context.WithValue(ctx, loggerKey, commandLogger)
}

// FromCtx retrieves the scoped logger from the context. It returns the
// default logger if none is found.
func FromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}
