package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// QueryLogger times one repository call and reports it under type=db.
type QueryLogger struct {
	Operation string
	Entity    string
	Args      []any
	StartTime time.Time
}

func NewQueryLogger(operation, entity string, args ...any) *QueryLogger {
	return &QueryLogger{
		Operation: operation,
		Entity:    entity,
		Args:      args,
		StartTime: time.Now(),
	}
}

// Log records the outcome. Failures are logged at error level, except
// context cancellation which is only a warning.
func (l *QueryLogger) Log(err error, rowsAffected int64) {
	attrs := []slog.Attr{
		slog.String("type", "db"),
		slog.String("operation", l.Operation),
		slog.String("entity", l.Entity),
		slog.Any("args", l.Args),
		slog.Duration("took", time.Since(l.StartTime)),
	}

	switch {
	case err == nil:
		attrs = append(attrs, slog.Int64("affected_rows", rowsAffected))
		slog.LogAttrs(context.Background(), slog.LevelDebug, "Query executed", attrs...)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		attrs = append(attrs, slog.Any("error", err))
		slog.LogAttrs(context.Background(), slog.LevelWarn, "Query interrupted", attrs...)
	default:
		attrs = append(attrs, slog.Any("error", err))
		slog.LogAttrs(context.Background(), slog.LevelError, "Query failed", attrs...)
	}
}
