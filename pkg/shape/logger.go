package shape

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the field names used by the arena.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler logs
// text to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable records to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithDimension adds the ambient dimension to every record.
func (l *Logger) WithDimension(ndim int) *Logger {
	return &Logger{Logger: l.Logger.With("ndim", ndim)}
}

// WithShape adds a shape handle to every record.
func (l *Logger) WithShape(id ID) *Logger {
	return &Logger{Logger: l.Logger.With("shape", id.String())}
}

// LogCut logs the outcome of one cut.
func (l *Logger) LogCut(ctx context.Context, params CutParams, rootsBefore, rootsAfter, created, collected int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "cut failed",
			"cut", params.Cut.String(),
			"roots", rootsBefore,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "cut completed",
		"cut", params.Cut.String(),
		"inside_label", params.InsideLabel,
		"outside_label", params.OutsideLabel,
		"roots_before", rootsBefore,
		"roots_after", rootsAfter,
		"created", created,
		"collected", collected,
	)
}

// LogCollect logs a garbage collection pass.
func (l *Logger) LogCollect(ctx context.Context, live, collected int) {
	l.DebugContext(ctx, "garbage collected",
		"live", live,
		"collected", collected,
	)
}
