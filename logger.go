package dictcol

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with dictcol-specific helper methods, so
// callers get consistent field names across encode/save/load/query
// call sites without repeating them at every call.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler
// falls back to a text handler on stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that emits JSON records at the given level.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NewTextLogger creates a Logger that emits human-readable text records.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger returns a Logger that discards everything, the default
// for a Codec constructed without WithLogger.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(1000)}))}
}

// LogEncode logs the outcome of an Encode call.
func (l *Logger) LogEncode(ctx context.Context, path string, threads, rowCount, dictSize int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"path", path,
			"threads", threads,
			"error", err,
		)
		return
	}

	l.InfoContext(ctx, "encode completed",
		"path", path,
		"threads", threads,
		"rows", rowCount,
		"dictionary_size", dictSize,
		"elapsed", elapsed,
	)
}

// LogSave logs the outcome of a Save call.
func (l *Logger) LogSave(ctx context.Context, path string, bytesWritten int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed", "path", path, "error", err)
		return
	}

	l.InfoContext(ctx, "save completed", "path", path, "bytes", bytesWritten)
}

// LogLoad logs the outcome of a Load call.
func (l *Logger) LogLoad(ctx context.Context, path string, rowCount, dictSize int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed", "path", path, "error", err)
		return
	}

	l.InfoContext(ctx, "load completed", "path", path, "rows", rowCount, "dictionary_size", dictSize)
}

// LogQuery logs the outcome of a FindExact/FindPrefix call.
func (l *Logger) LogQuery(ctx context.Context, kind, needle string, matches int, elapsed time.Duration) {
	l.DebugContext(ctx, "query completed",
		"kind", kind,
		"needle", needle,
		"matches", matches,
		"elapsed", elapsed,
	)
}
