package bitindex

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bitindex-specific context.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is
// nil, uses a default text handler to stderr at Info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogBuild logs a RankSupport table build (full rebuild from scratch).
func (l *Logger) LogBuild(ctx context.Context, size uint32, superblockSize, blockSize uint32) {
	l.DebugContext(ctx, "rank tables built",
		"size", size,
		"superblock_size", superblockSize,
		"block_size", blockSize,
	)
}

// LogRebuild logs an incremental rank table rebuild triggered by
// SparseArray.Append.
func (l *Logger) LogRebuild(ctx context.Context, startingIndex uint64) {
	l.DebugContext(ctx, "rank tables rebuilt",
		"starting_index", startingIndex,
	)
}

// LogSave logs a successful or failed Save to path.
func (l *Logger) LogSave(ctx context.Context, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "save completed",
			"path", path,
		)
	}
}

// LogLoad logs a successful or failed Load from path.
func (l *Logger) LogLoad(ctx context.Context, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"path", path,
		)
	}
}
