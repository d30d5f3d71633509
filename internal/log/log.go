// ABOUTME: Debug logging gated by a slog level, for probe and dimension diagnostics.
// ABOUTME: Writes to stderr so log lines never interleave with terminal output.

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var level slog.LevelVar // zero value is LevelInfo

// out is stderr; a variable so tests can capture what gets emitted.
var out io.Writer = os.Stderr

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return level.Level()
}

func logf(l slog.Level, prefix, format string, args ...any) {
	if level.Level() > l {
		return
	}
	fmt.Fprintf(out, prefix+format+"\n", args...)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	logf(LevelDebug, "[DEBUG] ", format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	logf(LevelInfo, "[INFO] ", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	logf(LevelWarn, "[WARN] ", format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	logf(LevelError, "[ERROR] ", format, args...)
}
