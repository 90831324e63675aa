// Package logging configures the process-wide zerolog logger.
//
// The TUI owns the terminal, so logs go to a file in the data
// directory rather than stderr. Levels: trace, debug, info, warn,
// error (default info).
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Open creates a file-backed JSON logger at dataDir/debug.log. The
// returned closer flushes and closes the log file; callers defer it.
func Open(dataDir, level string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	log := zerolog.New(f).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
	return log, f, nil
}

// parseLevel converts a string to a zerolog.Level, defaulting to info.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
