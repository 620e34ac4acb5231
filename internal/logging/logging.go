// ABOUTME: Structured logging setup shared by the CLI, TUI, and MCP server
// ABOUTME: Builds zerolog console loggers with a configurable level

package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogFilename is the log file written inside the data dir when the terminal
// is owned by the interactive map.
const LogFilename = "geomark.log"

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a console logger writing to w at the given level.
func New(level string, w io.Writer) zerolog.Logger {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    w != os.Stderr && w != os.Stdout,
	}).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// NewFile returns a logger appending to the log file in dataDir, plus a
// closer for the file.
func NewFile(level, dataDir string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(filepath.Join(dataDir, LogFilename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return New(level, f), f, nil
}
