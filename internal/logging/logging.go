// Package logging sets up pitview's structured file logger. The TUI owns
// the terminal, so diagnostics go to a log file instead of stderr.
package logging

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open returns a zerolog logger appending JSON lines to path, plus a
// close function. When the file cannot be opened the returned logger is a
// no-op: losing diagnostics must never stop the console.
func Open(path string) (zerolog.Logger, func()) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), func() {}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}
	}

	logger := zerolog.New(file).With().Timestamp().Str("app", "pitview").Logger()
	return logger, func() { _ = file.Close() }
}
