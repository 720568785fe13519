package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pitview.log")

	logger, closeFn := Open(path)
	logger.Info().Str("resource", "payments").Msg("refresh ok")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, `"resource":"payments"`) || !strings.Contains(line, `"app":"pitview"`) {
		t.Fatalf("log line = %q, want structured fields", line)
	}
}

func TestOpen_UnwritablePathIsNop(t *testing.T) {
	// A directory where the file should be forces the open to fail.
	dir := t.TempDir()
	path := filepath.Join(dir, "taken")
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir fixture: %v", err)
	}

	logger, closeFn := Open(path)
	defer closeFn()
	// Must not panic or error; the logger silently drops output.
	logger.Error().Msg("dropped")
}
