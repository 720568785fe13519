package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.ProbeTimeout != 5*time.Second {
		t.Fatalf("ProbeTimeout = %v, want 5s", cfg.ProbeTimeout)
	}
	if cfg.Demo {
		t.Fatalf("Demo = true, want false by default")
	}
	if bases := cfg.Bases(); len(bases) != 1 || bases[0] != defaultAPIBase {
		t.Fatalf("Bases = %v, want primary only", bases)
	}
	if got := cfg.LogPath(); filepath.Base(got) != "pitview.log" {
		t.Fatalf("LogPath = %q, want */pitview.log", got)
	}
}

func TestLoad_ParsesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
api_base = "garage.example.com:9000"
fallback_bases = ["backup.example.com:9000", "  ", "last.example.com"]
probe_timeout_secs = 2
demo = true
export_dir = "~/exports"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	bases := cfg.Bases()
	want := []string{"garage.example.com:9000", "backup.example.com:9000", "last.example.com"}
	if len(bases) != len(want) {
		t.Fatalf("Bases = %v, want %v", bases, want)
	}
	for i := range want {
		if bases[i] != want[i] {
			t.Fatalf("Bases[%d] = %q, want %q", i, bases[i], want[i])
		}
	}
	if cfg.ProbeTimeout != 2*time.Second {
		t.Fatalf("ProbeTimeout = %v, want 2s", cfg.ProbeTimeout)
	}
	if !cfg.Demo {
		t.Fatalf("Demo = false, want true")
	}
	if filepath.IsAbs(cfg.ExportDir) == false {
		t.Fatalf("ExportDir = %q, want expanded absolute path", cfg.ExportDir)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("api_base = [broken"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error for malformed config")
	}
}
