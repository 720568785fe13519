package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings pitview needs to reach the E-Garage
// backend and place its output.
type Config struct {
	APIBase       string
	FallbackBases []string
	ProbeTimeout  time.Duration
	Demo          bool
	ExportDir     string
	LogDir        string
}

const (
	defaultConfigPath = "~/.config/pitview/config.toml"
	defaultAPIBase    = "127.0.0.1:4000"
	defaultExportDir  = "~/Downloads"
	defaultLogDir     = "~/.local/share/pitview/logs"
	defaultTimeout    = 5 * time.Second
)

// Load locates and parses the pitview config, falling back to defaults
// when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase          string   `toml:"api_base"`
		FallbackBases    []string `toml:"fallback_bases"`
		ProbeTimeoutSecs int      `toml:"probe_timeout_secs"`
		Demo             bool     `toml:"demo"`
		ExportDir        string   `toml:"export_dir"`
		LogDir           string   `toml:"log_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = base
	}
	for _, base := range raw.FallbackBases {
		if base = strings.TrimSpace(base); base != "" {
			cfg.FallbackBases = append(cfg.FallbackBases, base)
		}
	}
	if raw.ProbeTimeoutSecs > 0 {
		cfg.ProbeTimeout = time.Duration(raw.ProbeTimeoutSecs) * time.Second
	}
	cfg.Demo = raw.Demo
	if dir := strings.TrimSpace(raw.ExportDir); dir != "" {
		cfg.ExportDir = dir
	}
	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = dir
	}

	cfg.ExportDir = mustExpand(cfg.ExportDir)
	cfg.LogDir = mustExpand(cfg.LogDir)
	return cfg, nil
}

func defaults() Config {
	return Config{
		APIBase:      defaultAPIBase,
		ProbeTimeout: defaultTimeout,
		ExportDir:    defaultExportDir,
		LogDir:       defaultLogDir,
	}
}

// Bases returns the probe order: primary base first, then fallbacks.
func (c Config) Bases() []string {
	return append([]string{c.APIBase}, c.FallbackBases...)
}

// LogPath returns the path of the pitview log file.
func (c Config) LogPath() string {
	dir := c.LogDir
	if strings.TrimSpace(dir) == "" {
		dir = mustExpand(defaultLogDir)
	}
	return filepath.Join(dir, "pitview.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
