package app

import (
	"context"
	"fmt"
	"time"

	"github.com/egarage/pitview/internal/config"
	"github.com/egarage/pitview/internal/demo"
	"github.com/egarage/pitview/internal/garage"
	"github.com/egarage/pitview/internal/logging"
	"github.com/egarage/pitview/internal/prefs"
	"github.com/egarage/pitview/internal/session"
	"github.com/egarage/pitview/internal/state"
	"github.com/egarage/pitview/internal/ui"
)

// Options configure the pitview application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/pitview/prefs.toml
	SessionPath string // empty uses default ~/.config/pitview/session.toml
	PollEvery   int    // seconds; zero uses default
	Demo        bool   // force sample data regardless of config
}

// Run boots the pitview TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	sess := session.Load(opts.SessionPath)

	logger, closeLog := logging.Open(cfg.LogPath())
	defer closeLog()

	client, err := garage.NewClient(cfg.Bases(), sess, cfg.ProbeTimeout)
	if err != nil {
		return fmt.Errorf("init garage client: %w", err)
	}

	store := &state.Store{}
	refresher := NewRefresher(store, client, demo.NewProvider(), cfg.Demo || opts.Demo, logger)

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller
	StartPoller(ctx, refresher, interval)

	// Do initial refresh to populate the store before the UI starts. A
	// concurrent poller pass is harmless; stale completions are dropped.
	refresher.RefreshAll(ctx)

	logger.Info().Bool("demo", refresher.demoMode).Str("session", sess.Email).Msg("pitview starting")

	uiOpts := ui.Options{
		Context:     ctx,
		Store:       store,
		Refresher:   refresher,
		Session:     sess,
		ExportDir:   cfg.ExportDir,
		PollTick:    interval,
		ThemeName:   userPrefs.Theme,
		DefaultView: userPrefs.DefaultView,
		PrefsPath:   opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
