package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/egarage/pitview/internal/garage"
	"github.com/egarage/pitview/internal/session"
	"github.com/egarage/pitview/internal/state"
)

// Refresher triggers fetches of backend resources. It is satisfied by the
// application's refresher; the UI never talks to the backend directly.
type Refresher interface {
	Refresh(ctx context.Context, res garage.Resource)
	RefreshAll(ctx context.Context)
}

// Options configure the terminal UI.
type Options struct {
	Context     context.Context
	Store       *state.Store
	Refresher   Refresher
	Session     session.Session
	ExportDir   string
	PollTick    time.Duration
	ThemeName   string
	DefaultView string
	PrefsPath   string
}

// Run starts the terminal UI and blocks until it exits or the context is
// cancelled.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui: store is required")
	}
	if opts.Refresher == nil {
		return fmt.Errorf("ui: refresher is required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	model := NewModel(opts)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	if err == tea.ErrProgramKilled && ctx.Err() != nil {
		// Cancellation via signal is a normal shutdown.
		return nil
	}
	return err
}
