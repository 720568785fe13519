package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/egarage/pitview/internal/garage"
	"github.com/egarage/pitview/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// Refresher fetches resources and applies the results to the store,
// falling back to sample data when the live fetch fails entirely.
type Refresher struct {
	store    *state.Store
	live     garage.ListFetcher
	fallback garage.ListFetcher
	demoMode bool
	log      zerolog.Logger
}

// NewRefresher wires a refresher. fallback may be nil to disable sample
// data; demoMode serves sample data unconditionally without touching the
// network.
func NewRefresher(store *state.Store, live, fallback garage.ListFetcher, demoMode bool, log zerolog.Logger) *Refresher {
	return &Refresher{store: store, live: live, fallback: fallback, demoMode: demoMode, log: log}
}

// RefreshAll refreshes every resource sequentially.
func (r *Refresher) RefreshAll(ctx context.Context) {
	for _, res := range garage.Resources {
		if ctx.Err() != nil {
			return
		}
		r.Refresh(ctx, res)
	}
}

// Refresh fetches one resource and applies the outcome under a sequence
// number, so a slow fetch can never overwrite a newer one.
func (r *Refresher) Refresh(ctx context.Context, res garage.Resource) {
	seq := r.store.Begin(res.Name)

	if r.demoMode {
		sample, err := r.fallback.FetchList(ctx, res)
		if err != nil {
			r.store.Update(res.Name, seq, nil, state.SourceNone, "", err)
			return
		}
		r.store.Update(res.Name, seq, sample.Records, state.SourceDemo, sample.URL, nil)
		return
	}

	result, err := r.live.FetchList(ctx, res)
	if err == nil {
		r.store.Update(res.Name, seq, result.Records, state.SourceAPI, result.URL, nil)
		return
	}
	r.log.Warn().Err(err).Str("resource", res.Name).Msg("live fetch failed")

	if r.fallback != nil {
		if sample, derr := r.fallback.FetchList(ctx, res); derr == nil {
			// Keep the live error as context so the UI can say why the
			// user is looking at sample data.
			r.store.Update(res.Name, seq, sample.Records, state.SourceDemo, sample.URL, err)
			return
		}
	}
	r.store.Update(res.Name, seq, nil, state.SourceNone, "", err)
}

// StartPoller launches a background goroutine that refreshes all resources
// at a fixed cadence, stretching the interval exponentially while the
// backend stays unreachable. It returns immediately.
func StartPoller(ctx context.Context, r *Refresher, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			r.RefreshAll(ctx)

			wait := calculateBackoff(r.worstFailureStreak(), interval)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}()
}

// worstFailureStreak returns the highest consecutive-failure count across
// all resources; the poller backs off to match the unhealthiest one.
func (r *Refresher) worstFailureStreak() int {
	worst := 0
	for _, res := range garage.Resources {
		if n := r.store.Snapshot(res.Name).ConsecutiveFailures; n > worst {
			worst = n
		}
	}
	return worst
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
