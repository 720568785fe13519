package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/egarage/pitview/internal/normalize"
)

// Source tags where a snapshot's records came from.
type Source int

const (
	// SourceNone means the resource has never loaded.
	SourceNone Source = iota
	// SourceAPI means records came from a live backend endpoint.
	SourceAPI
	// SourceDemo means records are fabricated sample data. Views must flag
	// this visibly so demo data is never mistaken for live state.
	SourceDemo
)

func (s Source) String() string {
	switch s {
	case SourceAPI:
		return "api"
	case SourceDemo:
		return "demo"
	default:
		return "none"
	}
}

// Snapshot is the latest data for one resource.
type Snapshot struct {
	Records             []normalize.Record
	Source              Source
	URL                 string // endpoint (or demo://) that produced Records
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
	Loaded              bool
}

// IsOffline returns true when the resource has failed to refresh for
// multiple consecutive attempts.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent snapshot updates across all resources.
//
// Every refresh attempt first takes a sequence number from Begin; Update
// discards any completion older than the last one applied for that
// resource. A slow in-flight request can therefore never overwrite the
// result of a newer one, regardless of completion order.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	issued    map[string]uint64
	applied   map[string]uint64
}

// Begin registers a refresh attempt for a resource and returns its
// sequence number, to be passed back to Update.
func (s *Store) Begin(resource string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.issued == nil {
		s.issued = make(map[string]uint64)
	}
	s.issued[resource]++
	return s.issued[resource]
}

// Update applies a refresh completion. It reports whether the completion
// was applied; stale completions, older than one already applied for the
// resource, are dropped without touching the snapshot.
//
// A completion with no records and a non-nil error keeps the previous
// records and only changes the error bookkeeping, so the screen keeps
// showing the last good data. A completion carrying records applies them
// and records err as advisory context; fallback updates pass the demo
// records together with the live-fetch error, which keeps both the sample
// data and the reason it is being shown. Any non-nil error counts toward
// ConsecutiveFailures since it means the backend did not answer.
func (s *Store) Update(resource string, seq uint64, records []normalize.Record, source Source, url string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.applied == nil {
		s.applied = make(map[string]uint64)
	}
	if seq <= s.applied[resource] {
		return false
	}
	s.applied[resource] = seq

	if s.snapshots == nil {
		s.snapshots = make(map[string]Snapshot)
	}
	snap := s.snapshots[resource]

	if records == nil && err != nil {
		snap.LastError = err
		snap.LastUpdated = time.Now()
		snap.ConsecutiveFailures++
		s.snapshots[resource] = snap
		return true
	}

	snap.Records = cloneRecords(records)
	snap.Source = source
	snap.URL = url
	snap.LastError = err
	snap.LastUpdated = time.Now()
	if err != nil {
		snap.ConsecutiveFailures++
	} else {
		snap.ConsecutiveFailures = 0
	}
	snap.Loaded = true
	s.snapshots[resource] = snap
	return true
}

// Snapshot returns a copy of the current snapshot for a resource.
func (s *Store) Snapshot(resource string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshots[resource]
	snap.Records = cloneRecords(snap.Records)
	if snap.LastError != nil {
		snap.LastError = fmt.Errorf("%w", snap.LastError)
	}
	return snap
}

func cloneRecords(records []normalize.Record) []normalize.Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]normalize.Record, len(records))
	copy(dup, records)
	return dup
}
