package state

import (
	"errors"
	"testing"
	"time"

	"github.com/egarage/pitview/internal/normalize"
)

func records(ids ...string) []normalize.Record {
	out := make([]normalize.Record, len(ids))
	for i, id := range ids {
		out[i] = normalize.Record{ID: id, Fields: map[string]string{"id": id}}
	}
	return out
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	seq := s.Begin("payments")
	if !s.Update("payments", seq, records("p1", "p2"), SourceAPI, "http://x/api/payments", nil) {
		t.Fatalf("Update dropped a fresh completion")
	}

	snap := s.Snapshot("payments")
	if !snap.Loaded || snap.Source != SourceAPI {
		t.Fatalf("snapshot = %#v, want loaded from api", snap)
	}
	if len(snap.Records) != 2 || snap.Records[0].ID != "p1" {
		t.Fatalf("snapshot records = %#v, want 2 records", snap.Records)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Records[0].ID = "mutated"
	if got := s.Snapshot("payments").Records[0].ID; got != "p1" {
		t.Fatalf("Snapshot should clone records; got id %q want p1", got)
	}
}

func TestStore_ErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update("messages", s.Begin("messages"), records("m1"), SourceAPI, "http://x/api/contact", nil)

	origErr := errors.New("boom")
	s.Update("messages", s.Begin("messages"), nil, SourceNone, "", origErr)

	snap := s.Snapshot("messages")
	if len(snap.Records) != 1 || snap.Records[0].ID != "m1" {
		t.Fatalf("records changed on error: %#v", snap.Records)
	}
	if snap.Source != SourceAPI {
		t.Fatalf("source changed on error: %v", snap.Source)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError = %v, want wrapped original", snap.LastError)
	}
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("failures = %d offline = %v, want 1 and online", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update("messages", s.Begin("messages"), nil, SourceNone, "", origErr)
	if snap := s.Snapshot("messages"); !snap.IsOffline() {
		t.Fatalf("two consecutive failures should report offline")
	}
}

func TestStore_FallbackCarriesRecordsAndAdvisoryError(t *testing.T) {
	var s Store

	liveErr := errors.New("all 2 candidates failed")
	s.Update("payments", s.Begin("payments"), records("d1", "d2"), SourceDemo, "demo://payments", liveErr)

	snap := s.Snapshot("payments")
	if snap.Source != SourceDemo || len(snap.Records) != 2 {
		t.Fatalf("snapshot = %#v, want demo records applied", snap)
	}
	if !errors.Is(snap.LastError, liveErr) {
		t.Fatalf("LastError = %v, want live failure kept as context", snap.LastError)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("failures = %d, want fallback to count as a live failure", snap.ConsecutiveFailures)
	}

	// A later live success clears both the tag and the error.
	s.Update("payments", s.Begin("payments"), records("p1"), SourceAPI, "http://x/api/payments", nil)
	snap = s.Snapshot("payments")
	if snap.Source != SourceAPI || snap.LastError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("snapshot after recovery = %#v, want clean api state", snap)
	}
}

func TestStore_StaleCompletionDiscarded(t *testing.T) {
	var s Store

	slow := s.Begin("customers")
	fast := s.Begin("customers")

	// The later-started request completes first.
	if !s.Update("customers", fast, records("current"), SourceAPI, "http://x/api/users", nil) {
		t.Fatalf("fast completion should apply")
	}
	// The earlier-started request straggles in afterwards.
	if s.Update("customers", slow, records("stale"), SourceAPI, "http://x/api/users", nil) {
		t.Fatalf("stale completion should be discarded")
	}

	snap := s.Snapshot("customers")
	if len(snap.Records) != 1 || snap.Records[0].ID != "current" {
		t.Fatalf("records = %#v, want the newer fetch preserved", snap.Records)
	}

	// Stale errors must not clobber newer data either.
	if s.Update("customers", slow, nil, SourceNone, "", errors.New("late failure")) {
		t.Fatalf("stale error completion should be discarded")
	}
	if snap := s.Snapshot("customers"); snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil after stale error dropped", snap.LastError)
	}
}

func TestStore_ResourcesAreIndependent(t *testing.T) {
	var s Store

	s.Update("payments", s.Begin("payments"), records("p1"), SourceAPI, "", nil)
	s.Update("messages", s.Begin("messages"), records("m1"), SourceDemo, "demo://messages", nil)

	if got := s.Snapshot("payments").Source; got != SourceAPI {
		t.Fatalf("payments source = %v, want api", got)
	}
	if got := s.Snapshot("messages").Source; got != SourceDemo {
		t.Fatalf("messages source = %v, want demo", got)
	}
	if snap := s.Snapshot("appointments"); snap.Loaded {
		t.Fatalf("untouched resource should be unloaded, got %#v", snap)
	}
}
