// Package state provides thread-safe snapshot storage for pitview.
//
// # Overview
//
// The background poller and the UI goroutine share per-resource snapshots
// through a single Store guarded by a read-write mutex. Snapshots are
// copied on both write and read so neither side can observe the other's
// mutations.
//
// # Error semantics
//
// A failed refresh records the error and bumps ConsecutiveFailures but
// keeps the previous records, so a flaky backend degrades to "slightly
// stale data plus an error indicator" instead of an empty screen. Two or
// more consecutive failures flip IsOffline, which the header surfaces.
//
// # Refresh sequencing
//
// Manual refreshes can race the poller: a slow request started earlier
// must not overwrite the result of a faster one started later. Callers
// take a per-resource sequence number from Begin before fetching and hand
// it to Update on completion; Update drops any completion whose sequence
// is not newer than the last applied one. Last-started wins, not
// last-completed.
package state
