// Package garage provides the HTTP client for the E-Garage REST backend.
//
// # Overview
//
// The backend exposes one list endpoint per admin resource, but deployed
// instances disagree on where each lives: newer deployments serve
// /api/bookings while older ones only answer /api/appointments, and a
// staging base may front a primary one. The client therefore treats every
// resource as an ordered list of candidate URLs and probes them
// sequentially, first 2xx wins.
//
// # Probing
//
//   - Candidates are built as (base x path), primary base first.
//   - Each candidate request runs under its own timeout (default 5s).
//   - There are no retries beyond the candidate list and no backoff; retry
//     cadence belongs to the caller (the app poller).
//   - When every candidate fails, the per-candidate errors are joined into
//     a single aggregated error. Callers treat that as "use fallback
//     data", never as a crash.
//
// # Requests
//
// All requests are GETs with Accept: application/json and the pitview
// User-Agent. When the operator's session holds a token it is attached as
// a bearer Authorization header; the token is opaque and never inspected.
//
// # Errors
//
// Initialization errors (bad base address), network errors, non-2xx
// statuses, and normalization errors are all wrapped with context about
// the resource and candidate that failed. HTML-instead-of-JSON and
// shape-mismatch failures keep their distinct classifications from the
// normalize package so the UI can tell "server misconfigured" from "shape
// changed".
package garage
