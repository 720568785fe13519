// Package ui implements the pitview terminal interface with Bubble Tea.
//
// The model renders one tab per backend resource, each backed by a table
// engine that owns filtering and sorting. The UI never fetches anything
// itself: it reads store snapshots on a one-second tick and asks the
// application's refresher for on-demand fetches, so a wedged backend can
// never freeze the screen.
//
// Data provenance is always visible. The header shows whether the current
// view is live, sample data, or offline, and the footer explains why the
// last fetch failed in operator terms rather than raw error chains.
package ui
