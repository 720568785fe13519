// Package app provides the orchestration layer for pitview.
//
// # Overview
//
// Run wires configuration, session, logging, the garage client, the demo
// provider, the snapshot store, and the background poller together, does
// one synchronous refresh so the first frame has data, and hands control
// to the UI.
//
// # Refresh policy
//
// Each refresh attempt takes a sequence number from the store so
// completions apply newest-started-wins. A live fetch failure degrades to
// the demo provider: the sample records are applied with the demo source
// tag and the live error kept as context, so the screen always shows
// something while making the failure visible. In demo mode the network is
// never touched at all.
//
// # Polling
//
// The poller refreshes all resources sequentially at a fixed cadence
// (default 30s). While the backend stays unreachable the interval doubles
// per consecutive failure, capped at five minutes, tracking the
// unhealthiest resource.
package app
