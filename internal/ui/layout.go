package ui

import "time"

const (
	// minWidth is the narrowest terminal the layout will attempt to fill;
	// anything smaller gets a resize hint instead of a table.
	minWidth  = 60
	minHeight = 12

	// compactWidth hides the connection detail in the header.
	compactWidth = 100

	// chromeHeight is the rows consumed above and below the table:
	// header, tab bar, search line, and footer.
	chromeHeight = 4

	// statusMessageTTL is how long a transient status (export path,
	// refresh notice) stays in the footer.
	statusMessageTTL = 5 * time.Second

	// uiRefreshInterval is how often the model re-reads store snapshots,
	// independent of the backend poll cadence.
	uiRefreshInterval = time.Second
)
