package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// View switching
	ViewAppointments key.Binding
	ViewCustomers    key.Binding
	ViewPayments     key.Binding
	ViewMessages     key.Binding

	// Listing actions
	Search        key.Binding
	CycleSort     key.Binding
	ToggleSortDir key.Binding
	Refresh       key.Binding
	ExportCSV     key.Binding
	ExportJSON    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear search"),
		),

		ViewAppointments: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Appointments"),
		),
		ViewCustomers: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Customers"),
		),
		ViewPayments: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Payments"),
		),
		ViewMessages: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Messages"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort by next column"),
		),
		ToggleSortDir: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Flip sort direction"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Refresh now"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Export CSV"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "Export JSON"),
		),
	}
}
