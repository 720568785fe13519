package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderHelp draws the keybinding overlay centered in the table area.
func (m *Model) renderHelp() string {
	sections := []struct {
		title string
		keys  []key.Binding
	}{
		{"Views", []key.Binding{
			m.keys.ViewAppointments, m.keys.ViewCustomers,
			m.keys.ViewPayments, m.keys.ViewMessages,
			m.keys.Tab, m.keys.ShiftTab,
		}},
		{"Listing", []key.Binding{
			m.keys.Search, m.keys.Escape,
			m.keys.CycleSort, m.keys.ToggleSortDir,
			m.keys.Refresh, m.keys.ExportCSV, m.keys.ExportJSON,
		}},
		{"General", []key.Binding{
			m.keys.Help, m.keys.CycleTheme, m.keys.Quit,
		}},
	}

	var b strings.Builder
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.styles.AccentText.Render(sec.title))
		b.WriteString("\n")
		for _, k := range sec.keys {
			h := k.Help()
			b.WriteString("  ")
			b.WriteString(m.styles.Text.Render(padRight(h.Key, 12)))
			b.WriteString(m.styles.MutedText.Render(h.Desc))
			b.WriteString("\n")
		}
	}

	if m.pollTick > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.MutedText.Render("auto-refresh every " + m.pollTick.String()))
		b.WriteString("\n")
	}

	box := m.styles.HelpBox.Render(strings.TrimRight(b.String(), "\n"))
	height := m.height - chromeHeight
	if height < lipgloss.Height(box) {
		return box
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, box)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
