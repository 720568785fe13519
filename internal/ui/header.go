package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/egarage/pitview/internal/state"
	engine "github.com/egarage/pitview/internal/table"
)

const logoText = "PITVIEW"

// renderHeader draws the top bar: logo, connection indicator, and the
// signed-in account.
func (m *Model) renderHeader() string {
	snap := m.snapshots[m.view]

	left := m.styles.Logo.Render(logoText) + "  " + m.styles.MutedText.Render("E-Garage admin console")

	var right string
	switch {
	case !snap.Loaded:
		right = m.styles.MutedText.Render("● connecting…")
	case snap.IsOffline():
		right = m.styles.DangerText.Render("● offline")
	case snap.Source == state.SourceDemo:
		right = m.styles.WarningText.Render("● sample data")
	default:
		right = m.styles.StatusOK.Render("● live")
		if m.width >= compactWidth && snap.URL != "" {
			right += m.styles.MutedText.Render("  " + truncateMiddle(snap.URL, 40))
		}
	}
	if m.sess.Authenticated() && m.width >= compactWidth {
		right += m.styles.MutedText.Render("  " + m.sess.Email)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderTabs draws one tab per view with the live record count.
func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(AllViews))
	for _, v := range AllViews {
		label := fmt.Sprintf("%s (%d)", v.Title(), m.engines[v].Len())
		if v == m.view {
			parts = append(parts, m.styles.TabOn.Render(label))
		} else {
			parts = append(parts, m.styles.TabOff.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderSearchLine draws the search input when active, otherwise the
// current filter and sort state.
func (m *Model) renderSearchLine() string {
	if m.searching {
		return m.search.View()
	}

	var parts []string
	eng := m.engines[m.view]
	if q := eng.Query(); q != "" {
		parts = append(parts, m.styles.AccentText.Render(fmt.Sprintf("filter: %q (%d/%d)", q, len(eng.Visible()), eng.Len())))
	}
	if cfg := eng.Sort(); cfg.Key != "" {
		dir := "↑"
		if cfg.Direction == engine.Descending {
			dir = "↓"
		}
		parts = append(parts, m.styles.MutedText.Render("sort: "+cfg.Key+" "+dir))
	}
	if len(parts) == 0 {
		return m.styles.MutedText.Render(" / to search · s to sort · h for help")
	}
	return " " + strings.Join(parts, "  ")
}

// renderFooter draws the bottom status line: transient messages take
// priority, then fetch errors, then freshness.
func (m *Model) renderFooter() string {
	snap := m.snapshots[m.view]

	var line string
	switch {
	case m.status != "":
		if m.statusErr {
			line = m.styles.DangerText.Render(m.status)
		} else {
			line = m.styles.SuccessText.Render(m.status)
		}
	case snap.Source == state.SourceDemo && snap.LastError != nil:
		line = m.styles.WarningText.Render("Showing sample data: " + classifyFetchError(snap.LastError))
	case snap.LastError != nil:
		line = m.styles.DangerText.Render(classifyFetchError(snap.LastError))
	default:
		line = m.styles.MutedText.Render("updated " + humanizeAge(snap.LastUpdated, m.now))
	}

	return m.styles.Footer.Width(m.width).Render(line)
}
