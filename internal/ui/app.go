package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/egarage/pitview/internal/export"
	"github.com/egarage/pitview/internal/normalize"
	"github.com/egarage/pitview/internal/prefs"
	"github.com/egarage/pitview/internal/session"
	"github.com/egarage/pitview/internal/state"
	engine "github.com/egarage/pitview/internal/table"
)

type tickMsg time.Time

type refreshDoneMsg struct{}

// Model is the Bubble Tea model for the admin console.
type Model struct {
	ctx       context.Context
	store     *state.Store
	refresher Refresher
	sess      session.Session
	exportDir string
	prefsPath string
	pollTick  time.Duration

	keys   keyMap
	theme  Theme
	styles Styles

	view      View
	engines   map[View]*engine.Engine
	tables    map[View]table.Model
	snapshots map[View]state.Snapshot

	search    textinput.Model
	searching bool

	status    string
	statusAt  time.Time
	statusErr bool

	showHelp bool

	width  int
	height int
	now    time.Time
}

// NewModel builds the initial model from the wiring options.
func NewModel(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	theme := GetTheme(opts.ThemeName)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.CharLimit = 64

	m := &Model{
		ctx:       ctx,
		store:     opts.Store,
		refresher: opts.Refresher,
		sess:      opts.Session,
		exportDir: opts.ExportDir,
		prefsPath: opts.PrefsPath,
		pollTick:  opts.PollTick,
		keys:      DefaultKeyMap(),
		theme:     theme,
		styles:    theme.Styles(),
		view:      ViewFromName(opts.DefaultView),
		engines:   make(map[View]*engine.Engine, len(AllViews)),
		tables:    make(map[View]table.Model, len(AllViews)),
		snapshots: make(map[View]state.Snapshot, len(AllViews)),
		search:    search,
		now:       time.Now(),
	}
	for _, v := range AllViews {
		schema := v.Resource().Schema
		m.engines[v] = engine.NewEngine(schema)
		t := table.New(
			table.WithColumns(columnsFor(schema, minWidth)),
			table.WithFocused(true),
			table.WithStyles(theme.TableStyles()),
		)
		m.tables[v] = t
	}
	return m
}

// Init starts the snapshot tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), textinput.Blink)
}

func tickCmd() tea.Cmd {
	return tea.Tick(uiRefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update routes messages to the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeTables()
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.readSnapshots()
		if m.status != "" && m.now.Sub(m.statusAt) > statusMessageTTL {
			m.status = ""
		}
		return m, tickCmd()

	case refreshDoneMsg:
		m.readSnapshots()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit works regardless of focus or overlay state.
	if key.Matches(msg, m.keys.Quit) && (!m.searching || msg.String() == "ctrl+c") {
		return m, tea.Quit
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.showHelp {
		// Any key closes the help overlay.
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.switchView(m.view.Next())
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.switchView(m.view.Prev())
		return m, nil

	case key.Matches(msg, m.keys.ViewAppointments):
		m.switchView(ViewAppointments)
		return m, nil

	case key.Matches(msg, m.keys.ViewCustomers):
		m.switchView(ViewCustomers)
		return m, nil

	case key.Matches(msg, m.keys.ViewPayments):
		m.switchView(ViewPayments)
		return m, nil

	case key.Matches(msg, m.keys.ViewMessages):
		m.switchView(ViewMessages)
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.engines[m.view].Query())
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		m.engines[m.view].SetQuery("")
		m.search.SetValue("")
		m.syncTable(m.view)
		return m, nil

	case key.Matches(msg, m.keys.CycleSort):
		m.cycleSortColumn()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSortDir):
		eng := m.engines[m.view]
		if cur := eng.Sort(); cur.Key != "" {
			eng.SortBy(cur.Key)
			m.syncTable(m.view)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.setStatus("Refreshing "+m.view.Title()+"…", false)
		res := m.view.Resource()
		return m, func() tea.Msg {
			m.refresher.Refresh(m.ctx, res)
			return refreshDoneMsg{}
		}

	case key.Matches(msg, m.keys.ExportCSV):
		m.exportCurrent(export.CSV)
		return m, nil

	case key.Matches(msg, m.keys.ExportJSON):
		m.exportCurrent(export.JSON)
		return m, nil
	}

	t := m.tables[m.view]
	t, cmd := t.Update(msg)
	m.tables[m.view] = t
	return m, cmd
}

// handleSearchKey routes keys while the search input is focused. The
// filter applies live on every keystroke.
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.engines[m.view].SetQuery("")
		m.syncTable(m.view)
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.engines[m.view].SetQuery(m.search.Value())
	m.syncTable(m.view)
	return m, cmd
}

func (m *Model) switchView(v View) {
	if v == m.view {
		return
	}
	m.view = v
	m.searching = false
	m.search.Blur()
	m.search.SetValue(m.engines[v].Query())
	m.syncTable(v)
}

// applyTheme restyles every table in place.
func (m *Model) applyTheme(t Theme) {
	m.theme = t
	m.styles = t.Styles()
	for v, tbl := range m.tables {
		tbl.SetStyles(t.TableStyles())
		m.tables[v] = tbl
	}
}

func (m *Model) savePrefs() {
	p := prefs.Prefs{
		Theme:       m.theme.Name,
		DefaultView: m.view.Resource().Name,
	}
	// Preference writes are best effort; a read-only home directory
	// should not break the session.
	_ = prefs.Save(m.prefsPath, p)
}

// cycleSortColumn advances the sort to the next column of the current
// schema, starting at the first column when unsorted.
func (m *Model) cycleSortColumn() {
	eng := m.engines[m.view]
	keys := m.view.Resource().Schema.FieldKeys()
	if len(keys) == 0 {
		return
	}
	next := keys[0]
	if cur := eng.Sort(); cur.Key != "" {
		for i, k := range keys {
			if k == cur.Key {
				next = keys[(i+1)%len(keys)]
				break
			}
		}
	}
	// SortBy toggles direction when the key is unchanged; force a fresh
	// ascending sort on the new column instead.
	if cur := eng.Sort(); cur.Key == next {
		return
	}
	eng.SortBy(next)
	m.syncTable(m.view)
}

func (m *Model) exportCurrent(format export.Format) {
	eng := m.engines[m.view]
	schema := m.view.Resource().Schema
	path, err := export.WriteFile(m.exportDir, schema, eng.Visible(), format, m.now)
	if err != nil {
		m.setStatus("Export failed: "+err.Error(), true)
		return
	}
	m.setStatus("Exported "+path, false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusAt = m.now
	m.statusErr = isErr
}

// readSnapshots pulls the latest store state into every engine and
// refreshes the visible table.
func (m *Model) readSnapshots() {
	for _, v := range AllViews {
		snap := m.store.Snapshot(v.Resource().Name)
		prev := m.snapshots[v]
		m.snapshots[v] = snap
		if !snap.LastUpdated.Equal(prev.LastUpdated) {
			m.engines[v].SetRecords(snap.Records)
		}
	}
	m.syncTable(m.view)
}

// syncTable rebuilds the bubbles table rows for a view from its engine.
func (m *Model) syncTable(v View) {
	eng := m.engines[v]
	schema := v.Resource().Schema
	visible := eng.Visible()

	rows := make([]table.Row, len(visible))
	for i, rec := range visible {
		row := make(table.Row, len(schema.Fields))
		for j, f := range schema.Fields {
			row[j] = truncateTail(rec.Get(f.Key), columnWidth(f, m.tableWidth(), schema))
		}
		rows[i] = row
	}

	t := m.tables[v]
	t.SetRows(rows)
	if t.Cursor() >= len(rows) && len(rows) > 0 {
		t.SetCursor(len(rows) - 1)
	}
	m.tables[v] = t
}

func (m *Model) tableWidth() int {
	if m.width < minWidth {
		return minWidth
	}
	return m.width
}

func (m *Model) resizeTables() {
	height := m.height - chromeHeight
	if height < 3 {
		height = 3
	}
	for _, v := range AllViews {
		t := m.tables[v]
		t.SetColumns(columnsFor(v.Resource().Schema, m.tableWidth()))
		t.SetHeight(height)
		t.SetWidth(m.tableWidth())
		m.tables[v] = t
	}
	for _, v := range AllViews {
		m.syncTable(v)
	}
}

// columnsFor distributes the terminal width across the schema's columns
// in proportion to their declared widths.
func columnsFor(schema normalize.Schema, width int) []table.Column {
	total := 0
	for _, f := range schema.Fields {
		total += f.Width
	}
	// Account for the cell padding bubbles adds per column.
	avail := width - 2*len(schema.Fields)
	if avail < total {
		avail = total
	}
	cols := make([]table.Column, len(schema.Fields))
	for i, f := range schema.Fields {
		w := f.Width * avail / total
		if w < 4 {
			w = 4
		}
		cols[i] = table.Column{Title: f.Title, Width: w}
	}
	return cols
}

// columnWidth returns the scaled width for a field, matching columnsFor.
func columnWidth(f normalize.Field, width int, schema normalize.Schema) int {
	total := 0
	for _, sf := range schema.Fields {
		total += sf.Width
	}
	avail := width - 2*len(schema.Fields)
	if avail < total {
		avail = total
	}
	w := f.Width * avail / total
	if w < 4 {
		w = 4
	}
	return w
}

// View renders the full screen.
func (m *Model) View() string {
	if m.width > 0 && (m.width < minWidth || m.height < minHeight) {
		return m.styles.WarningText.Render("Terminal too small — resize to at least 60x12.")
	}

	header := m.renderHeader()
	tabs := m.renderTabs()
	searchLine := m.renderSearchLine()
	footer := m.renderFooter()

	body := m.tables[m.view].View()
	if m.showHelp {
		body = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, searchLine, body, footer)
}
