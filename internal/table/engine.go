// Package table implements the client-side search/sort engine behind every
// listing view. It holds the full normalized record set and recomputes the
// visible sequence from scratch on every change; volumes are admin-screen
// sized, so there is no indexing and no pagination.
package table

import (
	"sort"
	"strconv"
	"strings"

	"github.com/egarage/pitview/internal/normalize"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// SortConfig names the active sort column and direction.
type SortConfig struct {
	Key       string
	Direction Direction
}

// Engine filters and orders records for one listing view.
type Engine struct {
	schema  normalize.Schema
	records []normalize.Record
	query   string
	sort    SortConfig
}

// NewEngine creates an engine for the given schema with no records, an
// empty search term, and no sort column.
func NewEngine(schema normalize.Schema) *Engine {
	return &Engine{schema: schema}
}

// SetRecords replaces the full record set. Search term and sort config are
// kept; the next Visible call reflects the new data.
func (e *Engine) SetRecords(records []normalize.Record) {
	e.records = records
}

// Len returns the size of the full (unfiltered) record set.
func (e *Engine) Len() int {
	return len(e.records)
}

// SetQuery replaces the free-text search term. An empty term matches
// every record.
func (e *Engine) SetQuery(query string) {
	e.query = strings.TrimSpace(query)
}

// Query returns the active search term.
func (e *Engine) Query() string {
	return e.query
}

// SortBy selects the sort column with header-click semantics: choosing the
// active column flips its direction, choosing any other column resets to
// ascending.
func (e *Engine) SortBy(key string) {
	if e.sort.Key == key {
		if e.sort.Direction == Ascending {
			e.sort.Direction = Descending
		} else {
			e.sort.Direction = Ascending
		}
		return
	}
	e.sort = SortConfig{Key: key, Direction: Ascending}
}

// Sort returns the active sort configuration. A zero Key means input order.
func (e *Engine) Sort() SortConfig {
	return e.sort
}

// Visible returns the records to render: the full set filtered by the
// search term, then stably sorted by the active column.
func (e *Engine) Visible() []normalize.Record {
	visible := e.filter()
	if e.sort.Key == "" {
		return visible
	}

	key := e.sort.Key
	desc := e.sort.Direction == Descending
	sort.SliceStable(visible, func(i, j int) bool {
		a, b := visible[i].Get(key), visible[j].Get(key)
		if desc {
			return compareValues(b, a)
		}
		return compareValues(a, b)
	})
	return visible
}

func (e *Engine) filter() []normalize.Record {
	if e.query == "" {
		out := make([]normalize.Record, len(e.records))
		copy(out, e.records)
		return out
	}

	term := strings.ToLower(e.query)
	keys := e.schema.SearchableKeys()
	out := make([]normalize.Record, 0, len(e.records))
	for _, rec := range e.records {
		if matches(rec, keys, term) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether the record would survive the engine's current
// search term.
func (e *Engine) Matches(rec normalize.Record) bool {
	if e.query == "" {
		return true
	}
	return matches(rec, e.schema.SearchableKeys(), strings.ToLower(e.query))
}

func matches(rec normalize.Record, keys []string, term string) bool {
	for _, key := range keys {
		if strings.Contains(strings.ToLower(rec.Get(key)), term) {
			return true
		}
	}
	return false
}

// compareValues orders two field values, numerically when both parse as
// numbers so amounts and ids do not sort lexically.
func compareValues(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return a < b
}
