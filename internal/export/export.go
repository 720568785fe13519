// Package export serializes the currently visible rows of a listing view
// to files the operator can hand off: RFC-4180 CSV of the normalized
// fields, or pretty-printed JSON of the original server payloads.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/egarage/pitview/internal/normalize"
)

// Format selects the serialization.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// Filename builds the export filename for an entity at the given time,
// e.g. "payments_export_2026-08-28.csv".
func Filename(entity string, format Format, at time.Time) string {
	return fmt.Sprintf("%s_export_%s.%s", entity, at.Format("2006-01-02"), format)
}

// WriteCSV writes the records as CSV in the schema's fixed column order:
// one header row of column titles, one row per record. Quoting follows
// encoding/csv, which quotes only fields containing separators, quotes, or
// newlines and doubles embedded quotes.
func WriteCSV(w io.Writer, schema normalize.Schema, records []normalize.Record) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		header[i] = f.Title
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(schema.Fields))
	for _, rec := range records {
		for i, f := range schema.Fields {
			row[i] = rec.Get(f.Key)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteJSON writes a 2-space-indented JSON array of each record's raw
// server payload. Export always preserves the original data, not the
// normalized view.
func WriteJSON(w io.Writer, records []normalize.Record) error {
	raws := make([]json.RawMessage, len(records))
	for i, rec := range records {
		raws[i] = rec.Raw
	}

	out, err := json.MarshalIndent(raws, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// WriteFile serializes records into dir and returns the full path written.
// The directory is created when missing.
func WriteFile(dir string, schema normalize.Schema, records []normalize.Record, format Format, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, Filename(schema.Entity, format, at))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = file.Close() }()

	switch format {
	case JSON:
		err = WriteJSON(file, records)
	default:
		err = WriteCSV(file, schema, records)
	}
	if err != nil {
		return "", err
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
