package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Record is the display-ready form of one backend entity. Raw holds the
// untouched payload element; Fields are derived from it and never written
// back, so Raw always reflects exactly what the server sent.
type Record struct {
	ID     string
	Fields map[string]string
	Raw    json.RawMessage
}

// Get returns the named field, or "" when the schema has no such key.
func (r Record) Get(key string) string {
	return r.Fields[key]
}

// Classification errors. ErrHTMLPayload means the server answered with an
// HTML page where JSON was expected (misconfigured server or proxy);
// ErrNoList means the JSON parsed fine but no list could be located in it.
var (
	ErrHTMLPayload = errors.New("payload is an HTML page, not JSON")
	ErrNoList      = errors.New("no list found in payload")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// jsonBlockPattern extracts the first JSON object or array substring from
// payloads wrapped in stray text (log prefixes, warnings printed by the
// backend before the body).
var jsonBlockPattern = regexp.MustCompile(`(?s)\{.*\}|\[.*\]`)

// Normalize converts a raw response body into one Record per list element.
//
// The pipeline is forgiving about shape but strict about classification:
// HTML bodies and unparsable JSON fail with distinct errors, while
// individual malformed elements never do. The element count of a valid
// top-level array is always preserved; an element missing every expected
// field still yields a Record built from placeholders.
func Normalize(schema Schema, body []byte) ([]Record, error) {
	text := bytes.TrimSpace(bytes.TrimPrefix(body, utf8BOM))
	if len(text) == 0 {
		return nil, fmt.Errorf("parse %s payload: empty body", schema.Entity)
	}

	if looksLikeHTML(text) {
		return nil, fmt.Errorf("%s endpoint: %w", schema.Entity, ErrHTMLPayload)
	}

	if text[0] != '{' && text[0] != '[' {
		block := jsonBlockPattern.Find(text)
		if block == nil {
			return nil, fmt.Errorf("parse %s payload: no JSON found in body", schema.Entity)
		}
		text = block
	}

	elems, err := splitElements(text, schema.ContainerKeys)
	if err != nil {
		return nil, fmt.Errorf("%s payload: %w", schema.Entity, err)
	}

	records := make([]Record, len(elems))
	for i, elem := range elems {
		records[i] = buildRecord(schema, elem)
	}
	return records, nil
}

func looksLikeHTML(text []byte) bool {
	probe := strings.ToLower(string(text[:min(len(text), 512)]))
	return strings.Contains(probe, "<html") || strings.Contains(probe, "<!doctype")
}

// splitElements locates the list inside the payload: a known container key
// first, then a bare top-level array, then the first array-valued field of
// the top-level object in document order.
func splitElements(text []byte, containerKeys []string) ([]json.RawMessage, error) {
	if text[0] == '[' {
		var elems []json.RawMessage
		if err := json.Unmarshal(text, &elems); err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		return elems, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(text, &top); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	for _, key := range containerKeys {
		if elems, ok := arrayElements(top[key]); ok {
			return elems, nil
		}
	}
	if elems, ok := firstArrayField(text); ok {
		return elems, nil
	}
	return nil, ErrNoList
}

func arrayElements(v json.RawMessage) ([]json.RawMessage, bool) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || v[0] != '[' {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(v, &elems); err != nil {
		return nil, false
	}
	return elems, true
}

// firstArrayField walks the top-level object with a token decoder so field
// order matches the document, which a Go map would not preserve.
func firstArrayField(text []byte) ([]json.RawMessage, bool) {
	dec := json.NewDecoder(bytes.NewReader(text))
	if _, err := dec.Token(); err != nil {
		return nil, false
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, false
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, false
		}
		if elems, ok := arrayElements(v); ok {
			return elems, true
		}
	}
	return nil, false
}

// buildRecord maps one element onto the schema. It never fails: elements
// that are not JSON objects produce a record of placeholders.
func buildRecord(schema Schema, elem json.RawMessage) Record {
	var obj map[string]any
	dec := json.NewDecoder(bytes.NewReader(elem))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		obj = nil
	}

	raw := make(json.RawMessage, len(elem))
	copy(raw, elem)

	fields := make(map[string]string, len(schema.Fields))
	for _, f := range schema.Fields {
		fields[f.Key] = lookupFirst(obj, f.Sources, f.Placeholder)
	}

	id, ok := fields["id"]
	if !ok {
		id = lookupFirst(obj, []string{"id", "_id"}, "N/A")
	}
	return Record{ID: id, Fields: fields, Raw: raw}
}

func lookupFirst(obj map[string]any, sources []string, placeholder string) string {
	for _, path := range sources {
		if v, ok := resolvePath(obj, path); ok {
			return v
		}
	}
	return placeholder
}

// resolvePath evaluates one lookup path: dot-separated nesting, or two
// paths joined by "+" whose values are concatenated with a space.
func resolvePath(obj map[string]any, path string) (string, bool) {
	if i := strings.IndexByte(path, '+'); i >= 0 {
		left, lok := resolvePath(obj, path[:i])
		right, rok := resolvePath(obj, path[i+1:])
		if !lok && !rok {
			return "", false
		}
		return strings.TrimSpace(left + " " + right), true
	}

	cur := any(obj)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		if cur, ok = m[part]; !ok {
			return "", false
		}
	}
	return scalarString(cur)
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return "", false
		}
		return s, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}
