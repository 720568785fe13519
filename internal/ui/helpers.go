package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/egarage/pitview/internal/normalize"
)

// truncateMiddle shortens s to max runes, keeping both ends visible.
func truncateMiddle(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	keep := max - 1
	head := keep / 2
	tail := keep - head
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}

// truncateTail shortens s to max runes, trimming from the right.
func truncateTail(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// classifyFetchError turns a fetch error into a short operator-facing
// phrase for the status line.
func classifyFetchError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, normalize.ErrHTMLPayload):
		return "endpoint returned a web page instead of data"
	case errors.Is(err, normalize.ErrNoList):
		return "response contained no recognizable list"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	default:
		return "backend unreachable"
	}
}

// humanizeAge renders the gap between now and t as a short phrase.
func humanizeAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}
