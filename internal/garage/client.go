package garage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/egarage/pitview/internal/normalize"
	"github.com/egarage/pitview/internal/session"
)

// ListFetcher fetches the records of one resource. It is implemented by
// *Client and by the demo provider, so callers can swap live data for
// sample data behind the same interface.
type ListFetcher interface {
	FetchList(ctx context.Context, res Resource) (ListResult, error)
}

// Ensure Client implements ListFetcher at compile time.
var _ ListFetcher = (*Client)(nil)

// ListResult is a successful fetch: the normalized records plus the
// candidate URL that answered.
type ListResult struct {
	Records []normalize.Record
	URL     string
}

// Client talks to the E-Garage REST backend.
type Client struct {
	bases     []*url.URL
	http      *http.Client
	userAgent string
	sess      session.Session
	timeout   time.Duration
}

const (
	defaultBase      = "127.0.0.1:4000"
	defaultUserAgent = "pitview/0.1"

	// DefaultProbeTimeout bounds each individual candidate request.
	DefaultProbeTimeout = 5 * time.Second
)

// NewClient builds a Client probing the given base addresses in order.
// Each base accepts host:port or a full URL. The session's token, when
// present, is attached to every outgoing request.
func NewClient(bases []string, sess session.Session, timeout time.Duration) (*Client, error) {
	if len(bases) == 0 {
		bases = []string{defaultBase}
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	parsed := make([]*url.URL, 0, len(bases))
	for _, base := range bases {
		u, err := parseBaseURL(base)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, u)
	}

	return &Client{
		bases: parsed,
		// The per-candidate deadline comes from probe contexts; the
		// transport-level timeout is a backstop only.
		http:      &http.Client{Timeout: timeout + time.Second},
		userAgent: defaultUserAgent,
		sess:      sess,
		timeout:   timeout,
	}, nil
}

// FetchList probes the resource's candidates and normalizes the winning
// body. Probe exhaustion and normalization failures are both returned as
// errors; the caller decides whether to fall back to sample data.
func (c *Client) FetchList(ctx context.Context, res Resource) (ListResult, error) {
	if c == nil {
		return ListResult{}, fmt.Errorf("client is nil")
	}
	body, winner, err := c.probe(ctx, c.candidateURLs(res))
	if err != nil {
		return ListResult{}, fmt.Errorf("fetch %s: %w", res.Name, err)
	}
	records, err := normalize.Normalize(res.Schema, body)
	if err != nil {
		return ListResult{}, fmt.Errorf("fetch %s from %s: %w", res.Name, winner, err)
	}
	return ListResult{Records: records, URL: winner}, nil
}

// candidateURLs expands a resource's paths across all configured bases,
// primary base first.
func (c *Client) candidateURLs(res Resource) []string {
	urls := make([]string, 0, len(c.bases)*len(res.Paths))
	for _, base := range c.bases {
		for _, path := range res.Paths {
			urls = append(urls, base.ResolveReference(&url.URL{Path: path}).String())
		}
	}
	return urls
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
