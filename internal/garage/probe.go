package garage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodySize caps how much of a response body is read. Listing payloads
// are small; anything larger is a misbehaving endpoint.
const maxBodySize = 8 << 20

// probe tries each candidate URL in order and returns the first 2xx body.
// Candidates run strictly sequentially, each under its own timeout, so the
// worst case is the sum of all candidate timeouts. When every candidate
// fails the individual errors are joined into one aggregated failure; no
// partial result is kept.
func (c *Client) probe(ctx context.Context, urls []string) ([]byte, string, error) {
	if len(urls) == 0 {
		return nil, "", fmt.Errorf("no candidate urls")
	}

	var failures []error
	for _, candidate := range urls {
		body, err := c.get(ctx, candidate)
		if err == nil {
			return body, candidate, nil
		}
		failures = append(failures, fmt.Errorf("%s: %w", candidate, err))
		if ctx.Err() != nil {
			break
		}
	}
	return nil, "", fmt.Errorf("all %d candidates failed: %w", len(urls), errors.Join(failures...))
}

// get performs one bounded GET against a single candidate.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.sess.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
