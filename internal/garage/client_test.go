package garage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/egarage/pitview/internal/normalize"
	"github.com/egarage/pitview/internal/session"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultBase {
		t.Fatalf("host = %q, want %q", u.Host, defaultBase)
	}

	u, err = parseBaseURL("https://garage.example.com:8443/admin?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_CandidateOrder(t *testing.T) {
	c, err := NewClient([]string{"a.example.com:1", "b.example.com:2"}, session.Session{}, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	got := c.candidateURLs(Appointments)
	want := []string{
		"http://a.example.com:1/api/bookings",
		"http://a.example.com:1/api/appointments",
		"http://b.example.com:2/api/bookings",
		"http://b.example.com:2/api/appointments",
	}
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestClient_FirstSuccessfulCandidateWins(t *testing.T) {
	t.Parallel()

	var hits []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.Path)
		switch r.URL.Path {
		case "/api/bookings":
			http.NotFound(w, r)
		case "/api/appointments":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"appointments":[{"_id":"b1","customer_name":"Ann"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient([]string{server.URL}, session.Session{}, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	res, err := c.FetchList(context.Background(), Appointments)
	if err != nil {
		t.Fatalf("FetchList returned error: %v", err)
	}
	if len(res.Records) != 1 || res.Records[0].ID != "b1" {
		t.Fatalf("records = %#v, want 1 record id=b1", res.Records)
	}
	if !strings.HasSuffix(res.URL, "/api/appointments") {
		t.Fatalf("winning URL = %q, want /api/appointments candidate", res.URL)
	}
	if len(hits) != 2 {
		t.Fatalf("probe hit %v, want sequential two attempts", hits)
	}
}

func TestClient_AttachesSessionToken(t *testing.T) {
	t.Parallel()

	var gotAuth, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"users":[]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient([]string{server.URL}, session.Session{Token: "tok-9"}, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchList(context.Background(), Customers); err != nil {
		t.Fatalf("FetchList returned error: %v", err)
	}
	if gotAuth != "Bearer tok-9" {
		t.Fatalf("Authorization = %q, want Bearer tok-9", gotAuth)
	}
	if !strings.HasPrefix(gotAgent, "pitview/") {
		t.Fatalf("User-Agent = %q, want pitview/*", gotAgent)
	}
}

func TestClient_ExhaustionAggregatesFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient([]string{server.URL}, session.Session{}, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchList(context.Background(), Messages)
	if err == nil {
		t.Fatalf("FetchList returned nil error, want aggregated failure")
	}
	msg := err.Error()
	if !strings.Contains(msg, "all 2 candidates failed") {
		t.Fatalf("error = %q, want aggregated candidate count", msg)
	}
	if !strings.Contains(msg, "status 502") {
		t.Fatalf("error = %q, want per-candidate status detail", msg)
	}
}

func TestClient_HTMLBodyKeepsClassification(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>It works!</body></html>"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient([]string{server.URL}, session.Session{}, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchList(context.Background(), Payments)
	if !errors.Is(err, normalize.ErrHTMLPayload) {
		t.Fatalf("FetchList error = %v, want ErrHTMLPayload", err)
	}
}

func TestClient_PerCandidateTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient([]string{server.URL}, session.Session{}, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	start := time.Now()
	_, err = c.FetchList(context.Background(), Messages)
	if err == nil {
		t.Fatalf("FetchList returned nil error, want timeout failure")
	}
	// Two candidates, 50ms each; well under a second proves the per-call
	// deadline fired rather than the transport backstop.
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("probe took %v, want bounded by per-candidate timeouts", elapsed)
	}
}
