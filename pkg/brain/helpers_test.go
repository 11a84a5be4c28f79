package brain

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recordedRequest is what fakeService saw for one call.
type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]any
}

// fakeService is an httptest server that records requests and answers with
// a per-test handler.
type fakeService struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeService(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *fakeService {
	t.Helper()
	fs := &fakeService{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.EscapedPath(), Header: r.Header.Clone()}
		raw, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(raw))
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		fs.mu.Lock()
		fs.requests = append(fs.requests, rec)
		fs.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeService) Requests() []recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]recordedRequest, len(fs.requests))
	copy(out, fs.requests)
	return out
}

func (fs *fakeService) Last(t *testing.T) recordedRequest {
	t.Helper()
	reqs := fs.Requests()
	require.NotEmpty(t, reqs, "no request reached the fake service")
	return reqs[len(reqs)-1]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fastRetry(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:   maxRetries,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
		RetryIf:      IsRetryable,
	}
}

var fixedNow = time.UnixMilli(1_700_000_000_000)

// newTestClient returns a client pointed at fs with fast retries and a fixed clock.
func newTestClient(t *testing.T, fs *fakeService, cfg Config, opts ...Option) *Client {
	t.Helper()
	cfg.BaseURL = fs.URL
	opts = append([]Option{WithRetryConfig(fastRetry(2))}, opts...)
	c, err := New(cfg, opts...)
	require.NoError(t, err)
	c.now = func() time.Time { return fixedNow }
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func newTextLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
