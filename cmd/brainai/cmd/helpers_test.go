package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeBrain is an httptest Brain AI service keyed by "METHOD /path".
type fakeBrain struct {
	*httptest.Server

	mu       sync.Mutex
	requests []seenRequest
}

func newFakeBrain(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *fakeBrain {
	t.Helper()
	fb := &fakeBrain{}
	fb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen := seenRequest{Method: r.Method, Path: r.URL.EscapedPath()}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &seen.Body)
		}
		fb.mu.Lock()
		fb.requests = append(fb.requests, seen)
		fb.mu.Unlock()

		if h, ok := routes[r.Method+" "+seen.Path]; ok {
			h(w, r)
			return
		}
		respond(w, http.StatusNotFound, map[string]string{"error": "no route"})
	}))
	t.Cleanup(fb.Close)
	return fb
}

func (fb *fakeBrain) last(t *testing.T) seenRequest {
	t.Helper()
	fb.mu.Lock()
	defer fb.mu.Unlock()
	require.NotEmpty(t, fb.requests, "no request reached the fake service")
	return fb.requests[len(fb.requests)-1]
}

func (fb *fakeBrain) count() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.requests)
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func reply(v any) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, v)
	}
}

// fastProjectConfig keeps retry backoff in the millisecond range.
const fastProjectConfig = `retry:
  initial_delay: 1ms
  max_delay: 2ms
`

// execute runs the CLI against baseURL with an isolated configuration and
// returns stdout.
func execute(t *testing.T, baseURL string, args ...string) (string, error) {
	t.Helper()
	return executeIn(t, nil, baseURL, args...)
}

// executeIn is execute with stdin.
func executeIn(t *testing.T, stdin io.Reader, baseURL string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, env := range os.Environ() {
		if name, _, _ := strings.Cut(env, "="); strings.HasPrefix(name, "BRAINAI_") {
			t.Setenv(name, "")
		}
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".brainai.yaml"), []byte(fastProjectConfig), 0o644))

	full := []string{"--config-dir", dir}
	if baseURL != "" {
		full = append(full, "--base-url", baseURL)
	}
	full = append(full, args...)

	return executeRaw(t, stdin, full...)
}

func executeRaw(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(io.Discard)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}
