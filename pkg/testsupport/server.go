package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FakeAPI is an httptest-backed stand-in for the Notion API. Handlers are
// registered per method and path; every request is counted so tests can
// assert exactly how many remote calls an operation produced.
type FakeAPI struct {
	t   *testing.T
	mux *http.ServeMux
	srv *httptest.Server

	mu    sync.Mutex
	calls map[string]int
}

// NewFakeAPI starts a fake API server, shut down when the test finishes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		t:     t,
		mux:   http.NewServeMux(),
		calls: map[string]int{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.Method+" "+r.URL.Path]++
		f.mu.Unlock()
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

// URL returns the server's base URL, suitable for notion.WithBaseURL.
func (f *FakeAPI) URL() string {
	return f.srv.URL
}

// Close shuts the server down immediately, simulating the backend going
// away mid-test. The automatic cleanup close afterwards is a no-op.
func (f *FakeAPI) Close() {
	f.srv.Close()
}

// HandleFunc registers a raw handler for "METHOD /path".
func (f *FakeAPI) HandleFunc(pattern string, handler http.HandlerFunc) {
	f.mux.HandleFunc(pattern, handler)
}

// Handle registers a handler for "METHOD /path" that always answers with
// the given status and JSON body.
func (f *FakeAPI) Handle(pattern string, status int, body any) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(f.t, w, status, body)
	})
}

// HandleSequence registers a handler for "METHOD /path" that walks through
// the given responses in order, repeating the last one once exhausted.
func (f *FakeAPI) HandleSequence(pattern string, responses ...Response) {
	var mu sync.Mutex
	next := 0
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		resp := responses[next]
		if next < len(responses)-1 {
			next++
		}
		mu.Unlock()
		WriteJSON(f.t, w, resp.Status, resp.Body)
	})
}

// Response is one canned reply for HandleSequence.
type Response struct {
	Status int
	Body   any
}

// Calls returns how many requests matched "METHOD /path".
func (f *FakeAPI) Calls(pattern string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[pattern]
}

// TotalCalls returns how many requests the server has seen.
func (f *FakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// WriteJSON writes a JSON response body with the given status.
func WriteJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("failed to encode response body: %v", err)
	}
}
