package platform

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// fakeAPI serves canned provider responses by path and counts hits. Every
// outbound request is rewritten to it regardless of host.
type fakeAPI struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	calls    map[string]int
	requests map[string]*http.Request
	forms    map[string]url.Values

	fallbackStatus int
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		routes:   map[string]http.HandlerFunc{},
		calls:    map[string]int{},
		requests: map[string]*http.Request{},
		forms:    map[string]url.Values{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.URL.Path]++
	f.requests[r.URL.Path] = r.Clone(r.Context())
	if r.Method == http.MethodPost {
		_ = r.ParseForm()
		f.forms[r.URL.Path] = r.PostForm
	}
	h, ok := f.routes[r.URL.Path]
	status := f.fallbackStatus
	f.mu.Unlock()

	if !ok {
		if status == 0 {
			status = http.StatusNotFound
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"error":{"message":"boom"}}`)
		return
	}
	h(w, r)
}

func (f *fakeAPI) json(path string, status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

// failAll makes every unrouted path answer with status.
func (f *fakeAPI) failAll(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallbackStatus = status
}

func (f *fakeAPI) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeAPI) lastRequest(path string) *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[path]
}

func (f *fakeAPI) lastForm(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.forms[path]
}

func (f *fakeAPI) close() {
	f.server.Close()
}

func (f *fakeAPI) client() *http.Client {
	target, _ := url.Parse(f.server.URL)
	return &http.Client{Transport: rewriteTransport{target: target}}
}

func (f *fakeAPI) deps() Deps {
	return Deps{
		Client: f.client(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = t.target.Scheme
	r.URL.Host = t.target.Host
	r.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

// failingTransport errors every request before it reaches the network.
type failingTransport struct {
	mu    sync.Mutex
	hosts map[string]int
}

func (t *failingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hosts == nil {
		t.hosts = map[string]int{}
	}
	t.hosts[r.URL.Host]++
	return nil, errors.New("connection refused")
}

func (t *failingTransport) total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.hosts {
		n += c
	}
	return n
}

func (t *failingTransport) deps() Deps {
	return Deps{
		Client: &http.Client{Transport: t},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
