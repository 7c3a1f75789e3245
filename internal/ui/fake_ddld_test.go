package ui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/wcpan/ddltop/internal/api"
	"github.com/wcpan/ddltop/internal/config"
)

type seenRequest struct {
	Method       string
	Path         string
	Query        string
	CacheControl string
	Body         string
}

// fakeDDLD serves the subset of the ddld HTTP and WebSocket API the
// app talks to and records every HTTP request.
type fakeDDLD struct {
	t   testing.TB
	srv *httptest.Server

	mu         sync.Mutex
	requests   []seenRequest
	nodes      map[string][]api.Node
	history    []api.LogRecord
	live       []api.LogRecord
	failDelete bool
}

func newFakeDDLD(t testing.TB) *fakeDDLD {
	t.Helper()
	f := &fakeDDLD{t: t, nodes: map[string][]api.Node{}}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeDDLD) config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Server.BaseURL = f.srv.URL
	return &cfg
}

func (f *fakeDDLD) seen() []seenRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]seenRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *fakeDDLD) seenMethod(method string) []seenRequest {
	var out []seenRequest
	for _, r := range f.seen() {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeDDLD) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/socket" {
		f.serveSocket(w, r)
		return
	}

	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, seenRequest{
		Method:       r.Method,
		Path:         r.URL.Path,
		Query:        r.URL.RawQuery,
		CacheControl: r.Header.Get("Cache-Control"),
		Body:         string(body),
	})
	failDelete := f.failDelete
	f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/nodes":
		f.mu.Lock()
		nodes := f.nodes[r.URL.Query().Get("pattern")]
		f.mu.Unlock()
		if nodes == nil {
			nodes = []api.Node{}
		}
		writeJSON(w, nodes)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/v1/nodes/"):
		if failDelete {
			http.Error(w, "locked", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/v1/cache/"):
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodPost && r.URL.Path == "/api/v1/cache":
		io.WriteString(w, "scan queued")
	case r.Method == http.MethodGet && r.URL.Path == "/api/v1/log":
		f.mu.Lock()
		history := f.history
		f.mu.Unlock()
		if history == nil {
			history = []api.LogRecord{}
		}
		writeJSON(w, history)
	default:
		http.NotFound(w, r)
	}
}

// serveSocket sends the live records and then holds the connection open
// until the client goes away.
func (f *fakeDDLD) serveSocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer c.CloseNow()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	f.mu.Lock()
	live := f.live
	f.mu.Unlock()
	for _, rec := range live {
		data, _ := json.Marshal(rec)
		if err := c.Write(ctx, websocket.MessageText, data); err != nil {
			return
		}
	}
	// Blocks until the client closes; control frames are handled by Read.
	c.Read(ctx)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
