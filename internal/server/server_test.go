package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/excalimaid/pkg/cache"
	"github.com/matzehuels/excalimaid/pkg/convert"
	"github.com/matzehuels/excalimaid/pkg/observability"
	"github.com/matzehuels/excalimaid/pkg/pipeline"
)

const twoBoxes = `{
  "type": "excalidraw",
  "elements": [
    {"id": "a", "type": "rectangle", "x": 0, "y": 0, "width": 100, "height": 50},
    {"id": "b", "type": "rectangle", "x": 300, "y": 0, "width": 100, "height": 50},
    {"id": "ta", "type": "text", "containerId": "a", "text": "Client"},
    {"id": "tb", "type": "text", "containerId": "b", "text": "API"},
    {"id": "e", "type": "arrow", "startBinding": {"elementId": "a"}, "endBinding": {"elementId": "b"}, "endArrowhead": "arrow"}
  ]
}`

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	c, err := cache.NewMemoryCache(16)
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	runner := pipeline.NewRunner(c, nil, logger)
	t.Cleanup(func() { runner.Close() })
	return New(runner, logger, opts)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestConvert(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, http.MethodPost, "/api/v1/convert", twoBoxes)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}

	var res convert.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	want := "graph LR\n    A[Client]\n    B[API]\n    A --> B\n"
	if res.Mermaid != want {
		t.Errorf("mermaid = %q, want %q", res.Mermaid, want)
	}
	if res.NodeCount != 2 || res.EdgeCount != 1 || res.Direction != "LR" {
		t.Errorf("result = %+v", res)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/convert", twoBoxes)
	if got := rec.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
}

func TestConvertDirection(t *testing.T) {
	tests := []struct {
		name    string
		def     string
		query   string
		wantDir string
	}{
		{"inferred", "", "", "LR"},
		{"query", "", "?direction=bt", "BT"},
		{"server default", "RL", "", "RL"},
		{"query beats default", "RL", "?direction=TD", "TD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Options{Direction: tt.def})
			rec := do(t, s, http.MethodPost, "/api/v1/convert"+tt.query, twoBoxes)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			var res convert.Result
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatal(err)
			}
			if string(res.Direction) != tt.wantDir {
				t.Errorf("direction = %s, want %s", res.Direction, tt.wantDir)
			}
			if !strings.HasPrefix(res.Mermaid, "graph "+tt.wantDir+"\n") {
				t.Errorf("mermaid header = %q", res.Mermaid)
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		body     string
		status   int
		wantCode string
	}{
		{"empty body", "/api/v1/convert", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"not json", "/api/v1/convert", "{nope", http.StatusBadRequest, "INVALID_DOCUMENT"},
		{"bad direction", "/api/v1/convert?direction=UP", twoBoxes, http.StatusBadRequest, "INVALID_DIRECTION"},
		{"bad format", "/api/v1/preview?format=gif", twoBoxes, http.StatusBadRequest, "INVALID_FORMAT"},
	}
	s := newTestServer(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			body := decodeError(t, rec)
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if body.Error == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestConvertEmptyDocument(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := do(t, s, http.MethodPost, "/api/v1/convert", `{"elements": []}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var res convert.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Mermaid != "graph TD\n" || res.NodeCount != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestPreviewDOT(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := do(t, s, http.MethodPost, "/api/v1/preview?format=dot", twoBoxes)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	out := rec.Body.String()
	if !strings.Contains(out, "digraph") || !strings.Contains(out, "Client") {
		t.Errorf("unexpected DOT output:\n%s", out)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/preview?format=dot", twoBoxes)
	if got := rec.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("X-Cache = %q, want HIT", got)
	}
}

func TestRoutingErrors(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound || decodeError(t, rec).Code != "NOT_FOUND" {
		t.Errorf("unknown route: %d %s", rec.Code, rec.Body)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/convert", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET convert: status = %d", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, Options{})

	rec := do(t, s, http.MethodGet, "/healthz", "")
	if id := rec.Header().Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("generated request id = %q", id)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if id := rec.Header().Get(RequestIDHeader); id != "abc-123" {
		t.Errorf("echoed request id = %q", id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if id := rec.Header().Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("oversized id should be replaced, got %q", id)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Options{RateLimit: 0.001, Burst: 2})

	for i := 0; i < 2; i++ {
		if rec := do(t, s, http.MethodPost, "/api/v1/convert", twoBoxes); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
	rec := do(t, s, http.MethodPost, "/api/v1/convert", twoBoxes)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if decodeError(t, rec).Code != "RATE_LIMITED" || rec.Header().Get("Retry-After") == "" {
		t.Errorf("429 response = %s %v", rec.Body, rec.Header())
	}

	if rec := do(t, s, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz should not be limited, got %d", rec.Code)
	}
}

type httpRecorder struct {
	mu       sync.Mutex
	statuses []int
}

func (h *httpRecorder) OnRequest(context.Context, string, string) {}

func (h *httpRecorder) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	rec := &httpRecorder{}
	observability.SetHTTPHooks(rec)
	t.Cleanup(observability.Reset)

	s := newTestServer(t, Options{})
	do(t, s, http.MethodGet, "/healthz", "")
	do(t, s, http.MethodPost, "/api/v1/convert", "")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.statuses) != 2 || rec.statuses[0] != 200 || rec.statuses[1] != 400 {
		t.Errorf("statuses = %v", rec.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s := newTestServer(t, Options{Addr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("ListenAndServe() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
