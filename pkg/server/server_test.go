package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	errs "github.com/matzehuels/cardstack/pkg/errors"
	"github.com/matzehuels/cardstack/pkg/pipeline"
	"github.com/matzehuels/cardstack/pkg/stack"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(nil, nil, logger), Options{
		Viewport: stack.Viewport{Width: 200, Height: 300, ItemCount: 10},
	}, logger)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/healthz")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out map[string]string
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["status"] != "ok" || out["version"] == "" {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestFrameMatchesCompute(t *testing.T) {
	ts := newTestServer(t)

	tests := []string{
		"/v1/frame?offset=0",
		"/v1/frame?offset=150&width=200&height=300&items=10",
		"/v1/frame?offset=1850",
		"/v1/frame?offset=-20",
	}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			resp, body := get(t, ts, path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			var got stack.Frame
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			want := stack.Compute(stack.DefaultConfig(), got.Viewport)
			wantJSON, _ := json.Marshal(want)
			gotJSON, _ := json.Marshal(got)
			if string(wantJSON) != string(gotJSON) {
				t.Errorf("frame differs from stack.Compute\n got: %s\nwant: %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestFrameLayoutOverrides(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts, "/v1/frame?offset=0&max_visible=2&spacing=0&policy=symmetric")

	var got stack.Frame
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Items) != 2 {
		t.Errorf("max_visible=2 should give 2 items, got %d", len(got.Items))
	}
}

func TestFrameSVG(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/v1/frame.svg?offset=150&style=outline&captions=true")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(string(body), "<svg") || !strings.Contains(string(body), "offset 150.0") {
		t.Errorf("unexpected SVG: %s", body)
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/v1/render?format=json&from=0&to=400&steps=3")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var doc struct {
		Frames []stack.Frame `json:"frames"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Frames) != 3 {
		t.Errorf("got %d frames, want 3", len(doc.Frames))
	}

	resp, _ = get(t, ts, "/v1/render?format=png&offsets=0,100&rasterizer=native&scale=1")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Errorf("png render: status %d, type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}

func TestPage(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path string
		want int
	}{
		{"/v1/page?offset=0&width=200", 0},
		{"/v1/page?offset=199&width=200", 0},
		{"/v1/page?offset=200&width=200", 1},
		{"/v1/page?offset=450", 2},
	}
	for _, tt := range tests {
		_, body := get(t, ts, tt.path)
		var out PageResponse
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("%s: decode: %v", tt.path, err)
		}
		if out.Page != tt.want {
			t.Errorf("%s: page = %d, want %d", tt.path, out.Page, tt.want)
		}
	}
}

func TestPageOffset(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path       string
		wantPage   int
		wantOffset float64
	}{
		{"/v1/pages/3/offset", 3, 600},
		{"/v1/pages/0/offset?width=100&items=5", 0, 0},
		{"/v1/pages/99/offset?items=5", 4, 800},
		{"/v1/pages/-2/offset", 0, 0},
	}
	for _, tt := range tests {
		resp, body := get(t, ts, tt.path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status = %d: %s", tt.path, resp.StatusCode, body)
		}
		var out PageResponse
		if err := json.Unmarshal(body, &out); err != nil {
			t.Fatalf("%s: decode: %v", tt.path, err)
		}
		if out.Page != tt.wantPage || out.Offset == nil || *out.Offset != tt.wantOffset {
			t.Errorf("%s: got %s", tt.path, body)
		}
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path   string
		status int
		code   errs.Code
	}{
		{"/v1/frame?offset=abc", http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"/v1/frame?width=0", http.StatusBadRequest, errs.ErrCodeInvalidViewport},
		{"/v1/frame?scale_factor=2", http.StatusBadRequest, errs.ErrCodeInvalidConfig},
		{"/v1/frame?policy=sideways", http.StatusBadRequest, errs.ErrCodeInvalidConfig},
		{"/v1/frame.svg?style=neon", http.StatusBadRequest, errs.ErrCodeInvalidStyle},
		{"/v1/render?format=gif", http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{"/v1/page?width=-1", http.StatusBadRequest, errs.ErrCodeInvalidViewport},
		{"/v1/pages/x/offset", http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"/v1/pages/1/offset?items=0", http.StatusBadRequest, errs.ErrCodeInvalidViewport},
		{"/v1/nope", http.StatusNotFound, errs.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			var out ErrorResponse
			if err := json.Unmarshal(body, &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if out.Code != tt.code {
				t.Errorf("code = %s, want %s", out.Code, tt.code)
			}
			if out.Message == "" || out.RequestID == "" {
				t.Errorf("error body should carry message and request id: %s", body)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := get(t, ts, "/healthz")
	id := resp.Header.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated request id %q is not a uuid", id)
	}

	want := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, want)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if got := resp2.Header.Get(RequestIDHeader); got != want {
		t.Errorf("request id = %q, want incoming %q", got, want)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New(nil, Options{}, log.NewWithOptions(io.Discard, log.Options{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
