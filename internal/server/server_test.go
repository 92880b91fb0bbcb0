package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/fromsvg/svgraster/pkg/pipeline"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, nil, logger)
	t.Cleanup(func() { _ = runner.Close() })
	return New(runner, logger)
}

func postRender(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestRenderPNG(t *testing.T) {
	s := newTestServer(t)

	rec := postRender(t, s, pipeline.Options{SVG: testSVG, Width: 32})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID should be set")
	}
	if len(rec.Header().Get("X-Source-Hash")) != 64 {
		t.Error("X-Source-Hash should be a sha256 digest")
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("X-Cache = %q, want miss", rec.Header().Get("X-Cache"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("body should be a PNG")
	}
}

func TestRenderTensor(t *testing.T) {
	s := newTestServer(t)

	rec := postRender(t, s, pipeline.Options{SVG: testSVG, Width: 4, Tensor: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body tensorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Shape != [4]int{1, 4, 4, 4} {
		t.Errorf("shape = %v", body.Shape)
	}
	if len(body.Data) != 4*4*4 {
		t.Errorf("data length = %d, want %d", len(body.Data), 4*4*4)
	}
}

func TestRenderInvalidJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRenderErrorMapping(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		opts       pipeline.Options
		wantStatus int
		wantCode   string
	}{
		{"empty input", pipeline.Options{SVG: "  "}, http.StatusBadRequest, "EMPTY_INPUT"},
		{"no sizing", pipeline.Options{SVG: testSVG}, http.StatusBadRequest, "INVALID_SIZING"},
		{"bad color", pipeline.Options{SVG: testSVG, Width: 8, Background: "#12"}, http.StatusBadRequest, "INVALID_COLOR_FORMAT"},
		{"malformed svg", pipeline.Options{SVG: "<svg", Width: 8}, http.StatusUnprocessableEntity, "RENDER_FAILURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postRender(t, s, tt.opts)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.wantCode)
			}
		})
	}
}
