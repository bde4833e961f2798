package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/qrpop/internal/core/history"
	"github.com/sadopc/qrpop/internal/core/kv"
	"github.com/sadopc/qrpop/internal/core/qr"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testServer() (*Server, *history.Store) {
	store := history.NewStore(kv.NewMemory())
	return New(qr.NewRenderer(), store), store
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouteMatching(t *testing.T) {
	srv, _ := testServer()
	handler := srv.Handler()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"GET /health", "GET", "/health", http.StatusOK},
		{"GET /qr", "GET", "/qr?text=hello", http.StatusOK},
		{"GET /history", "GET", "/history", http.StatusOK},
		{"DELETE /history", "DELETE", "/history", http.StatusNoContent},
		{"unmatched path", "GET", "/nonexistent", http.StatusNotFound},
		{"wrong method", "POST", "/qr", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(handler, tt.method, tt.path)
			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestQR_ReturnsPNGAndRecords(t *testing.T) {
	srv, store := testServer()

	rec := do(srv.Handler(), "GET", "/qr?text=hello%20world&level=H")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), pngMagic) {
		t.Error("body is not a PNG")
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "qr-code-hello world.png") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	list, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Text != "hello world" {
		t.Errorf("unexpected history %v", list.Texts())
	}
}

func TestQR_DataURI(t *testing.T) {
	srv, _ := testServer()
	rec := do(srv.Handler(), "GET", "/qr?text=abc&format=datauri")
	if !strings.HasPrefix(rec.Body.String(), "data:image/png;base64,") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestQR_Errors(t *testing.T) {
	srv, store := testServer()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantError  string
	}{
		{"missing text", "/qr", http.StatusBadRequest, "please enter text or URL"},
		{"blank text", "/qr?text=%20%20", http.StatusBadRequest, "please enter text or URL"},
		{"bad level", "/qr?text=a&level=Z", http.StatusBadRequest, "level"},
		{"too long", "/qr?text=" + strings.Repeat("x", 5000), http.StatusUnprocessableEntity, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(srv.Handler(), "GET", tt.path)
			if rec.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if !strings.Contains(body["error"], tt.wantError) {
				t.Errorf("error = %q, want it to contain %q", body["error"], tt.wantError)
			}
		})
	}

	list, _ := store.Load(context.Background())
	if len(list) != 0 {
		t.Errorf("failed requests must not record history, got %v", list.Texts())
	}
}

func TestHistory_JSONMostRecentFirst(t *testing.T) {
	srv, _ := testServer()
	for _, s := range []string{"a", "b", "c", "d", "e", "f"} {
		do(srv.Handler(), "GET", "/qr?text="+s)
	}

	rec := do(srv.Handler(), "GET", "/history")
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var list history.List
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(list.Texts(), ""); got != "fedcb" {
		t.Errorf("got %q, want fedcb", got)
	}
}

func TestHistory_EmptyIsArray(t *testing.T) {
	srv, _ := testServer()
	rec := do(srv.Handler(), "GET", "/history")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected [], got %q", rec.Body.String())
	}
}

func TestHistory_Clear(t *testing.T) {
	srv, store := testServer()
	do(srv.Handler(), "GET", "/qr?text=x")

	rec := do(srv.Handler(), "DELETE", "/history")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	list, _ := store.Load(context.Background())
	if len(list) != 0 {
		t.Errorf("expected empty history, got %d", len(list))
	}
}

type failingKV struct{ kv.Store }

func (failingKV) Set(context.Context, string, []byte) error { return errors.New("read-only") }

func TestQR_HistoryFailureStillServes(t *testing.T) {
	store := history.NewStore(failingKV{kv.NewMemory()})
	srv := New(qr.NewRenderer(), store)

	rec := do(srv.Handler(), "GET", "/qr?text=still")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 despite history failure, got %d", rec.Code)
	}
}

func TestNoHistory_NotRouted(t *testing.T) {
	srv := New(qr.NewRenderer(), nil)
	if rec := do(srv.Handler(), "GET", "/history"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec := do(srv.Handler(), "GET", "/qr?text=a"); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(qr.NewRenderer(), nil, WithCORSOrigin("https://app.example.com"))
	rec := do(srv.Handler(), "GET", "/health")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := testServer()

	for _, path := range []string{"/history", "/qr"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, path, nil)
			req.Header.Set("Origin", "https://app.example.com")
			req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusNoContent {
				t.Errorf("got status %d, want %d", rec.Code, http.StatusNoContent)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("Access-Control-Allow-Origin = %q", got)
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "DELETE") {
				t.Errorf("Access-Control-Allow-Methods = %q", got)
			}
		})
	}
}

func TestWithAppearance(t *testing.T) {
	srv := New(qr.NewRenderer(), nil, WithAppearance(128, "#112233", ""))
	if srv.size != 128 || srv.dark != "#112233" || srv.light != qr.DefaultLight {
		t.Errorf("unexpected appearance %d %s %s", srv.size, srv.dark, srv.light)
	}
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	srv := New(qr.NewRenderer(), nil, WithPort(0))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
