package asset

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestServe(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"index.html":       "<canvas id=\"canvas-static\"></canvas>",
		"sketchboard.wasm": "\x00asm",
		"wasm_exec.js":     "// go runtime",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	h := NewHandler(dir)
	if !h.Available() {
		t.Fatal("Available() = false with index.html present")
	}
	srv := h.Serve("/app/")

	tests := []struct {
		path        string
		status      int
		contentType string
		cache       string
	}{
		{"/app/sketchboard.wasm", http.StatusOK, "application/wasm", "public, max-age=60"},
		{"/app/", http.StatusOK, "text/html; charset=utf-8", "no-cache"},
		{"/app/wasm_exec.js", http.StatusOK, "", "public, max-age=3600"},
		{"/app/missing.js", http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.contentType != "" && rec.Header().Get("Content-Type") != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", rec.Header().Get("Content-Type"), tt.contentType)
			}
			if tt.cache != "" && rec.Header().Get("Cache-Control") != tt.cache {
				t.Errorf("Cache-Control = %q, want %q", rec.Header().Get("Cache-Control"), tt.cache)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	if NewHandler(t.TempDir()).Available() {
		t.Error("Available() = true for an empty directory")
	}
}
