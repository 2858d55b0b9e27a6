// Package asset serves the browser client bundle: index.html, wasm_exec.js
// and the compiled sketchboard.wasm.
package asset

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const indexFile = "index.html"

// Handler serves the files of one directory.
type Handler struct {
	dir string
}

func NewHandler(dir string) *Handler {
	return &Handler{dir: dir}
}

// Available reports whether the directory holds a client bundle.
func (h *Handler) Available() bool {
	info, err := os.Stat(filepath.Join(h.dir, indexFile))
	if err != nil {
		slog.Debug("no web client bundle", "dir", h.dir, "error", err)
		return false
	}
	return !info.IsDir()
}

// Serve returns a handler for paths under prefix. The wasm binary is
// rebuilt in place, so nothing is cached for long.
func (h *Handler) Serve(prefix string) http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix(prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, ".wasm"):
			w.Header().Set("Content-Type", "application/wasm")
			w.Header().Set("Cache-Control", "public, max-age=60")
		case r.URL.Path == "" || r.URL.Path == "/" || strings.HasSuffix(r.URL.Path, indexFile):
			w.Header().Set("Cache-Control", "no-cache")
		default:
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		fs.ServeHTTP(w, r)
	}))
}
