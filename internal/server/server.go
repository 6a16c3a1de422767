// Package server previews animation output over HTTP.
package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const etagCap = 64

// Context holds dependencies for request handlers: the output
// directory produced by a prior animator run.
type Context struct {
	// Dir is the animation output directory (index.json, track
	// GeoJSON, frames/).
	Dir string
}

// NewContext validates the output directory and returns the handler
// context.
func NewContext(dir string) (*Context, error) {
	if _, err := os.Stat(filepath.Join(dir, "index.json")); err != nil {
		return nil, err
	}

	log.Info().Str("dir", dir).Msg("Serving animation output")
	return &Context{Dir: dir}, nil
}

// Routes returns the preview mux.
func (s *Context) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/index.json", s.HandleIndex)
	mux.HandleFunc("/track.geojson", s.HandleTrack)
	mux.HandleFunc("/frames/", s.HandleFrame)

	return mux
}

// HandleIndex serves the frame sequence description.
func (s *Context) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if !s.serveFile(w, r, filepath.Join(s.Dir, "index.json"), "application/json") {
		http.NotFound(w, r)
	}
}

// HandleTrack serves the traveled-path GeoJSON.
func (s *Context) HandleTrack(w http.ResponseWriter, r *http.Request) {
	if !s.serveFile(w, r, filepath.Join(s.Dir, "track.geojson"), "application/geo+json") {
		http.NotFound(w, r)
	}
}

// HandleFrame serves a single WebP frame by its zero-padded number.
func (s *Context) HandleFrame(w http.ResponseWriter, r *http.Request) {
	// Path: /frames/{nnnnnn}.webp
	name := strings.TrimPrefix(r.URL.Path, "/frames/")
	if name == "" || strings.Contains(name, "/") || !strings.HasSuffix(name, ".webp") {
		http.NotFound(w, r)
		return
	}

	if !s.serveFile(w, r, filepath.Join(s.Dir, "frames", name), "image/webp") {
		http.NotFound(w, r)
	}
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *Context) serveFile(w http.ResponseWriter, r *http.Request, path, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}
