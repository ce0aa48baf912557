package server

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrPathEscape is returned when a request path resolves outside the root.
var ErrPathEscape = errors.New("path escape denied")

var mimeTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".txt":  "text/plain; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
}

// ContentType returns the served Content-Type for name's extension.
func ContentType(name string) string {
	if ct, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// StaticHandler serves files under a root directory with caching disabled.
// The root request path is answered with the index path.
type StaticHandler struct {
	root   string
	index  string
	logger *zap.Logger
}

// NewStaticHandler returns a handler serving files beneath root.
//
// Precondition: index must be an absolute request path such as "/web/index.html".
func NewStaticHandler(root, index string, logger *zap.Logger) (*StaticHandler, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}
	return &StaticHandler{root: abs, index: index, logger: logger}, nil
}

// Resolve maps a decoded request path to a file path beneath the root.
//
// Postcondition: a nil error implies the result lies within the root.
func (h *StaticHandler) Resolve(urlPath string) (string, error) {
	requested := urlPath
	if requested == "" || requested == "/" {
		requested = h.index
	}
	rel := path.Clean(strings.TrimLeft(filepath.ToSlash(requested), "/"))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrPathEscape
	}
	resolved := filepath.Join(h.root, filepath.FromSlash(rel))
	if resolved != h.root && !strings.HasPrefix(resolved, h.root+string(filepath.Separator)) {
		return "", ErrPathEscape
	}
	return resolved, nil
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		plain(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	filePath, err := h.Resolve(r.URL.Path)
	if err != nil {
		h.logger.Warn("rejected request", zap.String("path", r.URL.Path), zap.Error(err))
		plain(w, http.StatusForbidden, "Forbidden")
		return
	}

	f, err := os.Open(filePath)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !info.Mode().IsRegular() {
		plain(w, http.StatusNotFound, "Not found")
		return
	}

	w.Header().Set("Content-Type", ContentType(filePath))
	w.Header().Set("Cache-Control", "no-cache")
	h.logger.Debug("serving file", zap.String("path", r.URL.Path), zap.Int64("bytes", info.Size()))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *StaticHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		plain(w, http.StatusNotFound, "Not found")
		return
	}
	h.logger.Error("serving file", zap.String("path", r.URL.Path), zap.Error(err))
	plain(w, http.StatusInternalServerError, "Server error: "+err.Error())
}

func plain(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
