package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// AdminPages serves the built admin frontend from a directory. Unknown
// paths fall back to index.html so client-side routing works; the
// session gate in front of this handler decides who gets in.
func AdminPages(assetsDir, pathPrefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(r.URL.Path, pathPrefix)
		rel = path.Clean("/" + rel)

		full := filepath.Join(assetsDir, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			full = filepath.Join(assetsDir, "index.html")
		}
		http.ServeFile(w, r, full)
	}
}
