package web

import (
	_ "embed"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

//go:embed index.html
var indexHTML []byte

// ServeIndex serves the embedded shell page. Any page path such as /about
// gets the same shell; the shell reads the location to pick the entry. A
// path with a file extension gets the shell only when it names a menu entry.
func (c *Console) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if isAsset(r.URL.Path) && !c.isMenuPath(r) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (c *Console) isMenuPath(r *http.Request) bool {
	items, err := c.menu.Items(r.Context())
	if err != nil {
		c.log.Warn("menu lookup failed", zap.String("path", r.URL.Path), zap.Error(err))
		return false
	}
	_, ok := items.Find(strings.TrimPrefix(r.URL.Path, "/"))
	return ok
}
