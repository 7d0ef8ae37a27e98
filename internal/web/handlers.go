package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/idepositbox/console/internal/client"
	"github.com/idepositbox/console/internal/menu"
	"github.com/idepositbox/console/internal/pages"
)

func (c *Console) handleMenu(w http.ResponseWriter, r *http.Request) {
	items, err := c.menu.Items(r.Context())
	if err != nil {
		c.log.Error("building menu failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if items == nil {
		items = menu.Menu{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (c *Console) handlePage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if !strings.HasSuffix(name, client.PageSuffix) {
		http.NotFound(w, r)
		return
	}
	name = strings.TrimSuffix(name, client.PageSuffix)

	fragment, err := c.pages.Fragment(name)
	switch {
	case errors.Is(err, pages.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, pages.ErrInvalidPath):
		http.Error(w, "invalid page path", http.StatusBadRequest)
		return
	case err != nil:
		c.log.Error("loading page failed", zap.String("path", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(fragment)
}

func (c *Console) handleStatic() http.HandlerFunc {
	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(c.staticDir)))
	return fs.ServeHTTP
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// isAsset reports whether the request path names a file rather than a page.
func isAsset(p string) bool {
	return path.Ext(p) != ""
}
