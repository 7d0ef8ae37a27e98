// Package web serves the console shell and the endpoints it consumes.
package web

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/idepositbox/console/internal/menu"
)

// PageStore resolves page fragments. *pages.Store implements it.
type PageStore interface {
	Fragment(path string) ([]byte, error)
}

// Console owns the menu source and page store behind the HTTP endpoints.
type Console struct {
	menu      menu.Source
	pages     PageStore
	staticDir string
	log       *zap.Logger
}

// New creates a Console. staticDir may be empty, in which case /static/ is
// not served.
func New(src menu.Source, store PageStore, staticDir string, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{
		menu:      src,
		pages:     store,
		staticDir: staticDir,
		log:       log,
	}
}

// RegisterRoutes mounts all console routes onto the given router.
func (c *Console) RegisterRoutes(r chi.Router) {
	r.Get("/get_menu", c.handleMenu)
	r.Get("/get_page/*", c.handlePage)
	if c.staticDir != "" {
		r.Get("/static/*", c.handleStatic())
	}
	r.Get("/", c.ServeIndex)
	r.Get("/*", c.ServeIndex)
}
