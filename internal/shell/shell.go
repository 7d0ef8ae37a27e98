// Package shell drives the single-page console UI: it renders the menu into a
// navigation container and swaps page fragments into a content container.
//
// The shell never looks elements up by itself. Callers hand it a Nav and a
// Content, which lets the same logic run against the live browser DOM
// (internal/jsdom) and an in-memory document (internal/htmldoc).
package shell

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/idepositbox/console/internal/client"
	"github.com/idepositbox/console/internal/menu"
)

// ErrSuperseded is returned by LoadContent when a later navigation started
// before this one finished. Its response was discarded.
var ErrSuperseded = errors.New("navigation superseded")

// Fetcher retrieves the menu and page fragments. *client.Client implements it.
type Fetcher interface {
	Menu(ctx context.Context) (menu.Menu, error)
	Page(ctx context.Context, path string) (string, error)
}

// Nav is the navigation container.
type Nav interface {
	// Append renders an entry for item at the end of the list. onClick runs
	// when the user activates the entry.
	Append(item menu.Item, active bool, onClick func())
	// ClearActive removes the active marker from every entry.
	ClearActive()
	// SetActive marks the entry for path. It reports false if there is none.
	SetActive(path string) bool
	// Active returns the path of the first active entry.
	Active() (string, bool)
	// First returns the path of the first entry.
	First() (string, bool)
}

// Content is the main content container.
type Content interface {
	// SetHTML replaces the container's markup with markup, unmodified.
	SetHTML(markup string)
}

var errorFragment = template.Must(template.New("error").Parse(
	`<div class="hero-unit"><h1 class="text-error">Internal server error!</h1>` +
		`<p class="text-error">Page {{.}} could not be loaded.</p></div>`))

// ErrorFragment returns the markup shown when the page for path failed to load.
func ErrorFragment(path string) string {
	var sb strings.Builder
	_ = errorFragment.Execute(&sb, client.PageURL(path))
	return sb.String()
}

// Shell wires a Fetcher to a Nav and a Content.
type Shell struct {
	fetch   Fetcher
	nav     Nav
	content Content
	log     *zap.Logger

	// mu orders navigations: seq and cancel change under it, and a response
	// is applied under it only while its token is still seq.
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc

	wg sync.WaitGroup
}

// New creates a Shell. A nil logger disables logging.
func New(fetch Fetcher, nav Nav, content Content, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{
		fetch:   fetch,
		nav:     nav,
		content: content,
		log:     log,
	}
}

// LoadMenu fetches the menu, renders one entry per item and loads the page
// of the active entry. The entry whose path matches location ("/" + path)
// starts active; if none does, the first entry is. A failed fetch leaves the
// menu empty and shows nothing to the user.
func (s *Shell) LoadMenu(ctx context.Context, location string) error {
	items, err := s.fetch.Menu(ctx)
	if err != nil {
		s.log.Warn("menu fetch failed", zap.Error(err))
		return fmt.Errorf("loading menu: %w", err)
	}

	for _, it := range items {
		path := it.Path
		s.nav.Append(it, location == "/"+path, func() { s.Navigate(path) })
	}

	active, ok := s.nav.Active()
	if !ok {
		if active, ok = s.nav.First(); !ok {
			s.log.Info("menu is empty")
			return nil
		}
		s.nav.SetActive(active)
	}

	s.log.Debug("menu rendered", zap.Int("items", len(items)), zap.String("active", active))
	return s.LoadContent(ctx, active)
}

// LoadContent marks the entry for path active and replaces the content with
// the page fragment for path. If the fetch fails the content shows an error
// fragment naming the page instead. Starting a new LoadContent cancels the
// one in flight; the older call then returns ErrSuperseded and leaves the
// content alone.
func (s *Shell) LoadContent(ctx context.Context, path string) error {
	ctx, token := s.begin(ctx, path)
	defer s.finish(token)

	fragment, err := s.fetch.Page(ctx, path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		s.log.Debug("dropping stale page", zap.String("path", path), zap.Uint64("token", token))
		return ErrSuperseded
	}
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("loading page %s: %w", path, err)
		}
		s.log.Warn("page fetch failed", zap.String("path", path), zap.Error(err))
		s.content.SetHTML(ErrorFragment(path))
		return fmt.Errorf("loading page %s: %w", path, err)
	}

	s.content.SetHTML(fragment)
	s.log.Debug("page rendered", zap.String("path", path), zap.Int("bytes", len(fragment)))
	return nil
}

// Navigate runs LoadContent for path on its own goroutine. Click handlers
// use it so they return immediately.
func (s *Shell) Navigate(path string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.LoadContent(context.Background(), path)
		if err != nil && !errors.Is(err, ErrSuperseded) {
			s.log.Debug("navigation finished with error", zap.String("path", path), zap.Error(err))
		}
	}()
}

// Wait blocks until every navigation started by Navigate has finished.
func (s *Shell) Wait() {
	s.wg.Wait()
}

// begin takes the next sequence token, cancels the previous fetch and moves
// the active marker to path.
func (s *Shell) begin(ctx context.Context, path string) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.seq++
	s.cancel = cancel

	s.nav.ClearActive()
	if !s.nav.SetActive(path) {
		s.log.Debug("no menu entry for path", zap.String("path", path))
	}
	return ctx, s.seq
}

// finish releases the context of token if it is still the latest.
func (s *Shell) finish(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == s.seq && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
