// Package pages resolves the HTML fragments served under /get_page/.
package pages

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no fragment exists for a path.
	ErrNotFound = errors.New("page not found")
	// ErrInvalidPath is returned for paths that could escape the pages dir.
	ErrInvalidPath = errors.New("invalid page path")
)

// Options tune a Store.
type Options struct {
	// Sanitize runs every fragment through the bluemonday UGC policy.
	Sanitize bool
	Logger   *zap.Logger
}

// Store reads page fragments from a directory. A page "docs/intro" is
// docs/intro.html served as is, or docs/intro.md rendered to HTML.
type Store struct {
	dir       string
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
	log       *zap.Logger
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string, opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		dir: dir,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
		log: log,
	}
	if opts.Sanitize {
		s.sanitizer = bluemonday.UGCPolicy()
	}
	return s
}

// ValidPath reports whether path is a relative slash path with no empty,
// "." or ".." segments.
func ValidPath(path string) error {
	if path == "" || strings.HasPrefix(path, "/") || strings.Contains(path, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return nil
}

// Fragment returns the HTML fragment for path.
func (s *Store) Fragment(path string) ([]byte, error) {
	if err := ValidPath(path); err != nil {
		return nil, err
	}
	base := filepath.Join(s.dir, filepath.FromSlash(path))

	data, err := os.ReadFile(base + ".html")
	if err == nil {
		return s.sanitize(data), nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading page %s: %w", path, err)
	}

	src, err := os.ReadFile(base + ".md")
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading page %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := s.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("converting markdown %s: %w", path, err)
	}
	s.log.Debug("rendered markdown page", zap.String("path", path), zap.Int("bytes", buf.Len()))
	return s.sanitize(buf.Bytes()), nil
}

func (s *Store) sanitize(data []byte) []byte {
	if s.sanitizer == nil {
		return data
	}
	return s.sanitizer.SanitizeBytes(data)
}
