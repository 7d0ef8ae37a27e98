package pages

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/net/html"

	"github.com/idepositbox/console/internal/menu"
)

// Discover builds a menu from the pages under dir matching the doublestar
// pattern. "index" sorts first, everything else by path. A page present as
// both .html and .md appears once.
func Discover(dir, pattern string) (menu.Menu, error) {
	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing %s in %s: %w", pattern, dir, err)
	}

	seen := make(map[string]bool, len(matches))
	var items menu.Menu
	for _, m := range matches {
		ext := path.Ext(m)
		if ext != ".html" && ext != ".md" {
			continue
		}
		p := strings.TrimSuffix(m, ext)
		if seen[p] || ValidPath(p) != nil {
			continue
		}
		seen[p] = true

		content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(m)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", m, err)
		}
		items = append(items, menu.Item{Path: p, Label: pageTitle(ext, content, p)})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if (items[i].Path == "index") != (items[j].Path == "index") {
			return items[i].Path == "index"
		}
		return items[i].Path < items[j].Path
	})
	return items, nil
}

// Source returns a menu.Source that rescans dir on every request.
func Source(dir, pattern string) menu.Source {
	return menu.DiscoverFunc(func(ctx context.Context) (menu.Menu, error) {
		return Discover(dir, pattern)
	})
}

// pageTitle picks a display label: the markdown H1, the HTML <h1> or
// <title>, else the formatted file name.
func pageTitle(ext string, content []byte, p string) string {
	var title string
	switch ext {
	case ".md":
		title = markdownTitle(string(content))
	case ".html":
		title = htmlTitle(string(content))
	}
	if title != "" {
		return title
	}
	return formatName(path.Base(p))
}

func markdownTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

func htmlTitle(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}
	var h1, title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1":
				if h1 == "" {
					h1 = textContent(n)
				}
			case "title":
				if title == "" {
					title = textContent(n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if h1 != "" {
		return h1
	}
	return title
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// formatName title-cases a file name split on hyphens and underscores.
func formatName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
