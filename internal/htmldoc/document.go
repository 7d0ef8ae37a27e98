// Package htmldoc is an in-memory page the shell can render into without a
// browser. It backs the snapshot command and the shell tests.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/idepositbox/console/internal/menu"
	"github.com/idepositbox/console/internal/shell"
)

const (
	// NavID is the id of the navigation list.
	NavID = "menu"
	// ContentClass is the class of the content container.
	ContentClass = "main_content"
	// ActiveClass marks the active navigation entry.
	ActiveClass = "active"
)

const skeleton = `<!DOCTYPE html><html><head><title>iDepositBox</title></head>` +
	`<body><ul id="menu" class="nav nav-list"></ul><div class="main_content"></div></body></html>`

var (
	_ shell.Nav     = (*Nav)(nil)
	_ shell.Content = (*Content)(nil)
)

// Document is a parsed HTML page with a navigation list and a content area.
// It is safe for concurrent use.
type Document struct {
	mu       sync.Mutex
	root     *html.Node
	nav      *html.Node
	content  *html.Node
	handlers map[string]func()
}

// New returns a minimal document with an empty menu and content area.
func New() *Document {
	d, err := Parse(strings.NewReader(skeleton))
	if err != nil {
		panic(fmt.Sprintf("htmldoc: parsing skeleton: %v", err))
	}
	return d
}

// Parse reads a page and locates the element with id "menu" and the first
// element with class "main_content".
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	d := &Document{root: root, handlers: make(map[string]func())}
	d.nav = find(root, func(n *html.Node) bool { return attr(n, "id") == NavID })
	if d.nav == nil {
		return nil, fmt.Errorf("document has no element with id %q", NavID)
	}
	d.content = find(root, func(n *html.Node) bool { return hasClass(n, ContentClass) })
	if d.content == nil {
		return nil, fmt.Errorf("document has no element with class %q", ContentClass)
	}
	return d, nil
}

// Nav returns the navigation handle.
func (d *Document) Nav() *Nav { return &Nav{d: d} }

// Content returns the content handle.
func (d *Document) Content() *Content { return &Content{d: d} }

// Render writes the whole page.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// String renders the page to a string.
func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

// Click simulates the user activating the entry for path. It reports false
// if no such entry exists.
func (d *Document) Click(path string) bool {
	d.mu.Lock()
	h, ok := d.handlers[path]
	d.mu.Unlock()
	if !ok {
		return false
	}
	h()
	return true
}

// Entries returns the rendered menu in order.
func (d *Document) Entries() menu.Menu {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out menu.Menu
	for li := range entries(d.nav) {
		out = append(out, menu.Item{Path: attr(li, "id"), Label: textContent(li)})
	}
	return out
}

// ActivePaths returns the paths of every entry carrying the active class.
func (d *Document) ActivePaths() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []string
	for li := range entries(d.nav) {
		if hasClass(li, ActiveClass) {
			out = append(out, attr(li, "id"))
		}
	}
	return out
}

// ContentHTML returns the markup inside the content area.
func (d *Document) ContentHTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf bytes.Buffer
	for c := d.content.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// Nav implements shell.Nav over the document's menu list.
type Nav struct {
	d *Document
}

// Append adds <li id="path"><a>label</a></li> to the menu.
func (n *Nav) Append(item menu.Item, active bool, onClick func()) {
	n.d.mu.Lock()
	defer n.d.mu.Unlock()

	li := &html.Node{
		Type:     html.ElementNode,
		Data:     "li",
		DataAtom: atom.Li,
		Attr:     []html.Attribute{{Key: "id", Val: item.Path}},
	}
	if active {
		addClass(li, ActiveClass)
	}
	a := &html.Node{Type: html.ElementNode, Data: "a", DataAtom: atom.A}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: item.Label})
	li.AppendChild(a)
	n.d.nav.AppendChild(li)

	if onClick != nil {
		n.d.handlers[item.Path] = onClick
	}
}

// ClearActive removes the active class from every entry.
func (n *Nav) ClearActive() {
	n.d.mu.Lock()
	defer n.d.mu.Unlock()
	for li := range entries(n.d.nav) {
		removeClass(li, ActiveClass)
	}
}

// SetActive adds the active class to the first entry for path.
func (n *Nav) SetActive(path string) bool {
	n.d.mu.Lock()
	defer n.d.mu.Unlock()
	for li := range entries(n.d.nav) {
		if attr(li, "id") == path {
			addClass(li, ActiveClass)
			return true
		}
	}
	return false
}

// Active returns the path of the first active entry.
func (n *Nav) Active() (string, bool) {
	n.d.mu.Lock()
	defer n.d.mu.Unlock()
	for li := range entries(n.d.nav) {
		if hasClass(li, ActiveClass) {
			return attr(li, "id"), true
		}
	}
	return "", false
}

// First returns the path of the first entry.
func (n *Nav) First() (string, bool) {
	n.d.mu.Lock()
	defer n.d.mu.Unlock()
	for li := range entries(n.d.nav) {
		return attr(li, "id"), true
	}
	return "", false
}

// Content implements shell.Content over the document's content area.
type Content struct {
	d *Document
}

// SetHTML replaces the content area with markup. The markup is kept as a
// raw node, so rendering reproduces it byte for byte.
func (c *Content) SetHTML(markup string) {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	for ch := c.d.content.FirstChild; ch != nil; ch = c.d.content.FirstChild {
		c.d.content.RemoveChild(ch)
	}
	c.d.content.AppendChild(&html.Node{Type: html.RawNode, Data: markup})
}

// entries yields the <li> children of the navigation list.
func entries(nav *html.Node) func(yield func(*html.Node) bool) {
	return func(yield func(*html.Node) bool) {
		for c := nav.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Li {
				if !yield(c) {
					return
				}
			}
		}
	}
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool { return a.Key == key })
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

func addClass(n *html.Node, class string) {
	classes := strings.Fields(attr(n, "class"))
	if slices.Contains(classes, class) {
		return
	}
	setAttr(n, "class", strings.Join(append(classes, class), " "))
}

func removeClass(n *html.Node, class string) {
	classes := slices.DeleteFunc(strings.Fields(attr(n, "class")), func(c string) bool { return c == class })
	if len(classes) == 0 {
		removeAttr(n, "class")
		return
	}
	setAttr(n, "class", strings.Join(classes, " "))
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
	return sb.String()
}
