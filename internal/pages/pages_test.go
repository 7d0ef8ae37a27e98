package pages

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/idepositbox/console/internal/menu"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestFragmentHTMLPassthrough(t *testing.T) {
	dir := t.TempDir()
	raw := "<div class=\"hero-unit\"><script>alert(1)</script>  raw &amp; exact</div>\n"
	writeFile(t, dir, "about.html", raw)

	s := NewStore(dir, Options{})
	got, err := s.Fragment("about")
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if string(got) != raw {
		t.Errorf("Fragment = %q, want %q", got, raw)
	}
}

func TestFragmentMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs/intro.md", "# Getting Started\n\nSome **bold** text.\n")

	s := NewStore(dir, Options{})
	got, err := s.Fragment("docs/intro")
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	html := string(got)
	if !strings.Contains(html, `<h1 id="getting-started">Getting Started</h1>`) {
		t.Errorf("expected heading with auto id, got %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("expected bold text, got %q", html)
	}
}

func TestFragmentPrefersHTML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "home.html", "<p>html</p>")
	writeFile(t, dir, "home.md", "markdown")

	got, err := NewStore(dir, Options{}).Fragment("home")
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if string(got) != "<p>html</p>" {
		t.Errorf("Fragment = %q, want the .html page", got)
	}
}

func TestFragmentSanitize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.html", `<p>ok</p><script>alert(1)</script>`)

	got, err := NewStore(dir, Options{Sanitize: true}).Fragment("x")
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if strings.Contains(string(got), "<script>") {
		t.Errorf("sanitized fragment still contains script: %q", got)
	}
	if !strings.Contains(string(got), "<p>ok</p>") {
		t.Errorf("sanitized fragment lost safe markup: %q", got)
	}
}

func TestFragmentNotFound(t *testing.T) {
	_, err := NewStore(t.TempDir(), Options{}).Fragment("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestValidPath(t *testing.T) {
	valid := []string{"home", "docs/intro", "a-b_c.d"}
	for _, p := range valid {
		if err := ValidPath(p); err != nil {
			t.Errorf("ValidPath(%q) = %v, want nil", p, err)
		}
	}
	invalid := []string{"", "/etc/passwd", "../secret", "docs/../../x", "a//b", "a\\b", "./a", "a/"}
	for _, p := range invalid {
		if err := ValidPath(p); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("ValidPath(%q) = %v, want ErrInvalidPath", p, err)
		}
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "settings.html", "<html><head><title>Settings</title></head><body></body></html>")
	writeFile(t, dir, "index.md", "# Home\n")
	writeFile(t, dir, "about.html", "<div><h1>About <em>us</em></h1></div>")
	writeFile(t, dir, "sync-status.md", "no heading here")
	writeFile(t, dir, "sync-status.html", "<p>duplicate</p>")
	writeFile(t, dir, "notes.txt", "ignored")

	got, err := Discover(dir, "**/*.{html,md}")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := menu.Menu{
		{Path: "index", Label: "Home"},
		{Path: "about", Label: "About us"},
		{Path: "settings", Label: "Settings"},
		{Path: "sync-status", Label: "Sync Status"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Discover mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverNested(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs/intro.md", "# Intro\n")
	writeFile(t, dir, "top.md", "# Top\n")

	got, err := Discover(dir, "*.md")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 1 || got[0].Path != "top" {
		t.Errorf("non-recursive pattern should only match top level, got %+v", got)
	}

	got, err = Discover(dir, "**/*.md")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if _, ok := got.Find("docs/intro"); !ok {
		t.Errorf("recursive pattern should find docs/intro, got %+v", got)
	}
}

func TestSourceRescans(t *testing.T) {
	dir := t.TempDir()
	src := Source(dir, "*.md")

	items, err := src.Items(t.Context())
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty menu, got %+v", items)
	}

	writeFile(t, dir, "new.md", "# New\n")
	items, err = src.Items(t.Context())
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 1 || items[0].Label != "New" {
		t.Errorf("expected new page to appear, got %+v", items)
	}
}

func TestFormatName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"sync-status", "Sync Status"},
		{"my_files", "My Files"},
		{"about", "About"},
	}
	for _, tt := range tests {
		if got := formatName(tt.in); got != tt.want {
			t.Errorf("formatName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
