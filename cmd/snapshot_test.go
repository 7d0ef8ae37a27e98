package cmd

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idepositbox/console/internal/client"
	"github.com/idepositbox/console/internal/menu"
	"github.com/idepositbox/console/internal/pages"
	"github.com/idepositbox/console/internal/server"
	"github.com/idepositbox/console/internal/shell"
	"github.com/idepositbox/console/internal/web"
)

var testMenu = menu.Static{{Path: "home", Label: "Home"}, {Path: "about", Label: "About"}}

func startConsole(t *testing.T, src menu.Source) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"home.html":  "<p>home page</p>",
		"about.html": "<p>about page</p>",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	srv := server.New(server.Config{}, nil)
	web.New(src, pages.NewStore(dir, pages.Options{}), "", nil).RegisterRoutes(srv.Router())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestShellDocumentUsesServerPage(t *testing.T) {
	ts := startConsole(t, testMenu)
	doc := shellDocument(t.Context(), client.New(ts.URL))

	if !strings.Contains(doc.String(), "<title>iDepositBox</title>") {
		t.Errorf("expected the server's shell page, got %q", doc.String())
	}
}

func TestShellDocumentFallback(t *testing.T) {
	ts := startConsole(t, testMenu)
	ts.Close()

	doc := shellDocument(t.Context(), client.New(ts.URL))
	if len(doc.Entries()) != 0 {
		t.Error("fallback document should be empty")
	}
}

func TestCaptureAll(t *testing.T) {
	t.Setenv("CI", "true")
	ts := startConsole(t, testMenu)
	out := t.TempDir()

	c := client.New(ts.URL)
	doc := shellDocument(t.Context(), c)
	s := shell.New(c, doc.Nav(), doc.Content(), nil)
	if err := s.LoadMenu(t.Context(), "/"); err != nil {
		t.Fatalf("LoadMenu: %v", err)
	}

	if err := captureAll(doc, s, out); err != nil {
		t.Fatalf("captureAll: %v", err)
	}

	for path, want := range map[string]string{"home": "<p>home page</p>", "about": "<p>about page</p>"} {
		data, err := os.ReadFile(filepath.Join(out, path+".html"))
		if err != nil {
			t.Fatalf("reading snapshot %s: %v", path, err)
		}
		page := string(data)
		if !strings.Contains(page, want) {
			t.Errorf("snapshot %s missing %q", path, want)
		}
		if !strings.Contains(page, `<li id="`+path+`" class="active">`) {
			t.Errorf("snapshot %s should mark its entry active: %q", path, page)
		}
	}
}

func TestCaptureAllSkipsPathsOutsideOutDir(t *testing.T) {
	t.Setenv("CI", "true")
	src := menu.Static{{Path: "home", Label: "Home"}, {Path: "../escaped", Label: "Escaped"}}
	ts := startConsole(t, src)
	root := t.TempDir()
	out := filepath.Join(root, "snapshots")

	c := client.New(ts.URL)
	doc := shellDocument(t.Context(), c)
	s := shell.New(c, doc.Nav(), doc.Content(), nil)
	if err := s.LoadMenu(t.Context(), "/"); err != nil {
		t.Fatalf("LoadMenu: %v", err)
	}

	err := captureAll(doc, s, out)
	if !errors.Is(err, pages.ErrInvalidPath) {
		t.Fatalf("captureAll error = %v, want ErrInvalidPath", err)
	}
	if _, err := os.Stat(filepath.Join(root, "escaped.html")); !os.IsNotExist(err) {
		t.Errorf("snapshot written outside %s (stat err = %v)", out, err)
	}
	if _, err := os.Stat(filepath.Join(out, "home.html")); err != nil {
		t.Errorf("valid entry should still be captured: %v", err)
	}
}
