package htmldoc

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/idepositbox/console/internal/menu"
)

func TestNewSkeleton(t *testing.T) {
	d := New()
	if got := d.Entries(); len(got) != 0 {
		t.Errorf("new document should have no entries, got %+v", got)
	}
	if got := d.ContentHTML(); got != "" {
		t.Errorf("new document should have empty content, got %q", got)
	}
}

func TestParseRequiresContainers(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"no menu", `<html><body><div class="main_content"></div></body></html>`},
		{"no content", `<html><body><ul id="menu"></ul></body></html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.page)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFindsContainersWithExtraClasses(t *testing.T) {
	page := `<html><body><div class="span3"><ul id="menu" class="nav"></ul></div>` +
		`<div class="span9 main_content hero">loading</div></body></html>`
	d, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	d.Content().SetHTML("<p>x</p>")
	if got := d.ContentHTML(); got != "<p>x</p>" {
		t.Errorf("ContentHTML = %q", got)
	}
}

func TestAppendAndActive(t *testing.T) {
	d := New()
	nav := d.Nav()

	nav.Append(menu.Item{Path: "home", Label: "Home"}, false, nil)
	nav.Append(menu.Item{Path: "about", Label: "About <us>"}, true, nil)

	want := menu.Menu{{Path: "home", Label: "Home"}, {Path: "about", Label: "About <us>"}}
	if diff := cmp.Diff(want, d.Entries()); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}

	if active, ok := nav.Active(); !ok || active != "about" {
		t.Errorf("Active() = %q, %v; want about", active, ok)
	}
	if first, ok := nav.First(); !ok || first != "home" {
		t.Errorf("First() = %q, %v; want home", first, ok)
	}

	// Labels are text nodes, so markup in a label is escaped.
	if out := d.String(); !strings.Contains(out, "About &lt;us&gt;") {
		t.Errorf("label not escaped in %q", out)
	}
}

func TestClearAndSetActive(t *testing.T) {
	d := New()
	nav := d.Nav()
	nav.Append(menu.Item{Path: "home", Label: "Home"}, true, nil)
	nav.Append(menu.Item{Path: "about", Label: "About"}, false, nil)

	nav.ClearActive()
	if got := d.ActivePaths(); len(got) != 0 {
		t.Errorf("ActivePaths after clear = %v", got)
	}
	if _, ok := nav.Active(); ok {
		t.Error("Active() should report false after clear")
	}

	if !nav.SetActive("about") {
		t.Fatal("SetActive(about) = false")
	}
	if nav.SetActive("missing") {
		t.Error("SetActive(missing) should be false")
	}
	if diff := cmp.Diff([]string{"about"}, d.ActivePaths()); diff != "" {
		t.Errorf("ActivePaths mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyNavFirst(t *testing.T) {
	if _, ok := New().Nav().First(); ok {
		t.Error("First() on empty nav should be false")
	}
}

func TestSetHTMLVerbatim(t *testing.T) {
	d := New()
	raw := "<div class=\"hero-unit\">\n\t<p>unclosed &nbsp; <b>bold"
	d.Content().SetHTML("<p>old</p>")
	d.Content().SetHTML(raw)

	if got := d.ContentHTML(); got != raw {
		t.Errorf("ContentHTML = %q, want %q", got, raw)
	}
	if out := d.String(); !strings.Contains(out, `<div class="main_content">`+raw+`</div>`) {
		t.Errorf("rendered page does not contain raw fragment: %q", out)
	}
}

func TestClick(t *testing.T) {
	d := New()
	clicked := ""
	d.Nav().Append(menu.Item{Path: "about", Label: "About"}, false, func() { clicked = "about" })

	if !d.Click("about") {
		t.Fatal("Click(about) = false")
	}
	if clicked != "about" {
		t.Errorf("handler not invoked, clicked = %q", clicked)
	}
	if d.Click("missing") {
		t.Error("Click(missing) should be false")
	}
}

func TestClassHelpers(t *testing.T) {
	d := New()
	nav := d.Nav()
	nav.Append(menu.Item{Path: "home", Label: "Home"}, true, nil)
	nav.SetActive("home")

	out := d.String()
	if strings.Count(out, "active") != 1 {
		t.Errorf("active class should appear once, got %q", out)
	}
	nav.ClearActive()
	if strings.Contains(d.String(), `class=""`) {
		t.Error("clearing the only class should drop the attribute")
	}
}
