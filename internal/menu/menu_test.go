package menu

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMenuJSONWireFormat(t *testing.T) {
	m := Menu{{Path: "home", Label: "Home"}, {Path: "about", Label: "About"}}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[["home","Home"],["about","About"]]`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	var decoded Menu
	if err := json.Unmarshal([]byte(want), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(m, decoded); diff != "" {
		t.Errorf("decoded menu mismatch (-want +got):\n%s", diff)
	}
}

func TestItemUnmarshalRejectsBadShapes(t *testing.T) {
	tests := []string{
		`["only-path"]`,
		`["a","b","c"]`,
		`{"path":"a","label":"b"}`,
		`[1,2]`,
	}
	for _, input := range tests {
		var it Item
		if err := json.Unmarshal([]byte(input), &it); err == nil {
			t.Errorf("Unmarshal(%s) should fail", input)
		}
	}
}

func TestFind(t *testing.T) {
	m := Menu{{Path: "home", Label: "Home"}, {Path: "about", Label: "About"}}

	it, ok := m.Find("about")
	if !ok || it.Label != "About" {
		t.Errorf("Find(about) = %+v, %v", it, ok)
	}
	if _, ok := m.Find("missing"); ok {
		t.Error("Find(missing) should report false")
	}
}

func TestStaticReturnsCopy(t *testing.T) {
	s := Static{{Path: "home", Label: "Home"}}
	items, err := s.Items(t.Context())
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	items[0].Label = "Changed"
	if s[0].Label != "Home" {
		t.Error("Items should not alias the configured list")
	}
}
