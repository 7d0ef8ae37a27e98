// Package menu defines the navigation entries served by the console and
// rendered by the shell.
package menu

import (
	"context"
	"encoding/json"
	"fmt"
)

// Item is one navigable page. On the wire it is a two-element JSON array
// ["path", "label"] so the menu endpoint stays compatible with older shells.
type Item struct {
	Path  string `yaml:"path" koanf:"path"`
	Label string `yaml:"label" koanf:"label"`
}

// MarshalJSON encodes the item as ["path", "label"].
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{i.Path, i.Label})
}

// UnmarshalJSON decodes an item from a two-element string array.
func (i *Item) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("menu item must be a [path, label] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("menu item must have exactly 2 elements, got %d", len(pair))
	}
	i.Path, i.Label = pair[0], pair[1]
	return nil
}

// Menu is an ordered list of items. Paths are unique within a menu.
type Menu []Item

// Find returns the item with the given path.
func (m Menu) Find(path string) (Item, bool) {
	for _, it := range m {
		if it.Path == path {
			return it, true
		}
	}
	return Item{}, false
}

// Source produces the current menu.
type Source interface {
	Items(ctx context.Context) (Menu, error)
}

// Static is a Source backed by a fixed, configured list.
type Static Menu

// Items returns a copy of the configured list.
func (s Static) Items(ctx context.Context) (Menu, error) {
	out := make(Menu, len(s))
	copy(out, s)
	return out, nil
}

// DiscoverFunc is a Source that recomputes the menu on every call, so pages
// added to disk show up without restarting the server.
type DiscoverFunc func(ctx context.Context) (Menu, error)

// Items calls f.
func (f DiscoverFunc) Items(ctx context.Context) (Menu, error) {
	return f(ctx)
}
