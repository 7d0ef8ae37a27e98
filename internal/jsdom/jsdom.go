//go:build js && wasm

// Package jsdom binds the shell to the live browser DOM through syscall/js.
// Everything here runs on the browser's single event loop.
package jsdom

import (
	"fmt"
	"syscall/js"

	"github.com/idepositbox/console/internal/menu"
	"github.com/idepositbox/console/internal/shell"
)

const activeClass = "active"

var (
	_ shell.Nav     = (*Nav)(nil)
	_ shell.Content = (*Content)(nil)
)

// Nav implements shell.Nav over a <ul> element.
type Nav struct {
	doc js.Value
	el  js.Value
	// funcs keeps click callbacks reachable for the page's lifetime.
	funcs []js.Func
}

// FindNav looks up the navigation list by CSS selector.
func FindNav(doc js.Value, selector string) (*Nav, error) {
	el := doc.Call("querySelector", selector)
	if el.IsNull() {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return &Nav{doc: doc, el: el}, nil
}

// Append adds <li id="path"><a>label</a></li> to the list. The click
// handler runs onClick and suppresses the default link action.
func (n *Nav) Append(item menu.Item, active bool, onClick func()) {
	li := n.doc.Call("createElement", "li")
	li.Set("id", item.Path)
	if active {
		li.Get("classList").Call("add", activeClass)
	}

	a := n.doc.Call("createElement", "a")
	a.Set("textContent", item.Label)
	if onClick != nil {
		cb := js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				args[0].Call("preventDefault")
			}
			onClick()
			return nil
		})
		n.funcs = append(n.funcs, cb)
		a.Call("addEventListener", "click", cb)
	}

	li.Call("appendChild", a)
	n.el.Call("appendChild", li)
}

// ClearActive removes the active class from every entry.
func (n *Nav) ClearActive() {
	n.each(func(li js.Value) bool {
		li.Get("classList").Call("remove", activeClass)
		return true
	})
}

// SetActive adds the active class to the first entry whose id is path. Ids
// are compared directly so paths need no CSS escaping.
func (n *Nav) SetActive(path string) bool {
	found := false
	n.each(func(li js.Value) bool {
		if li.Get("id").String() == path {
			li.Get("classList").Call("add", activeClass)
			found = true
			return false
		}
		return true
	})
	return found
}

// Active returns the id of the first entry with the active class.
func (n *Nav) Active() (string, bool) {
	var path string
	found := false
	n.each(func(li js.Value) bool {
		if li.Get("classList").Call("contains", activeClass).Bool() {
			path, found = li.Get("id").String(), true
			return false
		}
		return true
	})
	return path, found
}

// First returns the id of the first entry.
func (n *Nav) First() (string, bool) {
	var path string
	found := false
	n.each(func(li js.Value) bool {
		path, found = li.Get("id").String(), true
		return false
	})
	return path, found
}

func (n *Nav) each(fn func(li js.Value) bool) {
	children := n.el.Get("children")
	for i := 0; i < children.Length(); i++ {
		li := children.Index(i)
		if li.Get("tagName").String() != "LI" {
			continue
		}
		if !fn(li) {
			return
		}
	}
}

// Content implements shell.Content over an element's innerHTML.
type Content struct {
	el js.Value
}

// FindContent looks up the content container by CSS selector.
func FindContent(doc js.Value, selector string) (*Content, error) {
	el := doc.Call("querySelector", selector)
	if el.IsNull() {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return &Content{el: el}, nil
}

// SetHTML assigns markup to innerHTML as is.
func (c *Content) SetHTML(markup string) {
	c.el.Set("innerHTML", markup)
}
