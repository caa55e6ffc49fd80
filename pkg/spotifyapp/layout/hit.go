package layout

import (
	"image"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// HitTest returns the deepest enabled button with an action under p.
// Later siblings are painted over earlier ones, so they are searched first.
func (b *Box) HitTest(p image.Point) (*Box, bool) {
	if b == nil || !p.In(b.Clip) {
		return nil, false
	}
	for i := len(b.Children) - 1; i >= 0; i-- {
		if hit, ok := b.Children[i].HitTest(p); ok {
			return hit, true
		}
	}
	if btn, ok := b.Node.(view.Button); ok && pressable(btn) {
		return b, true
	}
	return nil, false
}

// ListAt returns the key of the innermost list under p.
func (b *Box) ListAt(p image.Point) (string, bool) {
	if b == nil || !p.In(b.Clip) {
		return "", false
	}
	for i := len(b.Children) - 1; i >= 0; i-- {
		if key, ok := b.Children[i].ListAt(p); ok {
			return key, true
		}
	}
	if l, ok := b.Node.(view.List); ok {
		return l.Key, true
	}
	return "", false
}

// FieldAt returns the text field under p.
func (b *Box) FieldAt(p image.Point) (*Box, bool) {
	if b == nil || !p.In(b.Clip) {
		return nil, false
	}
	if _, ok := b.Node.(view.TextField); ok {
		return b, true
	}
	for i := len(b.Children) - 1; i >= 0; i-- {
		if hit, ok := b.Children[i].FieldAt(p); ok {
			return hit, true
		}
	}
	return nil, false
}

// Focusables returns the visible pressable buttons and text fields in
// paint order.
func (b *Box) Focusables() []*Box {
	var out []*Box
	var visit func(*Box)
	visit = func(n *Box) {
		if !n.Visible() {
			return
		}
		switch v := n.Node.(type) {
		case view.Button:
			if pressable(v) {
				out = append(out, n)
				return
			}
		case view.TextField:
			out = append(out, n)
			return
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	if b != nil {
		visit(b)
	}
	return out
}

func pressable(b view.Button) bool {
	return !b.Disabled && b.Action != nil
}
