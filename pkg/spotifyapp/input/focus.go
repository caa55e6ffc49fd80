package input

import (
	"image"
	"math"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/layout"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// Focus tracks the focused element of the current layout for key and
// gamepad input. Focus is remembered by position, since nodes are values
// and are rebuilt by every render.
type Focus struct {
	items   []*layout.Box
	current int
	anchor  image.Point
	valid   bool
}

// Sync updates the focusable set from a new layout. The element nearest
// to the previously focused position keeps focus.
func (f *Focus) Sync(root *layout.Box) {
	f.items = root.Focusables()
	if len(f.items) == 0 {
		f.current, f.valid = 0, false
		return
	}
	if !f.valid {
		f.current = 0
		return
	}
	best, bestDist := 0, math.MaxFloat64
	for i, it := range f.items {
		if d := dist(center(it.Rect), f.anchor); d < bestDist {
			best, bestDist = i, d
		}
	}
	f.current = best
}

// Current returns the focused element.
func (f *Focus) Current() (*layout.Box, bool) {
	if !f.valid || f.current >= len(f.items) {
		return nil, false
	}
	return f.items[f.current], true
}

// Set focuses b if it is focusable.
func (f *Focus) Set(b *layout.Box) bool {
	for i, it := range f.items {
		if it.Rect == b.Rect {
			f.focus(i)
			return true
		}
	}
	return false
}

// Clear drops focus.
func (f *Focus) Clear() {
	f.valid = false
}

// Move shifts focus to the nearest element in direction d. The first move
// after Sync or Clear focuses the first element.
func (f *Focus) Move(d Direction) bool {
	if len(f.items) == 0 || d == DirectionNone {
		return false
	}
	if !f.valid {
		f.focus(0)
		return true
	}

	from := center(f.items[f.current].Rect)
	best, bestScore := -1, math.MaxFloat64
	for i, it := range f.items {
		if i == f.current {
			continue
		}
		to := center(it.Rect)
		along, across := project(d, to.Sub(from))
		if along <= 0 {
			continue
		}
		// Favour elements in line with the current one.
		score := along + 2*math.Abs(across)
		if score < bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return false
	}
	f.focus(best)
	return true
}

// Action returns the action of the focused button.
func (f *Focus) Action() (view.Action, bool) {
	b, ok := f.Current()
	if !ok {
		return nil, false
	}
	btn, ok := b.Node.(view.Button)
	if !ok || btn.Disabled || btn.Action == nil {
		return nil, false
	}
	return btn.Action, true
}

// Field returns the focused text field.
func (f *Focus) Field() (view.TextField, bool) {
	b, ok := f.Current()
	if !ok {
		return view.TextField{}, false
	}
	tf, ok := b.Node.(view.TextField)
	return tf, ok
}

func (f *Focus) focus(i int) {
	f.current = i
	f.valid = true
	f.anchor = center(f.items[i].Rect)
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func dist(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// project splits delta into the distance along d and across it.
func project(d Direction, delta image.Point) (float64, float64) {
	switch d {
	case DirectionUp:
		return float64(-delta.Y), float64(delta.X)
	case DirectionDown:
		return float64(delta.Y), float64(delta.X)
	case DirectionLeft:
		return float64(-delta.X), float64(delta.Y)
	case DirectionRight:
		return float64(delta.X), float64(delta.Y)
	default:
		return 0, 0
	}
}
