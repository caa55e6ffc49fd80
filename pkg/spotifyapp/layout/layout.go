// Package layout measures a resolved view tree and places every node in a
// rectangle. Frontends paint the placed tree and use it to map pointer and
// focus input back to button actions.
package layout

import (
	"image"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// Measurer reports the single-line size of a text run.
type Measurer interface {
	MeasureText(text string, style view.TextStyle, bold bool) (w, h int)
}

// Box is a placed node. Clip is the visible part of Rect; nodes scrolled
// out of a list have an empty Clip.
type Box struct {
	Node     view.Node
	Rect     image.Rectangle
	Clip     image.Rectangle
	Children []*Box
}

// Visible reports whether any part of the box is on screen.
func (b *Box) Visible() bool {
	return !b.Clip.Empty()
}

// Engine lays out trees and keeps the scroll offsets of lists between
// layouts. It is not safe for concurrent use.
type Engine struct {
	measure  Measurer
	offsets  map[string]int
	extents  map[string]int // content height minus viewport height, per list
	lineSize map[view.TextStyle]int
}

// NewEngine creates an engine that measures text with m.
func NewEngine(m Measurer) *Engine {
	return &Engine{
		measure:  m,
		offsets:  make(map[string]int),
		extents:  make(map[string]int),
		lineSize: make(map[view.TextStyle]int),
	}
}

// Layout places root inside bounds.
func (e *Engine) Layout(root view.Node, bounds image.Rectangle) *Box {
	if root == nil {
		return &Box{Rect: bounds, Clip: bounds}
	}
	return e.place(root, bounds, bounds)
}

// Scroll moves the list identified by key by dy pixels, clamped to its
// content. Returns false if the offset did not change or the list has not
// been laid out yet.
func (e *Engine) Scroll(key string, dy int) bool {
	extent, ok := e.extents[key]
	if !ok {
		return false
	}
	before := e.offsets[key]
	after := clamp(before+dy, 0, extent)
	e.offsets[key] = after
	return after != before
}

// Offset returns the scroll offset of the list identified by key.
func (e *Engine) Offset(key string) int {
	return e.offsets[key]
}

// Offsets returns a copy of every known list offset.
func (e *Engine) Offsets() map[string]int {
	out := make(map[string]int, len(e.offsets))
	for k, v := range e.offsets {
		out[k] = v
	}
	return out
}

// Reset forgets all list offsets. Lists laid out afterwards start at their
// List.Offset.
func (e *Engine) Reset() {
	e.offsets = make(map[string]int)
	e.extents = make(map[string]int)
}

func (e *Engine) lineHeight(style view.TextStyle) int {
	if h, ok := e.lineSize[style]; ok {
		return h
	}
	_, h := e.measure.MeasureText("Ag", style, false)
	e.lineSize[style] = h
	return h
}

// size returns the natural size of n when at most maxW pixels are
// available. Nodes that fill their container report maxW.
func (e *Engine) size(n view.Node, maxW int) (int, int) {
	switch v := n.(type) {
	case view.Text:
		w, h := e.measure.MeasureText(v.Text, v.Style, v.Bold)
		if v.Width > 0 {
			if w > v.Width {
				h *= lines(w, v.Width, v.MaxLines)
			}
			return v.Width, h
		}
		if maxW > 0 && w > maxW {
			h *= lines(w, maxW, v.MaxLines)
			w = maxW
		}
		return w, h

	case view.Icon:
		return v.Size, v.Size

	case view.Image:
		w := v.Width
		if w == 0 {
			w = maxW
		}
		return w, v.Height

	case view.Spacer:
		return v.Width, v.Height

	case view.Box:
		inner := maxW - v.Padding.Horizontal()
		if v.Width > 0 {
			inner = v.Width - v.Padding.Horizontal()
		}
		cw, ch := 0, 0
		for _, c := range v.Children {
			w, h := e.size(c, inner)
			cw, ch = max(cw, w), max(ch, h)
		}
		w, h := v.Width, v.Height
		if w == 0 {
			w = cw + v.Padding.Horizontal()
			if len(v.Children) == 0 {
				w = maxW
			}
		}
		if h == 0 {
			h = ch + v.Padding.Vertical()
		}
		return w, h

	case view.Column:
		inner := maxW - v.Padding.Horizontal()
		w, h := 0, 0
		for i, c := range v.Children {
			cw, ch := e.size(c, inner)
			w = max(w, cw)
			if weightOf(c) == 0 {
				h += ch
			}
			if i > 0 {
				h += v.Spacing
			}
		}
		if v.Height > 0 {
			h = v.Height - v.Padding.Vertical()
		}
		return w + v.Padding.Horizontal(), h + v.Padding.Vertical()

	case view.Row:
		inner := maxW - v.Padding.Horizontal()
		w, h, fill := 0, 0, false
		for i, c := range v.Children {
			cw, ch := e.size(c, inner)
			if weightOf(c) > 0 {
				fill = true
			} else {
				w += cw
			}
			h = max(h, ch)
			if i > 0 {
				w += v.Spacing
			}
		}
		if v.Height > 0 {
			h = v.Height - v.Padding.Vertical()
		}
		w += v.Padding.Horizontal()
		if fill {
			w = maxW
		}
		return w, h + v.Padding.Vertical()

	case view.List:
		_, h := e.listContent(v, maxW)
		return maxW, h

	case view.Button:
		inner := maxW - v.Padding.Horizontal()
		w, h := 0, 0
		if v.Child != nil {
			w, h = e.size(v.Child, inner)
		}
		return w + v.Padding.Horizontal(), h + v.Padding.Vertical()

	case view.TextField:
		return maxW, e.lineHeight(view.TextSmall) + 4 + e.lineHeight(view.TextBody) + 16 + v.Padding.Vertical()

	default:
		return 0, 0
	}
}

func (e *Engine) listContent(v view.List, maxW int) (int, int) {
	inner := maxW - v.Padding.Horizontal()
	h := 0
	for i, c := range v.Children {
		_, ch := e.size(c, inner)
		h += ch
		if i > 0 {
			h += v.Spacing
		}
	}
	return inner, h + v.Padding.Vertical()
}

func (e *Engine) place(n view.Node, r, clip image.Rectangle) *Box {
	b := &Box{Node: n, Rect: r, Clip: r.Intersect(clip)}

	switch v := n.(type) {
	case view.Box:
		inner := shrink(r, v.Padding)
		for _, c := range v.Children {
			b.Children = append(b.Children, e.place(c, inner, b.Clip))
		}

	case view.Button:
		if v.Child != nil {
			b.Children = []*Box{e.place(v.Child, shrink(r, v.Padding), b.Clip)}
		}

	case view.Column:
		b.Children = e.placeColumn(v, shrink(r, v.Padding), b.Clip)

	case view.Row:
		b.Children = e.placeRow(v, shrink(r, v.Padding), b.Clip)

	case view.List:
		b.Children = e.placeList(v, r, b.Clip)
	}
	return b
}

func (e *Engine) placeColumn(v view.Column, inner, clip image.Rectangle) []*Box {
	n := len(v.Children)
	if n == 0 {
		return nil
	}

	widths := make([]int, n)
	heights := make([]int, n)
	used, weights := v.Spacing*(n-1), 0.0
	for i, c := range v.Children {
		widths[i], heights[i] = e.size(c, inner.Dx())
		if w := weightOf(c); w > 0 {
			weights += w
			continue
		}
		used += heights[i]
	}

	free := max(inner.Dy()-used, 0)
	y := inner.Min.Y
	if weights == 0 {
		y += justify(v.Justify, free)
	}

	out := make([]*Box, 0, n)
	for i, c := range v.Children {
		h := heights[i]
		if w := weightOf(c); w > 0 {
			h = int(float64(free) * w / weights)
		}
		w := min(widths[i], inner.Dx())
		x := inner.Min.X + justify(v.Align, inner.Dx()-w)

		out = append(out, e.place(c, image.Rect(x, y, x+w, y+h), clip))
		y += h + v.Spacing
	}
	return out
}

func (e *Engine) placeRow(v view.Row, inner, clip image.Rectangle) []*Box {
	n := len(v.Children)
	if n == 0 {
		return nil
	}

	widths := make([]int, n)
	heights := make([]int, n)
	used, weights := v.Spacing*(n-1), 0.0
	for i, c := range v.Children {
		if w := weightOf(c); w > 0 {
			weights += w
			continue
		}
		widths[i], heights[i] = e.size(c, inner.Dx())
		used += widths[i]
	}

	free := max(inner.Dx()-used, 0)
	for i, c := range v.Children {
		if w := weightOf(c); w > 0 {
			widths[i] = int(float64(free) * w / weights)
			_, heights[i] = e.size(c, widths[i])
		}
	}

	x := inner.Min.X
	out := make([]*Box, 0, n)
	for i, c := range v.Children {
		h := min(heights[i], inner.Dy())
		if isFill(c) {
			h = inner.Dy()
		}
		y := inner.Min.Y + justify(v.Align, inner.Dy()-h)

		out = append(out, e.place(c, image.Rect(x, y, x+widths[i], y+h), clip))
		x += widths[i] + v.Spacing
	}
	return out
}

func (e *Engine) placeList(v view.List, r, clip image.Rectangle) []*Box {
	inner := shrink(r, v.Padding)
	_, content := e.listContent(v, r.Dx())

	extent := max(content-r.Dy(), 0)
	e.extents[v.Key] = extent

	offset, seen := e.offsets[v.Key]
	if !seen {
		offset = v.Offset
	}
	offset = clamp(offset, 0, extent)
	e.offsets[v.Key] = offset

	y := inner.Min.Y - offset
	out := make([]*Box, 0, len(v.Children))
	for _, c := range v.Children {
		_, h := e.size(c, inner.Dx())
		out = append(out, e.place(c, image.Rect(inner.Min.X, y, inner.Max.X, y+h), clip))
		y += h + v.Spacing
	}
	return out
}

// isFill reports whether n stretches across the cross axis of a row.
func isFill(n view.Node) bool {
	switch v := n.(type) {
	case view.Box:
		return v.Height == 0
	case view.Column:
		return v.Height == 0
	case view.List:
		return true
	}
	return false
}

func weightOf(n view.Node) float64 {
	switch v := n.(type) {
	case view.Text:
		return v.Weight
	case view.Spacer:
		return v.Weight
	case view.Box:
		return v.Weight
	case view.Column:
		return v.Weight
	case view.Row:
		return v.Weight
	case view.List:
		return v.Weight
	case view.Button:
		return v.Weight
	}
	return 0
}

func justify(a view.Alignment, free int) int {
	switch a {
	case view.AlignCenter:
		return free / 2
	case view.AlignEnd:
		return free
	default:
		return 0
	}
}

func lines(w, avail, maxLines int) int {
	if avail <= 0 {
		return 1
	}
	n := (w + avail - 1) / avail
	if maxLines > 0 && n > maxLines {
		n = maxLines
	}
	return n
}

func shrink(r image.Rectangle, p view.Padding) image.Rectangle {
	out := image.Rect(r.Min.X+p.Left, r.Min.Y+p.Top, r.Max.X-p.Right, r.Max.Y-p.Bottom)
	if out.Dx() < 0 {
		out.Max.X = out.Min.X
	}
	if out.Dy() < 0 {
		out.Max.Y = out.Min.Y
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
