package view

import (
	"image"
	"image/color"
)

// Node is an element of the view tree. The set of node kinds is closed.
type Node interface {
	node()
}

// Action is a value describing something the user asked for. Frontends hand
// the Action of a pressed Button back to the shell, which reduces it.
type Action = any

// TextStyle selects the typographic scale of a Text node.
type TextStyle int

const (
	TextBody TextStyle = iota
	TextSmall
	TextLabel
	TextHeadline
	TextTitle
)

func (s TextStyle) String() string {
	switch s {
	case TextBody:
		return "body"
	case TextSmall:
		return "small"
	case TextLabel:
		return "label"
	case TextHeadline:
		return "headline"
	case TextTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Alignment positions children along the cross axis of a container.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

type Text struct {
	Text     string
	Style    TextStyle
	Bold     bool
	Color    color.RGBA // zero value uses the theme text colour
	MaxLines int        // 0 = unlimited
	Width    int        // fixed width, 0 = natural width
	Weight   float64
}

type Icon struct {
	Name  string
	Size  int
	Color color.RGBA
}

// Image is a decoded bitmap. Remote images are produced by components that
// track a loader handle and swap placeholders for an Image on success.
type Image struct {
	URL         string
	Source      image.Image
	Width       int // 0 = fill available width
	Height      int
	Radius      int
	Description string
}

type Spacer struct {
	Width  int
	Height int
	Weight float64
}

// Box stacks its children on top of each other, all sharing the box bounds.
type Box struct {
	Children   []Node
	Width      int
	Height     int
	Weight     float64
	Padding    Padding
	Background color.RGBA
	Border     color.RGBA
	Radius     int
	Gradient   bool // fade from transparent at the top to Background at the bottom
}

type Column struct {
	Children []Node
	Padding  Padding
	Spacing  int
	Align    Alignment
	Justify  Alignment
	Height   int
	Weight   float64
}

type Row struct {
	Children []Node
	Padding  Padding
	Spacing  int
	Align    Alignment
	Height   int
	Weight   float64
}

// List is a scrollable column. Key identifies its scroll position.
type List struct {
	Key      string
	Children []Node
	Padding  Padding
	Spacing  int
	Weight   float64
	Offset   int // initial scroll offset, used the first time Key is laid out
}

type Button struct {
	Child      Node
	Action     Action
	Disabled   bool
	Selected   bool
	Padding    Padding
	Background color.RGBA
	Border     color.RGBA
	Radius     int
	Weight     float64
}

// TextField edits the string held by Value.
type TextField struct {
	Label   string
	Value   *Cell[string]
	Masked  bool
	Padding Padding
}

// Component renders a subtree from Props and watched Cells.
// Props must be comparable with reflect.DeepEqual; Render must not capture
// anything that is not reflected in Props or in a Cell.
type Component struct {
	Key    string
	Props  any
	Render func(s *Scope) Node
}

func (Text) node()      {}
func (Icon) node()      {}
func (Image) node()     {}
func (Spacer) node()    {}
func (Box) node()       {}
func (Column) node()    {}
func (Row) node()       {}
func (List) node()      {}
func (Button) node()    {}
func (TextField) node() {}
func (Component) node() {}

// Children returns the direct children of container nodes.
func Children(n Node) []Node {
	switch v := n.(type) {
	case Box:
		return v.Children
	case Column:
		return v.Children
	case Row:
		return v.Children
	case List:
		return v.Children
	case Button:
		if v.Child == nil {
			return nil
		}
		return []Node{v.Child}
	default:
		return nil
	}
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}
