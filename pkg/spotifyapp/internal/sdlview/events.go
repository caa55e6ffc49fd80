package sdlview

import (
	"image"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/constants"
)

// dragThreshold is how far a press may move before it stops being a tap.
const dragThreshold = 8

// wheelStep is the scroll distance of one mouse wheel notch.
const wheelStep = 48

// keyButton maps keyboard keys to virtual buttons.
func keyButton(sym sdl.Keycode) (constants.VirtualButton, bool) {
	switch sym {
	case sdl.K_UP:
		return constants.VirtualButtonUp, true
	case sdl.K_DOWN:
		return constants.VirtualButtonDown, true
	case sdl.K_LEFT:
		return constants.VirtualButtonLeft, true
	case sdl.K_RIGHT:
		return constants.VirtualButtonRight, true
	case sdl.K_RETURN, sdl.K_KP_ENTER:
		return constants.VirtualButtonA, true
	case sdl.K_ESCAPE, sdl.K_AC_BACK:
		return constants.VirtualButtonB, true
	case sdl.K_MENU:
		return constants.VirtualButtonMenu, true
	}
	return constants.VirtualButtonUnassigned, false
}

// gesture separates taps from drags on a scrollable list.
type gesture struct {
	down     bool
	dragging bool
	start    image.Point
	last     image.Point
	list     string
}

// press starts a gesture at p over the list identified by list, which may
// be empty.
func (g *gesture) press(p image.Point, list string) {
	*g = gesture{down: true, start: p, last: p, list: list}
}

// move returns the distance to scroll the list by, if the gesture has
// become a drag.
func (g *gesture) move(p image.Point) (string, int, bool) {
	if !g.down {
		return "", 0, false
	}
	if !g.dragging {
		d := p.Sub(g.start)
		if abs(d.X) < dragThreshold && abs(d.Y) < dragThreshold {
			return "", 0, false
		}
		g.dragging = true
	}
	dy := g.last.Y - p.Y
	g.last = p
	if g.list == "" || dy == 0 {
		return "", 0, false
	}
	return g.list, dy, true
}

// release ends the gesture and reports whether it was a tap.
func (g *gesture) release(p image.Point) bool {
	tap := g.down && !g.dragging
	if tap {
		d := p.Sub(g.start)
		tap = abs(d.X) < dragThreshold && abs(d.Y) < dragThreshold
	}
	*g = gesture{}
	return tap
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
