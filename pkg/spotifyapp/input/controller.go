// Package input turns keys, taps and hardware buttons into shell actions.
// Everything except DeviceReader.Run must be called on the UI thread.
package input

import (
	"image"
	"log/slog"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/constants"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/layout"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// Dispatcher receives the actions produced by input.
type Dispatcher interface {
	Dispatch(action view.Action) bool
}

// Controller owns focus, the text field being edited and directional
// repeat for one window.
type Controller struct {
	dispatch Dispatcher
	logger   *slog.Logger
	repeat   *Repeater
	focus    Focus
	root     *layout.Box
	editing  *view.Cell[string]
}

// NewController creates a Controller that hands actions to d.
func NewController(d Dispatcher, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		dispatch: d,
		logger:   logger,
		repeat:   NewRepeater(),
	}
}

// Sync is called after every layout.
func (c *Controller) Sync(root *layout.Box) {
	c.root = root
	c.focus.Sync(root)
	if c.editing != nil && !c.fieldVisible(c.editing) {
		c.editing = nil
	}
}

// Reset clears focus and editing, e.g. when the route changes.
func (c *Controller) Reset() {
	c.focus.Clear()
	c.repeat.Reset()
	c.editing = nil
}

// Root returns the layout passed to the last Sync.
func (c *Controller) Root() *layout.Box {
	return c.root
}

// Focused returns the focused element, for highlighting.
func (c *Controller) Focused() (*layout.Box, bool) {
	return c.focus.Current()
}

// Editing returns the value of the text field receiving typed text.
func (c *Controller) Editing() (*view.Cell[string], bool) {
	return c.editing, c.editing != nil
}

// Button handles a virtual button event.
func (c *Controller) Button(ev ButtonEvent) {
	if d := DirectionFor(ev.Button); d != DirectionNone {
		switch {
		case ev.Repeat:
		case ev.Pressed:
			c.focus.Move(c.repeat.Press(d))
		default:
			c.repeat.Release(d)
		}
		return
	}
	if !ev.Pressed || ev.Repeat {
		return
	}

	switch ev.Button {
	case constants.VirtualButtonA:
		if action, ok := c.focus.Action(); ok {
			c.dispatch.Dispatch(action)
			return
		}
		if tf, ok := c.focus.Field(); ok {
			c.editing = tf.Value
		}
	case constants.VirtualButtonB:
		if c.editing != nil {
			c.editing = nil
			return
		}
		c.dispatch.Dispatch(router.Back{})
	default:
		c.logger.Debug("button ignored", "button", ev.Button.String())
	}
}

// Tick is called once per frame to drive key repeat.
func (c *Controller) Tick() {
	if d := c.repeat.Update(); d != DirectionNone {
		c.focus.Move(d)
	}
}

// Tap handles a pointer press at p. Tapping a button dispatches its action
// and tapping a text field starts editing it.
func (c *Controller) Tap(p image.Point) bool {
	if c.root == nil {
		return false
	}
	if hit, ok := c.root.HitTest(p); ok {
		c.editing = nil
		c.focus.Set(hit)
		return c.dispatch.Dispatch(hit.Node.(view.Button).Action)
	}
	if field, ok := c.root.FieldAt(p); ok {
		c.focus.Set(field)
		c.editing = field.Node.(view.TextField).Value
		return true
	}
	c.editing = nil
	return false
}

// Type appends text to the field being edited.
func (c *Controller) Type(text string) bool {
	if c.editing == nil || text == "" {
		return false
	}
	return c.editing.Update(func(v string) string { return v + text })
}

// Backspace removes the last character of the field being edited.
func (c *Controller) Backspace() bool {
	if c.editing == nil {
		return false
	}
	return c.editing.Update(func(v string) string {
		r := []rune(v)
		if len(r) == 0 {
			return v
		}
		return string(r[:len(r)-1])
	})
}

func (c *Controller) fieldVisible(cell *view.Cell[string]) bool {
	if c.root == nil {
		return false
	}
	for _, b := range c.root.Focusables() {
		if tf, ok := b.Node.(view.TextField); ok && tf.Value == cell {
			return true
		}
	}
	return false
}
