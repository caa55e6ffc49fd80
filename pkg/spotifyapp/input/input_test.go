package input

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/constants"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/layout"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRepeater(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	r := NewRepeater()
	r.now = clock.now

	assert.Equal(t, DirectionNone, r.Update())
	assert.Equal(t, DirectionDown, r.Press(DirectionDown))

	clock.advance(299 * time.Millisecond)
	assert.Equal(t, DirectionNone, r.Update(), "first repeat waits for the delay")
	clock.advance(time.Millisecond)
	assert.Equal(t, DirectionDown, r.Update())

	clock.advance(49 * time.Millisecond)
	assert.Equal(t, DirectionNone, r.Update())
	clock.advance(time.Millisecond)
	assert.Equal(t, DirectionDown, r.Update())

	r.Release(DirectionUp)
	assert.Equal(t, DirectionDown, r.Held(), "releasing another direction keeps the held one")
	r.Release(DirectionDown)
	clock.advance(time.Second)
	assert.Equal(t, DirectionNone, r.Update())
}

// grid lays out a 2x2 grid of buttons labelled by position.
func grid(t *testing.T) *layout.Box {
	t.Helper()
	btn := func(a string) view.Node {
		return view.Button{Action: a, Weight: 1, Child: view.Spacer{Height: 50}}
	}
	root := view.Column{Children: []view.Node{
		view.Row{Children: []view.Node{btn("tl"), btn("tr")}},
		view.Row{Children: []view.Node{btn("bl"), btn("br")}},
	}}
	return layout.NewEngine(layout.MonospaceMeasurer{}).Layout(root, image.Rect(0, 0, 200, 100))
}

func focusedAction(t *testing.T, f *Focus) view.Action {
	t.Helper()
	a, ok := f.Action()
	require.True(t, ok)
	return a
}

func TestFocusMovesGeometrically(t *testing.T) {
	var f Focus
	f.Sync(grid(t))

	_, ok := f.Current()
	assert.False(t, ok, "nothing is focused until the first move")

	require.True(t, f.Move(DirectionRight))
	assert.Equal(t, "tl", focusedAction(t, &f))

	require.True(t, f.Move(DirectionRight))
	assert.Equal(t, "tr", focusedAction(t, &f))
	assert.False(t, f.Move(DirectionRight))

	require.True(t, f.Move(DirectionDown))
	assert.Equal(t, "br", focusedAction(t, &f))
	require.True(t, f.Move(DirectionLeft))
	assert.Equal(t, "bl", focusedAction(t, &f))
	require.True(t, f.Move(DirectionUp))
	assert.Equal(t, "tl", focusedAction(t, &f))
}

func TestFocusSurvivesRelayout(t *testing.T) {
	var f Focus
	f.Sync(grid(t))
	f.Move(DirectionDown)
	f.Move(DirectionDown)
	require.Equal(t, "bl", focusedAction(t, &f))

	f.Sync(grid(t))
	assert.Equal(t, "bl", focusedAction(t, &f))
}

type recorder struct{ actions []view.Action }

func (r *recorder) Dispatch(a view.Action) bool {
	r.actions = append(r.actions, a)
	return true
}

func press(b constants.VirtualButton) ButtonEvent {
	return ButtonEvent{Button: b, Pressed: true}
}

func TestControllerButtons(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec, quiet)
	c.Sync(grid(t))

	c.Button(press(constants.VirtualButtonA))
	assert.Empty(t, rec.actions, "A without focus does nothing")

	c.Button(press(constants.VirtualButtonDown))
	c.Button(ButtonEvent{Button: constants.VirtualButtonDown})
	c.Button(press(constants.VirtualButtonA))
	c.Button(press(constants.VirtualButtonB))
	c.Button(ButtonEvent{Button: constants.VirtualButtonB, Pressed: true, Repeat: true})

	assert.Equal(t, []view.Action{"tl", router.Back{}}, rec.actions)
}

func TestControllerTapAndType(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec, quiet)

	email := view.NewCell("ab")
	root := view.Column{Children: []view.Node{
		view.TextField{Label: "Email", Value: email},
		view.Button{Action: "submit", Child: view.Text{Text: "Log in"}},
	}}
	c.Sync(layout.NewEngine(layout.MonospaceMeasurer{}).Layout(root, image.Rect(0, 0, 200, 400)))

	assert.False(t, c.Type("x"), "typing needs an edited field")

	require.True(t, c.Tap(image.Pt(5, 5)))
	cell, ok := c.Editing()
	require.True(t, ok)
	assert.Same(t, email, cell)

	c.Type("c@d")
	c.Backspace()
	assert.Equal(t, "abc@", email.Get())

	// B leaves the field before navigating back.
	c.Button(press(constants.VirtualButtonB))
	_, ok = c.Editing()
	assert.False(t, ok)
	assert.Empty(t, rec.actions)

	require.True(t, c.Tap(image.Pt(5, 50)))
	assert.Equal(t, []view.Action{"submit"}, rec.actions)

	assert.False(t, c.Tap(image.Pt(190, 390)))
}

func TestControllerDropsHiddenField(t *testing.T) {
	c := NewController(&recorder{}, quiet)
	engine := layout.NewEngine(layout.MonospaceMeasurer{})

	field := view.TextField{Label: "Email", Value: view.NewCell("")}
	c.Sync(engine.Layout(field, image.Rect(0, 0, 200, 100)))
	require.True(t, c.Tap(image.Pt(5, 5)))

	c.Sync(engine.Layout(view.Text{Text: "Home"}, image.Rect(0, 0, 200, 100)))
	_, ok := c.Editing()
	assert.False(t, ok)
}

type fakeSource struct {
	events chan *evdev.InputEvent
	closed chan struct{}
}

func newFakeSource(events ...*evdev.InputEvent) *fakeSource {
	s := &fakeSource{
		events: make(chan *evdev.InputEvent, len(events)),
		closed: make(chan struct{}),
	}
	for _, e := range events {
		s.events <- e
	}
	return s
}

func (s *fakeSource) ReadOne() (*evdev.InputEvent, error) {
	select {
	case e := <-s.events:
		return e, nil
	case <-s.closed:
		return nil, errors.New("file already closed")
	}
}

func (s *fakeSource) Close() error {
	close(s.closed)
	return nil
}

func key(code evdev.EvCode, value int32) *evdev.InputEvent {
	return &evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

func TestDeviceReaderMapsKeys(t *testing.T) {
	src := newFakeSource(
		&evdev.InputEvent{Type: evdev.EV_SYN},
		key(evdev.KEY_BACK, 1),
		key(evdev.KEY_BACK, 0),
		key(evdev.KEY_A, 1),
		key(evdev.KEY_DOWN, 2),
	)
	r := newDeviceReader(src, "gpio-keys", quiet)

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan ButtonEvent, 8)
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx, func(ev ButtonEvent) {
			got <- ev
			if len(got) == 3 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("reader did not stop")
	}

	close(got)
	var events []ButtonEvent
	for ev := range got {
		events = append(events, ev)
	}
	assert.Equal(t, []ButtonEvent{
		{Button: constants.VirtualButtonB, Pressed: true},
		{Button: constants.VirtualButtonB},
		{Button: constants.VirtualButtonDown, Pressed: true, Repeat: true},
	}, events)
	assert.Equal(t, "gpio-keys", r.Name())
}

func TestDeviceReaderReportsReadErrors(t *testing.T) {
	src := newFakeSource()
	r := newDeviceReader(src, "broken", quiet)
	require.NoError(t, r.Close())

	err := r.Run(context.Background(), func(ButtonEvent) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input: read broken")
}
