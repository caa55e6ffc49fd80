package input

import (
	"time"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/constants"
)

// Direction is a cardinal direction for focus movement.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// DirectionFor returns the direction a virtual button moves focus in.
func DirectionFor(b constants.VirtualButton) Direction {
	switch b {
	case constants.VirtualButtonUp:
		return DirectionUp
	case constants.VirtualButtonDown:
		return DirectionDown
	case constants.VirtualButtonLeft:
		return DirectionLeft
	case constants.VirtualButtonRight:
		return DirectionRight
	default:
		return DirectionNone
	}
}

// Repeater turns a held direction into a stream of moves: one on press,
// one after Delay, then one every Interval until release.
type Repeater struct {
	Delay    time.Duration
	Interval time.Duration

	now      func() time.Time
	held     Direction
	last     time.Time
	repeated bool
}

// NewRepeater creates a Repeater with a 300ms delay and 50ms interval.
func NewRepeater() *Repeater {
	return &Repeater{
		Delay:    300 * time.Millisecond,
		Interval: 50 * time.Millisecond,
		now:      time.Now,
	}
}

// Press starts holding d. The returned direction should be handled
// immediately.
func (r *Repeater) Press(d Direction) Direction {
	if d == DirectionNone {
		return DirectionNone
	}
	r.held = d
	r.last = r.now()
	r.repeated = false
	return d
}

// Release stops repeating d. Releasing a direction that is not held is
// ignored, so rolling from one arrow to another keeps the newer one.
func (r *Repeater) Release(d Direction) {
	if d == r.held {
		r.Reset()
	}
}

// Held returns the direction being held.
func (r *Repeater) Held() Direction {
	return r.held
}

// Update is called every frame and returns the held direction when a
// repeat is due.
func (r *Repeater) Update() Direction {
	if r.held == DirectionNone {
		return DirectionNone
	}

	threshold := r.Interval
	if !r.repeated {
		threshold = r.Delay
	}

	now := r.now()
	if now.Sub(r.last) < threshold {
		return DirectionNone
	}
	r.last = now
	r.repeated = true
	return r.held
}

// Reset clears the held direction.
func (r *Repeater) Reset() {
	r.held = DirectionNone
	r.repeated = false
}
