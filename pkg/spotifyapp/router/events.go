package router

// Event is a navigation request expressed as a value, so view nodes can
// carry it as a button Action instead of capturing the Navigator.
type Event interface {
	navigationEvent()
}

// Navigate pushes To unless it is already the current route.
type Navigate struct {
	To Route
}

// Back pops the current route unless it is the last one.
type Back struct{}

// Replace swaps the current route for To.
type Replace struct {
	To Route
}

func (Navigate) navigationEvent() {}
func (Back) navigationEvent()     {}
func (Replace) navigationEvent()  {}

// TransitionKind names the operation that changed the current route.
type TransitionKind string

const (
	TransitionPush    TransitionKind = "push"
	TransitionPop     TransitionKind = "pop"
	TransitionReplace TransitionKind = "replace"
)

// Transition describes one change of the current route.
type Transition struct {
	Kind  TransitionKind
	From  Route
	To    Route
	Depth int // stack length after the transition
}

// Hooks receive navigator events, typically to feed logs and metrics.
type Hooks struct {
	OnTransition func(Transition)
	OnRejected   func(route Route, err error)
}
