package router

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// Navigator owns the back-stack and publishes the current route.
// It is not safe for concurrent use; drive it from the UI loop.
type Navigator struct {
	table  *Table
	stack  *Stack
	logger *slog.Logger
	hooks  Hooks
	start  Route

	subscribers map[uint64]func(Route)
	nextID      uint64
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the structured logger for navigation events.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// WithStart overrides the table's start route, e.g. for a deep link. An
// unregistered route is ignored and the table's start route is used.
func WithStart(route Route) Option {
	return func(n *Navigator) {
		n.start = route
	}
}

// NewNavigator creates a navigator positioned on the table's start route.
// The table is frozen if it is not already.
func NewNavigator(table *Table, opts ...Option) (*Navigator, error) {
	if !table.Frozen() {
		if err := table.Freeze(); err != nil {
			return nil, err
		}
	}

	n := &Navigator{
		table:       table,
		stack:       NewStack(),
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		subscribers: make(map[uint64]func(Route)),
	}
	for _, opt := range opts {
		opt(n)
	}

	first := table.Start()
	if n.start != "" {
		if table.Has(n.start) {
			first = n.start
		} else {
			n.logger.Warn("deep link to unknown route, using start route",
				"route", string(n.start), "start", string(first))
		}
	}
	n.stack.Push(first, nil)
	return n, nil
}

// Current returns the route on top of the back-stack.
func (n *Navigator) Current() Route {
	return n.stack.Peek().Route
}

// BackStack returns the routes on the back-stack, bottom first.
func (n *Navigator) BackStack() []Route {
	return n.stack.Routes()
}

// Depth returns the number of entries on the back-stack.
func (n *Navigator) Depth() int {
	return n.stack.Len()
}

// CanGoBack reports whether Back would change the current route.
func (n *Navigator) CanGoBack() bool {
	return n.stack.Len() > 1
}

// Table returns the route table.
func (n *Navigator) Table() *Table {
	return n.table
}

// Navigate pushes route. Navigating to the current route is a no-op.
// An unregistered route is rejected with a *RouteNotFoundError and the
// stack is left unchanged.
func (n *Navigator) Navigate(route Route) error {
	if !n.table.Has(route) {
		return n.reject(route)
	}

	from := n.Current()
	if route == from {
		return nil
	}

	n.stack.Push(route, nil)
	n.publish(Transition{Kind: TransitionPush, From: from, To: route, Depth: n.stack.Len()})
	return nil
}

// Back pops the current route. With a single entry left it does nothing
// and returns false.
func (n *Navigator) Back() bool {
	if n.stack.Len() <= 1 {
		return false
	}

	from := n.stack.Pop().Route
	n.publish(Transition{Kind: TransitionPop, From: from, To: n.Current(), Depth: n.stack.Len()})
	return true
}

// Replace pops the current route and pushes route, so the replaced screen
// is no longer reachable with Back.
func (n *Navigator) Replace(route Route) error {
	if !n.table.Has(route) {
		return n.reject(route)
	}

	from := n.stack.Pop().Route
	n.stack.Push(route, nil)
	n.publish(Transition{Kind: TransitionReplace, From: from, To: route, Depth: n.stack.Len()})
	return nil
}

// Apply performs a navigation event.
func (n *Navigator) Apply(ev Event) error {
	switch e := ev.(type) {
	case Navigate:
		return n.Navigate(e.To)
	case Back:
		n.Back()
		return nil
	case Replace:
		return n.Replace(e.To)
	default:
		return fmt.Errorf("router: %w: %T", ErrUnknownEvent, ev)
	}
}

// SetResume stores resume state on the current entry. It is handed back
// through Context.Resume when the entry becomes current again.
func (n *Navigator) SetResume(resume any) {
	n.stack.Peek().Resume = resume
}

// Resume returns the resume state of the current entry.
func (n *Navigator) Resume() any {
	return n.stack.Peek().Resume
}

// Subscribe registers fn to receive the new current route after every
// transition. Delivery is synchronous, before the transition returns.
func (n *Navigator) Subscribe(fn func(Route)) (unsubscribe func()) {
	id := n.nextID
	n.nextID++
	n.subscribers[id] = fn

	return func() {
		delete(n.subscribers, id)
	}
}

// Render produces the view for the current route. If the current route
// cannot be resolved it falls back to the not-found producer, then to the
// start route.
func (n *Navigator) Render() view.Node {
	entry := n.stack.Peek()

	fn, err := n.table.Resolve(entry.Route)
	if err != nil {
		n.logger.Error("current route has no producer", "route", string(entry.Route), "error", err)
		fn = n.table.notFound
		if fn == nil {
			fn, err = n.table.Resolve(n.table.Start())
			if err != nil {
				return nil
			}
		}
	}

	ctx := &Context{nav: n, route: entry.Route, resume: entry.Resume}
	defer ctx.expire()
	return fn(ctx)
}

func (n *Navigator) reject(route Route) error {
	err := &RouteNotFoundError{Route: route}
	n.logger.Warn("navigation rejected", "route", string(route), "current", string(n.Current()))
	if n.hooks.OnRejected != nil {
		n.hooks.OnRejected(route, err)
	}
	return err
}

func (n *Navigator) publish(t Transition) {
	n.logger.Debug("navigation", "kind", string(t.Kind), "from", string(t.From), "to", string(t.To), "depth", t.Depth)
	if n.hooks.OnTransition != nil {
		n.hooks.OnTransition(t)
	}

	ids := make([]uint64, 0, len(n.subscribers))
	for id := range n.subscribers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if fn, ok := n.subscribers[id]; ok {
			fn(t.To)
		}
	}
}
