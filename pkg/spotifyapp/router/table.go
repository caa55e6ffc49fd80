package router

import (
	"fmt"
	"sort"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// Route names a navigable destination.
type Route string

// String returns the route identifier.
func (r Route) String() string {
	return string(r)
}

// Producer builds the view for a route. The Context is only valid for the
// duration of the call.
type Producer func(ctx *Context) view.Node

// Table maps routes to producers. It is filled once at startup and frozen
// before a Navigator uses it.
type Table struct {
	producers map[Route]Producer
	order     []Route
	start     Route
	notFound  Producer
	frozen    bool
}

// NewTable creates a table whose navigation starts at start.
func NewTable(start Route) *Table {
	return &Table{
		producers: make(map[Route]Producer),
		start:     start,
	}
}

// Register adds a producer for route.
// Like http.ServeMux it panics on an empty route, a nil producer, a duplicate
// registration or a registration after Freeze, since all of those are
// startup programming errors.
func (t *Table) Register(route Route, fn Producer) *Table {
	switch {
	case t.frozen:
		panic(fmt.Sprintf("router: register %q after freeze", string(route)))
	case route == "":
		panic("router: empty route")
	case fn == nil:
		panic(fmt.Sprintf("router: nil producer for %q", string(route)))
	}
	if _, exists := t.producers[route]; exists {
		panic(fmt.Sprintf("router: multiple registrations for %q", string(route)))
	}

	t.producers[route] = fn
	t.order = append(t.order, route)
	return t
}

// NotFound sets the producer rendered when the current route cannot be
// resolved.
func (t *Table) NotFound(fn Producer) *Table {
	if t.frozen {
		panic("router: set not-found producer after freeze")
	}
	t.notFound = fn
	return t
}

// Freeze ends registration. It fails if the start route is not registered.
func (t *Table) Freeze() error {
	if _, ok := t.producers[t.start]; !ok {
		return fmt.Errorf("router: start route: %w", &RouteNotFoundError{Route: t.start})
	}
	t.frozen = true
	return nil
}

// Frozen reports whether Freeze succeeded.
func (t *Table) Frozen() bool {
	return t.frozen
}

// Resolve returns the producer for route or a *RouteNotFoundError.
func (t *Table) Resolve(route Route) (Producer, error) {
	fn, ok := t.producers[route]
	if !ok {
		return nil, &RouteNotFoundError{Route: route}
	}
	return fn, nil
}

// Has reports whether route is registered.
func (t *Table) Has(route Route) bool {
	_, ok := t.producers[route]
	return ok
}

// Start returns the start route.
func (t *Table) Start() Route {
	return t.start
}

// Routes returns the registered routes in registration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.order))
	copy(out, t.order)
	return out
}

// SortedRoutes returns the registered routes in lexical order.
func (t *Table) SortedRoutes() []Route {
	out := t.Routes()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
