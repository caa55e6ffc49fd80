package router

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrRouteNotFound matches every *RouteNotFoundError via errors.Is.
	ErrRouteNotFound = errors.New("route not found")

	// ErrContextExpired is returned by Context methods called after the
	// render pass that received the Context has ended.
	ErrContextExpired = errors.New("navigation context expired")

	// ErrUnknownEvent is returned by Apply for event types it does not handle.
	ErrUnknownEvent = errors.New("unknown navigation event")
)

// RouteNotFoundError reports a navigation target that is not registered.
type RouteNotFoundError struct {
	Route Route
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("router: route %q not registered", string(e.Route))
}

// Is makes every RouteNotFoundError match ErrRouteNotFound.
func (e *RouteNotFoundError) Is(target error) bool {
	return target == ErrRouteNotFound
}

// IsRouteNotFound checks if an error reports an unregistered route.
func IsRouteNotFound(err error) bool {
	return errors.Is(err, ErrRouteNotFound)
}
