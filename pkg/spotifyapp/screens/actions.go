package screens

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// ErrUnknownAction is returned by Reduce for action types it does not handle.
var ErrUnknownAction = errors.New("unknown action")

// LoginSubmitted is emitted by the login button.
type LoginSubmitted struct {
	Email    string
	Password string
}

// RetryImage asks the loader to fetch a failed image again.
type RetryImage struct {
	URL string
}

// NoOp is carried by controls that have no behaviour yet, such as play and
// share. Control names the control for logs.
type NoOp struct {
	Control string
}

// Reduce turns an action into the navigation event it requests. It returns
// a nil event for actions that do not navigate, and the Authenticator's
// error when a login is rejected. RetryImage is not a navigation and yields
// a nil event; the shell performs it against the loader.
func Reduce(auth Authenticator, action view.Action) (router.Event, error) {
	switch a := action.(type) {
	case nil:
		return nil, nil
	case router.Event:
		return a, nil
	case LoginSubmitted:
		if auth == nil {
			auth = PresenceAuthenticator{}
		}
		if err := auth.Authenticate(a.Email, a.Password); err != nil {
			return nil, err
		}
		return router.Navigate{To: Home}, nil
	case RetryImage, NoOp:
		return nil, nil
	default:
		return nil, fmt.Errorf("screens: %w: %T", ErrUnknownAction, action)
	}
}
