// Package app wires the navigator, the screens, the resource loader and the
// view tree onto a single UI loop.
package app

import (
	"errors"
	"io"
	"log/slog"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/loader"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/screens"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/ui"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// Hooks receive shell events, typically to feed logs and metrics.
type Hooks struct {
	OnAction func(action view.Action)
	OnError  func(action view.Action, err error)
}

// Options configures a Shell.
type Options struct {
	Loop   *ui.Loop       // Required
	Table  *router.Table  // Required; frozen by New
	Loader *loader.Loader // Required for RetryImage
	Auth   screens.Authenticator
	Start  router.Route // Deep link; empty or unknown uses the table's start route
	Logger *slog.Logger

	NavigatorHooks router.Hooks
	Hooks          Hooks

	// ResumeSource is called before every forward navigation and its value
	// stored on the entry being left.
	ResumeSource func(current router.Route) any
}

// Shell owns the navigation state and the mounted view tree. Everything
// except Dispatch must run on the loop.
type Shell struct {
	loop   *ui.Loop
	nav    *router.Navigator
	tree   *view.Tree
	loader *loader.Loader
	auth   screens.Authenticator
	logger *slog.Logger
	hooks  Hooks
	resume func(router.Route) any

	revision    *view.Cell[uint64]
	unsubscribe func()
}

// New builds the navigator and mounts the root view. Call it before the loop
// starts running or from the loop itself.
func New(opts Options) (*Shell, error) {
	if opts.Loop == nil {
		return nil, errors.New("app: nil Loop")
	}
	if opts.Table == nil {
		return nil, errors.New("app: nil route Table")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	auth := opts.Auth
	if auth == nil {
		auth = screens.PresenceAuthenticator{}
	}

	nav, err := router.NewNavigator(opts.Table,
		router.WithLogger(logger),
		router.WithHooks(opts.NavigatorHooks),
		router.WithStart(opts.Start),
	)
	if err != nil {
		return nil, err
	}

	s := &Shell{
		loop:     opts.Loop,
		nav:      nav,
		loader:   opts.Loader,
		auth:     auth,
		logger:   logger,
		hooks:    opts.Hooks,
		resume:   opts.ResumeSource,
		revision: view.NewCell[uint64](0),
	}

	s.unsubscribe = nav.Subscribe(func(route router.Route) {
		s.logger.Info("route changed", "route", string(route), "depth", nav.Depth())
		s.revision.Update(func(v uint64) uint64 { return v + 1 })
	})

	s.tree = view.Mount(view.Component{
		Key: "shell",
		Render: func(sc *view.Scope) view.Node {
			view.Watch(sc, s.revision)
			return s.nav.Render()
		},
	}, s.loop)

	return s, nil
}

// Dispatch queues action for reduction on the loop. It is safe for
// concurrent use and returns false once the loop is closed.
func (s *Shell) Dispatch(action view.Action) bool {
	return s.loop.Post(func() {
		s.handle(action)
	})
}

func (s *Shell) handle(action view.Action) {
	if s.hooks.OnAction != nil {
		s.hooks.OnAction(action)
	}

	if retry, ok := action.(screens.RetryImage); ok {
		if s.loader == nil || !s.loader.Retry(retry.URL) {
			s.logger.Debug("image retry ignored", "url", retry.URL)
		}
		return
	}
	if noop, ok := action.(screens.NoOp); ok {
		s.logger.Debug("control has no action", "control", noop.Control)
		return
	}

	ev, err := screens.Reduce(s.auth, action)
	if err != nil {
		s.fail(action, err)
		return
	}
	if ev == nil {
		return
	}

	if s.resume != nil && s.leaves(ev) {
		s.nav.SetResume(s.resume(s.nav.Current()))
	}

	if err := s.nav.Apply(ev); err != nil {
		s.fail(action, err)
	}
}

// leaves reports whether ev would move forward off the current entry, so
// rejected and no-op navigations keep its resume state.
func (s *Shell) leaves(ev router.Event) bool {
	var to router.Route
	switch e := ev.(type) {
	case router.Navigate:
		to = e.To
	case router.Replace:
		to = e.To
	default:
		return false
	}
	return to != s.nav.Current() && s.nav.Table().Has(to)
}

func (s *Shell) fail(action view.Action, err error) {
	if screens.IsValidationError(err) {
		s.logger.Info("login rejected", "error", err)
	} else {
		s.logger.Warn("action failed", "action", action, "error", err)
	}
	if s.hooks.OnError != nil {
		s.hooks.OnError(action, err)
	}
}

// View returns the resolved view tree of the current screen.
func (s *Shell) View() view.Node {
	return s.tree.Resolve()
}

// Current returns the current route.
func (s *Shell) Current() router.Route {
	return s.nav.Current()
}

// BackStack returns the routes on the back-stack, bottom first.
func (s *Shell) BackStack() []router.Route {
	return s.nav.BackStack()
}

// Routes returns the registered routes in registration order.
func (s *Shell) Routes() []router.Route {
	return s.nav.Table().Routes()
}

// Navigator returns the shell's navigator.
func (s *Shell) Navigator() *router.Navigator {
	return s.nav
}

// Flush re-renders dirty components immediately instead of waiting for the
// scheduled flush.
func (s *Shell) Flush() int {
	return s.tree.Flush()
}

// OnChange registers fn to run after every flush that changed the view.
func (s *Shell) OnChange(fn func()) (unsubscribe func()) {
	return s.tree.OnFlush(fn)
}

// Close unmounts the view tree, releasing every image handle.
func (s *Shell) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.tree.Unmount()
}
