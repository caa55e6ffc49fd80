package cli

import (
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/app"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/internal"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/loader"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/locale"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/metrics"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/screens"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/theme"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/ui"
)

// shellRuntime is a fully wired shell and everything it owns.
type shellRuntime struct {
	loop    *ui.Loop
	loader  *loader.Loader
	metrics *metrics.Metrics
	theme   theme.Theme
	shell   *app.Shell
}

// build wires the shell for start. resume may be nil.
func (e *env) build(start router.Route, resume func(router.Route) any) (*shellRuntime, error) {
	cfg := e.cfg
	rt := &shellRuntime{
		loop:    ui.NewLoop(ui.WithLogger(internal.GetInternalLogger())),
		metrics: metrics.New(),
		theme:   theme.Dark(cfg.Window.FontPath),
	}

	fetcher := e.fetcher
	if fetcher == nil {
		fetcher = loader.NewHTTPFetcher(cfg.Loader.FetchTimeout.Duration, cfg.Loader.MaxBytes)
	}
	rt.loader = loader.New(loader.Options{
		Fetcher:    fetcher,
		Poster:     rt.loop,
		MaxEntries: cfg.Loader.MaxEntries,
		Workers:    cfg.Loader.Workers,
		Logger:     e.logger.With("component", "loader"),
		Hooks:      rt.metrics.LoaderHooks(),
	})
	rt.metrics.RegisterLoader(rt.loader)

	loc, err := locale.New(cfg.Language, e.logger)
	if err != nil {
		rt.close()
		return nil, err
	}

	// One gate for both the login button and the reducer.
	var auth screens.Authenticator = screens.PresenceAuthenticator{}
	table := screens.Graph(screens.Deps{
		Loader:  rt.loader,
		Theme:   rt.theme,
		Locale:  loc,
		Catalog: screens.DemoCatalog(),
		Auth:    auth,
		Logger:  e.logger,
	})

	rt.shell, err = app.New(app.Options{
		Loop:           rt.loop,
		Table:          table,
		Loader:         rt.loader,
		Auth:           auth,
		Start:          start,
		Logger:         e.logger,
		NavigatorHooks: rt.metrics.NavigatorHooks(),
		Hooks:          rt.metrics.ShellHooks(),
		ResumeSource:   resume,
	})
	if err != nil {
		rt.close()
		return nil, err
	}
	return rt, nil
}

func (rt *shellRuntime) close() {
	if rt.shell != nil {
		rt.shell.Close()
	}
	rt.loader.Close()
	rt.loop.Close()
}
