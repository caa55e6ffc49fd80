package screens

import (
	"io"
	"log/slog"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/loader"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/locale"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/theme"
)

// Deps are the collaborators every screen renders with.
type Deps struct {
	Loader  *loader.Loader // Required
	Theme   theme.Theme
	Locale  *locale.Localizer // Defaults to English
	Catalog Catalog
	Auth    Authenticator // Defaults to PresenceAuthenticator
	Logger  *slog.Logger  // Defaults to a discard logger
}

func (d *Deps) withDefaults() *Deps {
	out := *d
	if out.Locale == nil {
		out.Locale = locale.MustNew("")
	}
	if out.Auth == nil {
		out.Auth = PresenceAuthenticator{}
	}
	if out.Logger == nil {
		out.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &out
}

// Graph registers every screen in a new route table starting at Start.
// It panics if d.Loader is nil.
func Graph(d Deps) *router.Table {
	if d.Loader == nil {
		panic("screens: nil Loader")
	}
	s := d.withDefaults()

	return router.NewTable(Start).
		Register(Login, s.login).
		Register(Register, s.register).
		Register(Home, s.home).
		Register(Search, s.search).
		Register(Library, s.library).
		NotFound(s.notFound)
}
