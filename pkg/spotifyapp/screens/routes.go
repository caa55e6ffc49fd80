package screens

import (
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/icons"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/locale"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
)

const (
	Login    router.Route = "login"
	Register router.Route = "register"
	Home     router.Route = "home"
	Search   router.Route = "search"
	Library  router.Route = "library"
)

// Start is the route the navigator opens on.
const Start = Home

// Tab is one entry of the bottom navigation bar.
type Tab struct {
	Route   router.Route
	Icon    string
	Message string // locale message ID of the label
}

// TopLevel lists the bottom bar entries in display order.
var TopLevel = []Tab{
	{Route: Home, Icon: icons.Home, Message: locale.TabHome},
	{Route: Search, Icon: icons.Search, Message: locale.TabSearch},
	{Route: Library, Icon: icons.Library, Message: locale.TabLibrary},
}

// IsTopLevel reports whether route has a bottom bar entry.
func IsTopLevel(route router.Route) bool {
	for _, tab := range TopLevel {
		if tab.Route == route {
			return true
		}
	}
	return false
}
