package screens

import (
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/constants"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// bottomBar renders one entry per top-level route. The entry for current is
// selected and carries no action, so pressing it dispatches nothing.
func (d *Deps) bottomBar(current router.Route) view.Node {
	items := make([]view.Node, 0, len(TopLevel))
	for _, tab := range TopLevel {
		selected := tab.Route == current

		fg := d.Theme.TextMuted
		if selected {
			fg = d.Theme.Text
		}

		var action view.Action
		if !selected {
			action = router.Navigate{To: tab.Route}
		}

		items = append(items, view.Button{
			Action:   action,
			Selected: selected,
			Weight:   1,
			Padding:  view.SymmetricPadding(0, 8),
			Child: view.Column{
				Align:   view.AlignCenter,
				Spacing: 4,
				Children: []view.Node{
					view.Icon{Name: tab.Icon, Size: constants.TabIconSize, Color: fg},
					view.Text{Text: d.Locale.T(tab.Message), Style: view.TextSmall, Color: fg, Bold: selected},
				},
			},
		})
	}

	return view.Box{
		Height:     constants.BottomBarHeight,
		Background: d.Theme.NavigationBar,
		Children:   []view.Node{view.Row{Children: items, Align: view.AlignCenter}},
	}
}

// withBottomBar places content above the bottom bar.
func (d *Deps) withBottomBar(current router.Route, content view.Node) view.Node {
	return view.Column{
		Children: []view.Node{
			view.Box{Weight: 1, Children: []view.Node{content}},
			d.bottomBar(current),
		},
	}
}
