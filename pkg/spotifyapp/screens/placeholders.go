package screens

import (
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/locale"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

func (d *Deps) placeholder(route router.Route, message string) view.Node {
	return d.withBottomBar(route, view.Column{
		Align:   view.AlignCenter,
		Justify: view.AlignCenter,
		Children: []view.Node{
			view.Text{Text: d.Locale.T(message), Style: view.TextHeadline},
		},
	})
}

func (d *Deps) search(ctx *router.Context) view.Node {
	return d.placeholder(ctx.Route(), locale.SearchPlaceholder)
}

func (d *Deps) library(ctx *router.Context) view.Node {
	return d.placeholder(ctx.Route(), locale.LibraryPlaceholder)
}

func (d *Deps) register(ctx *router.Context) view.Node {
	var back view.Action = router.Back{}
	if !ctx.CanGoBack() {
		back = router.Replace{To: Login}
	}

	return view.Column{
		Padding: view.UniformPadding(24),
		Spacing: 16,
		Justify: view.AlignCenter,
		Children: []view.Node{
			view.Text{Text: d.Locale.T(locale.RegisterTitle), Style: view.TextTitle, Bold: true},
			view.Text{Text: d.Locale.T(locale.RegisterBody), Color: d.Theme.TextMuted},
			view.Button{
				Action: back,
				Child:  view.Text{Text: d.Locale.T(locale.RegisterBack), Color: d.Theme.Primary, Bold: true},
			},
		},
	}
}

func (d *Deps) notFound(ctx *router.Context) view.Node {
	d.Logger.Warn("rendering not-found screen", "route", string(ctx.Route()))

	return view.Column{
		Align:   view.AlignCenter,
		Justify: view.AlignCenter,
		Spacing: 16,
		Children: []view.Node{
			view.Text{Text: d.Locale.Tf(locale.NotFound, map[string]any{"Route": string(ctx.Route())})},
			view.Button{
				Action: router.Replace{To: Start},
				Child:  view.Text{Text: d.Locale.T(locale.TabHome), Color: d.Theme.Primary, Bold: true},
			},
		},
	}
}
