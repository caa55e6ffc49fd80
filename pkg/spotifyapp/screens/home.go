package screens

import (
	"strconv"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/constants"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/icons"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/locale"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// HomeListKey identifies the scroll position of the home track list.
const HomeListKey = "home-tracks"

// ListResume is the resume state frontends store for a screen: scroll
// offsets by list key.
type ListResume map[string]int

// Offset returns the stored offset for key, or 0.
func (r ListResume) Offset(key string) int {
	return r[key]
}

type homeProps struct {
	Route  router.Route
	Offset int
}

type rowProps struct {
	Track Track
	Index int
}

func (d *Deps) home(ctx *router.Context) view.Node {
	props := homeProps{Route: ctx.Route()}
	if r, ok := ctx.Resume().(ListResume); ok {
		props.Offset = r.Offset(HomeListKey)
	}

	return view.Component{
		Key:   string(Home),
		Props: props,
		Render: func(s *view.Scope) view.Node {
			p := s.Props().(homeProps)

			rows := make([]view.Node, 0, len(d.Catalog.Tracks)+3)
			rows = append(rows, d.hero(), d.controls())
			for i, t := range d.Catalog.Tracks {
				rows = append(rows, d.trackRow(t, i))
			}
			rows = append(rows, view.Spacer{Height: constants.NowPlayingReserve})

			layers := []view.Node{
				view.List{Key: HomeListKey, Offset: p.Offset, Children: rows},
			}
			if t, ok := d.Catalog.NowPlaying(); ok {
				layers = append(layers, view.Column{
					Justify:  view.AlignEnd,
					Padding:  view.UniformPadding(8),
					Children: []view.Node{d.nowPlaying(t)},
				})
			}

			return d.withBottomBar(p.Route, view.Box{Children: layers})
		},
	}
}

func (d *Deps) hero() view.Node {
	h := d.Catalog.Hero
	return view.Box{
		Height: constants.HeroHeight,
		Children: []view.Node{
			d.asyncImage("hero", imageProps{
				URL:         h.ImageURL,
				Height:      constants.HeroHeight,
				Description: h.Title,
				ShowError:   true,
			}),
			view.Box{Height: constants.HeroHeight, Gradient: true, Background: d.Theme.Background},
			view.Column{
				Justify: view.AlignEnd,
				Padding: view.UniformPadding(constants.ScreenPadding),
				Spacing: 4,
				Children: []view.Node{
					view.Text{Text: h.Title, Style: view.TextHeadline, Bold: true},
					view.Text{Text: h.Subtitle, Color: d.Theme.TextMuted},
					view.Text{Text: h.Meta, Style: view.TextSmall, Color: d.Theme.TextMuted},
				},
			},
		},
	}
}

func (d *Deps) controls() view.Node {
	action := func(control, icon string) view.Node {
		return view.Button{
			Action:  NoOp{Control: control},
			Padding: view.UniformPadding(6),
			Child:   view.Icon{Name: icon, Size: constants.ActionIconSize, Color: d.Theme.Text},
		}
	}

	return view.Row{
		Padding: view.SymmetricPadding(constants.ScreenPadding, 8),
		Align:   view.AlignCenter,
		Spacing: 8,
		Children: []view.Node{
			action("favorite", icons.FavoriteBorder),
			action("download", icons.Download),
			action("share", icons.Share),
			view.Spacer{Weight: 1},
			view.Button{
				Action:     NoOp{Control: "play"},
				Background: d.Theme.Primary,
				Radius:     24,
				Padding:    view.SymmetricPadding(20, 10),
				Child: view.Text{
					Text:  "▶ " + d.Locale.T(locale.Play),
					Bold:  true,
					Color: d.Theme.OnPrimary,
				},
			},
		},
	}
}

// trackRow is keyed by track ID so its cover handle survives list changes.
func (d *Deps) trackRow(t Track, index int) view.Component {
	return view.Component{
		Key:   "track:" + t.ID,
		Props: rowProps{Track: t, Index: index},
		Render: func(s *view.Scope) view.Node {
			p := s.Props().(rowProps)

			return view.Row{
				Padding: view.SymmetricPadding(constants.ScreenPadding, 6),
				Align:   view.AlignCenter,
				Spacing: 12,
				Children: []view.Node{
					view.Text{
						Text:  strconv.Itoa(p.Index + 1),
						Width: constants.TrackNumberWidth,
						Color: d.Theme.TextMuted,
					},
					d.asyncImage("cover", imageProps{
						URL:         p.Track.CoverURL,
						Width:       constants.TrackThumbSize,
						Height:      constants.TrackThumbSize,
						Radius:      constants.TrackThumbRadius,
						Description: p.Track.Title,
					}),
					view.Column{
						Weight:  1,
						Spacing: 2,
						Children: []view.Node{
							view.Text{Text: p.Track.Title, Bold: true, MaxLines: 1},
							view.Text{Text: p.Track.Artists, Style: view.TextSmall, Color: d.Theme.TextMuted, MaxLines: 1},
						},
					},
					view.Text{Text: p.Track.Duration, Style: view.TextSmall, Color: d.Theme.TextMuted},
					view.Button{
						Action: NoOp{Control: "more:" + p.Track.ID},
						Child:  view.Icon{Name: icons.MoreHoriz, Size: 20, Color: d.Theme.TextMuted},
					},
				},
			}
		},
	}
}

func (d *Deps) nowPlaying(t Track) view.Node {
	fg := d.Theme.NowPlayingForeground

	return view.Box{
		Height:     constants.NowPlayingHeight,
		Radius:     constants.NowPlayingRadius,
		Background: d.Theme.NowPlayingBackground,
		Padding:    view.UniformPadding(8),
		Children: []view.Node{view.Row{
			Align:   view.AlignCenter,
			Spacing: 12,
			Children: []view.Node{
				d.asyncImage("now-playing", imageProps{
					URL:         t.CoverURL,
					Width:       constants.NowPlayingThumbSize,
					Height:      constants.NowPlayingThumbSize,
					Radius:      10,
					Description: t.Title,
				}),
				view.Column{
					Weight: 1,
					Children: []view.Node{
						view.Text{Text: t.Title, Bold: true, MaxLines: 1},
						view.Text{Text: t.Artists, Style: view.TextSmall, Color: fg, MaxLines: 1},
					},
				},
				view.Box{
					Border:  fg,
					Radius:  6,
					Padding: view.SymmetricPadding(6, 2),
					Children: []view.Node{
						view.Text{Text: "CB", Style: view.TextLabel, Bold: true, Color: fg},
					},
				},
				view.Button{
					Action:  NoOp{Control: "now-playing:play"},
					Padding: view.UniformPadding(6),
					Child:   view.Icon{Name: icons.PlayArrow, Size: constants.ActionIconSize, Color: d.Theme.Text},
				},
			},
		}},
	}
}
