package screens

import (
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/icons"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/loader"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/locale"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

type imageProps struct {
	URL         string
	Width       int
	Height      int
	Radius      int
	Description string
	ShowError   bool // show the error message, not just the placeholder colour
}

// useResource holds a loader handle for url while the instance is mounted
// and returns its current state.
func useResource(s *view.Scope, l *loader.Loader, url string) loader.State {
	state := view.UseCell(s, loader.State{Status: loader.StatusLoading})

	s.Effect(url, func() func() {
		h := l.Request(url)
		state.Set(h.State())
		unsubscribe := h.Subscribe(func(st loader.State) {
			state.Set(st)
		})
		return func() {
			unsubscribe()
			h.Release()
		}
	})

	return view.Watch(s, state)
}

// asyncImage renders a remote image with loading and error placeholders.
// Tapping the error placeholder retries the fetch.
func (d *Deps) asyncImage(key string, p imageProps) view.Component {
	return view.Component{
		Key:   key,
		Props: p,
		Render: func(s *view.Scope) view.Node {
			p := s.Props().(imageProps)
			st := useResource(s, d.Loader, p.URL)

			switch st.Status {
			case loader.StatusSuccess:
				return view.Image{
					URL:         p.URL,
					Source:      st.Image.Decoded,
					Width:       p.Width,
					Height:      p.Height,
					Radius:      p.Radius,
					Description: p.Description,
				}
			case loader.StatusError:
				box := view.Box{
					Width:      p.Width,
					Height:     p.Height,
					Radius:     p.Radius,
					Background: d.Theme.ErrorPlaceholder,
				}
				if p.ShowError {
					box.Children = []view.Node{view.Column{
						Align:   view.AlignCenter,
						Justify: view.AlignCenter,
						Spacing: 8,
						Children: []view.Node{
							view.Icon{Name: icons.BrokenImage, Size: 32, Color: d.Theme.Text},
							view.Text{Text: d.Locale.T(locale.ImageError), Style: view.TextSmall},
						},
					}}
				}
				return view.Button{Child: box, Action: RetryImage{URL: p.URL}}
			default:
				return view.Box{
					Width:      p.Width,
					Height:     p.Height,
					Radius:     p.Radius,
					Background: d.Theme.LoadingPlaceholder,
				}
			}
		},
	}
}
