package screens

import (
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/locale"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// login renders the credentials form. The fields live in cells owned by the
// screen instance, so leaving the route discards them.
func (d *Deps) login(*router.Context) view.Node {
	return view.Component{
		Key: string(Login),
		Render: func(s *view.Scope) view.Node {
			email := view.UseCell(s, "")
			password := view.UseCell(s, "")
			e, pw := view.Watch(s, email), view.Watch(s, password)

			gate := d.Auth.Authenticate(e, pw)

			return view.Column{
				Padding: view.UniformPadding(24),
				Spacing: 16,
				Justify: view.AlignCenter,
				Children: []view.Node{
					view.Text{Text: d.Locale.T(locale.LoginTitle), Style: view.TextTitle, Bold: true},
					view.TextField{Label: d.Locale.T(locale.LoginEmail), Value: email},
					view.TextField{Label: d.Locale.T(locale.LoginPassword), Value: password, Masked: true},
					view.Button{
						Action:     LoginSubmitted{Email: e, Password: pw},
						Disabled:   gate != nil,
						Background: d.Theme.Primary,
						Radius:     24,
						Padding:    view.SymmetricPadding(16, 12),
						Child: view.Text{
							Text:  d.Locale.T(locale.LoginSubmit),
							Bold:  true,
							Color: d.Theme.OnPrimary,
						},
					},
					view.Button{
						Action: router.Navigate{To: Register},
						Child:  view.Text{Text: d.Locale.T(locale.LoginRegister), Style: view.TextSmall, Color: d.Theme.TextMuted},
					},
				},
			}
		},
	}
}
