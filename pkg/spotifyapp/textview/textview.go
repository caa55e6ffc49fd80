// Package textview renders a resolved view tree as styled terminal text.
// It backs the headless render command and makes screens easy to inspect
// in tests.
package textview

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/theme"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// Renderer turns nodes into text. Colours are dropped when w is not a
// colour terminal.
type Renderer struct {
	lg    *lipgloss.Renderer
	theme theme.Theme

	text     lipgloss.Style
	muted    lipgloss.Style
	headline lipgloss.Style
	title    lipgloss.Style
	icon     lipgloss.Style
	image    lipgloss.Style
	button   lipgloss.Style
	selected lipgloss.Style
	disabled lipgloss.Style
	field    lipgloss.Style
	list     lipgloss.Style
}

// New creates a Renderer writing for w in the colours of th.
func New(w io.Writer, th theme.Theme) *Renderer {
	lg := lipgloss.NewRenderer(w)
	r := &Renderer{lg: lg, theme: th}

	r.text = lg.NewStyle().Foreground(hex(th.Text))
	r.muted = lg.NewStyle().Foreground(hex(th.TextMuted))
	r.headline = r.text.Bold(true)
	r.title = r.text.Bold(true).Underline(true)
	r.icon = lg.NewStyle().Foreground(hex(th.Primary))
	r.image = lg.NewStyle().Foreground(hex(th.TextMuted)).Italic(true)
	r.button = lg.NewStyle().Foreground(hex(th.Text))
	r.selected = lg.NewStyle().Foreground(hex(th.Primary)).Bold(true)
	r.disabled = lg.NewStyle().Faint(true)
	r.field = lg.NewStyle().Foreground(hex(th.Text)).Underline(true)
	r.list = lg.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(hex(th.Surface)).
		PaddingLeft(1)

	return r
}

// Render returns n as text. Components must already be resolved.
func (r *Renderer) Render(n view.Node) string {
	if n == nil {
		return ""
	}

	switch v := n.(type) {
	case view.Text:
		return r.renderText(v)

	case view.Icon:
		return r.icon.Render("[" + v.Name + "]")

	case view.Image:
		label := v.Description
		if label == "" {
			label = v.URL
		}
		return r.image.Render(fmt.Sprintf("<image %s>", label))

	case view.Spacer:
		return ""

	case view.Box:
		return r.stack(v.Children)

	case view.Column:
		return r.stack(v.Children)

	case view.List:
		return r.list.Render(r.stack(v.Children))

	case view.Row:
		parts := make([]string, 0, len(v.Children)*2)
		for _, c := range v.Children {
			s := r.Render(c)
			if s == "" {
				continue
			}
			if len(parts) > 0 {
				parts = append(parts, " ")
			}
			parts = append(parts, s)
		}
		return lipgloss.JoinHorizontal(lipgloss.Center, parts...)

	case view.Button:
		inner := r.Render(v.Child)
		switch {
		case v.Disabled:
			return r.disabled.Render("( " + inner + " )")
		case v.Selected:
			return r.selected.Render("{ " + inner + " }")
		default:
			return r.button.Render("[ " + inner + " ]")
		}

	case view.TextField:
		value := ""
		if v.Value != nil {
			value = v.Value.Get()
		}
		if v.Masked {
			value = strings.Repeat("•", len([]rune(value)))
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			r.muted.Render(v.Label),
			r.field.Render(value+"_"),
		)

	case view.Component:
		return r.muted.Render("<" + v.Key + ">")

	default:
		return ""
	}
}

func (r *Renderer) renderText(t view.Text) string {
	var style lipgloss.Style
	switch t.Style {
	case view.TextHeadline:
		style = r.headline
	case view.TextTitle:
		style = r.title
	case view.TextSmall, view.TextLabel:
		style = r.muted
	default:
		style = r.text
	}
	if t.Bold {
		style = style.Bold(true)
	}
	if t.Color != (color.RGBA{}) {
		style = style.Foreground(hex(t.Color))
	}
	return style.Render(t.Text)
}

func (r *Renderer) stack(children []view.Node) string {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		if s := r.Render(c); s != "" {
			parts = append(parts, s)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}
