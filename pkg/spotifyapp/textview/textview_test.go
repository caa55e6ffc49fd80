package textview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/theme"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

func newRenderer() *Renderer {
	return New(&bytes.Buffer{}, theme.Dark(""))
}

func TestRenderLeaves(t *testing.T) {
	r := newRenderer()

	tests := []struct {
		name string
		node view.Node
		want string
	}{
		{"text", view.Text{Text: "Cardigan"}, "Cardigan"},
		{"icon", view.Icon{Name: "home", Size: 24}, "[home]"},
		{"image with description", view.Image{URL: "https://x/a.png", Description: "Album art"}, "<image Album art>"},
		{"image without description", view.Image{URL: "https://x/a.png"}, "<image https://x/a.png>"},
		{"spacer", view.Spacer{Height: 12}, ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Render(tt.node))
		})
	}
}

func TestRenderButtons(t *testing.T) {
	r := newRenderer()
	label := view.Text{Text: "Log in"}

	assert.Equal(t, "[ Log in ]", r.Render(view.Button{Child: label, Action: "go"}))
	assert.Equal(t, "( Log in )", r.Render(view.Button{Child: label, Disabled: true}))
	assert.Equal(t, "{ Log in }", r.Render(view.Button{Child: label, Selected: true}))
}

func TestRenderContainers(t *testing.T) {
	r := newRenderer()

	out := r.Render(view.Column{Children: []view.Node{
		view.Text{Text: "Still With You", Style: view.TextHeadline},
		view.Spacer{Height: 8},
		view.Row{Children: []view.Node{
			view.Text{Text: "1"},
			view.Text{Text: "Clocks"},
		}},
	}})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Still With You")
	assert.Contains(t, lines[1], "1 Clocks")
}

func TestRenderList(t *testing.T) {
	out := newRenderer().Render(view.List{Key: "tracks", Children: []view.Node{
		view.Text{Text: "Demons"},
		view.Text{Text: "Clocks"},
	}})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "│ "), "list rows carry a left rule: %q", l)
	}
}

func TestRenderTextField(t *testing.T) {
	r := newRenderer()

	out := r.Render(view.TextField{Label: "Password", Value: view.NewCell("hunter2"), Masked: true})
	assert.Contains(t, out, "Password")
	assert.Contains(t, out, "•••••••_")
	assert.NotContains(t, out, "hunter2")

	out = r.Render(view.TextField{Label: "Email", Value: view.NewCell("a@b.c")})
	assert.Contains(t, out, "a@b.c_")
}
