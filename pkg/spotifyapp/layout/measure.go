package layout

import (
	"unicode/utf8"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// MonospaceMeasurer sizes text as if every rune had the same advance. It is
// used by headless rendering and in tests.
type MonospaceMeasurer struct {
	Advance int // pixels per rune, 8 when zero
}

func (m MonospaceMeasurer) MeasureText(text string, style view.TextStyle, _ bool) (int, int) {
	advance := m.Advance
	if advance == 0 {
		advance = 8
	}
	return utf8.RuneCountInString(text) * advance, LineHeight(style)
}

// LineHeight is the nominal line height of a text style in pixels.
func LineHeight(style view.TextStyle) int {
	switch style {
	case view.TextSmall, view.TextLabel:
		return 12
	case view.TextHeadline:
		return 24
	case view.TextTitle:
		return 28
	default:
		return 16
	}
}
