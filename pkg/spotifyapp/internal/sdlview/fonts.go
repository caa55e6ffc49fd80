package sdlview

import (
	"fmt"

	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

// fontSizes are point sizes per text style.
var fontSizes = map[view.TextStyle]int{
	view.TextBody:     16,
	view.TextSmall:    12,
	view.TextLabel:    12,
	view.TextHeadline: 24,
	view.TextTitle:    28,
}

type fontKey struct {
	style view.TextStyle
	bold  bool
}

// fonts holds one regular and one bold face per text style. It implements
// layout.Measurer.
type fonts struct {
	faces map[fontKey]*ttf.Font
}

func openFonts(path string) (*fonts, error) {
	if path == "" {
		return nil, fmt.Errorf("sdlview: no font configured (window.font_path)")
	}

	f := &fonts{faces: make(map[fontKey]*ttf.Font)}
	for style, size := range fontSizes {
		for _, bold := range []bool{false, true} {
			face, err := ttf.OpenFont(path, size)
			if err != nil {
				f.close()
				return nil, fmt.Errorf("sdlview: open font %s: %w", path, err)
			}
			if bold {
				face.SetStyle(ttf.STYLE_BOLD)
			}
			f.faces[fontKey{style, bold}] = face
		}
	}
	return f, nil
}

func (f *fonts) face(style view.TextStyle, bold bool) *ttf.Font {
	if face, ok := f.faces[fontKey{style, bold}]; ok {
		return face
	}
	return f.faces[fontKey{view.TextBody, bold}]
}

func (f *fonts) MeasureText(text string, style view.TextStyle, bold bool) (int, int) {
	face := f.face(style, bold)
	if text == "" {
		return 0, face.Height()
	}
	w, h, err := face.SizeUTF8(text)
	if err != nil {
		return 0, face.Height()
	}
	return w, h
}

func (f *fonts) close() {
	for k, face := range f.faces {
		face.Close()
		delete(f.faces, k)
	}
}
