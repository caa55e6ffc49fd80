// Package icons rasterises the shell's embedded SVG icon set.
package icons

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed svg/*.svg
var svgFS embed.FS

// Icon names used by the screens.
const (
	Home           = "home"
	Search         = "search"
	Library        = "library"
	FavoriteBorder = "favorite_border"
	Download       = "file_download"
	Share          = "share"
	MoreHoriz      = "more_horiz"
	PlayArrow      = "play_arrow"
	BrokenImage    = "broken_image"
)

// ErrUnknownIcon is returned for names without an embedded SVG.
var ErrUnknownIcon = errors.New("unknown icon")

type key struct {
	name  string
	size  int
	color color.RGBA
}

// Set renders icons and caches each (name, size, colour) combination.
// It is safe for concurrent use.
type Set struct {
	mu    sync.Mutex
	cache map[key]*image.RGBA
}

// NewSet creates an empty icon set.
func NewSet() *Set {
	return &Set{cache: make(map[key]*image.RGBA)}
}

// Render returns the icon rasterised to size x size pixels in c.
func (s *Set) Render(name string, size int, c color.RGBA) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("icons: invalid size %d for %q", size, name)
	}

	k := key{name: name, size: size, color: c}
	s.mu.Lock()
	if img, ok := s.cache[k]; ok {
		s.mu.Unlock()
		return img, nil
	}
	s.mu.Unlock()

	img, err := rasterize(name, size, c)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[k] = img
	s.mu.Unlock()
	return img, nil
}

// Len returns the number of cached renders.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// Names returns the embedded icon names in lexical order.
func Names() []string {
	entries, err := svgFS.ReadDir("svg")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".svg"))
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is an embedded icon.
func Has(name string) bool {
	_, err := svgFS.Open(path.Join("svg", name+".svg"))
	return err == nil
}

func rasterize(name string, size int, c color.RGBA) (*image.RGBA, error) {
	data, err := svgFS.ReadFile(path.Join("svg", name+".svg"))
	if err != nil {
		return nil, fmt.Errorf("icons: %w: %q", ErrUnknownIcon, name)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("icons: parse %q: %w", name, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	// The SVGs are drawn white; the coverage becomes the mask for c.
	mask := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, mask, mask.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)

	out := image.NewRGBA(mask.Bounds())
	draw.DrawMask(out, out.Bounds(), image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
	return out, nil
}
