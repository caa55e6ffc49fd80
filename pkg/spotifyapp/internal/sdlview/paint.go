package sdlview

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/icons"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/layout"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/theme"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

const (
	textCacheSize  = 256
	imageCacheSize = 64
	shapeCacheSize = 64
	focusOutline   = 2
	fieldPadding   = 8
)

// painter draws a laid out tree with one SDL renderer.
type painter struct {
	renderer *sdl.Renderer
	fonts    *fonts
	theme    theme.Theme
	icons    *icons.Set
	logger   *slog.Logger

	text   *TextureCache
	images *TextureCache
	shapes *TextureCache

	editing *view.Cell[string]
}

func newPainter(r *sdl.Renderer, f *fonts, th theme.Theme, set *icons.Set, logger *slog.Logger) *painter {
	return &painter{
		renderer: r,
		fonts:    f,
		theme:    th,
		icons:    set,
		logger:   logger,
		text:     NewTextureCache(textCacheSize),
		images:   NewTextureCache(imageCacheSize),
		shapes:   NewTextureCache(shapeCacheSize),
	}
}

func (p *painter) destroy() {
	p.text.Destroy()
	p.images.Destroy()
	p.shapes.Destroy()
}

func (p *painter) frame(root *layout.Box, focused *layout.Box, editing *view.Cell[string]) {
	p.editing = editing

	bg := p.theme.Background
	p.renderer.SetClipRect(nil)
	p.renderer.SetDrawColor(bg.R, bg.G, bg.B, 255)
	p.renderer.Clear()

	p.paint(root)

	p.renderer.SetClipRect(nil)
	if focused != nil {
		p.outline(focused.Rect, p.theme.Primary)
	}
}

func (p *painter) paint(b *layout.Box) {
	if b == nil || !b.Visible() {
		return
	}
	clip := sdlRect(b.Clip)
	p.renderer.SetClipRect(&clip)

	switch v := b.Node.(type) {
	case view.Text:
		c := v.Color
		if c == (color.RGBA{}) {
			c = p.theme.Text
		}
		p.drawText(v.Text, v.Style, v.Bold, c, b.Rect, v.MaxLines > 0 || v.Width > 0 || b.Rect.Dy() > p.lineHeight(v.Style))

	case view.Icon:
		p.drawIcon(v, b.Rect)

	case view.Image:
		p.drawImage(v, b.Rect)

	case view.Box:
		switch {
		case v.Gradient:
			p.drawShape("gradient", b.Rect, 0, v.Background)
		case v.Background.A > 0:
			p.fill(b.Rect, v.Radius, v.Background)
		}
		if v.Border.A > 0 {
			p.outline(b.Rect, v.Border)
		}

	case view.Button:
		if v.Background.A > 0 {
			p.fill(b.Rect, v.Radius, v.Background)
		}
		if v.Border.A > 0 {
			p.outline(b.Rect, v.Border)
		}

	case view.TextField:
		p.drawField(v, b.Rect)
	}

	for _, c := range b.Children {
		p.paint(c)
	}
}

func (p *painter) lineHeight(style view.TextStyle) int {
	_, h := p.fonts.MeasureText("Ag", style, false)
	return h
}

func (p *painter) drawText(text string, style view.TextStyle, bold bool, c color.RGBA, r image.Rectangle, wrap bool) {
	if text == "" || r.Dx() <= 0 {
		return
	}

	wrapWidth := 0
	if wrap {
		wrapWidth = r.Dx()
	}
	key := fmt.Sprintf("%d|%t|%08x|%d|%s", style, bold, rgbaKey(c), wrapWidth, text)

	tex, ok := p.text.Get(key)
	if !ok {
		face := p.fonts.face(style, bold)
		fg := sdl.Color{R: c.R, G: c.G, B: c.B, A: c.A}

		var surface *sdl.Surface
		var err error
		if wrapWidth > 0 {
			surface, err = face.RenderUTF8BlendedWrapped(text, fg, wrapWidth)
		} else {
			surface, err = face.RenderUTF8Blended(text, fg)
		}
		if err != nil {
			p.logger.Debug("text render failed", "text", text, "error", err)
			return
		}
		tex, err = p.renderer.CreateTextureFromSurface(surface)
		surface.Free()
		if err != nil {
			return
		}
		p.text.Set(key, tex)
	}

	_, _, w, h, err := tex.Query()
	if err != nil {
		return
	}
	dst := sdl.Rect{X: int32(r.Min.X), Y: int32(r.Min.Y), W: w, H: h}
	if h < int32(r.Dy()) {
		dst.Y += (int32(r.Dy()) - h) / 2
	}
	p.renderer.Copy(tex, nil, &dst)
}

func (p *painter) drawIcon(icon view.Icon, r image.Rectangle) {
	c := icon.Color
	if c == (color.RGBA{}) {
		c = p.theme.Text
	}
	key := fmt.Sprintf("icon|%s|%d|%08x", icon.Name, icon.Size, rgbaKey(c))

	tex, ok := p.shapes.Get(key)
	if !ok {
		img, err := p.icons.Render(icon.Name, icon.Size, c)
		if err != nil {
			p.logger.Debug("icon render failed", "icon", icon.Name, "error", err)
			return
		}
		if tex, ok = p.upload(img); !ok {
			return
		}
		p.shapes.Set(key, tex)
	}
	p.copyCentered(tex, icon.Size, icon.Size, r)
}

func (p *painter) drawImage(img view.Image, r image.Rectangle) {
	if img.Source == nil || r.Empty() {
		return
	}
	key := fmt.Sprintf("%s|%p|%dx%d|%d", img.URL, img.Source, r.Dx(), r.Dy(), img.Radius)

	tex, ok := p.images.Get(key)
	if !ok {
		if tex, ok = p.upload(cover(img.Source, r.Dx(), r.Dy(), img.Radius)); !ok {
			return
		}
		p.images.Set(key, tex)
	}
	dst := sdlRect(r)
	p.renderer.Copy(tex, nil, &dst)
}

func (p *painter) drawField(f view.TextField, r image.Rectangle) {
	labelH := p.lineHeight(view.TextSmall)
	label := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+labelH)
	p.drawText(f.Label, view.TextSmall, false, p.theme.TextMuted, label, false)

	box := image.Rect(r.Min.X, label.Max.Y+4, r.Max.X, r.Max.Y)
	p.fill(box, 4, p.theme.Surface)

	editing := f.Value != nil && f.Value == p.editing
	border := p.theme.TextMuted
	if editing {
		border = p.theme.Primary
	}
	p.outline(box, border)

	value := ""
	if f.Value != nil {
		value = f.Value.Get()
	}
	if f.Masked {
		value = strings.Repeat("•", len([]rune(value)))
	}
	inner := box.Inset(fieldPadding)
	p.drawText(value, view.TextBody, false, p.theme.Text, inner, false)

	if editing {
		w, h := p.fonts.MeasureText(value, view.TextBody, false)
		x := int32(inner.Min.X + min(w, inner.Dx()))
		y := int32(inner.Min.Y + (inner.Dy()-h)/2)
		p.renderer.SetDrawColor(p.theme.Text.R, p.theme.Text.G, p.theme.Text.B, 255)
		p.renderer.FillRect(&sdl.Rect{X: x, Y: y, W: 2, H: int32(h)})
	}
}

func (p *painter) fill(r image.Rectangle, radius int, c color.RGBA) {
	if radius > 0 {
		p.drawShape("round", r, radius, c)
		return
	}
	p.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	p.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	rect := sdlRect(r)
	p.renderer.FillRect(&rect)
}

func (p *painter) outline(r image.Rectangle, c color.RGBA) {
	p.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	p.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	for i := 0; i < focusOutline; i++ {
		rect := sdlRect(r.Inset(i))
		p.renderer.DrawRect(&rect)
	}
}

// drawShape paints a cached rounded rectangle or gradient.
func (p *painter) drawShape(kind string, r image.Rectangle, radius int, c color.RGBA) {
	if r.Empty() {
		return
	}
	key := fmt.Sprintf("%s|%dx%d|%d|%08x", kind, r.Dx(), r.Dy(), radius, rgbaKey(c))

	tex, ok := p.shapes.Get(key)
	if !ok {
		var img image.Image
		if kind == "gradient" {
			img = gradient(r.Dx(), r.Dy(), c)
		} else {
			img = roundedRect(r.Dx(), r.Dy(), radius, c)
		}
		if tex, ok = p.upload(img); !ok {
			return
		}
		p.shapes.Set(key, tex)
	}
	dst := sdlRect(r)
	p.renderer.Copy(tex, nil, &dst)
}

func (p *painter) copyCentered(tex *sdl.Texture, w, h int, r image.Rectangle) {
	dst := sdl.Rect{
		X: int32(r.Min.X + (r.Dx()-w)/2),
		Y: int32(r.Min.Y + (r.Dy()-h)/2),
		W: int32(w),
		H: int32(h),
	}
	p.renderer.Copy(tex, nil, &dst)
}

// upload copies img into a new blended texture.
func (p *painter) upload(src image.Image) (*sdl.Texture, bool) {
	if src.Bounds().Empty() {
		return nil, false
	}
	img := toNRGBA(src)
	b := img.Bounds()

	surface, err := sdl.CreateRGBSurfaceWithFormat(0, int32(b.Dx()), int32(b.Dy()), 32, uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		p.logger.Warn("surface allocation failed", "error", err)
		return nil, false
	}
	defer surface.Free()

	if err := surface.Lock(); err != nil {
		return nil, false
	}
	pixels := surface.Pixels()
	pitch := int(surface.Pitch)
	row := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		copy(pixels[y*pitch:y*pitch+row], img.Pix[y*img.Stride:y*img.Stride+row])
	}
	surface.Unlock()

	tex, err := p.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		p.logger.Warn("texture upload failed", "error", err)
		return nil, false
	}
	tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	return tex, true
}

func sdlRect(r image.Rectangle) sdl.Rect {
	return sdl.Rect{X: int32(r.Min.X), Y: int32(r.Min.Y), W: int32(r.Dx()), H: int32(r.Dy())}
}

func rgbaKey(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}
