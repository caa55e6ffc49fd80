package sdlview

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Shapes are built as NRGBA because SDL blends straight, not premultiplied,
// alpha. Theme colours are straight alpha too.

// cover scales src to fill w x h, cropping the overflow around the centre,
// and rounds the corners by radius.
func cover(src image.Image, w, h, radius int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	if src == nil || w <= 0 || h <= 0 {
		return dst
	}

	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == 0 || sh == 0 {
		return dst
	}

	crop := sb
	if sw*h > sh*w {
		cw := sh * w / h
		crop.Min.X += (sw - cw) / 2
		crop.Max.X = crop.Min.X + cw
	} else {
		ch := sw * h / w
		crop.Min.Y += (sh - ch) / 2
		crop.Max.Y = crop.Min.Y + ch
	}

	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	roundCorners(dst, radius)
	return dst
}

// roundedRect returns a w x h rectangle of c with rounded corners.
func roundedRect(w, h, radius int, c color.RGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	px := color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, px)
		}
	}
	roundCorners(img, radius)
	return img
}

// gradient fades c from fully transparent at the top to its own alpha at
// the bottom.
func gradient(w, h int, c color.RGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		a := uint32(c.A) * uint32(y) / uint32(max(h-1, 1))
		px := color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a)}
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, px)
		}
	}
	return img
}

// roundCorners clears the pixels outside quarter circles of radius r in
// each corner.
func roundCorners(img *image.NRGBA, r int) {
	b := img.Bounds()
	r = min(r, b.Dx()/2, b.Dy()/2)
	if r <= 0 {
		return
	}

	transparent := color.NRGBA{}
	for y := 0; y < r; y++ {
		for x := 0; x < r; x++ {
			dx, dy := r-x, r-y
			if dx*dx+dy*dy <= r*r {
				continue
			}
			img.SetNRGBA(b.Min.X+x, b.Min.Y+y, transparent)
			img.SetNRGBA(b.Max.X-1-x, b.Min.Y+y, transparent)
			img.SetNRGBA(b.Min.X+x, b.Max.Y-1-y, transparent)
			img.SetNRGBA(b.Max.X-1-x, b.Max.Y-1-y, transparent)
		}
	}
}

// toNRGBA converts img unless it already is straight alpha.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), img, b.Min, draw.Src)
	return n
}
