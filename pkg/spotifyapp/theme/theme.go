// Package theme defines the colour palette of the shell.
package theme

import "image/color"

// Theme defines the visual appearance of every screen.
type Theme struct {
	Background           color.RGBA // Screen background
	Surface              color.RGBA // Cards, action icon chips
	Text                 color.RGBA // Default text colour
	TextMuted            color.RGBA // Secondary text: artists, durations, row numbers
	Primary              color.RGBA // Play button, selected tab
	OnPrimary            color.RGBA // Text drawn on Primary
	LoadingPlaceholder   color.RGBA // Image area while loading
	ErrorPlaceholder     color.RGBA // Image area after a failed load
	NowPlayingBackground color.RGBA // Floating now-playing card
	NowPlayingForeground color.RGBA // Secondary text and chip border on the card
	NavigationBar        color.RGBA // Bottom bar background
	FontPath             string     // Path to the primary UI font
}

// HexToColor converts 0xRRGGBB to an opaque colour.
func HexToColor(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8((hex >> 16) & 0xFF),
		G: uint8((hex >> 8) & 0xFF),
		B: uint8(hex & 0xFF),
		A: 0xFF,
	}
}

// WithAlpha returns c with its alpha channel replaced by a (0..1).
func WithAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(a * 255)
	return c
}

// Dark returns the default dark palette.
func Dark(fontPath string) Theme {
	return Theme{
		Background:           HexToColor(0x121212),
		Surface:              WithAlpha(HexToColor(0x2C2C2C), 0.5),
		Text:                 HexToColor(0xFFFFFF),
		TextMuted:            WithAlpha(HexToColor(0xFFFFFF), 0.7),
		Primary:              HexToColor(0x1DB954),
		OnPrimary:            HexToColor(0x000000),
		LoadingPlaceholder:   HexToColor(0x2A2A2A),
		ErrorPlaceholder:     HexToColor(0x5A2A2A),
		NowPlayingBackground: HexToColor(0x6E2B17),
		NowPlayingForeground: HexToColor(0xE9B7A4),
		NavigationBar:        HexToColor(0x1E1E1E),
		FontPath:             fontPath,
	}
}
