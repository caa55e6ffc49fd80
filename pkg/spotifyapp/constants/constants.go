// Package constants holds the layout sizes, virtual buttons and environment
// variable names shared across the shell.
package constants

import (
	"os"
	"time"
)

// Environment variables read at startup. ENVIRONMENT=DEV runs the window
// resizable and honours WINDOW_WIDTH/WINDOW_HEIGHT.
const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	ConfigPathEnvVar   = "SPOTIFYAPP_CONFIG"
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"

	Development = "DEV"
)

func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// VirtualButton is a logical button shared by keyboards, touch gestures and
// hardware keys.
type VirtualButton int

const (
	VirtualButtonUnassigned VirtualButton = iota
	VirtualButtonUp
	VirtualButtonDown
	VirtualButtonLeft
	VirtualButtonRight
	VirtualButtonA
	VirtualButtonB
	VirtualButtonStart
	VirtualButtonSelect
	VirtualButtonMenu
)

var buttonNames = [...]string{
	VirtualButtonUnassigned: "Unassigned",
	VirtualButtonUp:         "Up",
	VirtualButtonDown:       "Down",
	VirtualButtonLeft:       "Left",
	VirtualButtonRight:      "Right",
	VirtualButtonA:          "A",
	VirtualButtonB:          "B",
	VirtualButtonStart:      "Start",
	VirtualButtonSelect:     "Select",
	VirtualButtonMenu:       "Menu",
}

func (vb VirtualButton) String() string {
	if vb < 0 || int(vb) >= len(buttonNames) {
		return "Unknown"
	}
	return buttonNames[vb]
}

// Layout sizes in density-independent pixels, taken from the mobile design.
const (
	ScreenPadding       = 16
	HeroHeight          = 320
	TrackThumbSize      = 42
	TrackThumbRadius    = 6
	TrackNumberWidth    = 28
	NowPlayingHeight    = 64
	NowPlayingThumbSize = 48
	NowPlayingRadius    = 14
	NowPlayingReserve   = 76 // space kept free below the list for the floating card
	BottomBarHeight     = 64
	ActionIconSize      = 24
	TabIconSize         = 24
)

// FrameInterval paces the frontend when the renderer has no VSync.
const FrameInterval = 16 * time.Millisecond
