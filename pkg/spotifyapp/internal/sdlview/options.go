package sdlview

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/config"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/constants"
)

type WindowOptions struct {
	Title      string
	Width      int32
	Height     int32
	FontPath   string
	Fullscreen bool // Fullscreen at desktop resolution (SDL_WINDOW_FULLSCREEN_DESKTOP)
	Resizable  bool // Allow window resizing (SDL_WINDOW_RESIZABLE)
	Borderless bool // Remove window decorations (SDL_WINDOW_BORDERLESS)
	Hidden     bool // Start hidden (omits SDL_WINDOW_SHOWN)
}

// WindowOptionsFrom converts the window section of the configuration.
func WindowOptionsFrom(cfg config.WindowConfig) WindowOptions {
	return WindowOptions{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		FontPath:   cfg.FontPath,
		Fullscreen: cfg.Fullscreen,
	}
}

func (wo WindowOptions) ToSDLFlags() uint32 {
	var flags uint32

	if !wo.Hidden {
		flags |= sdl.WINDOW_SHOWN
	}

	if wo.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}

	if wo.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}

	if wo.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	return flags
}

// applyDevOverrides lets WINDOW_WIDTH and WINDOW_HEIGHT resize the window
// in development mode. Fullscreen is always off in development.
func (wo WindowOptions) applyDevOverrides(logger *slog.Logger) WindowOptions {
	if !constants.IsDevMode() {
		return wo
	}

	wo.Fullscreen = false
	wo.Resizable = true
	wo.Width = envSize(constants.WindowWidthEnvVar, wo.Width, logger)
	wo.Height = envSize(constants.WindowHeightEnvVar, wo.Height, logger)
	return wo
}

func envSize(name string, fallback int32, logger *slog.Logger) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		logger.Warn("Invalid window size; using default", "variable", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}
