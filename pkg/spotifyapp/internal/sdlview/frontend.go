// Package sdlview is the SDL2 frontend of the shell: it opens the window,
// lays out and paints the current view and feeds pointer, keyboard and
// hardware button input back to the shell.
package sdlview

import (
	"context"
	"image"
	"io"
	"log/slog"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/app"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/constants"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/icons"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/input"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/layout"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/screens"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/theme"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/ui"
)

type Options struct {
	Window WindowOptions
	Theme  theme.Theme
	Icons  *icons.Set   // Optional; a fresh set is created when nil
	Loop   *ui.Loop     // Required; drained once per frame
	Logger *slog.Logger // Optional
}

// Frontend renders one shell into one window. Create it before the shell so
// its Resume method can be passed as app.Options.ResumeSource.
type Frontend struct {
	opts   Options
	logger *slog.Logger

	engine     *layout.Engine
	controller *input.Controller
	painter    *painter
	gesture    gesture

	renderer        *sdl.Renderer
	hasVSync        bool
	lastPresentTime uint64
	routeChanged    bool
}

func New(opts Options) *Frontend {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if opts.Icons == nil {
		opts.Icons = icons.NewSet()
	}
	return &Frontend{opts: opts, logger: logger}
}

// Resume captures the scroll offsets of the current screen so they can be
// restored when the user navigates back to it.
func (f *Frontend) Resume(router.Route) any {
	if f.engine == nil {
		return nil
	}
	return screens.ListResume(f.engine.Offsets())
}

// Button feeds a hardware button event. It must be called on the loop,
// e.g. through ui.Loop.Post from an input.DeviceReader.
func (f *Frontend) Button(ev input.ButtonEvent) {
	if f.controller != nil {
		f.controller.Button(ev)
	}
}

// Run opens the window and renders shell until ctx is cancelled or the
// window is closed. It must be called from the main goroutine.
func (f *Frontend) Run(ctx context.Context, shell *app.Shell) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()

	if err := ttf.Init(); err != nil {
		return err
	}
	defer ttf.Quit()

	win := f.opts.Window.applyDevOverrides(f.logger)
	f.logger.Debug("Initializing SDL Window", "width", win.Width, "height", win.Height)

	window, err := sdl.CreateWindow(win.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, win.Width, win.Height, win.ToSDLFlags())
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return err
	}
	defer renderer.Destroy()
	renderer.SetLogicalSize(win.Width, win.Height)
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	info, err := renderer.GetInfo()
	f.hasVSync = err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0
	f.renderer = renderer

	faces, err := openFonts(win.FontPath)
	if err != nil {
		return err
	}
	defer faces.close()

	f.engine = layout.NewEngine(faces)
	f.controller = input.NewController(shell, f.logger)
	f.painter = newPainter(renderer, faces, f.opts.Theme, f.opts.Icons, f.logger)
	defer f.painter.destroy()

	unsubscribe := shell.Navigator().Subscribe(func(router.Route) {
		f.routeChanged = true
	})
	defer unsubscribe()

	bounds := image.Rect(0, 0, int(win.Width), int(win.Height))
	textInput := false

	for ctx.Err() == nil {
		if quit := f.pollEvents(); quit {
			return nil
		}

		f.opts.Loop.Drain()
		f.controller.Tick()

		if f.routeChanged {
			f.routeChanged = false
			f.engine.Reset()
			f.controller.Reset()
		}

		root := f.engine.Layout(shell.View(), bounds)
		f.controller.Sync(root)

		_, editing := f.controller.Editing()
		if editing != textInput {
			textInput = editing
			if editing {
				sdl.StartTextInput()
			} else {
				sdl.StopTextInput()
			}
		}

		focused, _ := f.controller.Focused()
		cell, _ := f.controller.Editing()
		f.painter.frame(root, focused, cell)
		f.present()
	}
	return ctx.Err()
}

// pollEvents handles pending SDL events and reports whether the window
// was closed.
func (f *Frontend) pollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			p := image.Pt(int(e.X), int(e.Y))
			if e.Type == sdl.MOUSEBUTTONDOWN {
				list, _ := f.listAt(p)
				f.gesture.press(p, list)
			} else if f.gesture.release(p) {
				f.controller.Tap(p)
			}

		case *sdl.MouseMotionEvent:
			if list, dy, ok := f.gesture.move(image.Pt(int(e.X), int(e.Y))); ok {
				f.engine.Scroll(list, dy)
			}

		case *sdl.MouseWheelEvent:
			x, y, _ := sdl.GetMouseState()
			if list, ok := f.listAt(image.Pt(int(x), int(y))); ok {
				f.engine.Scroll(list, -int(e.Y)*wheelStep)
			}

		case *sdl.TextInputEvent:
			f.controller.Type(e.GetText())

		case *sdl.KeyboardEvent:
			f.key(e)
		}
	}
	return false
}

func (f *Frontend) key(e *sdl.KeyboardEvent) {
	pressed := e.Type == sdl.KEYDOWN
	if _, editing := f.controller.Editing(); editing && pressed && e.Keysym.Sym == sdl.K_BACKSPACE {
		f.controller.Backspace()
		return
	}

	button, ok := keyButton(e.Keysym.Sym)
	if !ok {
		return
	}
	f.controller.Button(input.ButtonEvent{
		Button:  button,
		Pressed: pressed,
		Repeat:  e.Repeat != 0,
	})
}

// listAt hit-tests the previous frame's layout, which is what the user
// sees.
func (f *Frontend) listAt(p image.Point) (string, bool) {
	return f.controller.Root().ListAt(p)
}

// present swaps the render buffer and keeps ~60fps when VSync is not
// available.
func (f *Frontend) present() {
	f.renderer.Present()
	if !f.hasVSync {
		frame := uint64(constants.FrameInterval.Milliseconds())
		now := sdl.GetTicks64()
		if elapsed := now - f.lastPresentTime; elapsed < frame {
			sdl.Delay(uint32(frame - elapsed))
		}
		f.lastPresentTime = sdl.GetTicks64()
	}
}
