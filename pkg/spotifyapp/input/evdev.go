package input

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/constants"
)

// DefaultKeyMap maps Linux key codes to virtual buttons. Hardware back keys
// and Escape both map to B.
var DefaultKeyMap = map[evdev.EvCode]constants.VirtualButton{
	evdev.KEY_UP:        constants.VirtualButtonUp,
	evdev.KEY_DOWN:      constants.VirtualButtonDown,
	evdev.KEY_LEFT:      constants.VirtualButtonLeft,
	evdev.KEY_RIGHT:     constants.VirtualButtonRight,
	evdev.KEY_ENTER:     constants.VirtualButtonA,
	evdev.KEY_SELECT:    constants.VirtualButtonA,
	evdev.KEY_BACK:      constants.VirtualButtonB,
	evdev.KEY_ESC:       constants.VirtualButtonB,
	evdev.KEY_MENU:      constants.VirtualButtonMenu,
	evdev.KEY_HOMEPAGE:  constants.VirtualButtonStart,
	evdev.KEY_PLAYPAUSE: constants.VirtualButtonSelect,
}

// ButtonEvent is a press or release of a virtual button.
type ButtonEvent struct {
	Button  constants.VirtualButton
	Pressed bool
	Repeat  bool
}

type eventSource interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// DeviceReader reads key events from a Linux input device, such as the
// back and menu keys of a handheld, and reports them as virtual buttons.
type DeviceReader struct {
	src    eventSource
	name   string
	keymap map[evdev.EvCode]constants.VirtualButton
	logger *slog.Logger

	closeOnce sync.Once
}

// OpenDevice opens the input device at path, e.g. /dev/input/event3.
func OpenDevice(path string, logger *slog.Logger) (*DeviceReader, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", path, err)
	}
	name, err := dev.Name()
	if err != nil {
		name = path
	}
	return newDeviceReader(dev, name, logger), nil
}

func newDeviceReader(src eventSource, name string, logger *slog.Logger) *DeviceReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeviceReader{
		src:    src,
		name:   name,
		keymap: DefaultKeyMap,
		logger: logger.With("device", name),
	}
}

// Name returns the device name reported by the kernel.
func (r *DeviceReader) Name() string {
	return r.name
}

// Run reads events until ctx is cancelled or the device fails, calling fn
// for every mapped key. fn runs on the reader goroutine.
func (r *DeviceReader) Run(ctx context.Context, fn func(ButtonEvent)) error {
	stop := context.AfterFunc(ctx, func() { r.Close() })
	defer stop()

	for {
		ev, err := r.src.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("input: read %s: %w", r.name, err)
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}

		button, ok := r.keymap[ev.Code]
		if !ok {
			r.logger.Debug("unmapped key", "code", ev.CodeName())
			continue
		}
		// Values are 0 release, 1 press, 2 autorepeat.
		fn(ButtonEvent{
			Button:  button,
			Pressed: ev.Value != 0,
			Repeat:  ev.Value == 2,
		})
	}
}

// Close releases the device. Blocked reads return.
func (r *DeviceReader) Close() error {
	err := errors.New("input: already closed")
	r.closeOnce.Do(func() {
		err = r.src.Close()
	})
	return err
}
