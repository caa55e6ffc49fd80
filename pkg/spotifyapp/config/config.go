// Package config loads the shell configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/constants"
)

// Default values
const (
	DefaultLogLevel     = "info"
	DefaultLanguage     = "en"
	DefaultStartRoute   = "home"
	DefaultWindowTitle  = "Spotify"
	DefaultWindowWidth  = 412
	DefaultWindowHeight = 915
	DefaultMaxEntries   = 64
	DefaultWorkers      = 4
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxBytes     = 16 << 20
)

// Config is the complete shell configuration.
type Config struct {
	LogLevel    string `toml:"log_level"`
	LogPath     string `toml:"log_path"`
	Language    string `toml:"language"`
	StartRoute  string `toml:"start_route"`
	MetricsAddr string `toml:"metrics_addr"` // empty disables the /metrics endpoint

	Loader LoaderConfig `toml:"loader"`
	Window WindowConfig `toml:"window"`
	Input  InputConfig  `toml:"input"`
}

type LoaderConfig struct {
	MaxEntries   int      `toml:"max_entries"`
	Workers      int      `toml:"workers"`
	FetchTimeout Duration `toml:"fetch_timeout"`
	MaxBytes     int64    `toml:"max_bytes"`
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int32  `toml:"width"`
	Height     int32  `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	FontPath   string `toml:"font_path"`
}

type InputConfig struct {
	BackDevice string `toml:"back_device"` // evdev node for the hardware back key, e.g. /dev/input/event3
}

// Duration is a time.Duration written as a string ("15s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		LogLevel:   DefaultLogLevel,
		Language:   DefaultLanguage,
		StartRoute: DefaultStartRoute,
		Loader: LoaderConfig{
			MaxEntries:   DefaultMaxEntries,
			Workers:      DefaultWorkers,
			FetchTimeout: Duration{DefaultFetchTimeout},
			MaxBytes:     DefaultMaxBytes,
		},
		Window: WindowConfig{
			Title:  DefaultWindowTitle,
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
	}
	if constants.IsDevMode() {
		cfg.LogLevel = "debug"
	}
	return cfg
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &Error{Path: path, Err: err}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, &Error{Path: path, Err: fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, &Error{Path: path, Err: err}
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	if c.StartRoute == "" {
		errs = append(errs, errors.New("start_route: must not be empty"))
	}
	if c.Loader.MaxEntries < 0 {
		errs = append(errs, errors.New("loader.max_entries: must not be negative"))
	}
	if c.Loader.Workers < 1 {
		errs = append(errs, errors.New("loader.workers: must be at least 1"))
	}
	if c.Loader.FetchTimeout.Duration <= 0 {
		errs = append(errs, errors.New("loader.fetch_timeout: must be positive"))
	}
	if c.Loader.MaxBytes <= 0 {
		errs = append(errs, errors.New("loader.max_bytes: must be positive"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height))
	}

	return errors.Join(errs...)
}

// Path returns the config path from the environment, or "".
func Path() string {
	return os.Getenv(constants.ConfigPathEnvVar)
}

// Error reports a configuration file that could not be used.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
