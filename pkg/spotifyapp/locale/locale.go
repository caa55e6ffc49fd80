// Package locale provides the UI strings of the shell in English and
// Spanish.
package locale

import (
	"embed"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFS embed.FS

// Message IDs
const (
	LoginTitle         = "LoginTitle"
	LoginEmail         = "LoginEmail"
	LoginPassword      = "LoginPassword"
	LoginSubmit        = "LoginSubmit"
	LoginRegister      = "LoginRegister"
	RegisterTitle      = "RegisterTitle"
	RegisterBody       = "RegisterBody"
	RegisterBack       = "RegisterBack"
	TabHome            = "TabHome"
	TabSearch          = "TabSearch"
	TabLibrary         = "TabLibrary"
	SearchPlaceholder  = "SearchPlaceholder"
	LibraryPlaceholder = "LibraryPlaceholder"
	ImageError         = "ImageError"
	ImageRetry         = "ImageRetry"
	Play               = "Play"
	NotFound           = "NotFound"
	FieldRequired      = "FieldRequired"
)

// DefaultLanguage is used when the requested language is not supported.
var DefaultLanguage = language.English

// Localizer looks up messages in one language.
type Localizer struct {
	tag    language.Tag
	loc    *i18n.Localizer
	logger *slog.Logger
}

// NewBundle loads the embedded message files.
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := messageFS.ReadDir("messages")
	if err != nil {
		return nil, fmt.Errorf("locale: %w", err)
	}
	for _, e := range entries {
		if _, err := bundle.LoadMessageFileFS(messageFS, path.Join("messages", e.Name())); err != nil {
			return nil, fmt.Errorf("locale: load %s: %w", e.Name(), err)
		}
	}
	return bundle, nil
}

// New returns a Localizer for the best supported match of lang, a BCP 47
// tag such as "es" or "es-AR". An unparsable or empty tag selects English.
func New(lang string, logger *slog.Logger) (*Localizer, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	bundle, err := NewBundle()
	if err != nil {
		return nil, err
	}

	supported := bundle.LanguageTags()
	requested, err := language.Parse(lang)
	if err != nil {
		if lang != "" {
			logger.Warn("unknown language, using default", "language", lang, "default", DefaultLanguage.String())
		}
		requested = DefaultLanguage
	}

	_, idx, _ := language.NewMatcher(supported).Match(requested)
	tag := supported[idx]

	return &Localizer{
		tag:    tag,
		loc:    i18n.NewLocalizer(bundle, tag.String()),
		logger: logger,
	}, nil
}

// MustNew is like New but panics on error. The messages are embedded, so
// an error means the binary was built with broken message files.
func MustNew(lang string) *Localizer {
	l, err := New(lang, nil)
	if err != nil {
		panic(err)
	}
	return l
}

// Tag returns the language messages are served in.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// T returns the message for id. A missing message yields id itself.
func (l *Localizer) T(id string) string {
	return l.Tf(id, nil)
}

// Tf returns the message for id with its template filled from data.
func (l *Localizer) Tf(id string, data map[string]any) string {
	msg, err := l.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		l.logger.Warn("missing translation", "id", id, "language", l.tag.String(), "error", err)
		if msg == "" {
			return id
		}
	}
	return msg
}

// Supported returns the languages with message files.
func Supported() []language.Tag {
	bundle, err := NewBundle()
	if err != nil {
		return []language.Tag{DefaultLanguage}
	}
	return bundle.LanguageTags()
}
