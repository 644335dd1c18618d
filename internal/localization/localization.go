package localization

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Language identifies one of the supported string tables.
type Language string

const (
	Indonesian Language = "id"
	English    Language = "en"
)

// Supported lists the languages with a bundled string table, default first.
var Supported = []Language{Indonesian, English}

// ErrUnsupportedLanguage indicates a language without a string table.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ParseLanguage validates a language code.
func ParseLanguage(code string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	for _, l := range Supported {
		if l == lang {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.Indonesian
}

type contextKey struct{}

// ToContext stores the active language in ctx.
func ToContext(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, contextKey{}, lang)
}

// FromContext returns the language stored in ctx, if any.
func FromContext(ctx context.Context) (Language, bool) {
	lang, ok := ctx.Value(contextKey{}).(Language)
	return lang, ok
}

// Manager resolves labels from the bundled string tables.
type Manager struct {
	bundle   *i18n.Bundle
	fallback Language
	matcher  language.Matcher
	keys     map[Language][]string
}

// NewManager loads every bundled string table. fallback is used when a
// request carries no usable language preference.
func NewManager(fallback Language) (*Manager, error) {
	if _, err := ParseLanguage(string(fallback)); err != nil {
		return nil, err
	}

	bundle := i18n.NewBundle(fallback.Tag())
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	keys := make(map[Language][]string, len(Supported))
	tags := make([]language.Tag, 0, len(Supported))
	// The matcher treats the first tag as its default.
	tags = append(tags, fallback.Tag())
	for _, lang := range Supported {
		file, err := bundle.LoadMessageFileFS(localeFS, fmt.Sprintf("locales/messages.%s.toml", lang))
		if err != nil {
			return nil, fmt.Errorf("load %s messages: %w", lang, err)
		}
		ids := make([]string, 0, len(file.Messages))
		for _, msg := range file.Messages {
			ids = append(ids, msg.ID)
		}
		sort.Strings(ids)
		keys[lang] = ids
		if lang != fallback {
			tags = append(tags, lang.Tag())
		}
	}

	return &Manager{
		bundle:   bundle,
		fallback: fallback,
		matcher:  language.NewMatcher(tags),
		keys:     keys,
	}, nil
}

// Default returns the fallback language.
func (m *Manager) Default() Language {
	return m.fallback
}

// T returns the display string for key, or key itself when it is unknown.
func (m *Manager) T(lang Language, key string) string {
	localizer := i18n.NewLocalizer(m.bundle, string(lang), string(m.fallback))
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// Labels returns the complete string table for lang.
func (m *Manager) Labels(lang Language) map[string]string {
	keys := m.keys[lang]
	if keys == nil {
		keys = m.keys[m.fallback]
	}
	labels := make(map[string]string, len(keys))
	for _, key := range keys {
		labels[key] = m.T(lang, key)
	}
	return labels
}

// Keys returns the sorted message IDs of the string table for lang.
func (m *Manager) Keys(lang Language) []string {
	return append([]string(nil), m.keys[lang]...)
}

// Resolve picks a supported language from an explicit code and an
// Accept-Language header value, in that order.
func (m *Manager) Resolve(explicit, acceptLanguage string) Language {
	if explicit != "" {
		if lang, err := ParseLanguage(explicit); err == nil {
			return lang
		}
	}
	if acceptLanguage == "" {
		return m.fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return m.fallback
	}
	_, idx, confidence := m.matcher.Match(prefs...)
	if confidence == language.No {
		return m.fallback
	}
	return m.languageAt(idx)
}

func (m *Manager) languageAt(idx int) Language {
	if idx == 0 {
		return m.fallback
	}
	i := 0
	for _, lang := range Supported {
		if lang == m.fallback {
			continue
		}
		i++
		if i == idx {
			return lang
		}
	}
	return m.fallback
}
