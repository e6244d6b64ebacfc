// Package i18n centralises every user-facing string in Sahayak: status and
// error templates, quick-reply catalogs, welcome actions, and the domain
// keyword lexicon used by the transcript corrector.
//
// The set of supported languages is closed and enumerable. All lookups are
// keyed by (key, language) and fall back to English when a translation is
// missing, so callers never receive the empty string for a known key.
package i18n

import "fmt"

// Language identifies one of the supported interface languages.
type Language string

const (
	English Language = "english"
	Kannada Language = "kannada"
	Hindi   Language = "hindi"
)

// Default is the language active before any explicit user switch.
const Default = English

// IsValid reports whether l is a recognised language.
func (l Language) IsValid() bool {
	switch l {
	case English, Kannada, Hindi:
		return true
	}
	return false
}

// Locale returns the BCP-47 tag used for speech recognition and on-device
// synthesis in this language.
func (l Language) Locale() string {
	switch l {
	case Kannada:
		return "kn-IN"
	case Hindi:
		return "hi-IN"
	default:
		return "en-IN"
	}
}

// DisplayName returns the English name of the language, as interpolated into
// the model prompt ("respond in Kannada").
func (l Language) DisplayName() string {
	switch l {
	case Kannada:
		return "Kannada"
	case Hindi:
		return "Hindi"
	default:
		return "English"
	}
}

// Languages returns the closed set of supported languages in a fixed order.
func Languages() []Language {
	return []Language{English, Kannada, Hindi}
}

// Parse converts a config or command value into a Language.
func Parse(s string) (Language, error) {
	l := Language(s)
	if !l.IsValid() {
		return "", fmt.Errorf("i18n: unknown language %q; valid values: english, kannada, hindi", s)
	}
	return l, nil
}
