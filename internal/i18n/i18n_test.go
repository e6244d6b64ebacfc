package i18n_test

import (
	"testing"

	"github.com/ruralconnect/sahayak/internal/i18n"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for _, lang := range i18n.Languages() {
		got, err := i18n.Parse(string(lang))
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", lang, err)
		}
		if got != lang {
			t.Errorf("Parse(%q) = %q", lang, got)
		}
	}

	if _, err := i18n.Parse("telugu"); err == nil {
		t.Error("Parse(telugu): expected error, got nil")
	}
}

func TestLocale(t *testing.T) {
	t.Parallel()

	want := map[i18n.Language]string{
		i18n.English: "en-IN",
		i18n.Kannada: "kn-IN",
		i18n.Hindi:   "hi-IN",
	}
	for lang, locale := range want {
		if got := lang.Locale(); got != locale {
			t.Errorf("%s.Locale() = %q, want %q", lang, got, locale)
		}
	}
}

// TestTextCoverage verifies that every key resolves to a non-empty string in
// every supported language, so no user ever sees a blank message.
func TestTextCoverage(t *testing.T) {
	t.Parallel()

	keys := []i18n.MessageKey{
		i18n.KeyGenericError,
		i18n.KeyNotConfigured,
		i18n.KeyMicPermission,
		i18n.KeyListening,
		i18n.KeyThinking,
		i18n.KeyInputPlaceholder,
		i18n.KeyWelcome,
		i18n.KeyVoiceUnsupported,
	}
	for _, key := range keys {
		for _, lang := range i18n.Languages() {
			if i18n.Text(key, lang) == "" {
				t.Errorf("Text(%s, %s) is empty", key, lang)
			}
		}
	}
}

func TestTextUnknownKey(t *testing.T) {
	t.Parallel()

	if got := i18n.Text("no_such_key", i18n.English); got != "" {
		t.Errorf("Text(no_such_key) = %q, want empty", got)
	}
}

func TestRepliesComplete(t *testing.T) {
	t.Parallel()

	cats := []i18n.Category{
		i18n.CategoryMarket,
		i18n.CategoryWeather,
		i18n.CategoryLoan,
		i18n.CategoryDefault,
	}
	for _, cat := range cats {
		for _, lang := range i18n.Languages() {
			set := i18n.Replies(cat, lang)
			for i, s := range set {
				if s == "" {
					t.Errorf("Replies(%s, %s)[%d] is empty", cat, lang, i)
				}
			}
		}
	}
}

func TestQuickActions(t *testing.T) {
	t.Parallel()

	for _, lang := range i18n.Languages() {
		actions := i18n.QuickActions(lang)
		if len(actions) != 4 {
			t.Fatalf("QuickActions(%s): want 4 actions, got %d", lang, len(actions))
		}
		for i, a := range actions {
			if a.Title == "" || a.Prompt == "" {
				t.Errorf("QuickActions(%s)[%d] has empty field: %+v", lang, i, a)
			}
		}
	}
}
