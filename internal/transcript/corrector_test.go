package transcript_test

import (
	"testing"

	"github.com/ruralconnect/sahayak/internal/i18n"
	"github.com/ruralconnect/sahayak/internal/transcript"
)

func newCorrector(opts ...transcript.Option) *transcript.Corrector {
	return transcript.New(i18n.KeywordLexicon(), opts...)
}

func TestCorrectSnapsMisrecognizedTokens(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"phonetic near miss", "can i get a lone", "can i get a loan"},
		{"shared metaphone code", "prise of onions", "price of onions"},
		{"dropped vowel", "weathr this week", "weather this week"},
		{"vowel swap", "credet options", "credit options"},
	}
	c := newCorrector()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, changed := c.Correct(tc.in)
			if !changed {
				t.Fatalf("Correct(%q) reported no change", tc.in)
			}
			if got != tc.want {
				t.Errorf("Correct(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCorrectPreservesTrailingPunctuation(t *testing.T) {
	t.Parallel()

	got, changed := newCorrector().Correct("can i get a lone?")
	if !changed || got != "can i get a loan?" {
		t.Errorf("got %q (changed=%v), want %q", got, changed, "can i get a loan?")
	}
}

func TestCorrectLeavesCleanTextAlone(t *testing.T) {
	t.Parallel()

	cases := []string{
		"show me rice prices",
		"what about vegetables?",
		"will it rain this week",
	}
	c := newCorrector()
	for _, in := range cases {
		got, changed := c.Correct(in)
		if changed {
			t.Errorf("Correct(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestCorrectPassesThroughNonLatinScript(t *testing.T) {
	t.Parallel()

	in := "ಮಳೆ ಬರುತ್ತದೆಯೇ"
	got, changed := newCorrector().Correct(in)
	if changed || got != in {
		t.Errorf("Correct(%q) = %q (changed=%v), want passthrough", in, got, changed)
	}
}

func TestCorrectEmptyInput(t *testing.T) {
	t.Parallel()

	if got, changed := newCorrector().Correct("   "); changed || got != "   " {
		t.Errorf("blank input must pass through, got %q (changed=%v)", got, changed)
	}
}

func TestWithPhoneticThreshold(t *testing.T) {
	t.Parallel()

	c := newCorrector(transcript.WithPhoneticThreshold(0.99))
	if got, changed := c.Correct("can i get a lone"); changed {
		t.Errorf("threshold 0.99 must reject the match, got %q", got)
	}
}
