// Package transcript cleans up speech-recognition output before it reaches
// the conversation engine. Recognized tokens that sound like a known domain
// keyword ("reighn", "lone") are snapped onto the canonical spelling using
// Double Metaphone phonetic encoding combined with Jaro-Winkler string
// similarity.
//
// The algorithm proceeds in two stages per token:
//
//  1. Phonetic candidate filtering: Double Metaphone codes are computed for
//     the token and for each lexicon entry. Entries sharing at least one code
//     with the token become phonetic candidates.
//
//  2. Jaro-Winkler ranking: among phonetic candidates, the entry with the
//     highest Jaro-Winkler similarity (case-insensitive) is selected,
//     provided its score exceeds the phonetic threshold. When no phonetic
//     candidate qualifies, a secondary pass tests pure Jaro-Winkler
//     similarity against all entries using a stricter fuzzy threshold.
//
// Tokens written in non-Latin scripts pass through untouched: the phonetic
// encoding is defined for Latin text only, and the Kannada and Hindi
// recognizer output is left to the remote model as-is.
package transcript

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85

	// minTokenLen is the shortest token the corrector will touch. Very short
	// tokens produce degenerate phonetic codes and false matches.
	minTokenLen = 3
)

// Option is a functional option for configuring a [Corrector].
type Option func(*Corrector)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched lexicon entry to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) Option {
	return func(c *Corrector) {
		c.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// phonetic match is found and the corrector falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) Option {
	return func(c *Corrector) {
		c.fuzzyThreshold = threshold
	}
}

// stopwords are common conversational words that are never rewritten, even
// when they score well against a lexicon entry ("what" sounds like "wheat").
var stopwords = map[string]struct{}{
	"what": {}, "whats": {}, "which": {}, "where": {}, "when": {}, "who": {},
	"how": {}, "the": {}, "and": {}, "are": {}, "was": {}, "will": {},
	"can": {}, "you": {}, "your": {}, "tell": {}, "show": {}, "about": {},
	"for": {}, "this": {}, "that": {}, "with": {}, "much": {}, "many": {},
	"get": {}, "give": {}, "want": {}, "need": {}, "know": {}, "today": {},
	"now": {}, "please": {}, "week": {}, "there": {}, "here": {},
}

// entry is one lexicon keyword with its precomputed phonetic codes.
type entry struct {
	word  string
	codes map[string]struct{}
}

// Corrector snaps misrecognized tokens onto a fixed keyword lexicon.
// All methods are safe for concurrent use — the Corrector is read-only after
// construction.
type Corrector struct {
	entries           []entry
	exact             map[string]struct{}
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// New returns a [Corrector] over the given lexicon. Phonetic codes for every
// entry are precomputed once at construction.
func New(lexicon []string, opts ...Option) *Corrector {
	c := &Corrector{
		entries:           make([]entry, 0, len(lexicon)),
		exact:             make(map[string]struct{}, len(lexicon)),
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, word := range lexicon {
		w := strings.ToLower(strings.TrimSpace(word))
		if w == "" {
			continue
		}
		c.entries = append(c.entries, entry{word: w, codes: phoneticCodes(w)})
		c.exact[w] = struct{}{}
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Correct rewrites tokens of text that phonetically resemble a lexicon entry
// and reports whether anything changed. Token order, casing of untouched
// tokens, and trailing punctuation are preserved; inter-token whitespace is
// normalized to single spaces.
func (c *Corrector) Correct(text string) (string, bool) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return text, false
	}

	changed := false
	for i, tok := range tokens {
		core, trailing := splitTrailingPunct(tok)
		if replacement, ok := c.correctToken(core); ok {
			tokens[i] = replacement + trailing
			changed = true
		}
	}
	if !changed {
		return text, false
	}
	return strings.Join(tokens, " "), true
}

// correctToken returns the lexicon entry that best matches tok, if any.
// Exact lexicon members and non-Latin tokens are never rewritten.
func (c *Corrector) correctToken(tok string) (string, bool) {
	lower := strings.ToLower(tok)
	if len(lower) < minTokenLen || !isLatin(lower) {
		return "", false
	}
	if _, ok := c.exact[lower]; ok {
		return "", false
	}
	if _, ok := stopwords[lower]; ok {
		return "", false
	}

	tokCodes := phoneticCodes(lower)

	var (
		best         string
		bestScore    float64
		bestPhonetic bool
	)
	for _, e := range c.entries {
		score := matchr.JaroWinkler(lower, e.word, false)
		if codesOverlap(tokCodes, e.codes) {
			if score >= c.phoneticThreshold && (!bestPhonetic || score > bestScore) {
				best, bestScore, bestPhonetic = e.word, score, true
			}
		} else if !bestPhonetic && score >= c.fuzzyThreshold && score > bestScore {
			best, bestScore = e.word, score
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// phoneticCodes returns the set of Double Metaphone codes for word. Empty
// codes (produced when the word has no consonants) are excluded.
func phoneticCodes(word string) map[string]struct{} {
	codes := make(map[string]struct{}, 2)
	p, s := matchr.DoubleMetaphone(word)
	if p != "" {
		codes[p] = struct{}{}
	}
	if s != "" {
		codes[s] = struct{}{}
	}
	return codes
}

// codesOverlap returns true if the two code sets share at least one code.
func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// splitTrailingPunct splits "rain?" into "rain" and "?".
func splitTrailingPunct(tok string) (core, trailing string) {
	cut := len(tok)
	for cut > 0 {
		r := rune(tok[cut-1])
		if r < 0x80 && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
			cut--
			continue
		}
		break
	}
	return tok[:cut], tok[cut:]
}

// isLatin reports whether s contains only ASCII letters.
func isLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
