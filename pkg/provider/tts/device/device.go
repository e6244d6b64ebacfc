// Package device wraps the host's on-device speech-synthesis capability.
//
// The capability is probed once at startup: when a supported synthesis engine
// binary is present the probe returns a handle, otherwise callers receive
// (nil, false) and treat speech output for device-routed languages as a
// silent no-op. This mirrors how a browser front-end would feature-detect
// speechSynthesis, expressed as an explicit optional handle instead of
// ambient global state.
//
// The engine's voice catalogue loads asynchronously. Ready returns a channel
// that is closed exactly once when the catalogue has been listed; callers
// that need a voice before the catalogue is available subscribe one-shot and
// replay the utterance on readiness.
package device

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// engineBinary is the synthesis engine probed for, in preference order.
var engineBinaries = []string{"espeak-ng", "espeak"}

// Engine is a handle to the on-device synthesis capability.
// All methods are safe for concurrent use.
type Engine struct {
	binary string

	mu     sync.Mutex
	voices map[string]bool // lowercased language codes from the catalogue
	loaded bool
	ready  chan struct{}

	// run executes the synthesis command. Replaceable in tests.
	run func(ctx context.Context, name string, args ...string) error

	// list returns the raw voice catalogue output. Replaceable in tests.
	list func(name string) ([]byte, error)
}

// Probe detects the on-device synthesis capability. It returns (nil, false)
// when no supported engine binary is installed. When a handle is returned,
// the voice catalogue starts loading in the background immediately.
func Probe() (*Engine, bool) {
	for _, bin := range engineBinaries {
		path, err := exec.LookPath(bin)
		if err != nil {
			continue
		}
		e := newEngine(path)
		go e.loadCatalog()
		return e, true
	}
	return nil, false
}

// newEngine constructs an Engine for the given binary without starting the
// catalogue load. Tests drive loadCatalog explicitly.
func newEngine(binary string) *Engine {
	return &Engine{
		binary: binary,
		ready:  make(chan struct{}),
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
		list: func(name string) ([]byte, error) {
			return exec.Command(name, "--voices").Output()
		},
	}
}

// Ready returns a channel that is closed when the voice catalogue has been
// loaded. The same channel is returned to every caller.
func (e *Engine) Ready() <-chan struct{} { return e.ready }

// Loaded reports whether the voice catalogue is available.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// HasVoice reports whether the catalogue lists a voice for the locale tag
// (e.g., "hi-IN"). Matching falls back from the full tag to its base
// language, since engines commonly list "hi" rather than "hi-IN".
func (e *Engine) HasVoice(locale string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return false
	}
	l := strings.ToLower(locale)
	if e.voices[l] {
		return true
	}
	if base, _, ok := strings.Cut(l, "-"); ok {
		return e.voices[base]
	}
	return false
}

// SpeakLocale synthesises and plays text with the voice for the locale tag.
// The call blocks until playback completes or ctx is cancelled.
func (e *Engine) SpeakLocale(ctx context.Context, text, locale string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("device: text must not be empty")
	}
	voice := strings.ToLower(locale)
	if err := e.run(ctx, e.binary, "-v", voice, text); err != nil {
		return fmt.Errorf("device: synthesis failed for voice %q: %w", voice, err)
	}
	return nil
}

// loadCatalog lists the engine's voices and marks the catalogue as loaded.
// A listing failure still closes the ready channel with an empty catalogue,
// so subscribers never wait forever.
func (e *Engine) loadCatalog() {
	out, err := e.list(e.binary)

	voices := make(map[string]bool)
	if err == nil {
		voices = parseVoices(out)
	}

	e.mu.Lock()
	e.voices = voices
	e.loaded = true
	e.mu.Unlock()
	close(e.ready)
}

// parseVoices extracts language codes from `espeak-ng --voices` output.
// The second column of each row is the language code; the header row is
// skipped.
func parseVoices(out []byte) map[string]bool {
	voices := make(map[string]bool)
	lines := strings.Split(string(out), "\n")
	for i, line := range lines {
		if i == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		voices[strings.ToLower(fields[1])] = true
	}
	return voices
}
