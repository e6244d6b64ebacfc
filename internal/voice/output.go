// Package voice orchestrates spoken input and output around the session:
// the output Dispatcher routes bot replies to the right synthesis backend
// per language, and the input Session runs one-shot voice recognition and
// feeds recognized text into the turn controller.
package voice

import (
	"context"
	"log/slog"
	"time"

	"github.com/ruralconnect/sahayak/internal/i18n"
	"github.com/ruralconnect/sahayak/internal/observe"
	"github.com/ruralconnect/sahayak/pkg/audio"
	"github.com/ruralconnect/sahayak/pkg/provider/tts"
)

// LocalEngine is the on-device synthesis surface the dispatcher routes
// non-Kannada speech to. Implemented by tts/device at runtime.
type LocalEngine interface {
	// Ready is closed once the voice catalogue load has finished, whether
	// or not it succeeded.
	Ready() <-chan struct{}
	// Loaded reports whether the catalogue is available yet.
	Loaded() bool
	// HasVoice reports whether a voice exists for the BCP-47 locale.
	HasVoice(locale string) bool
	// SpeakLocale speaks text with the voice for locale.
	SpeakLocale(ctx context.Context, text, locale string) error
}

// DispatcherConfig configures a [Dispatcher]. Every backend is optional;
// speech silently degrades to text-only when nothing is available.
type DispatcherConfig struct {
	// Remote synthesizes Kannada speech. Requires Player for playback.
	Remote tts.Provider

	// Player plays back remote synthesis output.
	Player audio.Player

	// Local speaks English and Hindi on-device.
	Local LocalEngine

	// Metrics defaults to [observe.DefaultMetrics] when nil.
	Metrics *observe.Metrics

	// Logger defaults to [slog.Default] when nil.
	Logger *slog.Logger
}

// Dispatcher routes bot replies to a synthesis backend by language. Speech
// is best-effort: Speak never returns an error, failures are logged and
// counted only.
type Dispatcher struct {
	remote  tts.Provider
	player  audio.Player
	local   LocalEngine
	metrics *observe.Metrics
	log     *slog.Logger
}

// NewDispatcher creates a Dispatcher from cfg.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	m := cfg.Metrics
	if m == nil {
		m = observe.DefaultMetrics()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		remote:  cfg.Remote,
		player:  cfg.Player,
		local:   cfg.Local,
		metrics: m,
		log:     log,
	}
}

// Speak voices text in lang. Kannada goes through the remote synthesizer
// only: without a remote backend and a player it degrades to silence, never
// to the on-device engine. English and Hindi go through the on-device
// engine. When the device voice catalogue is still loading, the utterance is
// deferred until it is ready.
func (d *Dispatcher) Speak(ctx context.Context, text string, lang i18n.Language) {
	if text == "" {
		return
	}
	if lang == i18n.Kannada {
		if d.remote == nil || d.player == nil {
			d.metrics.RecordSpeechOutput(ctx, "remote", "unavailable")
			d.log.Debug("no remote synthesis backend", "language", lang)
			return
		}
		d.speakRemote(ctx, text, lang)
		return
	}
	d.speakLocal(ctx, text, lang)
}

func (d *Dispatcher) speakRemote(ctx context.Context, text string, lang i18n.Language) {
	voice := tts.VoiceProfile{
		LanguageCode: lang.Locale(),
		Gender:       "FEMALE",
		Encoding:     "MP3",
	}

	start := time.Now()
	clip, err := d.remote.Synthesize(ctx, text, voice)
	d.metrics.TTSDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		d.metrics.RecordSpeechOutput(ctx, "remote", "error")
		d.log.Warn("remote synthesis failed", "language", lang, "error", err)
		return
	}

	if err := d.player.Play(ctx, clip); err != nil {
		d.metrics.RecordSpeechOutput(ctx, "remote", "error")
		d.log.Warn("audio playback failed", "language", lang, "error", err)
		return
	}
	d.metrics.RecordSpeechOutput(ctx, "remote", "ok")
}

func (d *Dispatcher) speakLocal(ctx context.Context, text string, lang i18n.Language) {
	if d.local == nil {
		d.metrics.RecordSpeechOutput(ctx, "local", "unavailable")
		d.log.Debug("no local speech engine", "language", lang)
		return
	}

	if !d.local.Loaded() {
		// Catalogue still loading: speak once it settles.
		go func() {
			select {
			case <-d.local.Ready():
				d.speakLoaded(ctx, text, lang)
			case <-ctx.Done():
			}
		}()
		return
	}
	d.speakLoaded(ctx, text, lang)
}

func (d *Dispatcher) speakLoaded(ctx context.Context, text string, lang i18n.Language) {
	locale := lang.Locale()
	if !d.local.HasVoice(locale) {
		d.metrics.RecordSpeechOutput(ctx, "local", "no_voice")
		d.log.Debug("no device voice for locale", "locale", locale)
		return
	}
	if err := d.local.SpeakLocale(ctx, text, locale); err != nil {
		d.metrics.RecordSpeechOutput(ctx, "local", "error")
		d.log.Warn("device synthesis failed", "locale", locale, "error", err)
		return
	}
	d.metrics.RecordSpeechOutput(ctx, "local", "ok")
}
