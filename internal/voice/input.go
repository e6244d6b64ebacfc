package voice

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ruralconnect/sahayak/internal/i18n"
	"github.com/ruralconnect/sahayak/internal/observe"
	"github.com/ruralconnect/sahayak/internal/session"
	"github.com/ruralconnect/sahayak/internal/transcript"
	"github.com/ruralconnect/sahayak/pkg/provider/stt"
)

// Submitter accepts recognized text as a conversational turn. Implemented by
// the turn controller.
type Submitter interface {
	Submit(ctx context.Context, text string) bool
}

// InputConfig configures an [Input].
type InputConfig struct {
	// Recognizer runs the one-shot recognition sessions. May be nil when
	// voice input is unavailable on this host.
	Recognizer stt.Recognizer

	// Store provides the active language and receives advisory messages.
	// Must not be nil.
	Store *session.Store

	// Submitter receives the recognized text. Must not be nil.
	Submitter Submitter

	// Corrector cleans up recognition output before submission. May be nil.
	Corrector *transcript.Corrector

	// Metrics defaults to [observe.DefaultMetrics] when nil.
	Metrics *observe.Metrics

	// Logger defaults to [slog.Default] when nil.
	Logger *slog.Logger
}

// Input is the voice input session state machine. At most one recognition
// session is active at a time: Start is ignored while already listening or
// while a remote turn is loading, and the session returns to idle when the
// recognizer ends.
//
// All methods are safe for concurrent use.
type Input struct {
	rec       stt.Recognizer
	store     *session.Store
	submitter Submitter
	corrector *transcript.Corrector
	metrics   *observe.Metrics
	log       *slog.Logger

	mu        sync.Mutex
	listening bool
	handle    stt.SessionHandle
}

// NewInput creates an Input from cfg.
func NewInput(cfg InputConfig) *Input {
	m := cfg.Metrics
	if m == nil {
		m = observe.DefaultMetrics()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Input{
		rec:       cfg.Recognizer,
		store:     cfg.Store,
		submitter: cfg.Submitter,
		corrector: cfg.Corrector,
		metrics:   m,
		log:       log,
	}
}

// Listening reports whether a recognition session is active.
func (v *Input) Listening() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.listening
}

// Start begins a recognition session in the active language and returns
// whether one was started. Calls are ignored while already listening or
// while a turn is in flight. The recognition locale is captured here; a
// language switch mid-session does not affect it.
func (v *Input) Start(ctx context.Context) bool {
	lang := v.store.Language()

	if v.rec == nil {
		v.store.AppendBot(i18n.Text(i18n.KeyVoiceUnsupported, lang))
		return false
	}

	v.mu.Lock()
	if v.listening {
		v.mu.Unlock()
		return false
	}
	if v.store.Loading() {
		v.mu.Unlock()
		return false
	}

	handle, err := v.rec.Start(ctx, stt.SessionConfig{Language: lang.Locale()})
	if err != nil {
		v.mu.Unlock()
		v.log.Error("voice session start failed", "error", err)
		v.store.AppendBot(i18n.Text(i18n.KeyGenericError, lang))
		return false
	}
	v.listening = true
	v.handle = handle
	v.mu.Unlock()

	v.metrics.VoiceSessionsActive.Add(ctx, 1)
	go v.consume(ctx, handle, lang, time.Now())
	return true
}

// Stop ends the active recognition session, discarding any result that has
// not yet been delivered. A no-op when idle.
func (v *Input) Stop() {
	v.mu.Lock()
	handle := v.handle
	v.mu.Unlock()
	if handle != nil {
		handle.Stop()
	}
}

// consume drains the session's events and returns the state machine to idle
// when the recognizer ends. The full capture-to-end latency is recorded as
// the recognition duration.
func (v *Input) consume(ctx context.Context, handle stt.SessionHandle, lang i18n.Language, started time.Time) {
	for ev := range handle.Events() {
		switch ev.Kind {
		case stt.EventResult:
			text := ev.Transcript
			if v.corrector != nil {
				if corrected, changed := v.corrector.Correct(text); changed {
					v.log.Debug("transcript corrected", "from", text, "to", corrected)
					text = corrected
				}
			}
			v.submitter.Submit(ctx, text)
		case stt.EventError:
			if errors.Is(ev.Err, stt.ErrPermissionDenied) {
				v.store.AppendBot(i18n.Text(i18n.KeyMicPermission, lang))
			} else {
				v.log.Warn("voice recognition failed", "error", ev.Err)
			}
		case stt.EventEnd:
			// Channel close follows; nothing to do.
		}
	}

	v.mu.Lock()
	v.listening = false
	v.handle = nil
	v.mu.Unlock()
	v.metrics.STTDuration.Record(ctx, time.Since(started).Seconds())
	v.metrics.VoiceSessionsActive.Add(ctx, -1)
}
