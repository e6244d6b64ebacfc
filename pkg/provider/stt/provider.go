// Package stt defines the Recognizer interface for speech-input backends.
//
// A recognition attempt is a short-lived session: it captures one utterance,
// emits at most one Result event, at most one Error event, and exactly one
// End event, then terminates. This mirrors a non-continuous, non-interim
// speech recogniser; the consumer treats the session's channel as the event
// stream and must drain it until it closes.
package stt

import (
	"context"
	"errors"
)

// ErrPermissionDenied indicates the user (or the OS) refused microphone
// access. Sessions wrap it so consumers can surface a specific advisory.
var ErrPermissionDenied = errors.New("stt: microphone permission denied")

// SessionConfig describes one recognition attempt.
type SessionConfig struct {
	// Language is the BCP-47 recognition locale (e.g., "kn-IN").
	Language string
}

// EventKind discriminates session events.
type EventKind string

const (
	// EventResult carries the final transcript of the utterance.
	EventResult EventKind = "result"

	// EventError carries a recognition failure. Check
	// errors.Is(ev.Err, ErrPermissionDenied) for the microphone case.
	EventError EventKind = "error"

	// EventEnd marks the end of the session, whatever the outcome. It is
	// always the last event before the channel closes.
	EventEnd EventKind = "end"
)

// Event is a single occurrence within a recognition session.
type Event struct {
	Kind       EventKind
	Transcript string
	Err        error
}

// SessionHandle represents an in-flight recognition attempt.
type SessionHandle interface {
	// Events returns the session's event stream. The channel is closed
	// after the End event has been delivered.
	Events() <-chan Event

	// Stop aborts capture immediately. After Stop, no Result or Error
	// event is emitted; the End event (and channel close) still follows.
	// Stop is safe to call multiple times.
	Stop()
}

// Recognizer is the abstraction over any speech-input backend.
type Recognizer interface {
	// Start opens a new recognition session. The returned handle is live
	// immediately; capture ends on end-of-utterance, Stop, or ctx
	// cancellation.
	Start(ctx context.Context, cfg SessionConfig) (SessionHandle, error)
}
