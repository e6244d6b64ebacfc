// Package mock provides test doubles for the stt package interfaces.
//
// Use Recognizer to verify that the caller starts sessions with the expected
// SessionConfig. Use Session to feed a scripted event sequence and inspect
// whether the caller requested an early stop.
//
// Example:
//
//	sess := mock.NewSession(
//	    stt.Event{Kind: stt.EventResult, Transcript: "show me rice prices"},
//	    stt.Event{Kind: stt.EventEnd},
//	)
//	r := &mock.Recognizer{Session: sess}
//	handle, _ := r.Start(ctx, cfg)
package mock

import (
	"context"
	"sync"

	"github.com/ruralconnect/sahayak/pkg/provider/stt"
)

// StartCall records a single invocation of Recognizer.Start.
type StartCall struct {
	// Ctx is the context passed to Start.
	Ctx context.Context
	// Cfg is the SessionConfig passed to Start.
	Cfg stt.SessionConfig
}

// Recognizer is a mock implementation of stt.Recognizer.
type Recognizer struct {
	mu sync.Mutex

	// Session is the SessionHandle returned by Start. If nil, Start returns a
	// new Session that ends immediately without a result.
	Session stt.SessionHandle

	// StartErr, if non-nil, is returned as the error from Start.
	StartErr error

	// StartCalls records every call to Start.
	StartCalls []StartCall
}

// Start records the call and returns Session, StartErr.
func (r *Recognizer) Start(ctx context.Context, cfg stt.SessionConfig) (stt.SessionHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.StartCalls = append(r.StartCalls, StartCall{Ctx: ctx, Cfg: cfg})
	if r.StartErr != nil {
		return nil, r.StartErr
	}
	if r.Session != nil {
		return r.Session, nil
	}
	return NewSession(stt.Event{Kind: stt.EventEnd}), nil
}

// CallCount returns the number of Start invocations so far. Thread-safe.
func (r *Recognizer) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.StartCalls)
}

// Reset clears all recorded calls. Thread-safe.
func (r *Recognizer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.StartCalls = nil
}

// Ensure Recognizer implements stt.Recognizer at compile time.
var _ stt.Recognizer = (*Recognizer)(nil)

// Session is a mock implementation of stt.SessionHandle that plays back a
// scripted event sequence.
type Session struct {
	mu sync.Mutex

	events  chan stt.Event
	stopped bool
}

// NewSession returns a Session that emits the given events in order and then
// closes its event channel. The script should end with an EventEnd to satisfy
// the SessionHandle contract.
func NewSession(script ...stt.Event) *Session {
	s := &Session{events: make(chan stt.Event, len(script))}
	for _, ev := range script {
		s.events <- ev
	}
	close(s.events)
	return s
}

// NewHeldSession returns a Session that emits nothing until release is closed,
// then plays back the script. Tests use it to hold a recognition session open
// while asserting intermediate state.
func NewHeldSession(release <-chan struct{}, script ...stt.Event) *Session {
	s := &Session{events: make(chan stt.Event, len(script))}
	go func() {
		<-release
		for _, ev := range script {
			s.events <- ev
		}
		close(s.events)
	}()
	return s
}

// Events returns the scripted event channel.
func (s *Session) Events() <-chan stt.Event {
	return s.events
}

// Stop marks the session as stopped. The scripted playback is unaffected; use
// Stopped to assert the caller requested a stop.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// Stopped reports whether Stop has been called. Thread-safe.
func (s *Session) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Ensure Session implements stt.SessionHandle at compile time.
var _ stt.SessionHandle = (*Session)(nil)
