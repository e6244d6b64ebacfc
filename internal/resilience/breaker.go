// Package resilience shields the assistant from flaky remote services.
//
// [Breaker] is a three-state circuit breaker (closed, open, half-open).
// [Chain] composes several instances of a provider type, each behind its own
// breaker, so a failing primary is bypassed in favour of a healthy backup.
// The llm and tts wrappers in this package implement the corresponding
// provider interfaces so callers never see the breakers directly.
//
// All types are safe for concurrent use.
package resilience

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrOpen is returned by [Breaker.Do] while the breaker is open and the
// cooldown has not yet elapsed.
var ErrOpen = errors.New("resilience: breaker open")

// State is the operating mode of a [Breaker].
type State int

const (
	// Closed forwards every call.
	Closed State = iota

	// Open rejects every call with [ErrOpen] until the cooldown elapses.
	Open

	// HalfOpen lets a limited number of probe calls through. The breaker
	// closes again when all probes succeed and re-opens on the first
	// probe failure.
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig tunes a [Breaker]. Zero fields take defaults.
type BreakerConfig struct {
	// Name labels the breaker in log output.
	Name string

	// Threshold is the number of consecutive failures that opens the
	// breaker. Default 5.
	Threshold int

	// Cooldown is how long the breaker stays open before probing the
	// backend again. Default 30s.
	Cooldown time.Duration

	// ProbeBudget is how many half-open calls must succeed before the
	// breaker closes. Default 3.
	ProbeBudget int
}

// Breaker implements the circuit breaker pattern over an arbitrary call.
type Breaker struct {
	name        string
	threshold   int
	cooldown    time.Duration
	probeBudget int

	mu         sync.Mutex
	state      State
	failures   int
	openedAt   time.Time
	probes     int
	probeFails int
}

// NewBreaker builds a closed breaker from cfg.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.ProbeBudget <= 0 {
		cfg.ProbeBudget = 3
	}
	return &Breaker{
		name:        cfg.Name,
		threshold:   cfg.Threshold,
		cooldown:    cfg.Cooldown,
		probeBudget: cfg.ProbeBudget,
	}
}

// Do runs fn unless the breaker is open. The error from fn is returned
// unchanged; a rejected call returns [ErrOpen] without running fn.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	switch b.state {
	case Open:
		if time.Since(b.openedAt) < b.cooldown {
			b.mu.Unlock()
			return ErrOpen
		}
		b.state = HalfOpen
		b.probes = 0
		b.probeFails = 0
		slog.Info("breaker half-open", "name", b.name)
	case HalfOpen:
		if b.probes >= b.probeBudget {
			b.mu.Unlock()
			return ErrOpen
		}
	}
	probing := b.state == HalfOpen
	if probing {
		b.probes++
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure(probing)
	} else {
		b.onSuccess(probing)
	}
	return err
}

// onFailure must be called with b.mu held.
func (b *Breaker) onFailure(probing bool) {
	b.openedAt = time.Now()
	if probing {
		b.probeFails++
		b.state = Open
		b.failures = b.threshold
		slog.Warn("breaker re-opened by failed probe", "name", b.name)
		return
	}
	b.failures++
	if b.failures >= b.threshold {
		b.state = Open
		slog.Warn("breaker opened", "name", b.name, "consecutive_failures", b.failures)
	}
}

// onSuccess must be called with b.mu held.
func (b *Breaker) onSuccess(probing bool) {
	if !probing {
		b.failures = 0
		return
	}
	if b.probes-b.probeFails >= b.probeBudget {
		b.state = Closed
		b.failures = 0
		b.probes = 0
		b.probeFails = 0
		slog.Info("breaker closed after probes", "name", b.name)
	}
}

// State reports the effective state. An open breaker whose cooldown has
// elapsed reports [HalfOpen]; the stored state changes on the next Do.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == Open && time.Since(b.openedAt) >= b.cooldown {
		return HalfOpen
	}
	return b.state
}

// Reset forces the breaker closed and clears all counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = Closed
	b.failures = 0
	b.probes = 0
	b.probeFails = 0
}
