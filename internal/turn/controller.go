// Package turn drives conversational turns: it accepts user text, runs the
// remote query, and resolves the session state with the reply or a localized
// error message.
//
// Turns may overlap. Each submission captures the active language at the
// moment it is made, completions append in resolution order, and the loading
// indicator clears only when the last outstanding turn resolves. No
// completion is ever discarded.
package turn

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ruralconnect/sahayak/internal/gateway"
	"github.com/ruralconnect/sahayak/internal/i18n"
	"github.com/ruralconnect/sahayak/internal/observe"
	"github.com/ruralconnect/sahayak/internal/session"
	"github.com/ruralconnect/sahayak/internal/suggest"
)

// Speaker voices a bot reply. Implementations must not block on playback
// failures; speech is best-effort.
type Speaker interface {
	Speak(ctx context.Context, text string, lang i18n.Language)
}

// Config configures a [Controller].
type Config struct {
	// Store is the session state the controller resolves turns into.
	// Must not be nil.
	Store *session.Store

	// Gateway runs the remote queries. Must not be nil; an unconfigured
	// gateway resolves every turn with the not-configured advisory.
	Gateway *gateway.Gateway

	// Speaker voices successful replies. May be nil to disable speech.
	Speaker Speaker

	// Metrics receives turn instrumentation. Defaults to
	// [observe.DefaultMetrics] when nil.
	Metrics *observe.Metrics

	// Logger defaults to [slog.Default] when nil.
	Logger *slog.Logger
}

// Controller coordinates in-flight turns against the session store.
// All methods are safe for concurrent use.
type Controller struct {
	store   *session.Store
	gw      *gateway.Gateway
	speaker Speaker
	metrics *observe.Metrics
	log     *slog.Logger

	mu       sync.Mutex
	inflight int

	wg sync.WaitGroup
}

// New creates a Controller from cfg.
func New(cfg Config) *Controller {
	m := cfg.Metrics
	if m == nil {
		m = observe.DefaultMetrics()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		store:   cfg.Store,
		gw:      cfg.Gateway,
		speaker: cfg.Speaker,
		metrics: m,
		log:     log,
	}
}

// Submit starts a new turn for text and returns immediately. Leading and
// trailing whitespace is trimmed; a submission that is empty after trimming
// is a no-op and returns false. The active language is captured here, so a
// language switch while the turn is in flight does not affect it.
func (c *Controller) Submit(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	lang := c.store.Language()

	c.mu.Lock()
	c.inflight++
	c.store.BeginTurn(text)
	c.mu.Unlock()
	c.metrics.TurnsInFlight.Add(ctx, 1)

	c.wg.Add(1)
	go c.resolve(ctx, text, lang)
	return true
}

// InFlight returns the number of outstanding turns.
func (c *Controller) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight
}

// Wait blocks until every outstanding turn has resolved.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// resolve runs the remote query and writes the outcome into the store.
func (c *Controller) resolve(ctx context.Context, text string, lang i18n.Language) {
	defer c.wg.Done()

	start := time.Now()
	reply, err := c.gw.Query(ctx, text, lang)
	c.metrics.GatewayDuration.Record(ctx, time.Since(start).Seconds())

	var (
		botText     string
		suggestions []string
		outcome     string
	)
	switch {
	case err == nil:
		botText = reply
		replies := suggest.Suggest(text, lang)
		suggestions = replies[:]
		outcome = "success"
	case errors.Is(err, gateway.ErrNotConfigured):
		botText = i18n.Text(i18n.KeyNotConfigured, lang)
		outcome = "not_configured"
		c.metrics.RecordGatewayError(ctx, "not_configured")
	default:
		botText = i18n.Text(i18n.KeyGenericError, lang)
		outcome = "error"
		c.metrics.RecordGatewayError(ctx, "remote")
		c.log.Error("turn failed", "error", err, "language", lang)
	}

	// Decrement and append under one lock so the loading flag clears
	// exactly once, with the final completion.
	c.mu.Lock()
	c.inflight--
	last := c.inflight == 0
	c.store.EndTurn(botText, suggestions, last)
	c.mu.Unlock()

	c.metrics.TurnsInFlight.Add(ctx, -1)
	c.metrics.RecordTurn(ctx, string(lang), outcome)

	if err == nil && c.speaker != nil {
		c.speaker.Speak(ctx, botText, lang)
	}
}
