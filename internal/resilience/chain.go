package resilience

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrExhausted is returned when every entry of a [Chain] failed or had an
// open breaker.
var ErrExhausted = errors.New("resilience: all backends failed")

type chainEntry[T any] struct {
	name    string
	value   T
	breaker *Breaker
}

// Chain holds a primary backend and zero or more backups of the same
// provider type, each behind its own [Breaker]. Entries are tried in
// registration order.
type Chain[T any] struct {
	entries []chainEntry[T]
	cfg     BreakerConfig
}

// NewChain builds a chain with primary as its first entry. The breaker
// config is reused for every later [Chain.Add], with the entry name
// substituted.
func NewChain[T any](name string, primary T, cfg BreakerConfig) *Chain[T] {
	c := &Chain[T]{cfg: cfg}
	c.Add(name, primary)
	return c
}

// Add appends a backup backend tried after all earlier entries.
func (c *Chain[T]) Add(name string, value T) {
	cfg := c.cfg
	cfg.Name = name
	c.entries = append(c.entries, chainEntry[T]{
		name:    name,
		value:   value,
		breaker: NewBreaker(cfg),
	})
}

// Try runs fn against each entry until one succeeds. Entries with an open
// breaker are skipped. When everything fails the last error is wrapped in
// [ErrExhausted]. A package-level function because methods cannot introduce
// the result type parameter.
func Try[T, R any](c *Chain[T], fn func(T) (R, error)) (R, error) {
	var (
		lastErr error
		zero    R
	)
	for i := range c.entries {
		e := &c.entries[i]
		var out R
		err := e.breaker.Do(func() error {
			var callErr error
			out, callErr = fn(e.value)
			return callErr
		})
		if err == nil {
			return out, nil
		}
		lastErr = err
		if errors.Is(err, ErrOpen) {
			slog.Debug("skipping backend, breaker open", "backend", e.name)
		} else {
			slog.Warn("backend failed, trying next", "backend", e.name, "error", err)
		}
	}
	return zero, fmt.Errorf("%w: %v", ErrExhausted, lastErr)
}
