// Package mock provides a test double for the llm.Provider interface.
//
// Use Provider in unit tests to verify the prompts the gateway builds and to
// feed controlled responses without a live backend.
//
// Example:
//
//	p := &mock.Provider{
//	    Response: &llm.CompletionResponse{Text: "Hello!"},
//	}
//	resp, err := p.Complete(ctx, req)
package mock

import (
	"context"
	"sync"

	"github.com/ruralconnect/sahayak/pkg/provider/llm"
)

// CompleteCall records a single invocation of Complete.
type CompleteCall struct {
	// Ctx is the context passed to Complete.
	Ctx context.Context
	// Req is the CompletionRequest passed to Complete.
	Req llm.CompletionRequest
}

// Provider is a mock implementation of llm.Provider.
// Zero values cause Complete to return (nil, nil). Set Err to inject a failure.
type Provider struct {
	mu sync.Mutex

	// Response is returned by Complete when Err is nil.
	Response *llm.CompletionResponse

	// Err, if non-nil, is returned as the error from Complete.
	Err error

	// Delay, if non-nil, is closed by the test to release blocked Complete
	// calls. Use it to hold a turn in flight.
	Delay chan struct{}

	// Calls records every invocation of Complete in order.
	Calls []CompleteCall
}

// Complete implements llm.Provider.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	p.Calls = append(p.Calls, CompleteCall{Ctx: ctx, Req: req})
	delay := p.Delay
	p.mu.Unlock()

	if delay != nil {
		select {
		case <-delay:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Response, nil
}

// CallCount returns the number of recorded Complete calls.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Calls)
}
