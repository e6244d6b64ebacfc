// Package mock provides a test double for the tts.Provider interface.
//
// Example:
//
//	p := &mock.Provider{Audio: []byte("mp3")}
//	audio, err := p.Synthesize(ctx, "hello", voice)
package mock

import (
	"context"
	"sync"

	"github.com/ruralconnect/sahayak/pkg/provider/tts"
)

// SynthesizeCall records a single invocation of Synthesize.
type SynthesizeCall struct {
	// Ctx is the context passed to Synthesize.
	Ctx context.Context
	// Text is the utterance passed to Synthesize.
	Text string
	// Voice is the VoiceProfile passed to Synthesize.
	Voice tts.VoiceProfile
}

// Provider is a mock implementation of tts.Provider.
type Provider struct {
	mu sync.Mutex

	// Audio is returned by Synthesize when Err is nil.
	Audio []byte

	// Err, if non-nil, is returned as the error from Synthesize.
	Err error

	// Calls records every invocation of Synthesize in order.
	Calls []SynthesizeCall
}

// Synthesize implements tts.Provider.
func (p *Provider) Synthesize(ctx context.Context, text string, voice tts.VoiceProfile) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls = append(p.Calls, SynthesizeCall{Ctx: ctx, Text: text, Voice: voice})
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Audio, nil
}

// CallCount returns the number of recorded Synthesize calls.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Calls)
}
