package resilience

import (
	"context"

	"github.com/ruralconnect/sahayak/pkg/provider/llm"
	"github.com/ruralconnect/sahayak/pkg/provider/tts"
)

// LLM implements [llm.Provider] with per-backend circuit breakers and
// failover. Wrap the configured model provider in one of these so a flaky
// backend degrades to the not-configured advisory instead of hammering a
// dead endpoint on every turn.
type LLM struct {
	chain *Chain[llm.Provider]
}

var _ llm.Provider = (*LLM)(nil)

// NewLLM wraps primary as the preferred model backend.
func NewLLM(name string, primary llm.Provider, cfg BreakerConfig) *LLM {
	return &LLM{chain: NewChain(name, primary, cfg)}
}

// Add registers a backup model backend tried when earlier ones fail.
func (r *LLM) Add(name string, p llm.Provider) {
	r.chain.Add(name, p)
}

// Complete forwards to the first healthy backend.
func (r *LLM) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return Try(r.chain, func(p llm.Provider) (*llm.CompletionResponse, error) {
		return p.Complete(ctx, req)
	})
}

// TTS implements [tts.Provider] with per-backend circuit breakers and
// failover.
type TTS struct {
	chain *Chain[tts.Provider]
}

var _ tts.Provider = (*TTS)(nil)

// NewTTS wraps primary as the preferred synthesis backend.
func NewTTS(name string, primary tts.Provider, cfg BreakerConfig) *TTS {
	return &TTS{chain: NewChain(name, primary, cfg)}
}

// Add registers a backup synthesis backend.
func (r *TTS) Add(name string, p tts.Provider) {
	r.chain.Add(name, p)
}

// Synthesize forwards to the first healthy backend.
func (r *TTS) Synthesize(ctx context.Context, text string, voice tts.VoiceProfile) ([]byte, error) {
	return Try(r.chain, func(p tts.Provider) ([]byte, error) {
		return p.Synthesize(ctx, text, voice)
	})
}
