// Package llm defines the Provider interface for text-generation backends.
//
// A provider wraps a remote model API (Google Gemini, OpenAI, a local Ollama
// instance, …) behind a single Complete call so the query gateway never
// couples to a specific SDK. Implementations must be safe for concurrent use
// and must propagate context cancellation promptly.
package llm

import "context"

// CompletionRequest carries everything the model needs for one completion.
type CompletionRequest struct {
	// Prompt is the full instruction-augmented prompt text.
	Prompt string

	// Temperature controls output randomness in [0.0, 2.0].
	Temperature float64

	// TopK limits sampling to the k most likely tokens. Zero means provider
	// default. Providers without top-k sampling ignore this field.
	TopK int

	// TopP is the nucleus sampling threshold in (0.0, 1.0]. Zero means
	// provider default.
	TopP float64

	// MaxTokens caps the number of generated tokens. Zero means provider
	// default.
	MaxTokens int
}

// CompletionResponse is the model's reply to a CompletionRequest.
type CompletionResponse struct {
	// Text is the full generated reply.
	Text string
}

// Provider is the abstraction over any text-generation backend.
type Provider interface {
	// Complete sends req to the model and waits for the full response.
	// It performs exactly one attempt; retry policy belongs to callers.
	//
	// Implementations must never include access credentials in returned
	// errors.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
