// Package gateway is the adapter boundary to the remote text-generation
// service. It augments the user's question with the rural-assistance domain
// preamble and the target language, applies the fixed sampling configuration,
// and converts transport-level failures into the typed errors the turn
// controller localises.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ruralconnect/sahayak/internal/i18n"
	"github.com/ruralconnect/sahayak/pkg/provider/llm"
)

// ErrNotConfigured is returned by Query when no model provider is configured.
// It is detected before any network attempt.
var ErrNotConfigured = errors.New("gateway: model credential not configured")

// RemoteError wraps a failure from the text-generation service: a non-success
// status, a malformed response, or a transport failure.
type RemoteError struct {
	// Err is the underlying provider error.
	Err error
}

func (e *RemoteError) Error() string { return "gateway: remote query failed: " + e.Err.Error() }

func (e *RemoteError) Unwrap() error { return e.Err }

// Fixed sampling configuration for every query.
const (
	temperature     = 0.7
	topK            = 40
	topP            = 0.95
	maxOutputTokens = 1024
)

// Gateway sends augmented prompts to a text-generation provider.
// It performs exactly one attempt per Query and never retries.
type Gateway struct {
	provider llm.Provider
}

// New creates a Gateway over the given provider. Pass nil when no credential
// is configured; every Query then fails fast with [ErrNotConfigured].
func New(provider llm.Provider) *Gateway {
	return &Gateway{provider: provider}
}

// Configured reports whether the gateway has a usable provider.
func (g *Gateway) Configured() bool { return g.provider != nil }

// Query submits promptText in the context of lang and returns the model's
// reply text. Failures are [ErrNotConfigured] or a [*RemoteError]; the access
// credential never appears in either.
func (g *Gateway) Query(ctx context.Context, promptText string, lang i18n.Language) (string, error) {
	if g.provider == nil {
		return "", ErrNotConfigured
	}

	resp, err := g.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:      buildPrompt(promptText, lang),
		Temperature: temperature,
		TopK:        topK,
		TopP:        topP,
		MaxTokens:   maxOutputTokens,
	})
	if err != nil {
		return "", &RemoteError{Err: err}
	}
	if resp == nil || resp.Text == "" {
		return "", &RemoteError{Err: errors.New("empty response text")}
	}
	return resp.Text, nil
}

// buildPrompt wraps the user's question in the fixed domain-context preamble
// with the target language name interpolated.
func buildPrompt(question string, lang i18n.Language) string {
	name := lang.DisplayName()

	var sb strings.Builder
	sb.WriteString("You are an AI assistant designed to help rural Indian communities including farmers, MSME owners, SHG members, and rural youth.\n\n")
	fmt.Fprintf(&sb, "Context: You provide helpful, practical advice in %s about:\n", name)
	sb.WriteString("- Agricultural practices and crop advice\n")
	sb.WriteString("- Market prices and market information\n")
	sb.WriteString("- Government schemes and loan options\n")
	sb.WriteString("- Skill development and business tips\n")
	sb.WriteString("- Weather and farming conditions\n")
	sb.WriteString("- SHG (Self Help Group) information\n\n")
	fmt.Fprintf(&sb, "User's question: %s\n\n", question)
	fmt.Fprintf(&sb, "Please provide a helpful, practical response in %s. ", name)
	sb.WriteString("Keep responses concise but informative. If the user asks about market prices, weather, or loan rates, provide general guidance and mention that specific data may vary by location.")
	return sb.String()
}
