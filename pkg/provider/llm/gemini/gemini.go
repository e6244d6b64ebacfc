// Package gemini provides a Google Generative Language API backed
// implementation of llm.Provider using the generateContent REST endpoint.
//
// The API key is sent via the x-goog-api-key header and is scrubbed from
// every error the provider returns, so a credential can never leak into the
// message log or the application log through this package.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ruralconnect/sahayak/pkg/provider/llm"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 60 * time.Second
)

// Compile-time interface assertion.
var _ llm.Provider = (*Provider)(nil)

// Option is a functional option for configuring a Provider.
type Option func(*Provider)

// WithModel sets the model name (e.g., "gemini-1.5-flash").
func WithModel(model string) Option {
	return func(p *Provider) { p.model = model }
}

// WithBaseURL overrides the API base URL. Useful for tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithTimeout sets the per-request HTTP timeout. Default is 60 s.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) { p.httpClient.Timeout = d }
}

// Provider implements llm.Provider over the generateContent REST API.
type Provider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// New creates a Gemini Provider. apiKey must be non-empty.
func New(apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: apiKey must not be empty")
	}
	p := &Provider{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// ---- wire types ----

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	TopK            int     `json:"topK,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Complete implements llm.Provider. It issues a single generateContent call
// and extracts the first candidate's first text part.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: req.Prompt}}}},
	}
	if req.Temperature != 0 || req.TopK != 0 || req.TopP != 0 || req.MaxTokens != 0 {
		body.GenerationConfig = &generationConfig{
			Temperature:     req.Temperature,
			TopK:            req.TopK,
			TopP:            req.TopP,
			MaxOutputTokens: req.MaxTokens,
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", p.scrub(err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: request: %w", p.scrub(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", p.scrub(err))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if out.Error != nil && out.Error.Status != "" {
			return nil, fmt.Errorf("gemini: unexpected status %d (%s)", resp.StatusCode, out.Error.Status)
		}
		return nil, fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}

	if len(out.Candidates) == 0 ||
		len(out.Candidates[0].Content.Parts) == 0 ||
		out.Candidates[0].Content.Parts[0].Text == "" {
		return nil, errors.New("gemini: response contains no candidate text")
	}

	return &llm.CompletionResponse{Text: out.Candidates[0].Content.Parts[0].Text}, nil
}

// scrub removes the API key from err's text. Transport errors embed the
// request URL, which would carry the key if it were ever passed as a query
// parameter; scrubbing unconditionally keeps the guarantee independent of
// how the key is transmitted.
func (p *Provider) scrub(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ReplaceAll(err.Error(), p.apiKey, "[redacted]")
	return errors.New(msg)
}
