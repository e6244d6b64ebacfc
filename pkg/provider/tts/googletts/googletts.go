// Package googletts provides a Google Cloud Text-to-Speech backed
// implementation of tts.Provider using the text:synthesize REST endpoint.
//
// The response carries base64-encoded audio in the audioContent field; the
// provider decodes it and returns the raw encoded audio bytes. The API key is
// sent via the x-goog-api-key header and scrubbed from every returned error.
package googletts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ruralconnect/sahayak/pkg/provider/tts"
)

const (
	defaultBaseURL = "https://texttospeech.googleapis.com/v1"
	defaultTimeout = 30 * time.Second
)

// Compile-time interface assertion.
var _ tts.Provider = (*Provider)(nil)

// Option is a functional option for configuring a Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL. Useful for tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithTimeout sets the per-request HTTP timeout. Default is 30 s.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) { p.httpClient.Timeout = d }
}

// Provider implements tts.Provider over the Google Cloud TTS REST API.
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a Google Cloud TTS Provider. apiKey must be non-empty.
func New(apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("googletts: apiKey must not be empty")
	}
	p := &Provider{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// ---- wire types ----

type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		SSMLGender   string `json:"ssmlGender"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize implements tts.Provider.
func (p *Provider) Synthesize(ctx context.Context, text string, voice tts.VoiceProfile) ([]byte, error) {
	if text == "" {
		return nil, errors.New("googletts: text must not be empty")
	}

	var body synthesizeRequest
	body.Input.Text = text
	body.Voice.LanguageCode = voice.LanguageCode
	body.Voice.SSMLGender = voice.Gender
	body.AudioConfig.AudioEncoding = voice.Encoding

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("googletts: encode request: %w", err)
	}

	url := p.baseURL + "/text:synthesize"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("googletts: build request: %w", p.scrub(err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("googletts: request: %w", p.scrub(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("googletts: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("googletts: read response: %w", p.scrub(err))
	}

	var out synthesizeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("googletts: decode response: %w", err)
	}
	if out.AudioContent == "" {
		return nil, errors.New("googletts: no audio content in response")
	}

	audio, err := base64.StdEncoding.DecodeString(out.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("googletts: decode audio: %w", err)
	}
	return audio, nil
}

// scrub removes the API key from err's text so a credential can never reach
// logs or the message log through this provider.
func (p *Provider) scrub(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(strings.ReplaceAll(err.Error(), p.apiKey, "[redacted]"))
}
