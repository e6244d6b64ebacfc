// Package whisper implements stt.Recognizer against a local whisper.cpp
// server (POST /inference). One session records a single utterance with the
// host's capture command, encodes it as a WAV multipart upload, and emits the
// transcribed text as the session result.
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/ruralconnect/sahayak/pkg/provider/stt"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultCapture  = 6 * time.Second
	defaultSampleHz = 16000
)

// recorderBinaries lists supported capture commands in preference order.
var recorderBinaries = []string{"arecord", "rec"}

// Compile-time interface assertion.
var _ stt.Recognizer = (*Recognizer)(nil)

// Option is a functional option for configuring a Recognizer.
type Option func(*Recognizer)

// WithCaptureWindow sets the maximum utterance capture duration.
// Default is 6 s.
func WithCaptureWindow(d time.Duration) Option {
	return func(r *Recognizer) { r.captureWindow = d }
}

// WithTimeout sets the inference HTTP timeout. Default is 30 s.
func WithTimeout(d time.Duration) Option {
	return func(r *Recognizer) { r.httpClient.Timeout = d }
}

// Recognizer implements stt.Recognizer over a whisper.cpp server and a host
// audio capture command.
type Recognizer struct {
	serverURL     string
	recorder      string
	captureWindow time.Duration
	httpClient    *http.Client

	// capture records one utterance and returns WAV bytes. Replaceable in
	// tests.
	capture func(ctx context.Context, window time.Duration) ([]byte, error)
}

// New creates a Recognizer against the whisper server at serverURL. It probes
// for a supported capture command and fails when none is installed — the
// caller then treats voice input as unavailable.
func New(serverURL string, opts ...Option) (*Recognizer, error) {
	if serverURL == "" {
		return nil, errors.New("whisper: serverURL must not be empty")
	}

	var recorder string
	for _, bin := range recorderBinaries {
		if path, err := exec.LookPath(bin); err == nil {
			recorder = path
			break
		}
	}
	if recorder == "" {
		return nil, errors.New("whisper: no audio capture command found (need arecord or rec)")
	}

	r := &Recognizer{
		serverURL:     strings.TrimRight(serverURL, "/"),
		recorder:      recorder,
		captureWindow: defaultCapture,
		httpClient:    &http.Client{Timeout: defaultTimeout},
	}
	r.capture = r.captureUtterance
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Start implements stt.Recognizer.
func (r *Recognizer) Start(ctx context.Context, cfg stt.SessionConfig) (stt.SessionHandle, error) {
	sessCtx, cancel := context.WithCancel(ctx)
	s := &session{
		events: make(chan stt.Event, 3),
		cancel: cancel,
	}
	go s.run(sessCtx, r, cfg)
	return s, nil
}

// session is one in-flight recognition attempt.
type session struct {
	events chan stt.Event
	cancel context.CancelFunc

	mu      sync.Mutex
	stopped bool
}

// Events implements stt.SessionHandle.
func (s *session) Events() <-chan stt.Event { return s.events }

// Stop implements stt.SessionHandle. It suppresses any pending Result or
// Error emission; the End event still follows.
func (s *session) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.cancel()
}

// emit delivers ev unless the session was stopped. End events are always
// delivered.
func (s *session) emit(ev stt.Event) {
	s.mu.Lock()
	suppressed := s.stopped && ev.Kind != stt.EventEnd
	s.mu.Unlock()
	if suppressed {
		return
	}
	s.events <- ev
}

// run executes the capture → inference pipeline and closes the event channel.
func (s *session) run(ctx context.Context, r *Recognizer, cfg stt.SessionConfig) {
	defer close(s.events)
	defer s.cancel()

	wav, err := r.capture(ctx, r.captureWindow)
	if err != nil {
		s.emit(stt.Event{Kind: stt.EventError, Err: classifyCaptureErr(err)})
		s.emit(stt.Event{Kind: stt.EventEnd})
		return
	}

	text, err := r.infer(ctx, wav, cfg.Language)
	if err != nil {
		s.emit(stt.Event{Kind: stt.EventError, Err: err})
		s.emit(stt.Event{Kind: stt.EventEnd})
		return
	}

	s.emit(stt.Event{Kind: stt.EventResult, Transcript: strings.TrimSpace(text)})
	s.emit(stt.Event{Kind: stt.EventEnd})
}

// captureUtterance records one utterance via the host capture command into a
// temporary WAV file and returns its contents.
func (r *Recognizer) captureUtterance(ctx context.Context, window time.Duration) ([]byte, error) {
	f, err := os.CreateTemp("", "sahayak-*.wav")
	if err != nil {
		return nil, fmt.Errorf("whisper: temp file: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	secs := int(window.Round(time.Second).Seconds())
	if secs < 1 {
		secs = 1
	}

	var args []string
	if strings.HasSuffix(r.recorder, "rec") {
		args = []string{"-q", "-r", fmt.Sprint(defaultSampleHz), "-c", "1", path, "trim", "0", fmt.Sprint(secs)}
	} else {
		args = []string{"-q", "-f", "S16_LE", "-r", fmt.Sprint(defaultSampleHz), "-c", "1", "-d", fmt.Sprint(secs), path}
	}

	if err := exec.CommandContext(ctx, r.recorder, args...).Run(); err != nil {
		return nil, fmt.Errorf("whisper: capture: %w", err)
	}
	return os.ReadFile(path)
}

// infer POSTs wav to the whisper server's /inference endpoint as
// multipart/form-data and returns the transcribed text.
func (r *Recognizer) infer(ctx context.Context, wav []byte, language string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("whisper: multipart: %w", err)
	}
	if _, err := fw.Write(wav); err != nil {
		return "", fmt.Errorf("whisper: multipart write: %w", err)
	}
	if language != "" {
		// whisper.cpp expects a bare language code, not a full BCP-47 tag.
		lang, _, _ := strings.Cut(strings.ToLower(language), "-")
		if err := mw.WriteField("language", lang); err != nil {
			return "", fmt.Errorf("whisper: multipart field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("whisper: close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.serverURL+"/inference", &body)
	if err != nil {
		return "", fmt.Errorf("whisper: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("whisper: read response: %w", err)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("whisper: decode response: %w", err)
	}
	return result.Text, nil
}

// classifyCaptureErr maps capture failures onto the permission sentinel when
// the OS refused device access.
func classifyCaptureErr(err error) error {
	if errors.Is(err, os.ErrPermission) || strings.Contains(err.Error(), "Permission denied") {
		return fmt.Errorf("%w: %v", stt.ErrPermissionDenied, err)
	}
	return err
}
