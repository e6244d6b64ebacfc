package device

import (
	"context"
	"errors"
	"testing"
	"time"
)

const sampleCatalog = `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  en-IN           --/M      English_(India)   gmw/en-IN
 5  hi              --/M      Hindi             inc/hi
 5  kn              --/M      Kannada           dra/kn
`

// newTestEngine returns an engine whose exec calls are stubbed.
func newTestEngine(catalog []byte, listErr error) *Engine {
	e := newEngine("espeak-ng")
	e.list = func(string) ([]byte, error) { return catalog, listErr }
	e.run = func(context.Context, string, ...string) error { return nil }
	return e
}

func TestCatalogLoad(t *testing.T) {
	t.Parallel()

	e := newTestEngine([]byte(sampleCatalog), nil)
	if e.Loaded() {
		t.Fatal("catalogue must not be loaded before loadCatalog")
	}

	e.loadCatalog()

	select {
	case <-e.Ready():
	case <-time.After(time.Second):
		t.Fatal("Ready channel not closed after catalogue load")
	}
	if !e.Loaded() {
		t.Error("Loaded() = false after catalogue load")
	}

	// Full tag match and base-language fallback.
	if !e.HasVoice("en-IN") {
		t.Error("HasVoice(en-IN) = false")
	}
	if !e.HasVoice("hi-IN") {
		t.Error("HasVoice(hi-IN) = false, want base-language fallback to hi")
	}
	if e.HasVoice("ta-IN") {
		t.Error("HasVoice(ta-IN) = true for absent voice")
	}
}

// TestCatalogLoadFailure verifies that a listing failure still closes Ready,
// so a deferred utterance can never wait forever.
func TestCatalogLoadFailure(t *testing.T) {
	t.Parallel()

	e := newTestEngine(nil, errors.New("exec failed"))
	e.loadCatalog()

	select {
	case <-e.Ready():
	case <-time.After(time.Second):
		t.Fatal("Ready channel not closed after failed catalogue load")
	}
	if e.HasVoice("en-IN") {
		t.Error("empty catalogue must report no voices")
	}
}

func TestSpeakLocale(t *testing.T) {
	t.Parallel()

	var gotArgs []string
	e := newTestEngine([]byte(sampleCatalog), nil)
	e.run = func(_ context.Context, _ string, args ...string) error {
		gotArgs = args
		return nil
	}

	if err := e.SpeakLocale(context.Background(), "नमस्ते", "hi-IN"); err != nil {
		t.Fatalf("SpeakLocale: %v", err)
	}
	if len(gotArgs) != 3 || gotArgs[0] != "-v" || gotArgs[1] != "hi-in" || gotArgs[2] != "नमस्ते" {
		t.Errorf("unexpected args: %v", gotArgs)
	}

	if err := e.SpeakLocale(context.Background(), "   ", "hi-IN"); err == nil {
		t.Error("empty text must fail")
	}
}
