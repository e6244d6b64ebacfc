package resilience_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ruralconnect/sahayak/internal/resilience"
	"github.com/ruralconnect/sahayak/pkg/provider/llm"
	llmmock "github.com/ruralconnect/sahayak/pkg/provider/llm/mock"
	"github.com/ruralconnect/sahayak/pkg/provider/tts"
	ttsmock "github.com/ruralconnect/sahayak/pkg/provider/tts/mock"
)

func TestLLMFailsOverToBackup(t *testing.T) {
	t.Parallel()
	primary := &llmmock.Provider{Err: errBoom}
	backup := &llmmock.Provider{Response: &llm.CompletionResponse{Text: "from backup"}}

	r := resilience.NewLLM("primary", primary, resilience.BreakerConfig{})
	r.Add("backup", backup)

	resp, err := r.Complete(context.Background(), llm.CompletionRequest{Prompt: "hello"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Text != "from backup" {
		t.Errorf("Text = %q, want %q", resp.Text, "from backup")
	}
	if primary.CallCount() != 1 {
		t.Errorf("primary calls = %d, want 1", primary.CallCount())
	}
}

func TestLLMReportsExhaustion(t *testing.T) {
	t.Parallel()
	primary := &llmmock.Provider{Err: errBoom}
	r := resilience.NewLLM("primary", primary, resilience.BreakerConfig{})

	_, err := r.Complete(context.Background(), llm.CompletionRequest{Prompt: "hello"})
	if !errors.Is(err, resilience.ErrExhausted) {
		t.Errorf("err = %v, want ErrExhausted", err)
	}
}

func TestTTSFailsOverToBackup(t *testing.T) {
	t.Parallel()
	primary := &ttsmock.Provider{Err: errBoom}
	backup := &ttsmock.Provider{Audio: []byte("mp3")}

	r := resilience.NewTTS("primary", primary, resilience.BreakerConfig{})
	r.Add("backup", backup)

	voice := tts.VoiceProfile{LanguageCode: "kn-IN", Gender: "FEMALE", Encoding: "MP3"}
	audio, err := r.Synthesize(context.Background(), "ನಮಸ್ಕಾರ", voice)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "mp3" {
		t.Errorf("audio = %q, want mp3", audio)
	}
	if backup.CallCount() != 1 {
		t.Errorf("backup calls = %d, want 1", backup.CallCount())
	}
}
