package whisper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ruralconnect/sahayak/pkg/provider/stt"
)

// newTestRecognizer builds a Recognizer wired to srv with capture stubbed out,
// bypassing the host recorder probe.
func newTestRecognizer(srv *httptest.Server, capture func(context.Context, time.Duration) ([]byte, error)) *Recognizer {
	r := &Recognizer{
		serverURL:     srv.URL,
		recorder:      "arecord",
		captureWindow: defaultCapture,
		httpClient:    srv.Client(),
	}
	r.capture = capture
	return r
}

// drain collects every event until the channel closes.
func drain(t *testing.T, h stt.SessionHandle) []stt.Event {
	t.Helper()
	var events []stt.Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-h.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("session did not end; got %d events so far", len(events))
		}
	}
}

func TestStartTranscribesUtterance(t *testing.T) {
	t.Parallel()

	var gotLanguage string
	var gotFileLen int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inference" {
			t.Errorf("path = %q, want /inference", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotLanguage = r.FormValue("language")
		f, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		buf := make([]byte, 64)
		n, _ := f.Read(buf)
		gotFileLen = n
		w.Write([]byte(`{"text": " show me rice prices \n"}`))
	}))
	defer srv.Close()

	r := newTestRecognizer(srv, func(context.Context, time.Duration) ([]byte, error) {
		return []byte("RIFFfakewav"), nil
	})

	h, err := r.Start(context.Background(), stt.SessionConfig{Language: "kn-IN"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	events := drain(t, h)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %v", len(events), events)
	}
	if events[0].Kind != stt.EventResult || events[0].Transcript != "show me rice prices" {
		t.Errorf("first event = %+v, want trimmed result", events[0])
	}
	if events[1].Kind != stt.EventEnd {
		t.Errorf("last event kind = %v, want EventEnd", events[1].Kind)
	}
	if gotLanguage != "kn" {
		t.Errorf("language field = %q, want bare code %q", gotLanguage, "kn")
	}
	if gotFileLen == 0 {
		t.Error("server received an empty audio upload")
	}
}

func TestStartCapturePermissionDenied(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inference must not be called when capture fails")
	}))
	defer srv.Close()

	r := newTestRecognizer(srv, func(context.Context, time.Duration) ([]byte, error) {
		return nil, os.ErrPermission
	})

	h, err := r.Start(context.Background(), stt.SessionConfig{Language: "en-IN"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	events := drain(t, h)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %v", len(events), events)
	}
	if events[0].Kind != stt.EventError {
		t.Fatalf("first event kind = %v, want EventError", events[0].Kind)
	}
	if !errors.Is(events[0].Err, stt.ErrPermissionDenied) {
		t.Errorf("error = %v, want ErrPermissionDenied", events[0].Err)
	}
	if events[1].Kind != stt.EventEnd {
		t.Errorf("last event kind = %v, want EventEnd", events[1].Kind)
	}
}

func TestStartServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := newTestRecognizer(srv, func(context.Context, time.Duration) ([]byte, error) {
		return []byte("RIFFfakewav"), nil
	})

	h, err := r.Start(context.Background(), stt.SessionConfig{Language: "hi-IN"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	events := drain(t, h)

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %v", len(events), events)
	}
	if events[0].Kind != stt.EventError || events[0].Err == nil {
		t.Errorf("first event = %+v, want EventError with error", events[0])
	}
	if events[1].Kind != stt.EventEnd {
		t.Errorf("last event kind = %v, want EventEnd", events[1].Kind)
	}
}

func TestStopSuppressesResult(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "late result"}`))
	}))
	defer srv.Close()

	captureStarted := make(chan struct{})
	release := make(chan struct{})
	r := newTestRecognizer(srv, func(ctx context.Context, _ time.Duration) ([]byte, error) {
		close(captureStarted)
		<-release
		return []byte("RIFFfakewav"), nil
	})

	h, err := r.Start(context.Background(), stt.SessionConfig{Language: "en-IN"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	<-captureStarted
	h.Stop()
	close(release)

	events := drain(t, h)
	for _, ev := range events {
		if ev.Kind == stt.EventResult {
			t.Errorf("got a result after Stop: %+v", ev)
		}
	}
	if len(events) == 0 || events[len(events)-1].Kind != stt.EventEnd {
		t.Errorf("session must still end after Stop; events = %v", events)
	}
}

func TestNewRequiresServerURL(t *testing.T) {
	t.Parallel()

	if _, err := New(""); err == nil {
		t.Fatal("New(\"\") must fail")
	}
}
