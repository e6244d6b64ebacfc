package resilience_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ruralconnect/sahayak/internal/resilience"
)

var errBoom = errors.New("boom")

func fail() error    { return errBoom }
func succeed() error { return nil }

func TestBreakerOpensAfterThreshold(t *testing.T) {
	t.Parallel()
	b := resilience.NewBreaker(resilience.BreakerConfig{Name: "test", Threshold: 3})

	for i := 0; i < 3; i++ {
		if err := b.Do(fail); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: err = %v, want %v", i, err, errBoom)
		}
	}
	if got := b.State(); got != resilience.Open {
		t.Fatalf("state = %v, want open", got)
	}
	if err := b.Do(succeed); !errors.Is(err, resilience.ErrOpen) {
		t.Errorf("err = %v, want ErrOpen", err)
	}
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	t.Parallel()
	b := resilience.NewBreaker(resilience.BreakerConfig{Threshold: 2})

	_ = b.Do(fail)
	_ = b.Do(succeed)
	_ = b.Do(fail)

	if got := b.State(); got != resilience.Closed {
		t.Errorf("state = %v, want closed", got)
	}
}

func TestBreakerClosesAfterSuccessfulProbes(t *testing.T) {
	t.Parallel()
	b := resilience.NewBreaker(resilience.BreakerConfig{
		Threshold:   1,
		Cooldown:    10 * time.Millisecond,
		ProbeBudget: 2,
	})

	_ = b.Do(fail)
	if got := b.State(); got != resilience.Open {
		t.Fatalf("state = %v, want open", got)
	}

	time.Sleep(20 * time.Millisecond)
	if got := b.State(); got != resilience.HalfOpen {
		t.Fatalf("state after cooldown = %v, want half-open", got)
	}

	for i := 0; i < 2; i++ {
		if err := b.Do(succeed); err != nil {
			t.Fatalf("probe %d: %v", i, err)
		}
	}
	if got := b.State(); got != resilience.Closed {
		t.Errorf("state = %v, want closed", got)
	}
}

func TestBreakerReopensOnFailedProbe(t *testing.T) {
	t.Parallel()
	b := resilience.NewBreaker(resilience.BreakerConfig{
		Threshold:   1,
		Cooldown:    10 * time.Millisecond,
		ProbeBudget: 3,
	})

	_ = b.Do(fail)
	time.Sleep(20 * time.Millisecond)

	if err := b.Do(fail); !errors.Is(err, errBoom) {
		t.Fatalf("probe err = %v, want %v", err, errBoom)
	}
	if err := b.Do(succeed); !errors.Is(err, resilience.ErrOpen) {
		t.Errorf("err after failed probe = %v, want ErrOpen", err)
	}
}

func TestBreakerReset(t *testing.T) {
	t.Parallel()
	b := resilience.NewBreaker(resilience.BreakerConfig{Threshold: 1})

	_ = b.Do(fail)
	b.Reset()

	if got := b.State(); got != resilience.Closed {
		t.Fatalf("state = %v, want closed", got)
	}
	if err := b.Do(succeed); err != nil {
		t.Errorf("Do after reset: %v", err)
	}
}
