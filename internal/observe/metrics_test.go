package observe

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

// collect gathers all metric data from the reader.
func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

// findMetric searches for a metric by name across all scope metrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestNewMetrics_CreatesWithoutError(t *testing.T) {
	m, _ := newTestMetrics(t)
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
}

func TestHistogramObservation(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	histograms := []struct {
		name string
		h    metric.Float64Histogram
	}{
		{"sahayak.gateway.duration", m.GatewayDuration},
		{"sahayak.stt.duration", m.STTDuration},
		{"sahayak.tts.duration", m.TTSDuration},
	}

	for _, tc := range histograms {
		tc.h.Record(ctx, 0.123)
		tc.h.Record(ctx, 0.456)
	}

	rm := collect(t, reader)

	for _, tc := range histograms {
		t.Run(tc.name, func(t *testing.T) {
			met := findMetric(rm, tc.name)
			if met == nil {
				t.Fatalf("metric %q not found", tc.name)
			}
			hist, ok := met.Data.(metricdata.Histogram[float64])
			if !ok {
				t.Fatalf("metric %q is not a histogram", tc.name)
			}
			if len(hist.DataPoints) == 0 {
				t.Fatalf("metric %q has no data points", tc.name)
			}
			if got := hist.DataPoints[0].Count; got != 2 {
				t.Errorf("metric %q count = %d, want 2", tc.name, got)
			}
		})
	}
}

func TestRecordTurn(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordTurn(ctx, "kannada", "success")
	m.RecordTurn(ctx, "kannada", "success")
	m.RecordTurn(ctx, "english", "error")

	rm := collect(t, reader)
	met := findMetric(rm, "sahayak.turns")
	if met == nil {
		t.Fatal("sahayak.turns not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("sahayak.turns is not a sum")
	}
	if len(sum.DataPoints) != 2 {
		t.Fatalf("got %d data points, want 2 attribute sets", len(sum.DataPoints))
	}
	for _, dp := range sum.DataPoints {
		lang, _ := dp.Attributes.Value(attribute.Key("language"))
		outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
		switch {
		case lang.AsString() == "kannada" && outcome.AsString() == "success":
			if dp.Value != 2 {
				t.Errorf("kannada/success = %d, want 2", dp.Value)
			}
		case lang.AsString() == "english" && outcome.AsString() == "error":
			if dp.Value != 1 {
				t.Errorf("english/error = %d, want 1", dp.Value)
			}
		default:
			t.Errorf("unexpected attribute set %v/%v", lang.AsString(), outcome.AsString())
		}
	}
}

func TestRecordSpeechOutputAndGatewayError(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordSpeechOutput(ctx, "remote", "ok")
	m.RecordGatewayError(ctx, "remote")

	rm := collect(t, reader)
	for _, name := range []string{"sahayak.speech.outputs", "sahayak.gateway.errors"} {
		met := findMetric(rm, name)
		if met == nil {
			t.Fatalf("metric %q not found", name)
		}
		sum, ok := met.Data.(metricdata.Sum[int64])
		if !ok || len(sum.DataPoints) == 0 {
			t.Fatalf("metric %q has no counter data", name)
		}
		if sum.DataPoints[0].Value != 1 {
			t.Errorf("metric %q = %d, want 1", name, sum.DataPoints[0].Value)
		}
	}
}

func TestUpDownCounters(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.TurnsInFlight.Add(ctx, 1)
	m.TurnsInFlight.Add(ctx, 1)
	m.TurnsInFlight.Add(ctx, -1)
	m.VoiceSessionsActive.Add(ctx, 1)

	rm := collect(t, reader)

	inFlight := findMetric(rm, "sahayak.turns_in_flight")
	if inFlight == nil {
		t.Fatal("sahayak.turns_in_flight not found")
	}
	sum, ok := inFlight.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) == 0 {
		t.Fatal("sahayak.turns_in_flight has no data")
	}
	if sum.DataPoints[0].Value != 1 {
		t.Errorf("turns_in_flight = %d, want 1", sum.DataPoints[0].Value)
	}
}

func TestDefaultMetricsIsSingleton(t *testing.T) {
	a := DefaultMetrics()
	b := DefaultMetrics()
	if a != b {
		t.Error("DefaultMetrics must return the same instance")
	}
}
