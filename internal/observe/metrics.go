// Package observe provides application-wide observability primitives for
// Sahayak: OpenTelemetry metrics, tracing helpers, structured logging, and
// HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Sahayak metrics.
const meterName = "github.com/ruralconnect/sahayak"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// GatewayDuration tracks remote query gateway latency.
	GatewayDuration metric.Float64Histogram

	// STTDuration tracks one-shot voice recognition latency, capture
	// included.
	STTDuration metric.Float64Histogram

	// TTSDuration tracks text-to-speech synthesis latency.
	TTSDuration metric.Float64Histogram

	// --- Counters ---

	// Turns counts conversational turns. Use with attributes:
	//   attribute.String("language", ...), attribute.String("outcome", ...)
	Turns metric.Int64Counter

	// SpeechOutputs counts spoken bot replies. Use with attributes:
	//   attribute.String("route", ...), attribute.String("status", ...)
	SpeechOutputs metric.Int64Counter

	// GatewayErrors counts remote query failures. Use with attribute:
	//   attribute.String("reason", ...)
	GatewayErrors metric.Int64Counter

	// --- Gauges ---

	// TurnsInFlight tracks the number of outstanding remote turns.
	TurnsInFlight metric.Int64UpDownCounter

	// VoiceSessionsActive tracks the number of live voice input sessions.
	VoiceSessionsActive metric.Int64UpDownCounter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// remote inference and speech synthesis latencies.
var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.GatewayDuration, err = m.Float64Histogram("sahayak.gateway.duration",
		metric.WithDescription("Latency of remote query gateway calls."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.STTDuration, err = m.Float64Histogram("sahayak.stt.duration",
		metric.WithDescription("Latency of one-shot voice recognition."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.TTSDuration, err = m.Float64Histogram("sahayak.tts.duration",
		metric.WithDescription("Latency of text-to-speech synthesis."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.Turns, err = m.Int64Counter("sahayak.turns",
		metric.WithDescription("Total conversational turns by language and outcome."),
	); err != nil {
		return nil, err
	}
	if met.SpeechOutputs, err = m.Int64Counter("sahayak.speech.outputs",
		metric.WithDescription("Total spoken bot replies by route and status."),
	); err != nil {
		return nil, err
	}
	if met.GatewayErrors, err = m.Int64Counter("sahayak.gateway.errors",
		metric.WithDescription("Total remote query failures by reason."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.TurnsInFlight, err = m.Int64UpDownCounter("sahayak.turns_in_flight",
		metric.WithDescription("Number of outstanding remote turns."),
	); err != nil {
		return nil, err
	}
	if met.VoiceSessionsActive, err = m.Int64UpDownCounter("sahayak.voice_sessions_active",
		metric.WithDescription("Number of live voice input sessions."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("sahayak.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordTurn records a completed conversational turn.
func (m *Metrics) RecordTurn(ctx context.Context, language, outcome string) {
	m.Turns.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("language", language),
			attribute.String("outcome", outcome),
		),
	)
}

// RecordSpeechOutput records a spoken bot reply.
func (m *Metrics) RecordSpeechOutput(ctx context.Context, route, status string) {
	m.SpeechOutputs.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("route", route),
			attribute.String("status", status),
		),
	)
}

// RecordGatewayError records a remote query failure.
func (m *Metrics) RecordGatewayError(ctx context.Context, reason string) {
	m.GatewayErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("reason", reason)),
	)
}
