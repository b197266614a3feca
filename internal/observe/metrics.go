// Package observe provides the OpenTelemetry metrics and structured logging
// used by the autocorrect service.
//
// Tests should build a [Metrics] with [NewMetrics] over their own
// [metric.MeterProvider] rather than use [DefaultMetrics].
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "autocorrect"

// Status attribute values.
const (
	StatusOK                  = "ok"
	StatusUnsupportedLanguage = "unsupported_language"
	StatusResourceError       = "resource_error"
	StatusError               = "error"
)

// Metrics holds the metric instruments of the service. All fields are safe
// for concurrent use.
type Metrics struct {
	// Corrections counts correction calls by language and status.
	Corrections metric.Int64Counter

	// TokensReplaced counts words changed by correction, by language.
	TokensReplaced metric.Int64Counter

	// CorrectionDuration tracks the latency of one correction call.
	CorrectionDuration metric.Float64Histogram

	// LexiconLoadDuration tracks lexicon loads by language and status.
	LexiconLoadDuration metric.Float64Histogram

	// HTTPRequestDuration tracks API request latency by method, route and
	// status code.
	HTTPRequestDuration metric.Float64Histogram
}

var latencyBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Corrections, err = m.Int64Counter("autocorrect.corrections",
		metric.WithDescription("Correction calls by language and status."),
	); err != nil {
		return nil, err
	}
	if met.TokensReplaced, err = m.Int64Counter("autocorrect.tokens.replaced",
		metric.WithDescription("Words replaced by the corrector, by language."),
	); err != nil {
		return nil, err
	}
	if met.CorrectionDuration, err = m.Float64Histogram("autocorrect.correction.duration",
		metric.WithDescription("Latency of a correction call."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.LexiconLoadDuration, err = m.Float64Histogram("autocorrect.lexicon.load.duration",
		metric.WithDescription("Latency of loading a language lexicon."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("autocorrect.http.request.duration",
		metric.WithDescription("Latency of HTTP API requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level instance built on the global
// meter provider.
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

// RecordCorrection records one correction call.
func (m *Metrics) RecordCorrection(ctx context.Context, language, status string, elapsed time.Duration, replaced int) {
	lang := attribute.String("language", language)
	m.Corrections.Add(ctx, 1, metric.WithAttributes(lang, attribute.String("status", status)))
	m.CorrectionDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(lang))
	if replaced > 0 {
		m.TokensReplaced.Add(ctx, int64(replaced), metric.WithAttributes(lang))
	}
}

// RecordLexiconLoad records one lexicon load attempt.
func (m *Metrics) RecordLexiconLoad(ctx context.Context, language string, elapsed time.Duration, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.LexiconLoadDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("language", language),
		attribute.String("status", status),
	))
}
