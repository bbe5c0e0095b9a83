package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency.
const (
	attrResult = "result"
	attrGrant  = "grant"
)

// Result values recorded on auth and fetch metrics.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultRejected = "rejected"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a no-op recorder, used when instrumentation is disabled.
type Metrics struct {
	// OAuth metrics
	tokenRefreshTotal metric.Int64Counter
	authExchangeTotal metric.Int64Counter

	// Calendar fetch metrics
	sourceFetchTotal    metric.Int64Counter
	sourceFetchDuration metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.tokenRefreshTotal, err = meter.Int64Counter(
		"oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	m.authExchangeTotal, err = meter.Int64Counter(
		"oauth_code_exchange_total",
		metric.WithDescription("Total number of authorization code exchange attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_code_exchange_total counter: %w", err)
	}

	m.sourceFetchTotal, err = meter.Int64Counter(
		"calendar_source_fetch_total",
		metric.WithDescription("Total number of per-source event list queries"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_source_fetch_total counter: %w", err)
	}

	m.sourceFetchDuration, err = meter.Float64Histogram(
		"calendar_source_fetch_duration_seconds",
		metric.WithDescription("Per-source event list query duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_source_fetch_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordTokenRefresh records one refresh-token exchange attempt.
func (m *Metrics) RecordTokenRefresh(ctx context.Context, result string) {
	if m == nil || m.tokenRefreshTotal == nil {
		return
	}
	m.tokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
		attribute.String(attrGrant, "refresh_token"),
	))
}

// RecordAuthExchange records one authorization-code exchange attempt.
func (m *Metrics) RecordAuthExchange(ctx context.Context, result string) {
	if m == nil || m.authExchangeTotal == nil {
		return
	}
	m.authExchangeTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
		attribute.String(attrGrant, "authorization_code"),
	))
}

// RecordSourceFetch records one per-source event list query with its outcome
// and duration. Calendar IDs are deliberately not recorded as attributes to
// keep cardinality bounded.
func (m *Metrics) RecordSourceFetch(ctx context.Context, result string, duration time.Duration) {
	if m == nil || m.sourceFetchTotal == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(attrResult, result))
	m.sourceFetchTotal.Add(ctx, 1, attrs)
	m.sourceFetchDuration.Record(ctx, duration.Seconds(), attrs)
}
