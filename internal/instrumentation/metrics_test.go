package instrumentation

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func metricNames(rm metricdata.ResourceMetrics) []string {
	var names []string
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			names = append(names, m.Name)
		}
	}
	return names
}

func TestMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordTokenRefresh(ctx, ResultSuccess)
	m.RecordAuthExchange(ctx, ResultRejected)
	m.RecordSourceFetch(ctx, ResultError, 150*time.Millisecond)

	names := metricNames(collect(t, reader))
	assert.Contains(t, names, "oauth_token_refresh_total")
	assert.Contains(t, names, "oauth_code_exchange_total")
	assert.Contains(t, names, "calendar_source_fetch_total")
	assert.Contains(t, names, "calendar_source_fetch_duration_seconds")
}

func TestMetrics_ZeroValueIsNoop(t *testing.T) {
	ctx := context.Background()

	var m *Metrics
	m.RecordTokenRefresh(ctx, ResultSuccess)

	m = &Metrics{}
	m.RecordTokenRefresh(ctx, ResultSuccess)
	m.RecordAuthExchange(ctx, ResultError)
	m.RecordSourceFetch(ctx, ResultSuccess, time.Second)
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), NewConfig("daybrief", "test", false))
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	require.NotNil(t, provider.Metrics())
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_ExportsToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfig("daybrief", "test", true)
	cfg.Writer = &buf

	provider, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, provider.Enabled())

	provider.Metrics().RecordTokenRefresh(context.Background(), ResultSuccess)
	require.NoError(t, provider.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "oauth_token_refresh_total")
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig("", "1.2.3", true)
	assert.Equal(t, "daybrief", cfg.ServiceName)
	assert.Equal(t, "1.2.3", cfg.ServiceVersion)
	assert.True(t, cfg.Enabled)
}
