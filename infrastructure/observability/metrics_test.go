package observability

import (
	"context"
	"testing"

	"bootcamp/config"
	"bootcamp/events"
	"bootcamp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}
	return byName
}

func sumTotal(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetricsProvider_RecordsBusEvents(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelServiceName = "bootcamp-test"

	reader := sdkmetric.NewManualReader()
	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.InitializeWithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	bus := events.NewBus()
	mp.Subscribe(bus)

	ctx := context.Background()
	bus.Emit(ctx, events.PointsAwardedEvent{Source: models.PointSourceBonus, RequestedChange: 10, AppliedChange: 10})
	bus.Emit(ctx, events.PointsAwardedEvent{Source: models.PointSourceAdminAdjustment, RequestedChange: -10, AppliedChange: -4})
	bus.Emit(ctx, events.UserCreatedEvent{UserID: "alice"})
	bus.Wait()

	metrics := collect(t, reader)

	assert.Equal(t, int64(2), sumTotal(t, metrics[PointsTransactionsTotal]))
	assert.Equal(t, int64(1), sumTotal(t, metrics[PointsClampedTotal]))
	assert.Equal(t, int64(6), sumTotal(t, metrics[PointsAwardedSum]))
	assert.Equal(t, int64(1), sumTotal(t, metrics[UsersCreatedTotal]))
}

func TestMetricsProvider_Disabled(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = false

	mp := NewMetricsProvider(cfg)
	require.NoError(t, mp.Initialize(context.Background()))

	// No instruments exist, so recording must be a no-op
	assert.NotPanics(t, func() {
		mp.RecordPointsAwarded(context.Background(), events.PointsAwardedEvent{})
		mp.RecordNATSMessagePublished(events.EventTypeUserCreated)
	})
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMetricsProvider_UnknownExporter(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "carrier-pigeon"

	err := NewMetricsProvider(cfg).Initialize(context.Background())
	assert.ErrorContains(t, err, "unknown exporter type")
}
