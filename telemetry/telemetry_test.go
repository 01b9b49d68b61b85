package telemetry

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"tankarena/game"
)

func newTestRecorder(t *testing.T) (*Recorder, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { mp.Shutdown(context.Background()) })

	r, err := NewRecorderWithMeter(mp.Meter("test"))
	require.NoError(t, err)
	return r, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected an int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecord_CountsEvents(t *testing.T) {
	r, reader := newTestRecorder(t)
	ctx := context.Background()

	r.Record(ctx, game.ModeArena, []game.Event{
		{Type: game.EventShotFired},
		{Type: game.EventShotFired, FromEnemy: true},
		{Type: game.EventShotFired, FromEnemy: true},
		{Type: game.EventEnemyKilled, Value: 1},
		{Type: game.EventWaveCompleted, Value: 2},
		{Type: game.EventPickupCollected},
	})
	r.Record(ctx, game.ModeArena, []game.Event{
		{Type: game.EventEnemyKilled, Value: 2},
		{Type: game.EventLifeLost},
		{Type: game.EventGameOver},
		{Type: game.EventPlayerHit},
	})

	got := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, got["arena.enemies.killed"]))
	assert.Equal(t, int64(1), sumOf(t, got["arena.waves.completed"]))
	assert.Equal(t, int64(1), sumOf(t, got["arena.lives.lost"]))
	assert.Equal(t, int64(3), sumOf(t, got["arena.shots.fired"]))
	assert.Equal(t, int64(1), sumOf(t, got["arena.pickups.collected"]))
	assert.Equal(t, int64(1), sumOf(t, got["arena.games.over"]))

	shots := got["arena.shots.fired"].(metricdata.Sum[int64])
	bySource := map[string]int64{}
	for _, dp := range shots.DataPoints {
		v, ok := dp.Attributes.Value(attribute.Key("source"))
		require.True(t, ok)
		bySource[v.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"player": 1, "enemy": 2}, bySource)
}

func TestRecord_ModeAttribute(t *testing.T) {
	r, reader := newTestRecorder(t)
	ctx := context.Background()

	r.Record(ctx, game.ModeArena, []game.Event{{Type: game.EventEnemyKilled}})
	r.Record(ctx, game.ModeClassic, []game.Event{{Type: game.EventEnemyKilled}})

	killed := collect(t, reader)["arena.enemies.killed"].(metricdata.Sum[int64])
	require.Len(t, killed.DataPoints, 2)
	modes := map[string]bool{}
	for _, dp := range killed.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("mode"))
		modes[v.AsString()] = true
	}
	assert.True(t, modes["arena"])
	assert.True(t, modes["classic"])
}

func TestObserveScore(t *testing.T) {
	r, reader := newTestRecorder(t)

	r.ObserveScore(context.Background(), game.ModeArena, 3)
	r.ObserveScore(context.Background(), game.ModeArena, 11)

	gauge, ok := collect(t, reader)["arena.score"].(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(11), gauge.DataPoints[0].Value)
}

func TestRecorder_NoopMeter(t *testing.T) {
	r, err := NewRecorderWithMeter(noop.NewMeterProvider().Meter("noop"))
	require.NoError(t, err)

	// must not panic
	r.Record(context.Background(), game.ModeArena, []game.Event{{Type: game.EventGameOver}})
	r.ObserveScore(context.Background(), game.ModeArena, 1)
}

func TestSetup_WritesOnShutdown(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Setup(&buf, time.Hour)
	require.NoError(t, err)

	r, err := NewRecorder()
	require.NoError(t, err)
	r.Record(context.Background(), game.ModeArena, []game.Event{{Type: game.EventEnemyKilled}})

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "arena.enemies.killed")
}
