package telemetry

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"tankarena/game"
)

const instrumentationName = "tankarena/telemetry"

// Recorder turns tick events into OTel measurements
type Recorder struct {
	killed    metric.Int64Counter
	waves     metric.Int64Counter
	livesLost metric.Int64Counter
	shots     metric.Int64Counter
	pickups   metric.Int64Counter
	gamesOver metric.Int64Counter
	score     metric.Int64Gauge
}

// NewRecorder creates the instruments on the global meter provider.
// Measurements are dropped unless a provider is installed.
func NewRecorder() (*Recorder, error) {
	return NewRecorderWithMeter(otel.Meter(instrumentationName))
}

// NewRecorderWithMeter creates the instruments on the given meter
func NewRecorderWithMeter(m metric.Meter) (*Recorder, error) {
	r := &Recorder{}
	var err error

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&r.killed, "arena.enemies.killed", "Enemies destroyed by the player"},
		{&r.waves, "arena.waves.completed", "Waves cleared"},
		{&r.livesLost, "arena.lives.lost", "Lives lost to enemy fire"},
		{&r.shots, "arena.shots.fired", "Projectiles fired"},
		{&r.pickups, "arena.pickups.collected", "Health pickups collected"},
		{&r.gamesOver, "arena.games.over", "Sessions that ended with no lives left"},
	}
	for _, c := range counters {
		*c.dst, err = m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", c.name, err)
		}
	}

	r.score, err = m.Int64Gauge(
		"arena.score",
		metric.WithDescription("Score of the running session"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating score gauge: %w", err)
	}

	return r, nil
}

// Record maps one tick's events onto the instruments
func (r *Recorder) Record(ctx context.Context, mode game.Mode, events []game.Event) {
	modeAttr := attribute.String("mode", mode.String())
	opt := metric.WithAttributes(modeAttr)

	for _, e := range events {
		switch e.Type {
		case game.EventEnemyKilled:
			r.killed.Add(ctx, 1, opt)
		case game.EventWaveCompleted:
			r.waves.Add(ctx, 1, opt)
		case game.EventLifeLost:
			r.livesLost.Add(ctx, 1, opt)
		case game.EventShotFired:
			source := "player"
			if e.FromEnemy {
				source = "enemy"
			}
			r.shots.Add(ctx, 1, metric.WithAttributes(modeAttr, attribute.String("source", source)))
		case game.EventPickupCollected:
			r.pickups.Add(ctx, 1, opt)
		case game.EventGameOver:
			r.gamesOver.Add(ctx, 1, opt)
		}
	}
}

// ObserveScore records the current session score
func (r *Recorder) ObserveScore(ctx context.Context, mode game.Mode, score int) {
	r.score.Record(ctx, int64(score), metric.WithAttributes(attribute.String("mode", mode.String())))
}

// Setup installs a global meter provider that periodically writes metrics to w.
// The returned function flushes and stops it.
func Setup(w io.Writer, interval time.Duration) (func(context.Context) error, error) {
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(mp)

	return mp.Shutdown, nil
}
