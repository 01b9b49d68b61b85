package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCirclesOverlap(t *testing.T) {
	assert.True(t, CirclesOverlap(0, 0, 1, 0, 1, 1))
	assert.False(t, CirclesOverlap(0, 0, 3, 0, 1, 1))
	// touching is not overlapping
	assert.False(t, CirclesOverlap(0, 0, 2, 0, 1, 1))
	assert.True(t, CirclesOverlap(5, 5, 5, 5, 0, 0.1))
}

func TestCirclesOverlapSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x1 := rapid.Float64Range(-100, 100).Draw(t, "x1")
		z1 := rapid.Float64Range(-100, 100).Draw(t, "z1")
		x2 := rapid.Float64Range(-100, 100).Draw(t, "x2")
		z2 := rapid.Float64Range(-100, 100).Draw(t, "z2")
		r1 := rapid.Float64Range(0, 10).Draw(t, "r1")
		r2 := rapid.Float64Range(0, 10).Draw(t, "r2")

		if CirclesOverlap(x1, z1, x2, z2, r1, r2) != CirclesOverlap(x2, z2, x1, z1, r2, r1) {
			t.Fatalf("overlap not symmetric for (%v,%v,%v) (%v,%v,%v)", x1, z1, r1, x2, z2, r2)
		}
	})
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 0, NormalizeAngle(2*math.Pi), 1e-9)
	assert.InDelta(t, math.Pi, NormalizeAngle(math.Pi), 1e-9)
	assert.InDelta(t, math.Pi, NormalizeAngle(-math.Pi), 1e-9)
	assert.InDelta(t, -math.Pi/2, NormalizeAngle(3*math.Pi/2), 1e-9)

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(-1000, 1000).Draw(t, "a")
		n := NormalizeAngle(a)
		if n <= -math.Pi || n > math.Pi {
			t.Fatalf("NormalizeAngle(%v) = %v, outside (-Pi, Pi]", a, n)
		}
		if math.Abs(math.Sin(n)-math.Sin(a)) > 1e-6 || math.Abs(math.Cos(n)-math.Cos(a)) > 1e-6 {
			t.Fatalf("NormalizeAngle(%v) = %v changed the direction", a, n)
		}
	})
}

func TestBearing(t *testing.T) {
	assert.InDelta(t, 0, Bearing(0, 0, 0, 10), 1e-9)
	assert.InDelta(t, math.Pi/2, Bearing(0, 0, 10, 0), 1e-9)
	assert.InDelta(t, math.Pi, Bearing(0, 5, 0, 0), 1e-9)

	// the heading vector of a bearing points at the target
	hx, hz := headingVector(Bearing(1, 1, 4, 5))
	assert.InDelta(t, 0.6, hx, 1e-9)
	assert.InDelta(t, 0.8, hz, 1e-9)
}

func TestHitsEnemySkipsSelf(t *testing.T) {
	cfg := DefaultConfig()
	enemies := []Enemy{{X: 0, Z: 0}, {X: 10, Z: 10}}

	assert.True(t, hitsEnemy(&cfg, enemies, -1, 0.5, 0, cfg.EnemyRadius))
	assert.False(t, hitsEnemy(&cfg, enemies, 0, 0.5, 0, cfg.EnemyRadius))
	assert.True(t, hitsEnemy(&cfg, enemies, 0, 10, 10.5, cfg.EnemyRadius))
}

func TestHitsObstacleUsesScaledRadius(t *testing.T) {
	cfg := DefaultConfig()
	obstacles := []Obstacle{{X: 0, Z: 0, Size: 1}}

	// 1.2 + 1.0 = 2.2
	assert.True(t, hitsObstacle(&cfg, obstacles, 2.1, 0, 1))
	assert.False(t, hitsObstacle(&cfg, obstacles, 2.3, 0, 1))
}
