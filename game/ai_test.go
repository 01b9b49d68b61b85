package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnemyFiresWhenCooldownExpires(t *testing.T) {
	w := newQuietWorld(t)
	w.enemies = []Enemy{{X: 0, Z: 20, Angle: math.Pi, ShootTimer: 0.05}}

	w.Tick(0.1, 0)

	shots := w.EnemyShots()
	require.Len(t, shots, 1)
	assert.InDelta(t, 0, shots[0].VX, 1e-9)
	assert.InDelta(t, -w.cfg.EnemyShotSpeed, shots[0].VZ, 1e-9)

	e := w.Enemies()[0]
	assert.GreaterOrEqual(t, e.ShootTimer, w.cfg.EnemyFireBase)
	assert.Less(t, e.ShootTimer, w.cfg.EnemyFireBase+w.cfg.EnemyFireJitter)
	assert.InDelta(t, math.Pi, math.Abs(e.TurretAngle), 1e-9)

	var fromEnemy bool
	for _, ev := range w.Events() {
		if ev.Type == EventShotFired && ev.FromEnemy {
			fromEnemy = true
		}
	}
	assert.True(t, fromEnemy)
}

func TestEnemyHoldsFireAtDeadPlayer(t *testing.T) {
	w := newQuietWorld(t)
	w.player.Dead = true
	w.player.DeadTime = 3
	w.enemies = []Enemy{{X: 0, Z: 20, Angle: math.Pi, TurretAngle: 1, ShootTimer: 0.05}}

	w.Tick(0.1, 0)

	assert.Empty(t, w.EnemyShots())
	e := w.Enemies()[0]
	assert.Equal(t, 1.0, e.TurretAngle)
	assert.LessOrEqual(t, e.ShootTimer, 0.0)
}

func TestEnemyPursuesAtFixedRate(t *testing.T) {
	w := newQuietWorld(t)
	w.enemies = []Enemy{{X: 20, Z: 0, Angle: 0, ShootTimer: 1000}}

	w.Tick(0.1, 0)

	// the player is a quarter turn away; only one step of turn is applied
	e := w.Enemies()[0]
	assert.InDelta(t, -w.cfg.EnemyTurnRate*0.1, e.Angle, 1e-9)
}

func TestEnemyTurnsAwayFromObstacleAhead(t *testing.T) {
	w := newQuietWorld(t)
	w.obstacles = []Obstacle{{X: 0, Z: 15.5, Size: 1}}
	w.enemies = []Enemy{{X: 0, Z: 20, Angle: math.Pi, ShootTimer: 1000}}

	w.Tick(0.1, 0)

	e := w.Enemies()[0]
	assert.InDelta(t, w.cfg.EnemyTurnRate*1.5*0.1, NormalizeAngle(e.Angle-math.Pi), 1e-9)
	assert.Less(t, e.Z, 20.0)
}

func TestEnemyBacksAwayWhenTooClose(t *testing.T) {
	w := newQuietWorld(t)
	w.obstacles = []Obstacle{{X: 0, Z: 17, Size: 1}}
	w.enemies = []Enemy{{X: 0, Z: 20, Angle: math.Pi, ShootTimer: 1000}}

	w.Tick(0.1, 0)

	e := w.Enemies()[0]
	assert.InDelta(t, w.cfg.EnemyTurnRate*2*0.1, NormalizeAngle(e.Angle-math.Pi), 1e-9)
	assert.Greater(t, Distance(e.X, e.Z, 0, 17), 3.0)
}

func TestEnemyBlockedByPlayerKeepsPosition(t *testing.T) {
	w := newQuietWorld(t)
	start := math.Pi - 0.5
	w.enemies = []Enemy{{X: 0, Z: 2.2, Angle: start, ShootTimer: 1000}}

	w.Tick(0.1, 0)

	e := w.Enemies()[0]
	assert.Equal(t, 0.0, e.X)
	assert.Equal(t, 2.2, e.Z)
	// the turn toward the player is kept even though the move was rejected
	assert.InDelta(t, start+w.cfg.EnemyTurnRate*0.1, e.Angle, 1e-9)
}

func TestEnemyJitterReplacesPursuit(t *testing.T) {
	w := newQuietWorld(t)
	w.cfg.EnemyJitterChance = 1
	w.cfg.EnemyJitterTurn = 0.05

	// the player is a quarter turn away, so tracking would swing the full step
	w.enemies = []Enemy{{X: 20, Z: 0, Angle: 0, ShootTimer: 1000}}
	for i := 0; i < 20; i++ {
		before := w.enemies[0].Angle
		w.Tick(0.1, 0)

		turn := NormalizeAngle(w.enemies[0].Angle - before)
		require.LessOrEqual(t, math.Abs(turn), w.cfg.EnemyJitterTurn/2, "tick %d", i)
	}

	// twenty tracking steps would have turned 3 radians toward the player
	e := w.Enemies()[0]
	assert.Less(t, math.Abs(e.Angle), 20*w.cfg.EnemyJitterTurn/2+1e-9)
	assert.Greater(t, math.Abs(NormalizeAngle(Bearing(e.X, e.Z, 0, 0)-e.Angle)), 1.0)
}

func TestEnemiesDoNotOverlapEachOther(t *testing.T) {
	w := newQuietWorld(t)
	// the second enemy is directly in front of the first
	w.enemies = []Enemy{
		{X: 0, Z: 22.1, Angle: math.Pi, ShootTimer: 1000},
		{X: 0, Z: 20, Angle: 0, ShootTimer: 1000},
	}

	w.Tick(0.1, 0)

	e := w.Enemies()
	assert.Equal(t, 22.1, e[0].Z)
}

func TestEnemyWandersWhilePlayerIsDead(t *testing.T) {
	w := newQuietWorld(t)
	w.cfg.EnemyWanderChance = 1
	w.player.Dead = true
	w.player.DeadTime = 3
	w.enemies = []Enemy{{X: 20, Z: 20, Angle: 1, ShootTimer: 1000}}

	w.Tick(0.1, 0)

	e := w.Enemies()[0]
	assert.LessOrEqual(t, math.Abs(NormalizeAngle(e.Angle-1)), w.cfg.EnemyWanderTurn/2)
	assert.InDelta(t, w.cfg.EnemySpeed*0.1, Distance(20, 20, e.X, e.Z), 1e-9)
}
