package game

import "math"

// Config holds simulation tuning constants
type Config struct {
	// FieldHalfSize bounds the square ground plane: coordinates live in [-FieldHalfSize, FieldHalfSize]
	FieldHalfSize float64

	// MaxDeltaTime caps a single tick so a stalled frame cannot tunnel through obstacles
	MaxDeltaTime float64

	// Vehicle collision radii
	PlayerRadius float64
	EnemyRadius  float64
	ShotRadius   float64
	PickupRadius float64

	// ObstacleRadiusScale converts an obstacle's size into its collision radius
	ObstacleRadiusScale float64

	// Player movement in units/second and radians/second
	PlayerSpeed    float64
	PlayerTurnRate float64
	TurretTurnRate float64

	// Player shot
	PlayerShotSpeed  float64
	PlayerShotRange  float64
	ShotSpawnOffset  float64
	EnemyShotSpeed   float64
	EnemyFireBase    float64 // minimum seconds between enemy shots
	EnemyFireJitter  float64 // random extra seconds added to EnemyFireBase
	EnemyInitialFire float64 // cooldown given to a freshly spawned enemy

	// Enemy behavior
	EnemySpeed          float64
	EnemyTurnRate       float64
	EnemyLookAhead      float64
	EnemyTooCloseMargin float64
	EnemyWanderChance   float64 // per-tick chance of a random turn while the player is dead
	EnemyWanderTurn     float64 // max magnitude of that turn in radians
	EnemyJitterChance   float64 // per-tick chance of jitter instead of tracking the player
	EnemyJitterTurn     float64 // max magnitude of the jitter turn in radians

	// Player lifecycle
	MaxHealth        float64
	DeadTime         float64
	InvulnerableTime float64
	Lives            int

	// Damage dealt by an enemy shot: DamageBase + (wave-1)*DamagePerWave
	DamageBase    float64
	DamagePerWave float64

	// Pickups
	PickupCount int
	PickupHeal  float64
	PickupSpin  float64 // cosmetic radians/second

	// World generation
	ObstacleCount          int
	ObstacleMinSize        float64
	ObstacleMaxSize        float64
	ObstacleMinHeight      float64
	ObstacleMaxHeight      float64
	ObstacleSpacing        float64 // extra gap required between obstacle circles
	ObstacleSpawnClearance float64 // minimum distance between an obstacle and the player spawn
	EnemySpacing           float64 // minimum center distance between enemies at spawn
	EnemyPlayerClearance   float64 // minimum center distance between a new enemy and the player
	PickupSpacing          float64
	PickupPlayerClearance  float64
	SpawnEdgeInset         float64 // enemies appear this far inside the field edge

	// Rejection sampling budgets
	ObstacleAttempts int
	EnemyAttempts    int
	PickupAttempts   int
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		FieldHalfSize: 50.0,
		MaxDeltaTime:  0.1,

		PlayerRadius: 1.0,
		EnemyRadius:  1.0,
		ShotRadius:   0.3,
		PickupRadius: 0.8,

		ObstacleRadiusScale: 1.2,

		PlayerSpeed:    10.0,
		PlayerTurnRate: 2.5,
		TurretTurnRate: 3.0,

		PlayerShotSpeed:  30.0,
		PlayerShotRange:  40.0,
		ShotSpawnOffset:  2.0,
		EnemyShotSpeed:   25.0,
		EnemyFireBase:    3.0,
		EnemyFireJitter:  2.0,
		EnemyInitialFire: 3.0,

		EnemySpeed:          5.0,
		EnemyTurnRate:       1.5,
		EnemyLookAhead:      5.0,
		EnemyTooCloseMargin: 3.0,
		EnemyWanderChance:   0.1,
		EnemyWanderTurn:     0.5,
		EnemyJitterChance:   0.4,
		EnemyJitterTurn:     0.3,

		MaxHealth:        100.0,
		DeadTime:         3.0,
		InvulnerableTime: 5.0,
		Lives:            3,

		DamageBase:    30.0,
		DamagePerWave: 1.0,

		PickupCount: 3,
		PickupHeal:  25.0,
		PickupSpin:  2.0,

		ObstacleCount:          15,
		ObstacleMinSize:        0.8,
		ObstacleMaxSize:        2.0,
		ObstacleMinHeight:      1.0,
		ObstacleMaxHeight:      3.0,
		ObstacleSpacing:        2.0,
		ObstacleSpawnClearance: 8.0,
		EnemySpacing:           4.0,
		EnemyPlayerClearance:   15.0,
		PickupSpacing:          5.0,
		PickupPlayerClearance:  5.0,
		SpawnEdgeInset:         2.0,

		ObstacleAttempts: 100,
		EnemyAttempts:    50,
		PickupAttempts:   50,
	}
}

// Validate replaces nonsensical values with defaults so the rest of the
// simulation never has to guard against them.
func (c Config) Validate() Config {
	d := DefaultConfig()
	if c.FieldHalfSize <= 0 {
		c.FieldHalfSize = d.FieldHalfSize
	}
	if c.MaxDeltaTime <= 0 {
		c.MaxDeltaTime = d.MaxDeltaTime
	}
	if c.MaxHealth <= 0 {
		c.MaxHealth = d.MaxHealth
	}
	if c.Lives <= 0 {
		c.Lives = d.Lives
	}
	if c.ObstacleCount < 0 {
		c.ObstacleCount = 0
	}
	if c.PickupCount < 0 {
		c.PickupCount = 0
	}
	if c.ObstacleRadiusScale <= 0 {
		c.ObstacleRadiusScale = d.ObstacleRadiusScale
	}
	c.ObstacleAttempts = max(c.ObstacleAttempts, 1)
	c.EnemyAttempts = max(c.EnemyAttempts, 1)
	c.PickupAttempts = max(c.PickupAttempts, 1)
	if c.ObstacleMaxSize < c.ObstacleMinSize {
		c.ObstacleMaxSize = c.ObstacleMinSize
	}
	if c.ObstacleMaxHeight < c.ObstacleMinHeight {
		c.ObstacleMaxHeight = c.ObstacleMinHeight
	}
	return c
}

// ShotDamage returns the damage an enemy shot deals during the given wave
func (c Config) ShotDamage(wave int) float64 {
	return c.DamageBase + float64(wave-1)*c.DamagePerWave
}

// InBounds reports whether a point lies on the ground plane
func (c Config) InBounds(x, z float64) bool {
	return math.Abs(x) <= c.FieldHalfSize && math.Abs(z) <= c.FieldHalfSize
}
