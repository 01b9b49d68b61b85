package game

// ObstacleType identifies the obstacle shape. It is cosmetic only.
type ObstacleType int

const (
	ObstacleCube ObstacleType = iota
	ObstaclePyramid
)

// String returns the shape name used by renderers and logs
func (t ObstacleType) String() string {
	switch t {
	case ObstacleCube:
		return "cube"
	case ObstaclePyramid:
		return "pyramid"
	default:
		return "unknown"
	}
}

// Player is the player-controlled vehicle
type Player struct {
	// Position on the ground plane
	X, Z float64

	// Hull angle in radians; 0 faces +Z
	Angle float64

	// Turret angle in radians, independent of the hull under arena rules
	TurretAngle float64

	// Dead is set while the wreck waits DeadTime seconds to revive
	Dead     bool
	DeadTime float64

	// Invulnerable follows Dead and lasts InvulnerableTime seconds
	Invulnerable     bool
	InvulnerableTime float64

	Health    float64
	MaxHealth float64
}

// Alive reports whether the player accepts input this tick
func (p *Player) Alive() bool {
	return !p.Dead
}

// Heal adds health, clamped to MaxHealth
func (p *Player) Heal(amount float64) {
	p.Health = min(p.Health+amount, p.MaxHealth)
}

// Damage subtracts health, clamped to zero, and reports whether it was lethal
func (p *Player) Damage(amount float64) bool {
	p.Health = max(p.Health-amount, 0)
	return p.Health <= 0
}

// Enemy is an AI-controlled vehicle. Enemies die to a single hit.
type Enemy struct {
	X, Z        float64
	Angle       float64
	TurretAngle float64

	// ShootTimer counts down to the next shot in seconds
	ShootTimer float64
}

// Obstacle is a static, indestructible blocker
type Obstacle struct {
	X, Z   float64
	Type   ObstacleType
	Size   float64 // collision radius multiplier
	Height float64 // cosmetic
}

// Radius returns the collision radius of the obstacle
func (o *Obstacle) Radius(cfg *Config) float64 {
	return o.Size * cfg.ObstacleRadiusScale
}

// Projectile is a shot in flight. Shots carry no owner handle; what they can
// hit is decided by which collection holds them.
type Projectile struct {
	X, Z   float64
	VX, VZ float64

	// Origin, used to cap the travel distance of player shots
	StartX, StartZ float64
}

// Traveled returns the distance covered since the projectile was fired
func (p *Projectile) Traveled() float64 {
	return Distance(p.StartX, p.StartZ, p.X, p.Z)
}

// Pickup restores player health on contact
type Pickup struct {
	X, Z float64

	// Rotation is a cosmetic spin phase in radians
	Rotation float64
}
