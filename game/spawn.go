package game

import (
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// Spawner places obstacles, enemies and pickups by bounded rejection sampling.
// When the attempt budget runs out the last candidate is used anyway, so
// placement always returns and never blocks.
type Spawner struct {
	cfg *Config
	rng *rand.Rand
	log zerolog.Logger
}

// NewSpawner creates a spawner drawing from the given random source
func NewSpawner(cfg *Config, rng *rand.Rand, log zerolog.Logger) *Spawner {
	return &Spawner{cfg: cfg, rng: rng, log: log}
}

// sample draws candidates until accept passes or attempts run out.
// The second result is false when the fallback candidate was used.
func (s *Spawner) sample(attempts int, draw func() (float64, float64), accept func(x, z float64) bool) (float64, float64, bool) {
	var x, z float64
	for i := 0; i < max(attempts, 1); i++ {
		x, z = draw()
		if accept(x, z) {
			return x, z, true
		}
	}
	return x, z, false
}

// drawInBounds returns a uniform point inside the field, inset from the edge
func (s *Spawner) drawInBounds() (float64, float64) {
	h := s.cfg.FieldHalfSize - s.cfg.SpawnEdgeInset
	return s.between(-h, h), s.between(-h, h)
}

// drawOnEdge returns a uniform point on one of the four field edges
func (s *Spawner) drawOnEdge() (float64, float64) {
	h := s.cfg.FieldHalfSize - s.cfg.SpawnEdgeInset
	t := s.between(-h, h)
	switch s.rng.IntN(4) {
	case 0: // north
		return t, h
	case 1: // east
		return h, t
	case 2: // south
		return t, -h
	default: // west
		return -h, t
	}
}

func (s *Spawner) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// PlaceObstacles generates a fresh obstacle field that keeps clear of the
// player spawn point and of other obstacles.
func (s *Spawner) PlaceObstacles(count int, spawnX, spawnZ float64) []Obstacle {
	obstacles := make([]Obstacle, 0, count)
	for i := 0; i < count; i++ {
		o := Obstacle{
			Type:   ObstacleType(s.rng.IntN(2)),
			Size:   s.between(s.cfg.ObstacleMinSize, s.cfg.ObstacleMaxSize),
			Height: s.between(s.cfg.ObstacleMinHeight, s.cfg.ObstacleMaxHeight),
		}
		r := o.Radius(s.cfg)

		x, z, ok := s.sample(s.cfg.ObstacleAttempts, s.drawInBounds, func(x, z float64) bool {
			if CirclesOverlap(x, z, spawnX, spawnZ, r, s.cfg.ObstacleSpawnClearance) {
				return false
			}
			for j := range obstacles {
				other := &obstacles[j]
				if CirclesOverlap(x, z, other.X, other.Z, r, other.Radius(s.cfg)+s.cfg.ObstacleSpacing) {
					return false
				}
			}
			return true
		})
		if !ok {
			s.log.Debug().Int("index", i).Msg("obstacle placement budget exhausted, using last candidate")
		}
		o.X, o.Z = x, z
		obstacles = append(obstacles, o)
	}
	return obstacles
}

// PlaceEnemy places one enemy on the field edge, clear of obstacles, other
// enemies and the player. The enemy starts facing the player.
func (s *Spawner) PlaceEnemy(obstacles []Obstacle, enemies []Enemy, player *Player) Enemy {
	x, z, ok := s.sample(s.cfg.EnemyAttempts, s.drawOnEdge, func(x, z float64) bool {
		if hitsObstacle(s.cfg, obstacles, x, z, s.cfg.EnemyRadius) {
			return false
		}
		for i := range enemies {
			if Distance(x, z, enemies[i].X, enemies[i].Z) < s.cfg.EnemySpacing {
				return false
			}
		}
		return Distance(x, z, player.X, player.Z) >= s.cfg.EnemyPlayerClearance
	})
	if !ok {
		s.log.Debug().Float64("x", x).Float64("z", z).Msg("enemy placement budget exhausted, using last candidate")
	}

	angle := Bearing(x, z, player.X, player.Z)
	return Enemy{
		X:           x,
		Z:           z,
		Angle:       angle,
		TurretAngle: angle,
		ShootTimer:  s.cfg.EnemyInitialFire + s.rng.Float64()*s.cfg.EnemyFireJitter,
	}
}

// PlaceEnemies places count enemies one after another so each respects the
// ones placed before it.
func (s *Spawner) PlaceEnemies(count int, obstacles []Obstacle, existing []Enemy, player *Player) []Enemy {
	placed := make([]Enemy, 0, count)
	for i := 0; i < count; i++ {
		others := append(append(make([]Enemy, 0, len(existing)+len(placed)), existing...), placed...)
		placed = append(placed, s.PlaceEnemy(obstacles, others, player))
	}
	return placed
}

// PlacePickup places one pickup clear of obstacles, other pickups and the player
func (s *Spawner) PlacePickup(obstacles []Obstacle, pickups []Pickup, player *Player) Pickup {
	x, z, ok := s.sample(s.cfg.PickupAttempts, s.drawInBounds, func(x, z float64) bool {
		if hitsObstacle(s.cfg, obstacles, x, z, s.cfg.PickupRadius) {
			return false
		}
		for i := range pickups {
			if Distance(x, z, pickups[i].X, pickups[i].Z) < s.cfg.PickupSpacing {
				return false
			}
		}
		return Distance(x, z, player.X, player.Z) >= s.cfg.PickupPlayerClearance
	})
	if !ok {
		s.log.Debug().Float64("x", x).Float64("z", z).Msg("pickup placement budget exhausted, using last candidate")
	}
	return Pickup{X: x, Z: z, Rotation: s.rng.Float64() * 2 * math.Pi}
}
