package game

import "math"

// CirclesOverlap reports whether two circles intersect.
// Touching circles (distance exactly r1+r2) do not overlap.
func CirclesOverlap(x1, z1, x2, z2, r1, r2 float64) bool {
	dx := x2 - x1
	dz := z2 - z1
	return math.Sqrt(dx*dx+dz*dz) < r1+r2
}

// Distance returns the Euclidean distance between two points on the ground plane
func Distance(x1, z1, x2, z2 float64) float64 {
	return math.Hypot(x2-x1, z2-z1)
}

// Bearing returns the heading angle that points from one position to another.
// Angle 0 points along +Z and positive angles rotate toward +X.
func Bearing(fromX, fromZ, toX, toZ float64) float64 {
	return math.Atan2(toX-fromX, toZ-fromZ)
}

// NormalizeAngle wraps an angle into (-Pi, Pi]
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// headingVector returns the unit vector for a heading angle
func headingVector(angle float64) (float64, float64) {
	return math.Sin(angle), math.Cos(angle)
}

// hitsObstacle reports whether a circle at (x, z) overlaps any obstacle
func hitsObstacle(cfg *Config, obstacles []Obstacle, x, z, radius float64) bool {
	for i := range obstacles {
		o := &obstacles[i]
		if CirclesOverlap(x, z, o.X, o.Z, radius, o.Radius(cfg)) {
			return true
		}
	}
	return false
}

// hitsEnemy reports whether a circle at (x, z) overlaps any enemy other than skip.
// Pass skip = -1 to test against every enemy.
func hitsEnemy(cfg *Config, enemies []Enemy, skip int, x, z, radius float64) bool {
	for i := range enemies {
		if i == skip {
			continue
		}
		if CirclesOverlap(x, z, enemies[i].X, enemies[i].Z, radius, cfg.EnemyRadius) {
			return true
		}
	}
	return false
}
