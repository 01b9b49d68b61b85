package game

import "math"

// perception is what an enemy senses about nearby obstacles this tick
type perception struct {
	// obstacleAhead is set when the look-ahead point falls inside an obstacle
	obstacleAhead bool
	aheadTurn     float64

	// tooClose is set when the enemy is within the safety margin of an obstacle
	tooClose  bool
	closeTurn float64
}

// updateEnemies runs the enemy stage of a tick
func (w *World) updateEnemies(dt float64) {
	for i := range w.enemies {
		w.steerEnemy(i, dt)
		w.aimEnemy(i, dt)
	}
}

// perceive samples a point ahead of the enemy along its heading and checks
// its distance to every obstacle.
func (w *World) perceive(e *Enemy) perception {
	var pc perception
	hx, hz := headingVector(e.Angle)
	aheadX := e.X + hx*w.cfg.EnemyLookAhead
	aheadZ := e.Z + hz*w.cfg.EnemyLookAhead

	for i := range w.obstacles {
		o := &w.obstacles[i]
		r := o.Radius(&w.cfg)
		if !pc.obstacleAhead && CirclesOverlap(aheadX, aheadZ, o.X, o.Z, w.cfg.EnemyRadius, r) {
			pc.obstacleAhead = true
			pc.aheadTurn = turnAwayFrom(e, o)
		}
		if !pc.tooClose && Distance(e.X, e.Z, o.X, o.Z) < r+w.cfg.EnemyTooCloseMargin {
			pc.tooClose = true
			pc.closeTurn = turnAwayFrom(e, o)
		}
		if pc.obstacleAhead && pc.tooClose {
			break
		}
	}
	return pc
}

// turnAwayFrom returns the turn direction (+1 or -1) that swings the enemy's
// heading away from the obstacle.
func turnAwayFrom(e *Enemy, o *Obstacle) float64 {
	rel := NormalizeAngle(Bearing(e.X, e.Z, o.X, o.Z) - e.Angle)
	if rel > 0 {
		return -1
	}
	return 1
}

// steerEnemy picks a heading and moves the enemy along it. Priority:
// back away when too close, turn when something is ahead, wander while the
// player is dead, otherwise pursue.
func (w *World) steerEnemy(i int, dt float64) {
	e := &w.enemies[i]
	p := &w.player
	pc := w.perceive(e)
	reverse := false

	switch {
	case pc.tooClose:
		e.Angle += pc.closeTurn * w.cfg.EnemyTurnRate * 2 * dt
		reverse = true
	case pc.obstacleAhead:
		e.Angle += pc.aheadTurn * w.cfg.EnemyTurnRate * 1.5 * dt
	case p.Dead:
		if w.rng.Float64() < w.cfg.EnemyWanderChance {
			e.Angle += (w.rng.Float64() - 0.5) * w.cfg.EnemyWanderTurn
		}
	default:
		if w.rng.Float64() < w.cfg.EnemyJitterChance {
			e.Angle += (w.rng.Float64() - 0.5) * w.cfg.EnemyJitterTurn
			break
		}
		diff := NormalizeAngle(Bearing(e.X, e.Z, p.X, p.Z) - e.Angle)
		step := w.cfg.EnemyTurnRate * dt
		if math.Abs(diff) <= step {
			e.Angle += diff
		} else {
			e.Angle += math.Copysign(step, diff)
		}
	}
	e.Angle = NormalizeAngle(e.Angle)

	move := w.cfg.EnemySpeed * dt
	if reverse {
		move = -move
	}
	hx, hz := headingVector(e.Angle)
	nx, nz := e.X+hx*move, e.Z+hz*move
	if w.enemyCanOccupy(i, nx, nz) {
		e.X, e.Z = nx, nz
	}
}

// enemyCanOccupy reports whether enemy i fits at the given position
func (w *World) enemyCanOccupy(i int, x, z float64) bool {
	r := w.cfg.EnemyRadius
	if !w.cfg.InBounds(x, z) {
		return false
	}
	if hitsObstacle(&w.cfg, w.obstacles, x, z, r) {
		return false
	}
	if hitsEnemy(&w.cfg, w.enemies, i, x, z, r) {
		return false
	}
	return !CirclesOverlap(x, z, w.player.X, w.player.Z, r, w.cfg.PlayerRadius)
}

// aimEnemy tracks the player with the turret and fires when the timer expires.
// Nobody shoots at a wreck.
func (w *World) aimEnemy(i int, dt float64) {
	e := &w.enemies[i]
	p := &w.player
	if !p.Dead {
		e.TurretAngle = Bearing(e.X, e.Z, p.X, p.Z)
	}

	e.ShootTimer -= dt
	if e.ShootTimer > 0 || p.Dead {
		return
	}

	dx, dz := p.X-e.X, p.Z-e.Z
	dist := math.Hypot(dx, dz)
	if dist > 0 {
		dx, dz = dx/dist, dz/dist
	} else {
		dx, dz = headingVector(e.TurretAngle)
	}

	sx := e.X + dx*w.cfg.ShotSpawnOffset
	sz := e.Z + dz*w.cfg.ShotSpawnOffset
	w.enemyShots = append(w.enemyShots, Projectile{
		X:      sx,
		Z:      sz,
		VX:     dx * w.cfg.EnemyShotSpeed,
		VZ:     dz * w.cfg.EnemyShotSpeed,
		StartX: sx,
		StartZ: sz,
	})
	e.ShootTimer = w.cfg.EnemyFireBase + w.rng.Float64()*w.cfg.EnemyFireJitter
	w.emit(Event{Type: EventShotFired, X: sx, Z: sz, FromEnemy: true})
}
