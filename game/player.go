package game

// updatePlayer runs the player stage of a tick: timers, steering, firing and
// pickup collection. A dead player only counts down its respawn timer.
func (w *World) updatePlayer(in Input, dt float64) {
	p := &w.player
	wasDead := p.Dead

	switch w.rules.AdvanceLifecycle(p, &w.cfg, dt) {
	case lifecycleRevived:
		w.emit(Event{Type: EventPlayerRevived, X: p.X, Z: p.Z})
	case lifecycleVulnerable:
		w.emit(Event{Type: EventPlayerVulnerable, X: p.X, Z: p.Z})
	}
	if wasDead {
		return
	}

	dx, dz := w.rules.Steer(p, in, &w.cfg, dt)
	p.Angle = NormalizeAngle(p.Angle)
	p.TurretAngle = NormalizeAngle(p.TurretAngle)
	if dx != 0 || dz != 0 {
		nx, nz := p.X+dx, p.Z+dz
		// A blocked move is dropped whole, no sliding along the obstacle
		if w.playerCanOccupy(nx, nz) {
			p.X, p.Z = nx, nz
		}
	}

	if in.Held(ActionFire) && w.playerShot == nil {
		w.firePlayerShot()
	}

	if w.rules.TracksProgress() {
		w.collectPickups()
	}
}

// playerCanOccupy reports whether the player fits at the given position
func (w *World) playerCanOccupy(x, z float64) bool {
	r := w.cfg.PlayerRadius
	if !w.cfg.InBounds(x, z) {
		return false
	}
	if hitsObstacle(&w.cfg, w.obstacles, x, z, r) {
		return false
	}
	return !hitsEnemy(&w.cfg, w.enemies, -1, x, z, r)
}

func (w *World) firePlayerShot() {
	p := &w.player
	ax, az := w.rules.AimVector(p)
	sx := p.X + ax*w.cfg.ShotSpawnOffset
	sz := p.Z + az*w.cfg.ShotSpawnOffset

	w.playerShot = &Projectile{
		X:      sx,
		Z:      sz,
		VX:     ax * w.cfg.PlayerShotSpeed,
		VZ:     az * w.cfg.PlayerShotSpeed,
		StartX: sx,
		StartZ: sz,
	}
	w.emit(Event{Type: EventShotFired, X: sx, Z: sz})
}

// collectPickups heals the player for every pickup it touches and puts a
// fresh pickup elsewhere so the count stays constant.
func (w *World) collectPickups() {
	p := &w.player
	for i := range w.pickups {
		pk := w.pickups[i]
		if !CirclesOverlap(p.X, p.Z, pk.X, pk.Z, w.cfg.PlayerRadius, w.cfg.PickupRadius) {
			continue
		}
		before := p.Health
		p.Heal(w.cfg.PickupHeal)

		others := make([]Pickup, 0, len(w.pickups)-1)
		others = append(others, w.pickups[:i]...)
		others = append(others, w.pickups[i+1:]...)
		w.pickups[i] = w.spawner.PlacePickup(w.obstacles, others, p)

		w.emit(Event{Type: EventPickupCollected, X: pk.X, Z: pk.Z, Value: p.Health - before})
	}
}

// updatePickups spins the pickups in place
func (w *World) updatePickups(dt float64) {
	for i := range w.pickups {
		w.pickups[i].Rotation = NormalizeAngle(w.pickups[i].Rotation + w.cfg.PickupSpin*dt)
	}
}
