package game

// updateProjectiles runs the projectile stage of a tick
func (w *World) updateProjectiles(dt float64) {
	w.updatePlayerShot(dt)
	w.updateEnemyShots(dt)
}

func (p *Projectile) advance(dt float64) {
	p.X += p.VX * dt
	p.Z += p.VZ * dt
}

// updatePlayerShot moves the player shot and resolves what it hit.
// It dies leaving the field, past its range, on an obstacle or on the
// first enemy it touches.
func (w *World) updatePlayerShot(dt float64) {
	s := w.playerShot
	if s == nil {
		return
	}
	s.advance(dt)

	if !w.cfg.InBounds(s.X, s.Z) || s.Traveled() > w.cfg.PlayerShotRange {
		w.playerShot = nil
		return
	}
	if hitsObstacle(&w.cfg, w.obstacles, s.X, s.Z, w.cfg.ShotRadius) {
		w.playerShot = nil
		return
	}
	for i := range w.enemies {
		e := &w.enemies[i]
		if CirclesOverlap(s.X, s.Z, e.X, e.Z, w.cfg.ShotRadius, w.cfg.EnemyRadius) {
			w.playerShot = nil
			w.killEnemy(i)
			return
		}
	}
}

// updateEnemyShots moves enemy shots. A shot that reaches a player who
// cannot be hurt keeps flying.
func (w *World) updateEnemyShots(dt float64) {
	kept := w.enemyShots[:0]
	for _, s := range w.enemyShots {
		s.advance(dt)
		if !w.cfg.InBounds(s.X, s.Z) {
			continue
		}
		if hitsObstacle(&w.cfg, w.obstacles, s.X, s.Z, w.cfg.ShotRadius) {
			continue
		}
		if !w.gameOver && w.rules.Vulnerable(&w.player) &&
			CirclesOverlap(s.X, s.Z, w.player.X, w.player.Z, w.cfg.ShotRadius, w.cfg.PlayerRadius) {
			w.hitPlayer(s)
			continue
		}
		kept = append(kept, s)
	}
	w.enemyShots = kept
}
