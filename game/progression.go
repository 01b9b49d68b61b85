package game

import "slices"

// killEnemy removes enemy i and applies the progression rules: score,
// wave completion and replacement spawning.
func (w *World) killEnemy(i int) {
	e := w.enemies[i]
	w.enemies = slices.Delete(w.enemies, i, i+1)

	if !w.rules.TracksProgress() {
		w.emit(Event{Type: EventEnemyKilled, X: e.X, Z: e.Z})
		w.enemies = append(w.enemies, w.spawner.PlaceEnemy(w.obstacles, w.enemies, &w.player))
		return
	}

	award := w.wave
	w.score += award
	w.killsThisWave++
	w.emit(Event{Type: EventEnemyKilled, X: e.X, Z: e.Z, Value: float64(award)})

	if w.killsThisWave >= w.enemiesPerWave {
		w.advanceWave()
		return
	}
	w.enemies = append(w.enemies, w.spawner.PlaceEnemy(w.obstacles, w.enemies, &w.player))
}

// advanceWave starts the next wave with a fresh roster of exactly
// enemiesPerWave enemies.
func (w *World) advanceWave() {
	w.wave++
	w.killsThisWave = 0
	w.enemiesPerWave = w.wave
	w.enemies = w.spawner.PlaceEnemies(w.enemiesPerWave, w.obstacles, nil, &w.player)

	w.emit(Event{Type: EventWaveCompleted, Value: float64(w.wave)})
	w.log.Debug().
		Int("wave", w.wave).
		Int("enemies", w.enemiesPerWave).
		Int("score", w.score).
		Msg("Wave completed")
}

// hitPlayer applies an enemy shot to the player. A lethal hit costs a life;
// losing the last one ends the game.
func (w *World) hitPlayer(s Projectile) {
	p := &w.player
	dmg := w.cfg.ShotDamage(w.wave)
	lethal := p.Damage(dmg)
	w.emit(Event{Type: EventPlayerHit, X: s.X, Z: s.Z, Value: dmg})
	if !lethal {
		return
	}

	w.lives--
	w.emit(Event{Type: EventLifeLost, X: p.X, Z: p.Z, Value: float64(w.lives)})

	if w.lives <= 0 {
		w.lives = 0
		w.gameOver = true
		w.emit(Event{Type: EventGameOver, X: p.X, Z: p.Z, Value: float64(w.score)})
		w.log.Info().
			Str("session", w.sessionID.String()).
			Int("score", w.score).
			Int("wave", w.wave).
			Msg("Game over")
		return
	}

	p.Dead = true
	p.DeadTime = w.cfg.DeadTime
	p.Invulnerable = false
	p.InvulnerableTime = 0
	w.emit(Event{Type: EventPlayerDied, X: p.X, Z: p.Z})
}
