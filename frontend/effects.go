package frontend

import "tankarena/game"

// effectKind selects how an effect is drawn
type effectKind int

const (
	effectExplosion effectKind = iota
	effectPickup
	effectWave
)

// effect is a short-lived marker left where something happened
type effect struct {
	kind     effectKind
	x, z     float64
	age      float64
	lifetime float64
}

// progress returns how far through its life the effect is, in [0, 1]
func (e *effect) progress() float64 {
	return min(e.age/e.lifetime, 1)
}

// Effects tracks transient visual feedback derived from tick events
type Effects struct {
	items []effect

	// hitFlash counts down after the player takes damage
	hitFlash float64
}

const (
	explosionLifetime = 0.5
	pickupLifetime    = 0.4
	waveLifetime      = 2.0
	hitFlashDuration  = 0.2
)

// Add turns the events of one tick into effects
func (fx *Effects) Add(events []game.Event) {
	for _, e := range events {
		switch e.Type {
		case game.EventEnemyKilled:
			fx.items = append(fx.items, effect{kind: effectExplosion, x: e.X, z: e.Z, lifetime: explosionLifetime})
		case game.EventPickupCollected:
			fx.items = append(fx.items, effect{kind: effectPickup, x: e.X, z: e.Z, lifetime: pickupLifetime})
		case game.EventWaveCompleted:
			fx.items = append(fx.items, effect{kind: effectWave, lifetime: waveLifetime})
		case game.EventPlayerHit:
			fx.hitFlash = hitFlashDuration
		}
	}
}

// Update ages every effect and drops the expired ones
func (fx *Effects) Update(dt float64) {
	kept := fx.items[:0]
	for _, e := range fx.items {
		e.age += dt
		if e.age < e.lifetime {
			kept = append(kept, e)
		}
	}
	fx.items = kept
	fx.hitFlash = max(fx.hitFlash-dt, 0)
}

// Clear drops every effect, used when the session resets
func (fx *Effects) Clear() {
	fx.items = fx.items[:0]
	fx.hitFlash = 0
}

// Len returns the number of live effects
func (fx *Effects) Len() int {
	return len(fx.items)
}

// WaveBanner reports whether a wave was completed recently
func (fx *Effects) WaveBanner() bool {
	for i := range fx.items {
		if fx.items[i].kind == effectWave {
			return true
		}
	}
	return false
}

// Flashing reports whether the damage flash is showing
func (fx *Effects) Flashing() bool {
	return fx.hitFlash > 0
}
