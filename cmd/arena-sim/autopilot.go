package main

import (
	"math"

	"tankarena/game"
)

// Autopilot drives the player toward the nearest enemy and fires once the
// aim is on target.
type Autopilot struct {
	// AlignTolerance is the largest aim error, in radians, that still fires
	AlignTolerance float64

	// EngageRange is the distance the player closes to before holding position
	EngageRange float64
}

// DefaultAutopilot returns the tuning the headless runner uses
func DefaultAutopilot() Autopilot {
	return Autopilot{AlignTolerance: 0.08, EngageRange: 18}
}

// Input decides the held actions for the next tick
func (a Autopilot) Input(w *game.World) game.Input {
	p := w.Player()
	if p.Dead {
		return 0
	}
	target, ok := nearestEnemy(p, w.Enemies())
	if !ok {
		return 0
	}
	return a.aim(w.Rules(), p, target.X, target.Z)
}

// aim turns the aim vector toward (tx, tz), firing and closing in when aligned
func (a Autopilot) aim(rules game.RuleSet, p game.Player, tx, tz float64) game.Input {
	dx, dz := tx-p.X, tz-p.Z
	dist := math.Hypot(dx, dz)
	if dist == 0 {
		return game.NewInput(game.ActionFire)
	}
	dx, dz = dx/dist, dz/dist

	ax, az := rules.AimVector(&p)
	// Signed angle from the aim to the target, counter-clockwise positive
	aimErr := math.Atan2(ax*dz-az*dx, ax*dx+az*dz)

	if math.Abs(aimErr) > a.AlignTolerance {
		if (aimErr > 0) == leftTurnsCounterClockwise(rules, p) {
			return game.NewInput(game.ActionRotateLeft, game.ActionTurretLeft)
		}
		return game.NewInput(game.ActionRotateRight, game.ActionTurretRight)
	}

	in := game.NewInput(game.ActionFire)
	if dist > a.EngageRange {
		in = in.With(game.ActionForward)
	}
	return in
}

// leftTurnsCounterClockwise probes the rule set's angle convention, which
// differs between modes.
func leftTurnsCounterClockwise(rules game.RuleSet, p game.Player) bool {
	ax, az := rules.AimVector(&p)
	p.Angle += 0.01
	p.TurretAngle += 0.01
	bx, bz := rules.AimVector(&p)
	return ax*bz-az*bx > 0
}

func nearestEnemy(p game.Player, enemies []game.Enemy) (game.Enemy, bool) {
	best := math.Inf(1)
	var found game.Enemy
	for _, e := range enemies {
		if d := game.Distance(p.X, p.Z, e.X, e.Z); d < best {
			best = d
			found = e
		}
	}
	return found, !math.IsInf(best, 1)
}
