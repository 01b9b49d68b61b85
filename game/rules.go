package game

import (
	"fmt"
	"strings"
)

// Mode selects the rule set a session is played under
type Mode int

const (
	// ModeArena is the full game: tank controls with a free turret, timed
	// invulnerability after a death, health, lives, score, waves and pickups.
	ModeArena Mode = iota

	// ModeClassic is the free-drive sandbox: hull-relative controls and aiming,
	// permanent invulnerability and no health, lives, score or pickups.
	ModeClassic
)

func (m Mode) String() string {
	switch m {
	case ModeArena:
		return "arena"
	case ModeClassic:
		return "classic"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Next returns the mode the toggle action switches to
func (m Mode) Next() Mode {
	if m == ModeArena {
		return ModeClassic
	}
	return ModeArena
}

// ParseMode converts a mode name into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "arena", "tank":
		return ModeArena, nil
	case "classic", "sandbox":
		return ModeClassic, nil
	default:
		return ModeArena, fmt.Errorf("unknown game mode %q", s)
	}
}

// lifecycleChange reports a player state transition caused by a timer
type lifecycleChange int

const (
	lifecycleNone lifecycleChange = iota
	lifecycleRevived
	lifecycleVulnerable
)

// RuleSet holds the behavior that differs between game modes. A session is
// bound to one RuleSet for its whole lifetime.
type RuleSet interface {
	Mode() Mode

	// Facing converts a vehicle angle into the unit vector it drives along
	Facing(angle float64) (float64, float64)

	// Steer applies rotation input to the player and returns the displacement
	// the player wants this tick. The caller decides whether it is committed.
	Steer(p *Player, in Input, cfg *Config, dt float64) (dx, dz float64)

	// AimVector returns the unit direction player shots travel
	AimVector(p *Player) (float64, float64)

	// Vulnerable reports whether enemy shots can hurt the player right now
	Vulnerable(p *Player) bool

	// AdvanceLifecycle counts down the death and invulnerability timers
	AdvanceLifecycle(p *Player, cfg *Config, dt float64) lifecycleChange

	// TracksProgress reports whether health, lives, score, waves and pickups exist
	TracksProgress() bool

	// ResetPlayer puts the player into its initial state for a new session
	ResetPlayer(p *Player, cfg *Config)
}

// RulesFor returns the rule set for a mode
func RulesFor(m Mode) RuleSet {
	if m == ModeClassic {
		return classicRules{}
	}
	return arenaRules{}
}

// arenaRules drives like a tank: the hull uses the negated angle convention
// and shots leave along an independently rotated turret.
type arenaRules struct{}

func (arenaRules) Mode() Mode { return ModeArena }

func (arenaRules) Facing(angle float64) (float64, float64) {
	return headingVector(-angle)
}

func (r arenaRules) Steer(p *Player, in Input, cfg *Config, dt float64) (float64, float64) {
	p.Angle += in.axis(ActionRotateRight, ActionRotateLeft) * cfg.PlayerTurnRate * dt
	p.TurretAngle += in.axis(ActionTurretRight, ActionTurretLeft) * cfg.TurretTurnRate * dt

	move := in.axis(ActionBack, ActionForward) * cfg.PlayerSpeed * dt
	if move == 0 {
		return 0, 0
	}
	hx, hz := r.Facing(p.Angle)
	return hx * move, hz * move
}

func (r arenaRules) AimVector(p *Player) (float64, float64) {
	return r.Facing(p.TurretAngle)
}

func (arenaRules) Vulnerable(p *Player) bool {
	return !p.Dead && !p.Invulnerable
}

func (arenaRules) AdvanceLifecycle(p *Player, cfg *Config, dt float64) lifecycleChange {
	switch {
	case p.Dead:
		p.DeadTime -= dt
		if p.DeadTime > 0 {
			return lifecycleNone
		}
		p.Dead = false
		p.DeadTime = 0
		p.Invulnerable = true
		p.InvulnerableTime = cfg.InvulnerableTime
		p.Health = p.MaxHealth
		return lifecycleRevived
	case p.Invulnerable:
		p.InvulnerableTime -= dt
		if p.InvulnerableTime > 0 {
			return lifecycleNone
		}
		p.Invulnerable = false
		p.InvulnerableTime = 0
		return lifecycleVulnerable
	}
	return lifecycleNone
}

func (arenaRules) TracksProgress() bool { return true }

func (arenaRules) ResetPlayer(p *Player, cfg *Config) {
	*p = Player{
		MaxHealth: cfg.MaxHealth,
		Health:    cfg.MaxHealth,
	}
}

// classicRules drives along the hull heading and fires where the hull points.
// The player can never be hurt.
type classicRules struct{}

func (classicRules) Mode() Mode { return ModeClassic }

func (classicRules) Facing(angle float64) (float64, float64) {
	return headingVector(angle)
}

func (r classicRules) Steer(p *Player, in Input, cfg *Config, dt float64) (float64, float64) {
	p.Angle += in.axis(ActionRotateRight, ActionRotateLeft) * cfg.PlayerTurnRate * dt
	p.TurretAngle = p.Angle

	move := in.axis(ActionBack, ActionForward) * cfg.PlayerSpeed * dt
	if move == 0 {
		return 0, 0
	}
	hx, hz := r.Facing(p.Angle)
	return hx * move, hz * move
}

func (r classicRules) AimVector(p *Player) (float64, float64) {
	return r.Facing(p.Angle)
}

func (classicRules) Vulnerable(*Player) bool { return false }

func (classicRules) AdvanceLifecycle(*Player, *Config, float64) lifecycleChange {
	return lifecycleNone
}

func (classicRules) TracksProgress() bool { return false }

func (classicRules) ResetPlayer(p *Player, cfg *Config) {
	*p = Player{
		MaxHealth:    cfg.MaxHealth,
		Health:       cfg.MaxHealth,
		Invulnerable: true,
	}
}
