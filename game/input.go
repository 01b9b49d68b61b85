package game

import "strings"

// Action is a logical control the player can hold down
type Action uint16

const (
	ActionRotateLeft Action = 1 << iota
	ActionRotateRight
	ActionForward
	ActionBack
	ActionFire
	ActionModeToggle
	ActionTurretLeft
	ActionTurretRight
)

var actionNames = []struct {
	action Action
	name   string
}{
	{ActionRotateLeft, "left"},
	{ActionRotateRight, "right"},
	{ActionForward, "forward"},
	{ActionBack, "back"},
	{ActionFire, "fire"},
	{ActionModeToggle, "mode"},
	{ActionTurretLeft, "turret-left"},
	{ActionTurretRight, "turret-right"},
}

// Input is the set of actions held at the start of a tick
type Input uint16

// NewInput builds an input snapshot from the given held actions
func NewInput(actions ...Action) Input {
	var in Input
	for _, a := range actions {
		in = in.With(a)
	}
	return in
}

// Held reports whether an action is held
func (in Input) Held(a Action) bool {
	return in&Input(a) != 0
}

// With returns a copy of the input with the action held
func (in Input) With(a Action) Input {
	return in | Input(a)
}

// Without returns a copy of the input with the action released
func (in Input) Without(a Action) Input {
	return in &^ Input(a)
}

// axis folds two opposing actions into -1, 0 or +1
func (in Input) axis(neg, pos Action) float64 {
	v := 0.0
	if in.Held(neg) {
		v -= 1
	}
	if in.Held(pos) {
		v += 1
	}
	return v
}

func (in Input) String() string {
	if in == 0 {
		return "none"
	}
	var parts []string
	for _, n := range actionNames {
		if in.Held(n.action) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}
