package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"

	"tankarena/game"
)

// Keymap binds each action to the keys that hold it
type Keymap map[game.Action][]ebiten.Key

// DefaultKeymap returns arrows/WASD driving, space to fire, Q/E for the
// turret and M to switch modes.
func DefaultKeymap() Keymap {
	return Keymap{
		game.ActionRotateLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
		game.ActionRotateRight: {ebiten.KeyArrowRight, ebiten.KeyD},
		game.ActionForward:     {ebiten.KeyArrowUp, ebiten.KeyW},
		game.ActionBack:        {ebiten.KeyArrowDown, ebiten.KeyS},
		game.ActionFire:        {ebiten.KeySpace},
		game.ActionModeToggle:  {ebiten.KeyM},
		game.ActionTurretLeft:  {ebiten.KeyQ},
		game.ActionTurretRight: {ebiten.KeyE},
	}
}

// Input samples the held actions through pressed
func (k Keymap) Input(pressed func(ebiten.Key) bool) game.Input {
	var in game.Input
	for action, keys := range k {
		for _, key := range keys {
			if pressed(key) {
				in = in.With(action)
				break
			}
		}
	}
	return in
}
