package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"tankarena/game"
)

// holdWindow is how long a key counts as held after its last key event.
// Terminals report presses and auto-repeats but never releases.
const holdWindow = 180 * time.Millisecond

// command is a client action that is not part of game.Input
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdStart
	cmdReset
)

// heldKeys emulates key-up events by letting presses expire
type heldKeys struct {
	window   time.Duration
	lastSeen map[game.Action]time.Time
}

func newHeldKeys(window time.Duration) *heldKeys {
	return &heldKeys{
		window:   window,
		lastSeen: make(map[game.Action]time.Time),
	}
}

// press marks an action as held at now
func (h *heldKeys) press(a game.Action, now time.Time) {
	h.lastSeen[a] = now
}

// input returns every action seen within the hold window
func (h *heldKeys) input(now time.Time) game.Input {
	var in game.Input
	for a, t := range h.lastSeen {
		if now.Sub(t) <= h.window {
			in = in.With(a)
		} else {
			delete(h.lastSeen, a)
		}
	}
	return in
}

// release drops every held action
func (h *heldKeys) release() {
	clear(h.lastSeen)
}

// translateKey maps a key event onto a game action or a client command
func translateKey(ev *tcell.EventKey) (game.Action, command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, cmdQuit
	case tcell.KeyEnter:
		return 0, cmdStart
	case tcell.KeyLeft:
		return game.ActionRotateLeft, cmdNone
	case tcell.KeyRight:
		return game.ActionRotateRight, cmdNone
	case tcell.KeyUp:
		return game.ActionForward, cmdNone
	case tcell.KeyDown:
		return game.ActionBack, cmdNone
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return game.ActionRotateLeft, cmdNone
		case 'd', 'D':
			return game.ActionRotateRight, cmdNone
		case 'w', 'W':
			return game.ActionForward, cmdNone
		case 's', 'S':
			return game.ActionBack, cmdNone
		case ' ':
			return game.ActionFire, cmdNone
		case 'm', 'M':
			return game.ActionModeToggle, cmdNone
		case 'q', 'Q':
			return game.ActionTurretLeft, cmdNone
		case 'e', 'E':
			return game.ActionTurretRight, cmdNone
		case 'r', 'R':
			return 0, cmdReset
		}
	}
	return 0, cmdNone
}

// held reports whether an action is still inside its hold window
func (h *heldKeys) held(a game.Action, now time.Time) bool {
	t, ok := h.lastSeen[a]
	return ok && now.Sub(t) <= h.window
}
