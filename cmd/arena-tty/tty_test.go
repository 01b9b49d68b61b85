package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tankarena/game"
)

func TestHeldKeysExpire(t *testing.T) {
	h := newHeldKeys(100 * time.Millisecond)
	t0 := time.Unix(0, 0)

	h.press(game.ActionForward, t0)
	h.press(game.ActionFire, t0.Add(80*time.Millisecond))

	in := h.input(t0.Add(90 * time.Millisecond))
	assert.True(t, in.Held(game.ActionForward))
	assert.True(t, in.Held(game.ActionFire))

	in = h.input(t0.Add(150 * time.Millisecond))
	assert.False(t, in.Held(game.ActionForward), "no repeat inside the window releases the key")
	assert.True(t, in.Held(game.ActionFire))

	h.release()
	assert.Equal(t, game.Input(0), h.input(t0.Add(150*time.Millisecond)))
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name   string
		ev     *tcell.EventKey
		action game.Action
		cmd    command
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), game.ActionForward, cmdNone},
		{"a rotates left", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), game.ActionRotateLeft, cmdNone},
		{"space fires", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), game.ActionFire, cmdNone},
		{"e turns turret", tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone), game.ActionTurretRight, cmdNone},
		{"m toggles", tcell.NewEventKey(tcell.KeyRune, 'M', tcell.ModNone), game.ActionModeToggle, cmdNone},
		{"enter starts", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), 0, cmdStart},
		{"r resets", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), 0, cmdReset},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 0, cmdQuit},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), 0, cmdNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, cmd := translateKey(tt.ev)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.cmd, cmd)
		})
	}
}

func TestViewportCell(t *testing.T) {
	v := newViewport(102, 53, 50)

	col, row, ok := v.cell(0, 0)
	require.True(t, ok)
	assert.Equal(t, 51, col)
	assert.Equal(t, 27, row)

	_, rowNorth, _ := v.cell(0, 40)
	assert.Less(t, rowNorth, row, "+Z is up")

	col, _, ok = v.cell(-50, 0)
	require.True(t, ok)
	assert.Equal(t, 1, col, "west edge sits right of the border")

	_, _, ok = v.cell(60, 0)
	assert.False(t, ok)
}

func TestHeadingGlyph(t *testing.T) {
	assert.Equal(t, '^', headingGlyph(0, 1))
	assert.Equal(t, '>', headingGlyph(1, 0))
	assert.Equal(t, 'v', headingGlyph(0, -1))
	assert.Equal(t, '<', headingGlyph(-1, 0))
	assert.Equal(t, '/', headingGlyph(1, 1))
	assert.Equal(t, '\\', headingGlyph(-1, 1))
}

func countSamples(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestCueFor(t *testing.T) {
	kill := cueFor(game.Event{Type: game.EventEnemyKilled}, 0.5)
	require.NotNil(t, kill)
	assert.Equal(t, sampleRate.N(60*time.Millisecond), countSamples(kill))

	wave := cueFor(game.Event{Type: game.EventWaveCompleted}, 1)
	require.NotNil(t, wave)
	want := sampleRate.N(90*time.Millisecond)*2 + sampleRate.N(140*time.Millisecond)
	assert.Equal(t, want, countSamples(wave))

	assert.NotNil(t, cueFor(game.Event{Type: game.EventPlayerHit}, 0))
	assert.Nil(t, cueFor(game.Event{Type: game.EventShotFired}, 1))
}

func TestSilentAudioIgnoresEvents(t *testing.T) {
	a := NewAudio(1)
	a.Play([]game.Event{{Type: game.EventEnemyKilled}})
	a.Close()
}

func newTestClient(mode game.Mode) *client {
	cfg := game.DefaultConfig()
	cfg.ObstacleCount = 2
	cfg.PickupCount = 1
	return &client{
		world: game.NewWorld(cfg, game.WithSeed(5), game.WithMode(mode)),
		keys:  newHeldKeys(holdWindow),
		audio: NewAudio(1),
		log:   zerolog.Nop(),
	}
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestClientSessionFlow(t *testing.T) {
	c := newTestClient(game.ModeArena)
	now := time.Unix(100, 0)

	// Title screen mode switch fires once per press, not per auto-repeat
	assert.True(t, c.handleEvent(key('m'), now))
	assert.Equal(t, game.ModeClassic, c.world.Mode())
	assert.True(t, c.handleEvent(key('m'), now.Add(30*time.Millisecond)))
	assert.Equal(t, game.ModeClassic, c.world.Mode())

	assert.True(t, c.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), now.Add(time.Second)))
	assert.True(t, c.world.Running())

	c.handleEvent(key(' '), now.Add(time.Second))
	c.step(now.Add(time.Second + 16*time.Millisecond))
	_, ok := c.world.PlayerShot()
	assert.True(t, ok)

	assert.False(t, c.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), now))
}

type countingRecorder struct {
	events []game.Event
	scores []int
}

func (r *countingRecorder) Record(_ context.Context, _ game.Mode, events []game.Event) {
	r.events = append(r.events, events...)
}

func (r *countingRecorder) ObserveScore(_ context.Context, _ game.Mode, score int) {
	r.scores = append(r.scores, score)
}

func TestStepRecordsGameOverTick(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.ObstacleCount = 0
	cfg.PickupCount = 0
	cfg.Lives = 1
	cfg.DamageBase = 1000
	rec := &countingRecorder{}
	c := &client{
		world:    game.NewWorld(cfg, game.WithSeed(5)),
		keys:     newHeldKeys(holdWindow),
		audio:    NewAudio(1),
		log:      zerolog.Nop(),
		recorder: rec,
	}
	now := time.Unix(100, 0)
	c.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), now)
	require.True(t, c.world.Running())

	for i := 0; i < 3000 && c.world.Running(); i++ {
		now = now.Add(50 * time.Millisecond)
		c.step(now)
	}
	require.True(t, c.world.GameOver())

	var over int
	for _, e := range rec.events {
		if e.Type == game.EventGameOver {
			over++
		}
	}
	assert.Equal(t, 1, over)
	require.NotEmpty(t, rec.scores)
}

func TestDrawRendersWorld(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(102, 53)

	c := newTestClient(game.ModeArena)
	draw(s, c.world)

	var top strings.Builder
	for x := 0; x < 40; x++ {
		r, _, _, _ := s.GetContent(x, 0)
		top.WriteRune(r)
	}
	assert.True(t, strings.HasPrefix(top.String(), "ARENA  score 0"))

	p := c.world.Player()
	v := newViewport(102, 53, c.world.Config().FieldHalfSize)
	col, row, ok := v.cell(p.X, p.Z)
	require.True(t, ok)
	r, _, _, _ := s.GetContent(col, row)
	assert.Equal(t, '^', r, "the player aims north at spawn")

	corner, _, _, _ := s.GetContent(0, 1)
	assert.Equal(t, '|', corner)
}
