// Command arena-tty plays the arena in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"tankarena/app"
	"tankarena/config"
	"tankarena/game"
	"tankarena/telemetry"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

// client owns the terminal side of a session
type client struct {
	world *game.World
	keys  *heldKeys
	audio *Audio
	log   zerolog.Logger
	last  time.Time

	recorder eventRecorder
}

// eventRecorder receives the events of every tick played
type eventRecorder interface {
	Record(ctx context.Context, mode game.Mode, events []game.Event)
	ObserveScore(ctx context.Context, mode game.Mode, score int)
}

var _ eventRecorder = (*telemetry.Recorder)(nil)

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	// The terminal is the display, so logs only go to the log file
	env, err := app.Bootstrap(app.Options{Name: "arena-tty", ConfigDir: *configDir})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer env.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		env.Log.Error().Err(err).Msg("Failed to create screen")
		return
	}
	if err := screen.Init(); err != nil {
		env.Log.Error().Err(err).Msg("Failed to initialize screen")
		return
	}
	defer screen.Fini()

	c := &client{
		world: env.NewWorld(),
		keys:  newHeldKeys(holdWindow),
		audio: NewAudio(0.5),
		log:   env.Log,
	}
	if env.Recorder != nil {
		c.recorder = env.Recorder
	}
	if !*mute {
		if err := c.audio.Init(); err != nil {
			// Non-fatal, game can run without sound
			c.log.Warn().Err(err).Msg("Audio initialization failed")
		}
	}
	defer c.audio.Close()

	c.run(screen)
	c.log.Info().Int("highScore", c.world.HighScore()).Msg("Goodbye")
}

func (c *client) run(screen tcell.Screen) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	c.last = time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !c.handleEvent(ev, time.Now()) {
				return
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
		case now := <-ticker.C:
			c.step(now)
			draw(screen, c.world)
		}
	}
}

// handleEvent applies one terminal event and reports whether to keep running
func (c *client) handleEvent(ev tcell.Event, now time.Time) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}
	action, cmd := translateKey(key)
	switch cmd {
	case cmdQuit:
		return false
	case cmdStart:
		if c.world.GameOver() {
			c.world.Reset()
		}
		c.world.Start()
		c.keys.release()
		c.last = now
	case cmdReset:
		c.world.Reset()
		c.keys.release()
	}
	if action == 0 {
		return true
	}
	// The world ignores the toggle until started, so the title screen handles it
	if action == game.ActionModeToggle && !c.world.Running() && !c.keys.held(action, now) {
		c.world.SwitchMode(c.world.Mode().Next())
	}
	c.keys.press(action, now)
	return true
}

// step advances the world by the wall-clock time since the previous step
func (c *client) step(now time.Time) {
	dt := now.Sub(c.last).Seconds()
	c.last = now

	wasRunning := c.world.Running()
	c.world.Tick(dt, c.keys.input(now))
	events := c.world.Events()
	c.audio.Play(events)

	if c.recorder != nil && wasRunning {
		ctx := context.Background()
		c.recorder.Record(ctx, c.world.Mode(), events)
		if c.world.Rules().TracksProgress() {
			c.recorder.ObserveScore(ctx, c.world.Mode(), c.world.Score())
		}
	}
}
