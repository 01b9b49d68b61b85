package frontend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"tankarena/game"
)

const (
	fpsWindow        = 0.5 // seconds between FPS samples
	fpsDropThreshold = 45.0
	fpsWarmup        = 3 * time.Second
	defaultZoom      = 12.0
)

// EventRecorder receives the events of every simulated tick
type EventRecorder interface {
	Record(ctx context.Context, mode game.Mode, events []game.Event)
	ObserveScore(ctx context.Context, mode game.Mode, score int)
}

// Options configures the windowed client
type Options struct {
	Width, Height int
	Zoom          float64
	Keymap        Keymap
	Palette       *Palette
	Recorder      EventRecorder
	Profiler      *Profiler
	Logger        zerolog.Logger

	// AutoProfile captures a profile when the frame rate drops. F2 captures
	// whenever a Profiler is set.
	AutoProfile bool
}

// Game adapts a World to ebiten. It owns presentation state only; every
// rule lives in the world.
type Game struct {
	world    *game.World
	clock    *Clock
	keymap   Keymap
	camera   *Camera
	renderer *Renderer
	effects  *Effects
	recorder EventRecorder
	profiler *Profiler
	log      zerolog.Logger

	autoProfile   bool
	width, height int
	showDebug     bool

	// FPS tracking
	fps              float64
	fpsUpdateTimer   float64
	fpsUpdateCounter int
	startTime        time.Time
}

// NewGame creates the ebiten client around w
func NewGame(w *game.World, opts Options) *Game {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.Zoom <= 0 {
		opts.Zoom = defaultZoom
	}
	if opts.Keymap == nil {
		opts.Keymap = DefaultKeymap()
	}
	palette := DefaultPalette()
	if opts.Palette != nil {
		palette = *opts.Palette
	}

	camera := NewCamera(float64(opts.Width), float64(opts.Height), opts.Zoom)
	p := w.Player()
	camera.Snap(p.X, p.Z)

	return &Game{
		world:     w,
		clock:     NewClock(w.Config().MaxDeltaTime),
		keymap:    opts.Keymap,
		camera:    camera,
		renderer:  NewRenderer(camera, palette),
		effects:   &Effects{},
		recorder:  opts.Recorder,
		profiler:  opts.Profiler,
		log:       opts.Logger,
		width:     opts.Width,
		height:    opts.Height,
		startTime: time.Now(),

		autoProfile: opts.AutoProfile,
	}
}

// World returns the simulated world
func (g *Game) World() *game.World {
	return g.world
}

// Update handles client commands, samples input and advances the world
func (g *Game) Update() error {
	dt := g.clock.Tick()
	g.updateFPS(dt)

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showDebug = !g.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.captureProfile("manual")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.startOrRestart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && !g.world.Running() {
		g.switchModeIdle()
	}

	g.advance(dt, g.keymap.Input(ebiten.IsKeyPressed))
	return nil
}

// startOrRestart starts a waiting session, or replaces a finished one
func (g *Game) startOrRestart() {
	if g.world.GameOver() {
		g.reset()
	}
	g.world.Start()
	g.clock.Reset()
}

// reset generates a fresh session that waits for start
func (g *Game) reset() {
	g.world.Reset()
	g.resetView()
}

// switchModeIdle lets the title screen pick the rules before starting
func (g *Game) switchModeIdle() {
	g.world.SwitchMode(g.world.Mode().Next())
	g.resetView()
}

func (g *Game) resetView() {
	g.effects.Clear()
	p := g.world.Player()
	g.camera.Snap(p.X, p.Z)
}

// advance runs one world tick and updates everything derived from it
func (g *Game) advance(dt float64, in game.Input) {
	session := g.world.SessionID()
	wasRunning := g.world.Running()
	g.world.Tick(dt, in)
	if g.world.SessionID() != session {
		// Mode toggled mid-game
		g.resetView()
		return
	}

	events := g.world.Events()
	g.effects.Add(events)
	g.effects.Update(dt)

	// The tick that ends the game still carries its events
	if g.recorder != nil && wasRunning {
		ctx := context.Background()
		g.recorder.Record(ctx, g.world.Mode(), events)
		if g.world.Rules().TracksProgress() {
			g.recorder.ObserveScore(ctx, g.world.Mode(), g.world.Score())
		}
	}

	p := g.world.Player()
	g.camera.Follow(p.X, p.Z)
}

// updateFPS samples the frame rate and captures a profile on a sharp drop
func (g *Game) updateFPS(dt float64) {
	g.fpsUpdateTimer += dt
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer < fpsWindow {
		return
	}
	g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
	g.fpsUpdateCounter = 0
	g.fpsUpdateTimer = 0

	// Skip detection right after launch
	if g.autoProfile && g.fps < fpsDropThreshold && time.Since(g.startTime) >= fpsWarmup {
		g.captureProfile(fmt.Sprintf("fps%.0f-enemies%d", g.fps, len(g.world.Enemies())))
	}
}

func (g *Game) captureProfile(reason string) {
	if g.profiler == nil {
		return
	}
	err := g.profiler.Capture(reason)
	switch {
	case errors.Is(err, ErrProfilerBusy):
		g.log.Debug().Err(err).Msg("Profile capture skipped")
	case err != nil:
		g.log.Warn().Err(err).Msg("Failed to capture profile")
	default:
		g.log.Info().Str("reason", reason).Float64("fps", g.fps).Msg("Capturing performance profile")
	}
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.palette.Background)
	g.renderer.Render(screen, g.world, g.effects)
	g.renderer.drawRadar(screen, g.world)
	g.renderer.drawHUD(screen, g.world, g.effects, g.fps, g.showDebug)
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
