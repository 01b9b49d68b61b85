// Package app wires configuration, logging, high-score storage and metrics
// into a ready-to-run World for the binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"tankarena/config"
	"tankarena/game"
	"tankarena/highscore"
	"tankarena/logging"
	"tankarena/telemetry"
)

const metricsInterval = 10 * time.Second

// Replaced in tests
var (
	setupMeterProvider = telemetry.Setup
	newRecorder        = telemetry.NewRecorder
)

// Options selects how a binary is bootstrapped
type Options struct {
	// Name prefixes the log and metrics files
	Name string

	// ConfigDir holds tankarena.cfg.json
	ConfigDir string

	// Console receives human-readable logs. Nil logs to file only.
	Console io.Writer

	// DBPath overrides highscore.path when non-nil
	DBPath *string

	// Board selects the high-score board. Empty uses highscore.DefaultBoard.
	Board string
}

// Env holds everything a binary needs besides its frontend
type Env struct {
	Settings config.Settings
	Mode     game.Mode
	Log      zerolog.Logger
	Store    game.HighScoreStore
	Recorder *telemetry.Recorder
	Start    time.Time

	closers []func() error
}

// Bootstrap loads configuration and opens every supporting service. Failures
// of optional services degrade to in-memory or disabled variants.
func Bootstrap(opts Options) (*Env, error) {
	env := &Env{Start: time.Now()}
	configErr := config.Load(opts.ConfigDir)

	settings, err := config.Current()
	if err != nil {
		return nil, err
	}
	if opts.DBPath != nil {
		settings.HighScore.Path = *opts.DBPath
	}
	env.Settings = settings

	logFile, fileErr := logging.OpenFile(settings.LogsDir, opts.Name, env.Start)
	logOpts := logging.Options{Level: settings.LogLevel, Console: opts.Console}
	if fileErr == nil {
		logOpts.File = logFile
		env.closers = append(env.closers, logFile.Close)
	}
	env.Log = logging.New(logOpts).With().Str("app", opts.Name).Logger()

	if configErr != nil {
		env.Log.Warn().Err(configErr).Msg("Using default configuration")
	}
	if fileErr != nil {
		env.Log.Warn().Err(fileErr).Msg("Logging to console only")
	}

	env.Mode, err = settings.GameMode()
	if err != nil {
		env.Log.Warn().Err(err).Msg("Falling back to arena mode")
		env.Mode = game.ModeArena
	}

	env.Store = env.openStore(opts.Board)
	env.Recorder = env.setupMetrics(opts.Name)

	return env, nil
}

func (e *Env) openStore(board string) game.HighScoreStore {
	store, err := highscore.Open(e.Settings.HighScore.Path, e.Log)
	if err != nil {
		e.Log.Warn().Err(err).Msg("High scores will not be persisted")
		return highscore.NewMemory(0)
	}
	e.closers = append(e.closers, store.Close)
	if board != "" {
		store = store.WithBoard(board)
	}
	return store
}

func (e *Env) setupMetrics(name string) *telemetry.Recorder {
	if !e.Settings.Metrics.Enabled {
		return nil
	}
	f, err := logging.OpenFile(e.Settings.LogsDir, name+".metrics", e.Start)
	if err != nil {
		e.Log.Warn().Err(err).Msg("Metrics disabled")
		return nil
	}
	shutdown, err := setupMeterProvider(f, metricsInterval)
	if err != nil {
		f.Close()
		e.Log.Warn().Err(err).Msg("Metrics disabled")
		return nil
	}
	stop := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return shutdown(ctx)
	}
	rec, err := newRecorder()
	if err != nil {
		// the periodic reader must stop before its file goes away
		if serr := stop(); serr != nil {
			e.Log.Warn().Err(serr).Msg("Failed to stop metrics provider")
		}
		f.Close()
		e.Log.Warn().Err(err).Msg("Metrics disabled")
		return nil
	}
	// shutdown flushes into f, so it must run first
	e.closers = append(e.closers, f.Close, stop)
	e.Log.Info().Str("file", f.Name()).Msg("Writing gameplay metrics")
	return rec
}

// NewWorld builds a world from the loaded settings
func (e *Env) NewWorld(extra ...game.Option) *game.World {
	opts := []game.Option{
		game.WithLogger(e.Log),
		game.WithMode(e.Mode),
		game.WithHighScoreStore(e.Store),
	}
	if e.Settings.Seed != 0 {
		opts = append(opts, game.WithSeed(e.Settings.Seed))
	}
	return game.NewWorld(e.Settings.GameConfig(), append(opts, extra...)...)
}

// Close releases every service in reverse order of opening
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing app: %w", err)
	}
	return nil
}
