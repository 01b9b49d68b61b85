package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"tankarena/app"
	"tankarena/config"
	"tankarena/frontend"
)

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	profile := flag.Bool("profile", false, "capture a CPU profile and trace when the frame rate drops")
	flag.Parse()

	env, err := app.Bootstrap(app.Options{
		Name:      "tankarena",
		ConfigDir: *configDir,
		Console:   os.Stderr,
	})
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log := env.Log

	world := env.NewWorld()

	// F2 captures on demand even without -profile
	opts := frontend.Options{
		Width:       env.Settings.Window.Width,
		Height:      env.Settings.Window.Height,
		Logger:      log,
		Profiler:    frontend.NewProfiler(filepath.Join(env.Settings.LogsDir, "profiles"), 5*time.Second, log),
		AutoProfile: *profile,
	}
	if env.Recorder != nil {
		opts.Recorder = env.Recorder
	}
	g := frontend.NewGame(world, opts)

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle("Tank Arena")
	ebiten.SetWindowResizable(true)

	runErr := ebiten.RunGame(g)
	opts.Profiler.Wait()
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Error().Err(runErr).Msg("Game exited with error")
	} else {
		log.Info().Int("highScore", world.HighScore()).Msg("Goodbye")
	}

	if err := env.Close(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		os.Exit(1)
	}
}
