// Command arena-sim plays sessions headlessly with an autopilot and records
// the results like the desktop client would.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"tankarena/app"
	"tankarena/config"
	"tankarena/game"
	"tankarena/highscore"
	"tankarena/telemetry"
)

// simOptions controls one headless run
type simOptions struct {
	Ticks int
	DT    float64
	Games int
}

// gameSummary describes one finished or interrupted session
type gameSummary struct {
	Session string
	Ticks   int
	Score   int
	Wave    int
	Kills   int
	Shots   int
	Hits    int
	Over    bool
}

func main() {
	ticks := flag.Int("ticks", 36000, "maximum ticks per game")
	dt := flag.Float64("dt", 1.0/60.0, "simulated seconds per tick")
	games := flag.Int("games", 1, "number of games to play")
	seed := flag.Uint64("seed", 0, "random seed (0 uses the configured seed)")
	mode := flag.String("mode", "", "game mode: arena or classic (empty uses the configured mode)")
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	db := flag.String("db", "", "high score database path (empty uses the configured path)")
	board := flag.String("board", "autopilot", "high score board the simulated games write to")
	flag.Parse()

	opts := app.Options{Name: "arena-sim", ConfigDir: *configDir, Console: os.Stderr, Board: *board}
	if *db != "" {
		opts.DBPath = db
	}
	env, err := app.Bootstrap(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer env.Close()
	log := env.Log

	var extra []game.Option
	if *seed != 0 {
		extra = append(extra, game.WithSeed(*seed))
	}
	if *mode != "" {
		m, err := game.ParseMode(*mode)
		if err != nil {
			log.Error().Err(err).Msg("Invalid mode")
			return
		}
		extra = append(extra, game.WithMode(m))
	}

	w := env.NewWorld(extra...)
	sim := simOptions{Ticks: *ticks, DT: *dt, Games: *games}

	summaries := run(context.Background(), w, sim, DefaultAutopilot(), env.Recorder, log)

	best := 0
	for _, s := range summaries {
		best = max(best, s.Score)
	}
	log.Info().
		Int("games", len(summaries)).
		Int("bestScore", best).
		Int("highScore", w.HighScore()).
		Msg("Simulation finished")
	logBoards(env.Store, log)
}

// logBoards lists every board of a database-backed store
func logBoards(store game.HighScoreStore, log zerolog.Logger) {
	db, ok := store.(*highscore.Store)
	if !ok {
		return
	}
	recs, err := db.All()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to list high scores")
		return
	}
	for _, r := range recs {
		log.Info().
			Str("board", r.Name).
			Int("score", r.Score).
			Bool("current", r.Name == db.Board()).
			Msg("High score")
	}
}

// run plays sim.Games sessions back to back and returns one summary each
func run(ctx context.Context, w *game.World, sim simOptions, pilot Autopilot, rec *telemetry.Recorder, log zerolog.Logger) []gameSummary {
	summaries := make([]gameSummary, 0, sim.Games)
	for g := 0; g < sim.Games; g++ {
		if g > 0 {
			w.Reset()
		}
		w.Start()
		s := playOne(ctx, w, sim, pilot, rec)
		log.Info().
			Str("session", s.Session).
			Int("ticks", s.Ticks).
			Int("score", s.Score).
			Int("wave", s.Wave).
			Int("kills", s.Kills).
			Int("shots", s.Shots).
			Int("hits", s.Hits).
			Bool("gameOver", s.Over).
			Msg("Game finished")
		summaries = append(summaries, s)
	}
	return summaries
}

func playOne(ctx context.Context, w *game.World, sim simOptions, pilot Autopilot, rec *telemetry.Recorder) gameSummary {
	s := gameSummary{Session: w.SessionID().String()}
	for s.Ticks < sim.Ticks && w.Running() {
		// The mode toggle is never pressed, so the session stays the same
		w.Tick(sim.DT, pilot.Input(w))
		s.Ticks++

		events := w.Events()
		for _, e := range events {
			switch e.Type {
			case game.EventEnemyKilled:
				s.Kills++
			case game.EventShotFired:
				if !e.FromEnemy {
					s.Shots++
				}
			case game.EventPlayerHit:
				s.Hits++
			}
		}
		if rec != nil {
			rec.Record(ctx, w.Mode(), events)
			rec.ObserveScore(ctx, w.Mode(), w.Score())
		}
	}
	s.Score = w.Score()
	s.Wave = w.Wave()
	s.Over = w.GameOver()
	return s
}
