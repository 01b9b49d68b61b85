package game

import (
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HighScoreStore persists the best score across sessions
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// World owns the whole session state. All mutation happens inside Tick, Start,
// Reset and SwitchMode; everything else is a read-only accessor returning copies.
type World struct {
	cfg     Config
	rules   RuleSet
	rng     *rand.Rand
	spawner *Spawner
	log     zerolog.Logger
	store   HighScoreStore

	sessionID uuid.UUID
	ticks     uint64

	player     Player
	enemies    []Enemy
	obstacles  []Obstacle
	pickups    []Pickup
	playerShot *Projectile
	enemyShots []Projectile

	score          int
	wave           int
	killsThisWave  int
	enemiesPerWave int
	lives          int
	highScore      int
	gameOver       bool
	gameStarted    bool

	prevInput Input
	events    []Event
}

// Option configures a World at construction time
type Option func(*World)

// WithLogger sets the logger used for session lifecycle messages
func WithLogger(log zerolog.Logger) Option {
	return func(w *World) {
		w.log = log
	}
}

// WithMode selects the rule set of the first session
func WithMode(m Mode) Option {
	return func(w *World) {
		w.rules = RulesFor(m)
	}
}

// WithSeed makes every random draw of the world reproducible
func WithSeed(seed uint64) Option {
	return func(w *World) {
		w.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithHighScoreStore reads the high score from the store now and writes it
// back whenever a session beats it.
func WithHighScoreStore(store HighScoreStore) Option {
	return func(w *World) {
		w.store = store
	}
}

// NewWorld creates a world and generates its first session
func NewWorld(cfg Config, opts ...Option) *World {
	w := &World{
		cfg:   cfg.Validate(),
		rules: RulesFor(ModeArena),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	w.spawner = NewSpawner(&w.cfg, w.rng, w.log)

	if w.store != nil {
		hs, err := w.store.LoadHighScore()
		if err != nil {
			w.log.Warn().Err(err).Msg("Failed to load high score, starting from zero")
		} else {
			w.highScore = hs
		}
	}

	w.Reset()
	return w
}

// Reset throws away the current session and generates a new one under the
// same rules. The new session waits for Start.
func (w *World) Reset() {
	w.sessionID = uuid.New()
	w.ticks = 0

	w.rules.ResetPlayer(&w.player, &w.cfg)
	w.obstacles = w.spawner.PlaceObstacles(w.cfg.ObstacleCount, w.player.X, w.player.Z)
	w.playerShot = nil
	w.enemyShots = w.enemyShots[:0]

	w.score = 0
	w.wave = 1
	w.killsThisWave = 0
	w.enemiesPerWave = 1
	w.lives = w.cfg.Lives
	w.gameOver = false
	w.gameStarted = false

	w.enemies = w.spawner.PlaceEnemies(w.enemiesPerWave, w.obstacles, nil, &w.player)

	w.pickups = w.pickups[:0]
	if w.rules.TracksProgress() {
		for i := 0; i < w.cfg.PickupCount; i++ {
			w.pickups = append(w.pickups, w.spawner.PlacePickup(w.obstacles, w.pickups, &w.player))
		}
	}

	w.prevInput = 0
	w.events = w.events[:0]

	w.log.Info().
		Str("session", w.sessionID.String()).
		Str("mode", w.rules.Mode().String()).
		Int("obstacles", len(w.obstacles)).
		Int("pickups", len(w.pickups)).
		Msg("Session reset")
}

// Start begins simulating a freshly reset session
func (w *World) Start() {
	if w.gameStarted || w.gameOver {
		return
	}
	w.gameStarted = true
	w.log.Info().Str("session", w.sessionID.String()).Msg("Session started")
}

// SwitchMode rebuilds the session under another rule set
func (w *World) SwitchMode(m Mode) {
	w.rules = RulesFor(m)
	w.Reset()
}

// Tick advances the simulation by one step. It does nothing until the session
// is started and nothing once the game is over.
func (w *World) Tick(dt float64, in Input) {
	w.events = w.events[:0]
	defer func() { w.prevInput = in }()

	if !w.gameStarted || w.gameOver {
		return
	}

	if in.Held(ActionModeToggle) && !w.prevInput.Held(ActionModeToggle) {
		w.SwitchMode(w.rules.Mode().Next())
		return
	}

	// Clamp delta time to prevent large jumps
	dt = min(max(dt, 0), w.cfg.MaxDeltaTime)
	w.ticks++

	w.updatePlayer(in, dt)
	w.updateEnemies(dt)
	w.updateProjectiles(dt)
	w.updatePickups(dt)
	w.checkHighScore()
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

// checkHighScore records and persists a new best score
func (w *World) checkHighScore() {
	if w.score <= w.highScore {
		return
	}
	w.highScore = w.score
	w.emit(Event{Type: EventHighScore, Value: float64(w.score)})

	if w.store == nil {
		return
	}
	if err := w.store.SaveHighScore(w.score); err != nil {
		w.log.Warn().Err(err).Int("score", w.score).Msg("Failed to save high score")
	}
}

// Config returns the validated configuration the world runs with
func (w *World) Config() Config { return w.cfg }

// Rules returns the active rule set
func (w *World) Rules() RuleSet { return w.rules }

// Mode returns the active game mode
func (w *World) Mode() Mode { return w.rules.Mode() }

// SessionID identifies the current session; it changes on every reset
func (w *World) SessionID() uuid.UUID { return w.sessionID }

// TickCount returns how many simulated ticks the session has run
func (w *World) TickCount() uint64 { return w.ticks }

// Player returns a copy of the player state
func (w *World) Player() Player { return w.player }

// Enemies returns a copy of the enemy roster
func (w *World) Enemies() []Enemy { return slices.Clone(w.enemies) }

// Obstacles returns a copy of the obstacle field
func (w *World) Obstacles() []Obstacle { return slices.Clone(w.obstacles) }

// Pickups returns a copy of the health pickups
func (w *World) Pickups() []Pickup { return slices.Clone(w.pickups) }

// PlayerShot returns the live player projectile, if any
func (w *World) PlayerShot() (Projectile, bool) {
	if w.playerShot == nil {
		return Projectile{}, false
	}
	return *w.playerShot, true
}

// EnemyShots returns a copy of the enemy projectiles in flight
func (w *World) EnemyShots() []Projectile { return slices.Clone(w.enemyShots) }

// Events returns what happened during the most recent tick
func (w *World) Events() []Event { return slices.Clone(w.events) }

func (w *World) Score() int          { return w.score }
func (w *World) Wave() int           { return w.wave }
func (w *World) KillsThisWave() int  { return w.killsThisWave }
func (w *World) EnemiesPerWave() int { return w.enemiesPerWave }
func (w *World) Lives() int          { return w.lives }
func (w *World) HighScore() int      { return w.highScore }
func (w *World) GameOver() bool      { return w.gameOver }
func (w *World) Started() bool       { return w.gameStarted }

// Running reports whether Tick currently advances the simulation
func (w *World) Running() bool { return w.gameStarted && !w.gameOver }
