package game

// EventType identifies something notable that happened during a tick
type EventType int

const (
	EventShotFired EventType = iota
	EventEnemyKilled
	EventWaveCompleted
	EventPlayerHit
	EventPlayerDied
	EventLifeLost
	EventGameOver
	EventPlayerRevived
	EventPlayerVulnerable
	EventPickupCollected
	EventHighScore
)

func (t EventType) String() string {
	switch t {
	case EventShotFired:
		return "shot_fired"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventWaveCompleted:
		return "wave_completed"
	case EventPlayerHit:
		return "player_hit"
	case EventPlayerDied:
		return "player_died"
	case EventLifeLost:
		return "life_lost"
	case EventGameOver:
		return "game_over"
	case EventPlayerRevived:
		return "player_revived"
	case EventPlayerVulnerable:
		return "player_vulnerable"
	case EventPickupCollected:
		return "pickup_collected"
	case EventHighScore:
		return "high_score"
	default:
		return "unknown"
	}
}

// Event is a value record of a tick outcome. Events carry positions and
// numbers only, never entity handles.
type Event struct {
	Type EventType

	// Where it happened, when meaningful
	X, Z float64

	// Value carries the event's number: damage dealt, score awarded,
	// new wave, remaining lives or new high score.
	Value float64

	// FromEnemy is set on EventShotFired for enemy shots
	FromEnemy bool
}
