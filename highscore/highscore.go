package highscore

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultBoard is the board the game reads and writes
const DefaultBoard = "arena"

// Record is one high-score row
type Record struct {
	Name      string `gorm:"primaryKey;size:64"`
	Score     int    `gorm:"not null;default:0"`
	SessionID string `gorm:"size:36"`
	UpdatedAt time.Time
}

// TableName sets the table name
func (Record) TableName() string {
	return "high_scores"
}

// Store keeps high scores in SQLite through GORM. Writes only ever raise a
// board's score, so a stale writer cannot lower it.
type Store struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	board  string
	runID  uuid.UUID
	log    zerolog.Logger
}

// Open opens (or creates) the score database at path.
// If path is empty, uses an in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening high score db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Record{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to create high_scores table: %w", err)
	}

	if path == "" {
		log.Info().Msg("Using in-memory high score DB")
	} else {
		log.Info().Str("path", path).Msg("Using local high score DB")
	}

	return &Store{
		db:     db,
		sqlDB:  sqlDB,
		board:  DefaultBoard,
		runID:  uuid.New(),
		log:    log,
	}, nil
}

// WithBoard returns a view of the same database keyed by another board name
func (s *Store) WithBoard(name string) *Store {
	c := *s
	c.board = name
	return &c
}

// Board returns the board name this store reads and writes
func (s *Store) Board() string {
	return s.board
}

// LoadHighScore returns the board's score, zero when nothing was saved yet
func (s *Store) LoadHighScore() (int, error) {
	var rec Record
	if err := s.db.Where("name = ?", s.board).Limit(1).Find(&rec).Error; err != nil {
		return 0, fmt.Errorf("loading high score %q: %w", s.board, err)
	}
	return rec.Score, nil
}

// SaveHighScore stores score if it beats the stored one
func (s *Store) SaveHighScore(score int) error {
	var raised bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var rec Record
		if err := tx.Where("name = ?", s.board).Limit(1).Find(&rec).Error; err != nil {
			return err
		}
		if rec.Name != "" && rec.Score >= score {
			return nil
		}
		raised = true
		return tx.Save(&Record{
			Name:      s.board,
			Score:     score,
			SessionID: s.runID.String(),
			UpdatedAt: time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return fmt.Errorf("saving high score %q: %w", s.board, err)
	}
	if raised {
		s.log.Debug().Str("board", s.board).Int("score", score).Msg("High score saved")
	}
	return nil
}

// All returns every board, best score first
func (s *Store) All() ([]Record, error) {
	var recs []Record
	if err := s.db.Order("score desc").Order("name").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing high scores: %w", err)
	}
	return recs, nil
}

// Close releases the database
func (s *Store) Close() error {
	return s.sqlDB.Close()
}

// Memory keeps the high score in process memory
type Memory struct {
	mu    sync.Mutex
	score int
}

// NewMemory creates a memory store seeded with a score
func NewMemory(initial int) *Memory {
	return &Memory{score: initial}
}

func (m *Memory) LoadHighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

func (m *Memory) SaveHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = max(m.score, score)
	return nil
}
