package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// AnswerEventData captures one answered question for the event log.
type AnswerEventData struct {
	SessionID   string
	QuestionID  string
	PassageID   string
	SkillID     int
	ChosenIndex int
	Correct     bool
	TimeMs      int
}

// SessionEventData captures a finished session for the event log.
type SessionEventData struct {
	SessionID       string
	Mode            string
	PassageID       string
	SkillID         int
	QuestionsServed int
	CorrectAnswers  int
	ScorePercent    int
	DurationSecs    int
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendAnswerEvent records a single answered question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a finished session.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// SkillAccuracy returns the lifetime accuracy ratio for a skill from
	// the answer log, and the number of answers it is based on.
	SkillAccuracy(ctx context.Context, skillID int) (float64, int, error)

	// LastActive returns the timestamp of the most recent answer event,
	// or the zero time if none exist.
	LastActive(ctx context.Context) (time.Time, error)
}

// sequenceCounter manages the global monotonic sequence number shared across
// all event types. Each event type lives in its own ent-managed table, so
// per-table auto-increment IDs can't establish cross-type ordering. Uses raw
// SQL because ent doesn't support database-level atomic counters; the mutex
// serializes within the process and RETURNING makes the increment atomic at
// the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
