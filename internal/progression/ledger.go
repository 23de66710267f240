// Package progression accumulates experience points, derives the level, and
// tracks which passages the student has completed.
package progression

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/readhero/internal/config"
	"github.com/abhisek/readhero/internal/store"
)

// Progress is the student's lifetime progression state. Level is always
// derived from XP, never stored on its own.
type Progress struct {
	XP             int `json:"xp"`
	TextsCompleted int `json:"texts_completed"`
	TotalCorrect   int `json:"total_correct"`
	TotalAnswered  int `json:"total_answered"`
}

// CompletedPassage tracks the best result for one passage. Re-completion
// never regresses the stored score.
type CompletedPassage struct {
	PassageID string    `json:"passage_id"`
	Score     int       `json:"score"`
	Attempts  int       `json:"attempts"`
	LastDate  time.Time `json:"last_date"`
}

// Ledger owns Progress and the completed-passage records.
type Ledger struct {
	states    store.StateRepo
	cfg       config.Config
	progress  Progress
	completed map[string]*CompletedPassage
	now       func() time.Time
}

// NewLedger loads progression state from the store. Absent or corrupt state
// starts at zero.
func NewLedger(ctx context.Context, states store.StateRepo, cfg config.Config) (*Ledger, error) {
	l := &Ledger{
		states:    states,
		cfg:       cfg,
		completed: make(map[string]*CompletedPassage),
		now:       time.Now,
	}

	if _, err := store.LoadState(ctx, states, store.KeyProgress, &l.progress); err != nil {
		return nil, err
	}

	var completed map[string]*CompletedPassage
	ok, err := store.LoadState(ctx, states, store.KeyCompleted, &completed)
	if err != nil {
		return nil, err
	}
	if ok {
		for id, rec := range completed {
			if rec == nil {
				continue
			}
			rec.PassageID = id
			l.completed[id] = rec
		}
	}
	return l, nil
}

// LevelFor derives the level for a given xp under the configured threshold.
func LevelFor(xp, xpPerLevel int) int {
	return xp/xpPerLevel + 1
}

// Progress returns a copy of the current progression state.
func (l *Ledger) Progress() Progress {
	return l.progress
}

// Level returns the current derived level.
func (l *Ledger) Level() int {
	return LevelFor(l.progress.XP, l.cfg.XPPerLevel)
}

// AveragePercent returns the lifetime accuracy percentage, 0 when nothing
// has been answered yet.
func (l *Ledger) AveragePercent() int {
	if l.progress.TotalAnswered == 0 {
		return 0
	}
	return int(math.Round(100 * float64(l.progress.TotalCorrect) / float64(l.progress.TotalAnswered)))
}

// ApplyReward adds xpDelta experience points. XP is monotonic; a negative
// delta is rejected.
func (l *Ledger) ApplyReward(ctx context.Context, xpDelta int) (Progress, error) {
	if xpDelta < 0 {
		return l.progress, fmt.Errorf("progression: negative xp reward %d", xpDelta)
	}
	l.progress.XP += xpDelta
	if err := l.save(ctx); err != nil {
		return l.progress, err
	}
	return l.progress, nil
}

// RecordAnswer updates the lifetime answer counters and awards the
// per-correct-answer xp when correct.
func (l *Ledger) RecordAnswer(ctx context.Context, correct bool) (Progress, error) {
	l.progress.TotalAnswered++
	if correct {
		l.progress.TotalCorrect++
		l.progress.XP += l.cfg.XPPerCorrect
	}
	if err := l.save(ctx); err != nil {
		return l.progress, err
	}
	return l.progress, nil
}

// CompletePassage records a passage completion: increments the completion
// count, awards the completion bonus, and upserts the per-passage best
// score (max of old and new), attempt count, and timestamp.
func (l *Ledger) CompletePassage(ctx context.Context, passageID string, scorePct int) (Progress, error) {
	l.progress.TextsCompleted++
	l.progress.XP += l.cfg.XPPerTextComplete

	rec, ok := l.completed[passageID]
	if !ok {
		rec = &CompletedPassage{PassageID: passageID}
		l.completed[passageID] = rec
	}
	if scorePct > rec.Score || rec.Attempts == 0 {
		rec.Score = scorePct
	}
	rec.Attempts++
	rec.LastDate = l.now()

	if err := l.save(ctx); err != nil {
		return l.progress, err
	}
	if err := l.states.Set(ctx, store.KeyCompleted, l.completed); err != nil {
		return l.progress, err
	}
	return l.progress, nil
}

// Completed returns the record for a passage, or nil if never completed.
func (l *Ledger) Completed(passageID string) *CompletedPassage {
	return l.completed[passageID]
}

// CompletedIDs returns the set of completed passage ids.
func (l *Ledger) CompletedIDs() map[string]bool {
	out := make(map[string]bool, len(l.completed))
	for id := range l.completed {
		out[id] = true
	}
	return out
}

func (l *Ledger) save(ctx context.Context) error {
	return l.states.Set(ctx, store.KeyProgress, l.progress)
}
