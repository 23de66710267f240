// Package mastery maintains the rolling per-skill correctness record and
// derives the mastery percentage shown everywhere else in the app.
package mastery

import (
	"context"
	"fmt"
	"math"

	"github.com/abhisek/readhero/internal/skills"
	"github.com/abhisek/readhero/internal/store"
)

const (
	// HistoryCap bounds the per-skill outcome history. Oldest entries are
	// evicted first.
	HistoryCap = 10

	// MasteryWindow is how many of the most recent outcomes feed the
	// mastery percentage. The wider history only feeds the record itself;
	// mastery always looks at the tail.
	MasteryWindow = 3
)

// InvalidSkillError reports a skill id outside the fixed taxonomy.
type InvalidSkillError struct {
	SkillID int
}

func (e *InvalidSkillError) Error() string {
	return fmt.Sprintf("mastery: skill id %d outside 1..%d", e.SkillID, skills.Count)
}

// SkillRecord is the bounded history and derived mastery for one skill.
// Records are created lazily on the first answer for that skill.
type SkillRecord struct {
	SkillID       int    `json:"skill_id"`
	History       []bool `json:"history"`
	Mastery       int    `json:"mastery"`
	TotalCorrect  int    `json:"total_correct"`
	TotalAnswered int    `json:"total_answered"`
}

// Tracker owns all SkillRecords and persists them under one state key.
type Tracker struct {
	states store.StateRepo
	skills map[int]*SkillRecord
}

// NewTracker loads the skill map from the state store. Absent or corrupt
// stored state starts fresh.
func NewTracker(ctx context.Context, states store.StateRepo) (*Tracker, error) {
	t := &Tracker{
		states: states,
		skills: make(map[int]*SkillRecord),
	}

	var stored map[int]*SkillRecord
	ok, err := store.LoadState(ctx, states, store.KeySkills, &stored)
	if err != nil {
		return nil, err
	}
	if ok {
		for id, rec := range stored {
			if !skills.IsValid(id) || rec == nil {
				continue
			}
			rec.SkillID = id
			if len(rec.History) > HistoryCap {
				rec.History = rec.History[len(rec.History)-HistoryCap:]
			}
			t.skills[id] = rec
		}
	}
	return t, nil
}

// RecordAnswer appends an outcome to the skill's history, updates lifetime
// counters, recomputes mastery, and persists the map. It returns the updated
// record.
func (t *Tracker) RecordAnswer(ctx context.Context, skillID int, correct bool) (*SkillRecord, error) {
	if !skills.IsValid(skillID) {
		return nil, &InvalidSkillError{SkillID: skillID}
	}

	rec, ok := t.skills[skillID]
	if !ok {
		rec = &SkillRecord{SkillID: skillID}
		t.skills[skillID] = rec
	}

	rec.History = append(rec.History, correct)
	if len(rec.History) > HistoryCap {
		rec.History = rec.History[len(rec.History)-HistoryCap:]
	}

	rec.TotalAnswered++
	if correct {
		rec.TotalCorrect++
	}
	rec.Mastery = masteryOf(rec.History)

	if err := t.save(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

// masteryOf derives the mastery percentage from the last MasteryWindow
// entries of a history. Empty history is 0.
func masteryOf(history []bool) int {
	k := len(history)
	if k == 0 {
		return 0
	}
	if k > MasteryWindow {
		k = MasteryWindow
	}

	correct := 0
	for _, c := range history[len(history)-k:] {
		if c {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(k)))
}

// Get returns the record for a skill, or nil if it has never been answered.
func (t *Tracker) Get(skillID int) *SkillRecord {
	return t.skills[skillID]
}

// All returns the recorded skills keyed by id. Skills never attempted are
// absent.
func (t *Tracker) All() map[int]*SkillRecord {
	out := make(map[int]*SkillRecord, len(t.skills))
	for id, rec := range t.skills {
		out[id] = rec
	}
	return out
}

// MasteryMap returns mastery per skill for every skill in the taxonomy,
// with 0 for skills that have no record.
func (t *Tracker) MasteryMap() map[int]int {
	out := make(map[int]int, skills.Count)
	for id := 1; id <= skills.Count; id++ {
		if rec, ok := t.skills[id]; ok {
			out[id] = rec.Mastery
		} else {
			out[id] = 0
		}
	}
	return out
}

func (t *Tracker) save(ctx context.Context) error {
	return t.states.Set(ctx, store.KeySkills, t.skills)
}
