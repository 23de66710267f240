// Package badges derives achievement badges from current skill mastery.
// Badges are monotonic: once earned they are never revoked.
package badges

import (
	"context"
	"sort"

	"github.com/abhisek/readhero/internal/store"
)

// MasteryThreshold is the mastery a skill must reach for badge purposes.
const MasteryThreshold = 80

// Definition maps a badge to the skills that must all be mastered to
// unlock it.
type Definition struct {
	ID     string
	Name   string
	Icon   string
	Skills []int
}

// Definitions returns the fixed badge catalog in display order.
func Definitions() []Definition {
	return []Definition{
		{ID: "vocab", Name: "Vocabulary Hero", Icon: "📚", Skills: []int{1, 2, 3, 4}},
		{ID: "direct", Name: "Comprehension Hero", Icon: "🎯", Skills: []int{5}},
		{ID: "analysis", Name: "Analysis Hero", Icon: "🔍", Skills: []int{6, 7}},
		{ID: "narrative", Name: "Narrative Hero", Icon: "📖", Skills: []int{8}},
		{ID: "reality", Name: "Connections Hero", Icon: "🌍", Skills: []int{9}},
		{ID: "taste", Name: "Style Hero", Icon: "✨", Skills: []int{10}},
		{ID: "opinion", Name: "Opinion Hero", Icon: "💬", Skills: []int{11, 12}},
		{ID: "creative", Name: "Creativity Hero", Icon: "🎨", Skills: []int{13}},
		{ID: "persuade", Name: "Persuasion Hero", Icon: "🎤", Skills: []int{14}},
		{ID: "solutions", Name: "Solutions Hero", Icon: "💡", Skills: []int{15}},
	}
}

// Lookup returns the definition for a badge id, or nil.
func Lookup(id string) *Definition {
	for _, d := range Definitions() {
		if d.ID == id {
			return &d
		}
	}
	return nil
}

// Evaluator owns the earned badge set.
type Evaluator struct {
	states store.StateRepo
	earned map[string]bool
}

// NewEvaluator loads the earned set from the store. Absent or corrupt state
// starts empty.
func NewEvaluator(ctx context.Context, states store.StateRepo) (*Evaluator, error) {
	e := &Evaluator{states: states, earned: make(map[string]bool)}

	var stored []string
	ok, err := store.LoadState(ctx, states, store.KeyBadges, &stored)
	if err != nil {
		return nil, err
	}
	if ok {
		for _, id := range stored {
			e.earned[id] = true
		}
	}
	return e, nil
}

// Evaluate returns the badges newly earned under the given mastery map and
// adds them to the earned set. Calling it again with unchanged mastery
// returns nothing: evaluation is idempotent.
func (e *Evaluator) Evaluate(ctx context.Context, masteryBySkill map[int]int) ([]Definition, error) {
	var earned []Definition
	for _, def := range Definitions() {
		if e.earned[def.ID] {
			continue
		}
		if allMastered(def.Skills, masteryBySkill) {
			earned = append(earned, def)
			e.earned[def.ID] = true
		}
	}

	if len(earned) > 0 {
		if err := e.save(ctx); err != nil {
			return nil, err
		}
	}
	return earned, nil
}

// Earned returns the earned badge ids in stable order.
func (e *Evaluator) Earned() []string {
	out := make([]string, 0, len(e.earned))
	for id := range e.earned {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Has reports whether a badge has been earned.
func (e *Evaluator) Has(id string) bool {
	return e.earned[id]
}

func allMastered(skillIDs []int, mastery map[int]int) bool {
	for _, id := range skillIDs {
		if mastery[id] < MasteryThreshold {
			return false
		}
	}
	return true
}

func (e *Evaluator) save(ctx context.Context) error {
	return e.states.Set(ctx, store.KeyBadges, e.Earned())
}
