// Package selector builds validated, shuffled question sets for every play
// mode. All randomness flows through an injected source so selection is
// deterministic under test.
package selector

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/readhero/internal/catalog"
	"github.com/abhisek/readhero/internal/skills"
)

const (
	// DefaultDrillMax is the question cap for a skill drill when the
	// caller does not specify one.
	DefaultDrillMax = 15

	// MinDrillQuestions is the smallest drill worth running. Below this
	// the selection reports insufficient content.
	MinDrillQuestions = 3
)

// Selector picks passages and builds question sets from the catalog.
type Selector struct {
	cat *catalog.Catalog
	rng *rand.Rand
}

// New creates a Selector over a loaded catalog with an injected random
// source.
func New(cat *catalog.Catalog, rng *rand.Rand) *Selector {
	return &Selector{cat: cat, rng: rng}
}

// ShuffleQuestion returns a copy of q with its choices independently
// permuted and the correct index remapped to follow the correct choice.
// All other fields pass through unchanged.
func (s *Selector) ShuffleQuestion(q catalog.Question) catalog.Question {
	perm := s.rng.Perm(len(q.Choices))

	shuffled := q
	shuffled.Choices = make([]string, len(q.Choices))
	for i, src := range perm {
		shuffled.Choices[i] = q.Choices[src]
		if src == q.CorrectIndex {
			shuffled.CorrectIndex = i
		}
	}
	return shuffled
}

// PickPassage returns the requested passage if id names one, otherwise a
// uniform pick among passages the student has not completed, falling back
// to a uniform pick among all passages once everything has been seen.
func (s *Selector) PickPassage(requestedID string, completed map[string]bool) *catalog.Passage {
	if requestedID != "" {
		if p := s.cat.Get(requestedID); p != nil {
			return p
		}
	}

	passages := s.cat.Passages()
	var unseen []*catalog.Passage
	for i := range passages {
		if !completed[passages[i].ID] {
			unseen = append(unseen, &passages[i])
		}
	}
	if len(unseen) > 0 {
		return unseen[s.rng.IntN(len(unseen))]
	}
	return &passages[s.rng.IntN(len(passages))]
}

// PassageQuestions returns the passage's questions in order, each with its
// choices shuffled.
func (s *Selector) PassageQuestions(p *catalog.Passage) []catalog.Question {
	out := make([]catalog.Question, 0, len(p.Questions))
	for _, q := range p.Questions {
		out = append(out, s.ShuffleQuestion(q))
	}
	return out
}

// SkillDrill gathers every catalog question for the skill, re-validates the
// gathered set, shuffles it, and returns up to maxQuestions (DefaultDrillMax
// when maxQuestions <= 0) with choices shuffled. A mismatched question
// anywhere aborts the whole selection; fewer than MinDrillQuestions matches
// reports insufficient content.
func (s *Selector) SkillDrill(skillID, maxQuestions int) ([]catalog.SkillDrillQuestion, error) {
	if !skills.IsValid(skillID) {
		return nil, &catalog.ValidationError{Reason: fmt.Sprintf("skill id %d outside 1..%d", skillID, skills.Count)}
	}
	if maxQuestions <= 0 {
		maxQuestions = DefaultDrillMax
	}

	gathered := s.cat.QuestionsForSkill(skillID)

	// Defensive double-check: a mismatch here means the catalog index is
	// broken, so abort rather than silently filter.
	for _, q := range gathered {
		if q.SkillID != skillID {
			return nil, &catalog.ValidationError{
				QuestionID: q.ID,
				Reason:     fmt.Sprintf("skill_id %d in drill for skill %d", q.SkillID, skillID),
			}
		}
	}

	if len(gathered) < MinDrillQuestions {
		return nil, &InsufficientContentError{SkillID: skillID, Available: len(gathered)}
	}

	s.rng.Shuffle(len(gathered), func(i, j int) {
		gathered[i], gathered[j] = gathered[j], gathered[i]
	})
	if len(gathered) > maxQuestions {
		gathered = gathered[:maxQuestions]
	}

	out := make([]catalog.SkillDrillQuestion, 0, len(gathered))
	for _, q := range gathered {
		shuffled := q
		shuffled.Question = s.ShuffleQuestion(q.Question)
		out = append(out, shuffled)
	}
	return out, nil
}
