// Package catalog holds the immutable reading-passage content and its
// load-time validation. An invalid catalog is a fatal startup condition;
// every later engine operation assumes a fully loaded, validated catalog.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/abhisek/readhero/internal/skills"
)

//go:embed data/passages.json
var embeddedData []byte

// Catalog is the immutable in-memory passage set.
type Catalog struct {
	passages []Passage
	byID     map[string]*Passage
}

type catalogFile struct {
	Passages []Passage `json:"passages"`
}

// Load parses and validates the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(embeddedData)
}

// Parse builds a Catalog from raw JSON, validating shape and invariants.
func Parse(raw []byte) (*Catalog, error) {
	if err := validateShape(raw); err != nil {
		return nil, err
	}

	var f catalogFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("decode: %v", err)}
	}

	c := &Catalog{
		passages: f.Passages,
		byID:     make(map[string]*Passage, len(f.Passages)),
	}

	for i := range c.passages {
		p := &c.passages[i]
		if _, dup := c.byID[p.ID]; dup {
			return nil, &ValidationError{Reason: fmt.Sprintf("duplicate passage id %q", p.ID)}
		}
		c.byID[p.ID] = p

		for j := range p.Questions {
			q := &p.Questions[j]
			q.PassageID = p.ID
			if err := checkQuestion(q); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

// checkQuestion enforces the structural invariants the schema cannot
// express across fields.
func checkQuestion(q *Question) error {
	if len(q.Choices) != ChoiceCount {
		return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("has %d choices, want %d", len(q.Choices), ChoiceCount)}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
		return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("correct_index %d out of range", q.CorrectIndex)}
	}
	if !skills.IsValid(q.SkillID) {
		return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("skill_id %d outside 1..%d", q.SkillID, skills.Count)}
	}
	return nil
}

// Passages returns all passages in catalog order.
func (c *Catalog) Passages() []Passage {
	return c.passages
}

// Len returns the number of passages.
func (c *Catalog) Len() int {
	return len(c.passages)
}

// Get returns the passage with the given id, or nil.
func (c *Catalog) Get(id string) *Passage {
	return c.byID[id]
}

// QuestionsForSkill returns every question in the catalog tagged with the
// given skill, with provenance attached.
func (c *Catalog) QuestionsForSkill(skillID int) []SkillDrillQuestion {
	var out []SkillDrillQuestion
	for i := range c.passages {
		p := &c.passages[i]
		for _, q := range p.Questions {
			if q.SkillID == skillID {
				out = append(out, SkillDrillQuestion{
					Question:     q,
					PassageTitle: p.Title,
					PassageBody:  p.Body,
				})
			}
		}
	}
	return out
}
