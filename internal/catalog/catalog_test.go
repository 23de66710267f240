package catalog

import (
	"errors"
	"testing"

	"github.com/abhisek/readhero/internal/skills"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}

	for _, p := range c.Passages() {
		if c.Get(p.ID) == nil {
			t.Errorf("Get(%q) = nil", p.ID)
		}
		for _, q := range p.Questions {
			if q.PassageID != p.ID {
				t.Errorf("question %s has passage id %q, want %q", q.ID, q.PassageID, p.ID)
			}
			if len(q.Choices) != ChoiceCount {
				t.Errorf("question %s has %d choices", q.ID, len(q.Choices))
			}
			if !skills.IsValid(q.SkillID) {
				t.Errorf("question %s has invalid skill %d", q.ID, q.SkillID)
			}
		}
	}
}

func TestParse_RejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", `{"passages": [`},
		{"no passages", `{"passages": []}`},
		{
			"three choices",
			`{"passages":[{"id":"x","title":"T","difficulty":"easy","body":"B","questions":[
				{"id":"q","skill_id":5,"stem":"S","choices":["a","b","c"],"correct_index":0}]}]}`,
		},
		{
			"correct index out of range",
			`{"passages":[{"id":"x","title":"T","difficulty":"easy","body":"B","questions":[
				{"id":"q","skill_id":5,"stem":"S","choices":["a","b","c","d"],"correct_index":4}]}]}`,
		},
		{
			"skill out of range",
			`{"passages":[{"id":"x","title":"T","difficulty":"easy","body":"B","questions":[
				{"id":"q","skill_id":16,"stem":"S","choices":["a","b","c","d"],"correct_index":0}]}]}`,
		},
		{
			"bad difficulty",
			`{"passages":[{"id":"x","title":"T","difficulty":"extreme","body":"B","questions":[
				{"id":"q","skill_id":5,"stem":"S","choices":["a","b","c","d"],"correct_index":0}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			if err == nil {
				t.Fatal("Parse accepted invalid catalog")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("error type %T, want *ValidationError", err)
			}
		})
	}
}

func TestParse_RejectsDuplicatePassageIDs(t *testing.T) {
	raw := `{"passages":[
		{"id":"x","title":"T","difficulty":"easy","body":"B","questions":[
			{"id":"q1","skill_id":5,"stem":"S","choices":["a","b","c","d"],"correct_index":0}]},
		{"id":"x","title":"T2","difficulty":"hard","body":"B2","questions":[
			{"id":"q2","skill_id":6,"stem":"S","choices":["a","b","c","d"],"correct_index":1}]}
	]}`
	if _, err := Parse([]byte(raw)); err == nil {
		t.Fatal("Parse accepted duplicate passage ids")
	}
}

func TestQuestionsForSkill(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	qs := c.QuestionsForSkill(5)
	if len(qs) == 0 {
		t.Fatal("no questions for skill 5 in embedded catalog")
	}
	for _, q := range qs {
		if q.SkillID != 5 {
			t.Errorf("question %s has skill %d, want 5", q.ID, q.SkillID)
		}
		if q.PassageTitle == "" || q.PassageBody == "" {
			t.Errorf("question %s missing provenance", q.ID)
		}
	}
}
