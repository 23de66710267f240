package catalog

// Difficulty is a passage difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ChoiceCount is the fixed number of answer choices per question.
const ChoiceCount = 4

// Question is an immutable catalog record. Choices always has exactly
// ChoiceCount entries and CorrectIndex points into it.
type Question struct {
	ID           string   `json:"id"`
	PassageID    string   `json:"passage_id"`
	SkillID      int      `json:"skill_id"`
	Stem         string   `json:"stem"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Passage is a reading text plus its attached question set.
type Passage struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Genre      string     `json:"genre"`
	Difficulty Difficulty `json:"difficulty"`
	Body       string     `json:"body"`
	Questions  []Question `json:"questions"`
}

// SkillDrillQuestion is a question gathered across passages for a
// single-skill drill, carrying its provenance so the view can show the
// source text alongside the question.
type SkillDrillQuestion struct {
	Question
	PassageTitle string
	PassageBody  string
}
