// Package skills defines the fixed taxonomy of 15 reading-comprehension
// skill categories that every catalog question is tagged with.
package skills

import "fmt"

// Count is the number of skill categories. Skill ids run 1..Count.
const Count = 15

// Skill is one reading-comprehension competency category.
type Skill struct {
	ID   int
	Name string
}

var names = map[int]string{
	1:  "Word Meanings",
	2:  "Commonly Confused Words",
	3:  "Synonyms & Antonyms",
	4:  "Vocabulary in Context",
	5:  "Literal Comprehension",
	6:  "Comparison & Analysis",
	7:  "Main & Supporting Ideas",
	8:  "Characters & Events",
	9:  "Text-to-World Connections",
	10: "Figurative Language",
	11: "Clarity of Information",
	12: "Values & Attitudes",
	13: "Titles & Paraphrase",
	14: "Persuasion & Justification",
	15: "Applying the Message",
}

// IsValid reports whether id is a known skill identifier.
func IsValid(id int) bool {
	return id >= 1 && id <= Count
}

// Name returns the display name for a skill id.
func Name(id int) string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("Skill %d", id)
}

// All returns every skill in id order.
func All() []Skill {
	out := make([]Skill, 0, Count)
	for id := 1; id <= Count; id++ {
		out = append(out, Skill{ID: id, Name: names[id]})
	}
	return out
}
