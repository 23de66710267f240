package selector

import "fmt"

// InsufficientContentError reports that the catalog does not carry enough
// questions for the requested skill to run a drill. Recoverable: the caller
// should offer a different mode instead of starting a session.
type InsufficientContentError struct {
	SkillID   int
	Available int
}

func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("selector: skill %d has %d questions, need at least %d",
		e.SkillID, e.Available, MinDrillQuestions)
}
