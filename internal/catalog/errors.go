package catalog

import "fmt"

// ValidationError indicates a malformed catalog record or a question that
// violates a structural invariant. It is fatal to the operation that found
// it; callers must not proceed with partial data.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("catalog validation: %s", e.Reason)
	}
	return fmt.Sprintf("catalog validation: question %s: %s", e.QuestionID, e.Reason)
}
