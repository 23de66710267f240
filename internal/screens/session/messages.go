package session

import (
	"time"

	sess "github.com/abhisek/readhero/internal/session"
)

// startedMsg is sent once the session has been built and its questions
// selected.
type startedMsg struct {
	Session *sess.Session
	Err     error
}

// answeredMsg carries the grading outcome of the submitted choice.
type answeredMsg struct {
	Result sess.AnswerResult
	Err    error
}

// timerTickMsg drives the exam countdown once per second.
type timerTickMsg time.Time

// finishedMsg is sent when the session has been settled.
type finishedMsg struct {
	Summary *sess.Summary
	Err     error
}
