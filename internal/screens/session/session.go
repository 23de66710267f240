package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/readhero/internal/router"
	"github.com/abhisek/readhero/internal/screen"
	"github.com/abhisek/readhero/internal/screens/summary"
	sess "github.com/abhisek/readhero/internal/session"
	"github.com/abhisek/readhero/internal/ui/components"
	"github.com/abhisek/readhero/internal/ui/layout"
)

// StartFunc builds the session when the screen opens. Selection errors,
// like a drill without enough questions, surface on the screen instead of
// crashing the program.
type StartFunc func(*sess.Engine) (*sess.Session, error)

type phase int

const (
	phaseLoading phase = iota
	phaseReading
	phaseQuestion
	phaseFeedback
	phaseError
)

// SessionScreen runs one session from first question to settlement.
type SessionScreen struct {
	engine *sess.Engine
	title  string
	start  StartFunc

	sess        *sess.Session
	phase       phase
	choice      components.MultiChoice
	lastResult  sess.AnswerResult
	questionAt  time.Time
	remaining   time.Duration
	err         error
	quitConfirm bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.EscGuard = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a session screen; the session itself starts in Init.
func New(engine *sess.Engine, title string, start StartFunc) *SessionScreen {
	return &SessionScreen{
		engine: engine,
		title:  title,
		start:  start,
		phase:  phaseLoading,
	}
}

func (s *SessionScreen) Title() string {
	return s.title
}

func (s *SessionScreen) Init() tea.Cmd {
	return func() tea.Msg {
		run, err := s.start(s.engine)
		return startedMsg{Session: run, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.Err != nil {
			s.phase = phaseError
			s.err = msg.Err
			return s, nil
		}
		s.sess = msg.Session
		if s.sess.Mode == sess.ModeDrill {
			// Drill questions carry their own source text; no separate
			// reading phase.
			s.beginQuestion()
		} else {
			s.phase = phaseReading
		}
		if s.sess.Mode == sess.ModeExam {
			s.remaining = s.sess.Remaining()
			return s, tickCmd()
		}
		return s, nil

	case timerTickMsg:
		if s.sess == nil || s.sess.Phase() == sess.PhaseFinished {
			return s, nil
		}
		s.remaining = s.sess.Remaining()
		if s.sess.Expired() {
			return s, s.finishCmd()
		}
		return s, tickCmd()

	case answeredMsg:
		if msg.Err != nil {
			s.phase = phaseError
			s.err = msg.Err
			return s, nil
		}
		s.lastResult = msg.Result
		s.phase = phaseFeedback
		return s, nil

	case finishedMsg:
		if msg.Err != nil {
			s.phase = phaseError
			s.err = msg.Err
			return s, nil
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(msg.Summary)}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.quitConfirm {
		switch msg.String() {
		case "y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseReading:
		if msg.String() == "enter" {
			s.beginQuestion()
		}

	case phaseQuestion:
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			return s, s.answerCmd(s.choice.ChosenIndex)
		}
		return s, cmd

	case phaseFeedback:
		if msg.String() == "enter" {
			if s.sess.Current() == nil {
				return s, s.finishCmd()
			}
			s.beginQuestion()
		}

	case phaseError:
		if msg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	return s, nil
}

// HandleEsc intercepts Esc mid-session to confirm before abandoning
// answered questions.
func (s *SessionScreen) HandleEsc() bool {
	if s.phase == phaseQuestion || s.phase == phaseFeedback {
		s.quitConfirm = true
		return true
	}
	return false
}

// KeyHints supplies footer hints for the current phase.
func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseReading:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start questions"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓/a-d", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Leave"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *SessionScreen) beginQuestion() {
	item := s.sess.Current()
	if item == nil {
		return
	}
	s.choice = components.NewMultiChoice(item.Question.Stem, item.Question.Choices, item.Question.CorrectIndex)
	s.questionAt = time.Now()
	s.phase = phaseQuestion
}

func (s *SessionScreen) answerCmd(chosen int) tea.Cmd {
	elapsed := time.Since(s.questionAt)
	return func() tea.Msg {
		res, err := s.sess.Answer(context.Background(), chosen, elapsed)
		return answeredMsg{Result: res, Err: err}
	}
}

func (s *SessionScreen) finishCmd() tea.Cmd {
	return func() tea.Msg {
		sum, err := s.sess.Finish(context.Background())
		return finishedMsg{Summary: sum, Err: err}
	}
}
