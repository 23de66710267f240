// Package session runs one answering session end to end: serving questions,
// applying every answer to mastery and progression, and settling rewards,
// streaks, badges and roster state when the session finishes.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/readhero/internal/badges"
	"github.com/abhisek/readhero/internal/catalog"
	"github.com/abhisek/readhero/internal/certificate"
	"github.com/abhisek/readhero/internal/config"
	"github.com/abhisek/readhero/internal/daily"
	"github.com/abhisek/readhero/internal/mastery"
	"github.com/abhisek/readhero/internal/profile"
	"github.com/abhisek/readhero/internal/progression"
	"github.com/abhisek/readhero/internal/roster"
	"github.com/abhisek/readhero/internal/selector"
	"github.com/abhisek/readhero/internal/store"
)

// Mode selects the session flavor. The flavor decides where questions come
// from and which settlements run at the end.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeDaily    Mode = "daily"
	ModeExam     Mode = "exam"
	ModeDrill    Mode = "drill"
)

// Phase is the session lifecycle position.
type Phase int

const (
	PhaseInProgress Phase = iota
	PhaseFinished
)

var (
	ErrFinished   = errors.New("session: already finished")
	ErrAnswered   = errors.New("session: question already answered")
	ErrInProgress = errors.New("session: questions remain unanswered")
)

// Item is one question in the session with its answer state.
type Item struct {
	Question     catalog.Question
	PassageTitle string
	PassageBody  string

	Answered    bool
	ChosenIndex int
	Correct     bool
	TimeMs      int
}

// Engine wires the domain services a session reads and settles against.
// Events may be nil when no event log is available.
type Engine struct {
	Catalog  *catalog.Catalog
	Selector *selector.Selector
	States   store.StateRepo
	Events   store.EventRepo
	Config   config.Config

	Tracker *mastery.Tracker
	Ledger  *progression.Ledger
	Daily   *daily.Service
	Badges  *badges.Evaluator
	Cert    *certificate.Authority
	Roster  *roster.Roster

	now func() time.Time
}

// NewEngine builds an Engine over already-loaded services.
func NewEngine(cat *catalog.Catalog, sel *selector.Selector, states store.StateRepo, events store.EventRepo,
	cfg config.Config, tracker *mastery.Tracker, ledger *progression.Ledger, dailySvc *daily.Service,
	badgeEval *badges.Evaluator, cert *certificate.Authority, rost *roster.Roster) *Engine {
	return &Engine{
		Catalog:  cat,
		Selector: sel,
		States:   states,
		Events:   events,
		Config:   cfg,
		Tracker:  tracker,
		Ledger:   ledger,
		Daily:    dailySvc,
		Badges:   badgeEval,
		Cert:     cert,
		Roster:   rost,
		now:      time.Now,
	}
}

// Session is one in-flight run of questions.
type Session struct {
	ID        string
	Mode      Mode
	PassageID string
	SkillID   int
	Passage   *catalog.Passage
	Items     []Item
	Streak    int

	engine   *Engine
	idx      int
	correct  int
	answered int
	phase    Phase
	started  time.Time
	deadline time.Time
	xpBefore int
	lvBefore int
}

// StartPassage begins a practice session on a passage. With an empty id the
// selector picks one, preferring passages not yet completed.
func (e *Engine) StartPassage(requestedID string) (*Session, error) {
	p := e.Selector.PickPassage(requestedID, e.Ledger.CompletedIDs())
	if p == nil {
		return nil, fmt.Errorf("session: no passage available for %q", requestedID)
	}
	return e.passageSession(ModePractice, p), nil
}

// StartDaily begins today's challenge session. The daily service assigns
// the passage and carries the streak.
func (e *Engine) StartDaily(ctx context.Context) (*Session, error) {
	p, st, err := e.Daily.Challenge(ctx)
	if err != nil {
		return nil, err
	}
	s := e.passageSession(ModeDaily, p)
	s.Streak = st.Streak
	return s, nil
}

// StartExam begins a timed session on a passage. Answers after the deadline
// are refused; finishing after expiry grades unanswered questions as wrong.
func (e *Engine) StartExam(requestedID string) (*Session, error) {
	s, err := e.StartPassage(requestedID)
	if err != nil {
		return nil, err
	}
	s.Mode = ModeExam
	s.deadline = s.started.Add(time.Duration(e.Config.ExamTotalMinutes) * time.Minute)
	return s, nil
}

// StartDrill begins a single-skill drill gathered across passages.
func (e *Engine) StartDrill(skillID, maxQuestions int) (*Session, error) {
	qs, err := e.Selector.SkillDrill(skillID, maxQuestions)
	if err != nil {
		return nil, err
	}
	s := e.newSession(ModeDrill)
	s.SkillID = skillID
	for _, q := range qs {
		s.Items = append(s.Items, Item{
			Question:     q.Question,
			PassageTitle: q.PassageTitle,
			PassageBody:  q.PassageBody,
		})
	}
	return s, nil
}

func (e *Engine) passageSession(mode Mode, p *catalog.Passage) *Session {
	s := e.newSession(mode)
	s.Passage = p
	s.PassageID = p.ID
	for _, q := range e.Selector.PassageQuestions(p) {
		s.Items = append(s.Items, Item{
			Question:     q,
			PassageTitle: p.Title,
			PassageBody:  p.Body,
		})
	}
	return s
}

func (e *Engine) newSession(mode Mode) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Mode:     mode,
		engine:   e,
		started:  e.now(),
		xpBefore: e.Ledger.Progress().XP,
		lvBefore: e.Ledger.Level(),
	}
}

// Current returns the active item, or nil once every question is answered.
func (s *Session) Current() *Item {
	if s.idx >= len(s.Items) {
		return nil
	}
	return &s.Items[s.idx]
}

// Index returns the zero-based position of the active question.
func (s *Session) Index() int { return s.idx }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.Items) }

// Correct returns the number of correct answers so far.
func (s *Session) Correct() int { return s.correct }

// Phase returns the lifecycle position.
func (s *Session) Phase() Phase { return s.phase }

// Remaining returns the time left on an exam clock. Untimed modes return 0.
func (s *Session) Remaining() time.Duration {
	if s.deadline.IsZero() {
		return 0
	}
	left := s.deadline.Sub(s.engine.now())
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the exam deadline has passed.
func (s *Session) Expired() bool {
	return !s.deadline.IsZero() && !s.engine.now().Before(s.deadline)
}

// AnswerResult is the immediate feedback for one answer.
type AnswerResult struct {
	Correct      bool
	CorrectIndex int
	Explanation  string
	Mastery      int
	XP           int
	Level        int
	LeveledUp    bool
}

// Answer grades the active question and applies it to mastery, progression,
// and the event log in one pass. The session cursor advances to the next
// question.
func (s *Session) Answer(ctx context.Context, chosenIndex int, elapsed time.Duration) (AnswerResult, error) {
	if s.phase == PhaseFinished {
		return AnswerResult{}, ErrFinished
	}
	if s.Expired() {
		return AnswerResult{}, ErrFinished
	}
	item := s.Current()
	if item == nil {
		return AnswerResult{}, ErrAnswered
	}
	if chosenIndex < 0 || chosenIndex >= len(item.Question.Choices) {
		return AnswerResult{}, fmt.Errorf("session: choice %d out of range", chosenIndex)
	}

	correct := chosenIndex == item.Question.CorrectIndex
	item.Answered = true
	item.ChosenIndex = chosenIndex
	item.Correct = correct
	item.TimeMs = int(elapsed.Milliseconds())
	s.answered++
	if correct {
		s.correct++
	}
	s.idx++

	rec, err := s.engine.Tracker.RecordAnswer(ctx, item.Question.SkillID, correct)
	if err != nil {
		return AnswerResult{}, err
	}
	prog, err := s.engine.Ledger.RecordAnswer(ctx, correct)
	if err != nil {
		return AnswerResult{}, err
	}

	if s.engine.Events != nil {
		err := s.engine.Events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:   s.ID,
			QuestionID:  item.Question.ID,
			PassageID:   item.Question.PassageID,
			SkillID:     item.Question.SkillID,
			ChosenIndex: chosenIndex,
			Correct:     correct,
			TimeMs:      item.TimeMs,
		})
		if err != nil {
			return AnswerResult{}, err
		}
	}

	level := s.engine.Ledger.Level()
	return AnswerResult{
		Correct:      correct,
		CorrectIndex: item.Question.CorrectIndex,
		Explanation:  item.Question.Explanation,
		Mastery:      rec.Mastery,
		XP:           prog.XP,
		Level:        level,
		LeveledUp:    level > s.lvBefore,
	}, nil
}

// ScorePercent is the session score over every served question, rounded.
// Questions left unanswered when an exam clock runs out count as wrong.
func (s *Session) ScorePercent() int {
	if len(s.Items) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.correct) / float64(len(s.Items))))
}

// Finish settles the session: completion bonus, daily done-mark, badge
// evaluation, certificate eligibility, roster snapshot and the session
// event. An exam may finish with unanswered questions once its clock has
// expired; other modes require every question answered.
func (s *Session) Finish(ctx context.Context) (*Summary, error) {
	if s.phase == PhaseFinished {
		return nil, ErrFinished
	}
	if s.idx < len(s.Items) && !(s.Mode == ModeExam && s.Expired()) {
		return nil, ErrInProgress
	}
	s.phase = PhaseFinished

	e := s.engine
	score := s.ScorePercent()

	// Drills sharpen one skill; they never count as completing a text.
	// Every other mode records an attempt, even a fully timed-out exam.
	if s.Mode != ModeDrill {
		if _, err := e.Ledger.CompletePassage(ctx, s.PassageID, score); err != nil {
			return nil, err
		}
	}

	if s.Mode == ModeDaily {
		if err := e.Daily.MarkDone(ctx); err != nil {
			return nil, err
		}
		st, err := e.Daily.State(ctx)
		if err != nil {
			return nil, err
		}
		s.Streak = st.Streak
	}

	newBadges, err := e.Badges.Evaluate(ctx, e.Tracker.MasteryMap())
	if err != nil {
		return nil, err
	}

	snap := e.CertSnapshot()
	if err := e.saveRosterSnapshot(ctx); err != nil {
		return nil, err
	}

	duration := e.now().Sub(s.started)
	if s.engine.Events != nil {
		err := e.Events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:       s.ID,
			Mode:            string(s.Mode),
			PassageID:       s.PassageID,
			SkillID:         s.SkillID,
			QuestionsServed: len(s.Items),
			CorrectAnswers:  s.correct,
			ScorePercent:    score,
			DurationSecs:    int(duration.Seconds()),
		})
		if err != nil {
			return nil, err
		}
	}

	return s.buildSummary(duration, newBadges, e.Cert.Status(snap)), nil
}

// CertSnapshot assembles the certificate eligibility inputs from live
// services. Only skills with answer history are included.
func (e *Engine) CertSnapshot() certificate.Snapshot {
	recorded := make(map[int]int)
	for id, rec := range e.Tracker.All() {
		if rec.TotalAnswered > 0 {
			recorded[id] = rec.Mastery
		}
	}
	prog := e.Ledger.Progress()
	return certificate.Snapshot{
		RecordedMastery: recorded,
		TextsCompleted:  prog.TextsCompleted,
		AvgPercent:      e.Ledger.AveragePercent(),
		XP:              prog.XP,
	}
}

// saveRosterSnapshot refreshes this student's roster row. A student with no
// profile yet is skipped; there is no row to attribute the work to.
func (e *Engine) saveRosterSnapshot(ctx context.Context) error {
	if e.Roster == nil {
		return nil
	}
	p, err := profile.Load(ctx, e.States)
	if err != nil {
		return err
	}
	if !p.Complete() {
		return nil
	}

	prog := e.Ledger.Progress()
	return e.Roster.Upsert(ctx, roster.StudentSnapshot{
		Name:           p.Name,
		ClassName:      p.ClassName,
		XP:             prog.XP,
		Level:          e.Ledger.Level(),
		TextsCompleted: prog.TextsCompleted,
		TotalCorrect:   prog.TotalCorrect,
		TotalAnswered:  prog.TotalAnswered,
		Mastery:        e.Tracker.MasteryMap(),
		BadgeCount:     len(e.Badges.Earned()),
		Certified:      e.Cert.Certificate() != nil,
		LastActive:     e.now(),
	})
}
