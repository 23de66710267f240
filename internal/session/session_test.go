package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

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

func testEngine(t *testing.T) (*Engine, store.StateRepo) {
	t.Helper()
	ctx := context.Background()
	states := store.NewMemoryState()
	cfg := config.Default()

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	tracker, err := mastery.NewTracker(ctx, states)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	ledger, err := progression.NewLedger(ctx, states, cfg)
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	badgeEval, err := badges.NewEvaluator(ctx, states)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	cert, err := certificate.NewAuthority(ctx, states, cfg.Certificate)
	if err != nil {
		t.Fatalf("NewAuthority: %v", err)
	}
	rost, err := roster.Load(ctx, states)
	if err != nil {
		t.Fatalf("roster.Load: %v", err)
	}

	sel := selector.New(cat, rand.New(rand.NewPCG(7, 0)))
	e := NewEngine(cat, sel, states, nil, cfg, tracker, ledger, daily.New(states, cat), badgeEval, cert, rost)
	return e, states
}

// answerAll answers every remaining question; correct selects the right
// choice, otherwise a deliberately wrong one.
func answerAll(t *testing.T, s *Session, correct bool) {
	t.Helper()
	ctx := context.Background()
	for s.Current() != nil {
		item := s.Current()
		choice := item.Question.CorrectIndex
		if !correct {
			choice = (choice + 1) % len(item.Question.Choices)
		}
		if _, err := s.Answer(ctx, choice, 3*time.Second); err != nil {
			t.Fatalf("Answer: %v", err)
		}
	}
}

func TestPracticeFullFlow(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()

	s, err := e.StartPassage("p01")
	if err != nil {
		t.Fatalf("StartPassage: %v", err)
	}
	if s.Len() != 5 {
		t.Fatalf("Len = %d, want 5", s.Len())
	}

	res, err := s.Answer(ctx, s.Current().Question.CorrectIndex, 2*time.Second)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !res.Correct || res.XP != e.Config.XPPerCorrect {
		t.Errorf("first answer result = %+v", res)
	}
	answerAll(t, s, true)

	sum, err := s.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if sum.ScorePercent != 100 || sum.Grade != "Excellent" {
		t.Errorf("score %d grade %q, want 100 Excellent", sum.ScorePercent, sum.Grade)
	}
	wantXP := 5*e.Config.XPPerCorrect + e.Config.XPPerTextComplete
	if sum.XPEarned != wantXP {
		t.Errorf("XPEarned = %d, want %d", sum.XPEarned, wantXP)
	}
	if got := e.Ledger.Progress().TextsCompleted; got != 1 {
		t.Errorf("TextsCompleted = %d, want 1", got)
	}
	if sum.TimeExpired {
		t.Error("untimed session reported as expired")
	}
}

func TestFinishRefusedWhileUnanswered(t *testing.T) {
	e, _ := testEngine(t)
	s, err := e.StartPassage("p02")
	if err != nil {
		t.Fatalf("StartPassage: %v", err)
	}
	if _, err := s.Finish(context.Background()); !errors.Is(err, ErrInProgress) {
		t.Fatalf("Finish = %v, want ErrInProgress", err)
	}
}

func TestAnswerAfterFinish(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()
	s, _ := e.StartPassage("p02")
	answerAll(t, s, true)
	if _, err := s.Finish(ctx); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, err := s.Answer(ctx, 0, time.Second); !errors.Is(err, ErrFinished) {
		t.Errorf("Answer after finish = %v, want ErrFinished", err)
	}
	if _, err := s.Finish(ctx); !errors.Is(err, ErrFinished) {
		t.Errorf("double Finish = %v, want ErrFinished", err)
	}
}

func TestWrongAnswersFlagWeakSkills(t *testing.T) {
	e, _ := testEngine(t)
	s, _ := e.StartPassage("p03")
	answerAll(t, s, false)

	sum, err := s.Finish(context.Background())
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if sum.ScorePercent != 0 {
		t.Errorf("ScorePercent = %d, want 0", sum.ScorePercent)
	}
	if len(sum.WeakSkills()) != len(sum.SkillLines) {
		t.Errorf("all skill lines should be weak after 0%%: %+v", sum.SkillLines)
	}
}

func TestExamExpiryCountsUnansweredAsWrong(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()

	clock := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return clock }

	s, err := e.StartExam("p04")
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}
	if s.Remaining() != time.Duration(e.Config.ExamTotalMinutes)*time.Minute {
		t.Errorf("Remaining = %v at start", s.Remaining())
	}

	// One right, one wrong, then the clock runs out.
	if _, err := s.Answer(ctx, s.Current().Question.CorrectIndex, time.Minute); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	wrong := (s.Current().Question.CorrectIndex + 1) % 4
	if _, err := s.Answer(ctx, wrong, time.Minute); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	clock = clock.Add(time.Duration(e.Config.ExamTotalMinutes+1) * time.Minute)
	if !s.Expired() {
		t.Fatal("exam should be expired")
	}
	if _, err := s.Answer(ctx, 0, time.Second); !errors.Is(err, ErrFinished) {
		t.Fatalf("Answer after expiry = %v, want ErrFinished", err)
	}

	sum, err := s.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish after expiry: %v", err)
	}
	// 1 correct of 5 served; the 3 never answered grade as wrong.
	if sum.ScorePercent != 20 {
		t.Errorf("ScorePercent = %d, want 20 over all questions", sum.ScorePercent)
	}
	if !sum.TimeExpired {
		t.Error("summary should flag the expired clock")
	}
	if sum.Answered != 2 || sum.TotalQuestions != 5 {
		t.Errorf("Answered/Total = %d/%d, want 2/5", sum.Answered, sum.TotalQuestions)
	}
	if got := e.Ledger.Progress().TextsCompleted; got != 1 {
		t.Errorf("TextsCompleted = %d, want 1", got)
	}
}

func TestExamExpiryWithNoAnswersRecordsZeroAttempt(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()

	clock := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return clock }

	s, err := e.StartExam("p04")
	if err != nil {
		t.Fatalf("StartExam: %v", err)
	}
	clock = clock.Add(time.Duration(e.Config.ExamTotalMinutes+1) * time.Minute)

	sum, err := s.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish after expiry: %v", err)
	}
	if sum.ScorePercent != 0 {
		t.Errorf("ScorePercent = %d, want 0", sum.ScorePercent)
	}
	if got := e.Ledger.Progress().TextsCompleted; got != 1 {
		t.Errorf("TextsCompleted = %d, want 1: a timed-out blank exam still counts as an attempt", got)
	}
	if got := e.Ledger.AveragePercent(); got != 0 {
		t.Errorf("AveragePercent = %d, want 0", got)
	}
}

func TestDrillDoesNotCompleteText(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()

	s, err := e.StartDrill(5, 15)
	if err != nil {
		t.Fatalf("StartDrill: %v", err)
	}
	if s.Len() < selector.MinDrillQuestions {
		t.Fatalf("drill served %d questions", s.Len())
	}
	for _, item := range s.Items {
		if item.Question.SkillID != 5 {
			t.Errorf("question %s has skill %d, want 5", item.Question.ID, item.Question.SkillID)
		}
		if item.PassageBody == "" {
			t.Errorf("question %s lost its source text", item.Question.ID)
		}
	}

	answerAll(t, s, true)
	if _, err := s.Finish(ctx); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if got := e.Ledger.Progress().TextsCompleted; got != 0 {
		t.Errorf("TextsCompleted = %d after a drill, want 0", got)
	}
	if e.Ledger.Progress().XP == 0 {
		t.Error("drill answers should still earn xp")
	}
}

func TestDrillInsufficientContent(t *testing.T) {
	e, _ := testEngine(t)
	_, err := e.StartDrill(2, 15)
	var insufficient *selector.InsufficientContentError
	if !errors.As(err, &insufficient) {
		t.Fatalf("StartDrill = %v, want InsufficientContentError", err)
	}
}

func TestDailyFlow(t *testing.T) {
	e, _ := testEngine(t)
	ctx := context.Background()

	s, err := e.StartDaily(ctx)
	if err != nil {
		t.Fatalf("StartDaily: %v", err)
	}
	firstPassage := s.PassageID

	answerAll(t, s, true)
	if _, err := s.Finish(ctx); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	st, err := e.Daily.State(ctx)
	if err != nil {
		t.Fatalf("daily state: %v", err)
	}
	if !st.TodayDone {
		t.Error("daily challenge not marked done")
	}

	// Re-entering the same day serves the same passage.
	again, err := e.StartDaily(ctx)
	if err != nil {
		t.Fatalf("second StartDaily: %v", err)
	}
	if again.PassageID != firstPassage {
		t.Errorf("re-entry served %s, want %s", again.PassageID, firstPassage)
	}
}

func TestRosterSnapshotOnFinish(t *testing.T) {
	e, states := testEngine(t)
	ctx := context.Background()

	// No profile yet: finishing must not create an anonymous roster row.
	s, _ := e.StartPassage("p05")
	answerAll(t, s, true)
	if _, err := s.Finish(ctx); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if e.Roster.Len() != 0 {
		t.Fatalf("roster rows = %d before a profile exists", e.Roster.Len())
	}

	if _, err := profile.Save(ctx, states, profile.Profile{Name: "Maya", ClassName: "5A"}); err != nil {
		t.Fatalf("profile.Save: %v", err)
	}
	s2, _ := e.StartPassage("p06")
	answerAll(t, s2, true)
	if _, err := s2.Finish(ctx); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	rows := e.Roster.Rows()
	if len(rows) != 1 {
		t.Fatalf("roster rows = %d, want 1", len(rows))
	}
	if rows[0].Name != "Maya" || rows[0].XP != e.Ledger.Progress().XP {
		t.Errorf("roster row = %+v", rows[0])
	}
}

func TestChoiceOutOfRange(t *testing.T) {
	e, _ := testEngine(t)
	s, _ := e.StartPassage("p07")
	if _, err := s.Answer(context.Background(), 7, time.Second); err == nil {
		t.Fatal("expected error for out-of-range choice")
	}
	if s.Current() == nil || s.Current().Answered {
		t.Error("rejected answer must not consume the question")
	}
}
