package progression

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/readhero/internal/config"
	"github.com/abhisek/readhero/internal/store"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := NewLedger(context.Background(), store.NewMemoryState(), config.Default())
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	return l
}

func TestNewLedger_CorruptProgressStartsAtZero(t *testing.T) {
	states := store.NewMemoryState()
	// The xp field decodes before the type error on texts_completed; none of
	// it may survive into the fresh start.
	states.SetRaw(store.KeyProgress, []byte(`{"xp": 9999, "texts_completed": "corrupt"}`))

	l, err := NewLedger(context.Background(), states, config.Default())
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	if prog := l.Progress(); prog.XP != 0 || prog.TextsCompleted != 0 {
		t.Errorf("progress after corrupt state = %+v, want zero value", prog)
	}
	if l.Level() != 1 {
		t.Errorf("Level = %d, want 1", l.Level())
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp, perLevel, want int
	}{
		{0, 200, 1},
		{199, 200, 1},
		{200, 200, 2},
		{250, 200, 2},
		{399, 200, 2},
		{400, 200, 3},
		{1000, 200, 6},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.xp, tt.perLevel); got != tt.want {
			t.Errorf("LevelFor(%d, %d) = %d, want %d", tt.xp, tt.perLevel, got, tt.want)
		}
	}
}

func TestRecordAnswer_XPAndLevel(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	// 25 correct answers at 10 xp each: xp=250, level 2.
	for i := 0; i < 25; i++ {
		if _, err := l.RecordAnswer(ctx, true); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}

	p := l.Progress()
	if p.XP != 250 {
		t.Errorf("xp = %d, want 250", p.XP)
	}
	if l.Level() != 2 {
		t.Errorf("level = %d, want 2", l.Level())
	}
	if p.TotalCorrect != 25 || p.TotalAnswered != 25 {
		t.Errorf("counters = %d/%d, want 25/25", p.TotalCorrect, p.TotalAnswered)
	}
}

func TestRecordAnswer_WrongAwardsNothing(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.RecordAnswer(context.Background(), false); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	p := l.Progress()
	if p.XP != 0 || p.TotalCorrect != 0 || p.TotalAnswered != 1 {
		t.Errorf("progress after wrong answer = %+v", p)
	}
}

func TestApplyReward_RejectsNegative(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.ApplyReward(context.Background(), -10); err == nil {
		t.Error("ApplyReward(-10) accepted; xp must be monotonic")
	}
	if l.Progress().XP != 0 {
		t.Errorf("xp changed after rejected reward: %d", l.Progress().XP)
	}
}

func TestCompletePassage_BestScoreNeverRegresses(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	l.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	if _, err := l.CompletePassage(ctx, "p01", 80); err != nil {
		t.Fatalf("CompletePassage: %v", err)
	}

	l.now = func() time.Time { return time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC) }
	if _, err := l.CompletePassage(ctx, "p01", 60); err != nil {
		t.Fatalf("CompletePassage: %v", err)
	}

	rec := l.Completed("p01")
	if rec == nil {
		t.Fatal("no completed record for p01")
	}
	if rec.Score != 80 {
		t.Errorf("score = %d, want 80 (no regression)", rec.Score)
	}
	if rec.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", rec.Attempts)
	}
	if rec.LastDate.Day() != 2 {
		t.Errorf("lastDate not refreshed: %v", rec.LastDate)
	}
	if l.Progress().TextsCompleted != 2 {
		t.Errorf("textsCompleted = %d, want 2", l.Progress().TextsCompleted)
	}
	if l.Progress().XP != 100 {
		t.Errorf("xp = %d, want 100 (two completion bonuses)", l.Progress().XP)
	}
}

func TestLedger_PersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	states := store.NewMemoryState()
	cfg := config.Default()

	l, err := NewLedger(ctx, states, cfg)
	if err != nil {
		t.Fatalf("NewLedger: %v", err)
	}
	if _, err := l.RecordAnswer(ctx, true); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if _, err := l.CompletePassage(ctx, "p02", 75); err != nil {
		t.Fatalf("CompletePassage: %v", err)
	}

	reloaded, err := NewLedger(ctx, states, cfg)
	if err != nil {
		t.Fatalf("NewLedger reload: %v", err)
	}
	if reloaded.Progress().XP != 60 {
		t.Errorf("reloaded xp = %d, want 60", reloaded.Progress().XP)
	}
	if !reloaded.CompletedIDs()["p02"] {
		t.Error("completed passage lost across reload")
	}
}

func TestAveragePercent(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	if l.AveragePercent() != 0 {
		t.Errorf("average with no answers = %d, want 0", l.AveragePercent())
	}

	for _, c := range []bool{true, true, false} {
		if _, err := l.RecordAnswer(ctx, c); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}
	if got := l.AveragePercent(); got != 67 {
		t.Errorf("average = %d, want 67", got)
	}
}
