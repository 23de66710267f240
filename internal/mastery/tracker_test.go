package mastery

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/readhero/internal/store"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tr, err := NewTracker(context.Background(), store.NewMemoryState())
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	return tr
}

func TestRecordAnswer_InvalidSkill(t *testing.T) {
	tr := newTestTracker(t)
	for _, id := range []int{0, 16, -1, 100} {
		_, err := tr.RecordAnswer(context.Background(), id, true)
		var serr *InvalidSkillError
		if !errors.As(err, &serr) {
			t.Errorf("RecordAnswer(%d) err = %v, want InvalidSkillError", id, err)
		}
	}
}

func TestRecordAnswer_MasteryFromLastThree(t *testing.T) {
	tests := []struct {
		name    string
		answers []bool
		want    int
	}{
		{"single correct", []bool{true}, 100},
		{"single wrong", []bool{false}, 0},
		{"one of two", []bool{true, false}, 50},
		{"two of three", []bool{true, true, false}, 67},
		{"one of three", []bool{false, true, false}, 33},
		{"older entries ignored", []bool{false, false, false, true, true, true}, 100},
		{"recent dip", []bool{true, true, true, false, false, false}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTracker(t)
			var rec *SkillRecord
			var err error
			for _, c := range tt.answers {
				rec, err = tr.RecordAnswer(context.Background(), 7, c)
				if err != nil {
					t.Fatalf("RecordAnswer: %v", err)
				}
			}
			if rec.Mastery != tt.want {
				t.Errorf("mastery = %d, want %d", rec.Mastery, tt.want)
			}
			if rec.Mastery < 0 || rec.Mastery > 100 {
				t.Errorf("mastery %d outside [0,100]", rec.Mastery)
			}
		})
	}
}

func TestRecordAnswer_HistoryCapped(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	// 25 answers: history must never exceed the cap, counters keep going.
	var rec *SkillRecord
	for i := 0; i < 25; i++ {
		var err error
		rec, err = tr.RecordAnswer(ctx, 3, i%2 == 0)
		if err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
		if len(rec.History) > HistoryCap {
			t.Fatalf("history length %d exceeds cap after %d answers", len(rec.History), i+1)
		}
	}
	if len(rec.History) != HistoryCap {
		t.Errorf("history length = %d, want %d", len(rec.History), HistoryCap)
	}
	if rec.TotalAnswered != 25 {
		t.Errorf("TotalAnswered = %d, want 25", rec.TotalAnswered)
	}
	if rec.TotalCorrect != 13 {
		t.Errorf("TotalCorrect = %d, want 13", rec.TotalCorrect)
	}
}

func TestRecordAnswer_EndToEndPattern(t *testing.T) {
	// Pattern from a full passage run on one skill: [1,1,1,0,1,1,0,1,1,1].
	pattern := []bool{true, true, true, false, true, true, false, true, true, true}

	tr := newTestTracker(t)
	var rec *SkillRecord
	for _, c := range pattern {
		var err error
		rec, err = tr.RecordAnswer(context.Background(), 5, c)
		if err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}

	if len(rec.History) != 10 {
		t.Errorf("history length = %d, want 10", len(rec.History))
	}
	// Final three entries are all correct.
	if rec.Mastery != 100 {
		t.Errorf("mastery = %d, want 100", rec.Mastery)
	}
	if rec.TotalCorrect != 8 || rec.TotalAnswered != 10 {
		t.Errorf("counters = %d/%d, want 8/10", rec.TotalCorrect, rec.TotalAnswered)
	}
}

func TestTracker_PersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	states := store.NewMemoryState()

	tr, err := NewTracker(ctx, states)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	for _, c := range []bool{true, false, true} {
		if _, err := tr.RecordAnswer(ctx, 9, c); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}

	reloaded, err := NewTracker(ctx, states)
	if err != nil {
		t.Fatalf("NewTracker reload: %v", err)
	}
	rec := reloaded.Get(9)
	if rec == nil {
		t.Fatal("skill 9 missing after reload")
	}
	if rec.TotalAnswered != 3 || rec.TotalCorrect != 2 {
		t.Errorf("reloaded counters = %d/%d, want 2/3", rec.TotalCorrect, rec.TotalAnswered)
	}
	if rec.Mastery != 67 {
		t.Errorf("reloaded mastery = %d, want 67", rec.Mastery)
	}
}

func TestTracker_CorruptStateStartsFresh(t *testing.T) {
	ctx := context.Background()
	states := store.NewMemoryState()
	states.SetRaw(store.KeySkills, []byte(`{"5": "nonsense"`))

	tr, err := NewTracker(ctx, states)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	if len(tr.All()) != 0 {
		t.Errorf("tracker loaded %d records from corrupt state, want 0", len(tr.All()))
	}
}

func TestMasteryMap_CoversAllSkills(t *testing.T) {
	tr := newTestTracker(t)
	if _, err := tr.RecordAnswer(context.Background(), 2, true); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	m := tr.MasteryMap()
	if len(m) != 15 {
		t.Fatalf("MasteryMap has %d entries, want 15", len(m))
	}
	if m[2] != 100 {
		t.Errorf("skill 2 mastery = %d, want 100", m[2])
	}
	if m[14] != 0 {
		t.Errorf("untouched skill mastery = %d, want 0", m[14])
	}
}
