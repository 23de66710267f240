package daily

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/abhisek/readhero/internal/catalog"
	"github.com/abhisek/readhero/internal/store"
)

const testCatalog = `{"passages":[
	{"id":"a","title":"A","difficulty":"easy","body":"BA","questions":[
		{"id":"a1","skill_id":1,"stem":"q","choices":["1","2","3","4"],"correct_index":0}]},
	{"id":"b","title":"B","difficulty":"easy","body":"BB","questions":[
		{"id":"b1","skill_id":2,"stem":"q","choices":["1","2","3","4"],"correct_index":0}]},
	{"id":"c","title":"C","difficulty":"easy","body":"BC","questions":[
		{"id":"c1","skill_id":3,"stem":"q","choices":["1","2","3","4"],"correct_index":0}]}
]}`

func newTestService(t *testing.T, states store.StateRepo, date string) *Service {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := New(states, cat)
	s.now = fixedClock(t, date)
	return s
}

func fixedClock(t *testing.T, date string) func() time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(dateLayout, date, refZone)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	// Mid-day to stay clear of boundary effects.
	parsed = parsed.Add(12 * time.Hour)
	return func() time.Time { return parsed }
}

func TestDateHash_StableAndNonNegative(t *testing.T) {
	if DateHash("2025-01-01") != DateHash("2025-01-01") {
		t.Error("DateHash not deterministic")
	}
	for _, d := range []string{"2025-01-01", "2025-06-15", "1999-12-31", "2030-02-28"} {
		if DateHash(d) < 0 {
			t.Errorf("DateHash(%q) negative", d)
		}
	}
	if DateHash("2025-01-01") == DateHash("2025-01-02") {
		t.Error("adjacent dates hash identically; passage rotation would stall")
	}
}

func TestHashMagnitude_MostNegativeValue(t *testing.T) {
	// -MinInt32 overflows back to MinInt32; a negative magnitude would make
	// the passage index modulo panic.
	if got := hashMagnitude(math.MinInt32); got != 1<<31 {
		t.Errorf("hashMagnitude(MinInt32) = %d, want %d", got, 1<<31)
	}
	if got := hashMagnitude(-7); got != 7 {
		t.Errorf("hashMagnitude(-7) = %d, want 7", got)
	}
	if got := hashMagnitude(7); got != 7 {
		t.Errorf("hashMagnitude(7) = %d, want 7", got)
	}
}

func TestChallenge_DeterministicPerDate(t *testing.T) {
	ctx := context.Background()

	// Two independent students on the same date get the same passage.
	s1 := newTestService(t, store.NewMemoryState(), "2025-01-01")
	s2 := newTestService(t, store.NewMemoryState(), "2025-01-01")

	p1, _, err := s1.Challenge(ctx)
	if err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	p2, _, err := s2.Challenge(ctx)
	if err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if p1.ID != p2.ID {
		t.Errorf("same date picked %s and %s", p1.ID, p2.ID)
	}
}

func TestChallenge_SameDayReentryIsIdempotent(t *testing.T) {
	ctx := context.Background()
	states := store.NewMemoryState()
	s := newTestService(t, states, "2025-01-01")

	p1, st1, err := s.Challenge(ctx)
	if err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if err := s.MarkDone(ctx); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}

	p2, st2, err := s.Challenge(ctx)
	if err != nil {
		t.Fatalf("Challenge re-entry: %v", err)
	}
	if p2.ID != p1.ID {
		t.Errorf("re-entry served %s, want %s", p2.ID, p1.ID)
	}
	if !st2.TodayDone {
		t.Error("re-entry cleared todayDone")
	}
	if st2.Streak != st1.Streak {
		t.Errorf("re-entry changed streak %d -> %d", st1.Streak, st2.Streak)
	}
}

func TestChallenge_StreakIncrementsOnConsecutiveDay(t *testing.T) {
	ctx := context.Background()
	states := store.NewMemoryState()

	day1 := newTestService(t, states, "2025-01-01")
	if _, _, err := day1.Challenge(ctx); err != nil {
		t.Fatalf("Challenge day 1: %v", err)
	}
	if err := day1.MarkDone(ctx); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}

	day2 := newTestService(t, states, "2025-01-02")
	_, st, err := day2.Challenge(ctx)
	if err != nil {
		t.Fatalf("Challenge day 2: %v", err)
	}
	if st.Streak != 1 {
		t.Errorf("streak = %d, want 1", st.Streak)
	}
}

func TestChallenge_StreakResetsAfterGap(t *testing.T) {
	ctx := context.Background()
	states := store.NewMemoryState()

	day1 := newTestService(t, states, "2025-01-01")
	if _, _, err := day1.Challenge(ctx); err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if err := day1.MarkDone(ctx); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}

	later := newTestService(t, states, "2025-01-05")
	_, st, err := later.Challenge(ctx)
	if err != nil {
		t.Fatalf("Challenge after gap: %v", err)
	}
	if st.Streak != 0 {
		t.Errorf("streak = %d, want 0 after 4-day gap", st.Streak)
	}
}

func TestChallenge_NoIncrementWhenYesterdayUnfinished(t *testing.T) {
	ctx := context.Background()
	states := store.NewMemoryState()

	day1 := newTestService(t, states, "2025-01-01")
	if _, _, err := day1.Challenge(ctx); err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	// Never marked done.

	day2 := newTestService(t, states, "2025-01-02")
	_, st, err := day2.Challenge(ctx)
	if err != nil {
		t.Fatalf("Challenge: %v", err)
	}
	if st.Streak != 0 {
		t.Errorf("streak = %d, want 0 when yesterday was not completed", st.Streak)
	}
}

func TestChallenge_CorruptStateStartsFresh(t *testing.T) {
	ctx := context.Background()
	states := store.NewMemoryState()
	states.SetRaw(store.KeyDaily, []byte(`{"streak": "ten"`))

	s := newTestService(t, states, "2025-01-01")
	_, st, err := s.Challenge(ctx)
	if err != nil {
		t.Fatalf("Challenge with corrupt state: %v", err)
	}
	if st.Streak != 0 {
		t.Errorf("streak = %d, want 0 from fresh state", st.Streak)
	}
}

func TestTip_StablePerDay(t *testing.T) {
	s := newTestService(t, store.NewMemoryState(), "2025-01-01")
	if s.Tip() == "" {
		t.Fatal("empty tip")
	}
	if s.Tip() != s.Tip() {
		t.Error("tip changed within the same day")
	}
}
