// Package daily assigns the shared daily-challenge passage and keeps the
// consecutive-day streak. The calendar day is taken in a fixed reference
// timezone so every student sees the same passage on the same date no matter
// where their machine thinks it is.
package daily

import (
	"context"
	"math"
	"time"

	"github.com/abhisek/readhero/internal/catalog"
	"github.com/abhisek/readhero/internal/store"
)

// refZone pins the challenge calendar to UTC+3.
var refZone = time.FixedZone("UTC+3", 3*60*60)

const dateLayout = "2006-01-02"

// State is the persisted daily-challenge state.
type State struct {
	LastDate       string `json:"last_date"`
	Streak         int    `json:"streak"`
	TodayDone      bool   `json:"today_done"`
	TodayPassageID string `json:"today_passage_id"`
}

// Service serves the daily challenge and streak bookkeeping.
type Service struct {
	states store.StateRepo
	cat    *catalog.Catalog
	now    func() time.Time
}

// New creates a daily Service over the catalog.
func New(states store.StateRepo, cat *catalog.Catalog) *Service {
	return &Service{states: states, cat: cat, now: time.Now}
}

// DateHash is a stable 32-bit string hash. It decides which passage (and
// tip) belongs to a calendar date, so it must never change.
func DateHash(s string) int {
	var h int32
	for _, c := range s {
		h = (h << 5) - h + int32(c)
	}
	return hashMagnitude(h)
}

// hashMagnitude is |h| widened to int. The most negative 32-bit value has
// no 32-bit negation; its magnitude is 2^31.
func hashMagnitude(h int32) int {
	if h == math.MinInt32 {
		return 1 << 31
	}
	if h < 0 {
		return int(-h)
	}
	return int(h)
}

// Today returns the current calendar date string in the reference timezone.
func (s *Service) Today() string {
	return s.now().In(refZone).Format(dateLayout)
}

// Challenge returns today's assigned passage and the updated daily state.
// Re-entry on the same day returns the same passage without touching the
// streak (idempotent). On a new day the streak increments only when the
// previous served day is exactly one day earlier and was completed; a gap
// of more than one day resets it to zero.
func (s *Service) Challenge(ctx context.Context) (*catalog.Passage, State, error) {
	var st State
	if _, err := store.LoadState(ctx, s.states, store.KeyDaily, &st); err != nil {
		return nil, st, err
	}

	today := s.Today()
	if st.LastDate == today && st.TodayPassageID != "" {
		if p := s.cat.Get(st.TodayPassageID); p != nil {
			return p, st, nil
		}
		// Assigned passage vanished from the catalog; fall through and
		// reassign for today.
	}

	streak := st.Streak
	if st.LastDate != "" {
		switch diff := daysBetween(st.LastDate, today); {
		case diff == 1 && st.TodayDone:
			streak++
		case diff > 1:
			streak = 0
		}
	}

	passages := s.cat.Passages()
	p := &passages[DateHash(today)%len(passages)]

	st = State{
		LastDate:       today,
		Streak:         streak,
		TodayDone:      false,
		TodayPassageID: p.ID,
	}
	if err := s.states.Set(ctx, store.KeyDaily, st); err != nil {
		return nil, st, err
	}
	return p, st, nil
}

// MarkDone flags today's challenge as completed.
func (s *Service) MarkDone(ctx context.Context) error {
	var st State
	if _, err := store.LoadState(ctx, s.states, store.KeyDaily, &st); err != nil {
		return err
	}
	st.TodayDone = true
	return s.states.Set(ctx, store.KeyDaily, st)
}

// State returns the current daily state without serving a challenge.
func (s *Service) State(ctx context.Context) (State, error) {
	var st State
	_, err := store.LoadState(ctx, s.states, store.KeyDaily, &st)
	return st, err
}

// daysBetween returns the whole calendar days from one date string to
// another in the reference timezone.
func daysBetween(from, to string) int {
	a, errA := time.ParseInLocation(dateLayout, from, refZone)
	b, errB := time.ParseInLocation(dateLayout, to, refZone)
	if errA != nil || errB != nil {
		// Unparseable stored date: treat as a long gap.
		return int(math.MaxInt32)
	}
	return int(math.Round(b.Sub(a).Hours() / 24))
}
