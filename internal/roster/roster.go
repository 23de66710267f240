// Package roster maintains the instructor's view of student progress on a
// shared machine, and exports it for grading.
package roster

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/readhero/internal/skills"
	"github.com/abhisek/readhero/internal/store"
)

// StudentSnapshot is one roster row: the last known progress of a student
// identified by (Name, ClassName).
type StudentSnapshot struct {
	Name           string      `json:"name"`
	ClassName      string      `json:"class_name"`
	XP             int         `json:"xp"`
	Level          int         `json:"level"`
	TextsCompleted int         `json:"texts_completed"`
	TotalCorrect   int         `json:"total_correct"`
	TotalAnswered  int         `json:"total_answered"`
	Mastery        map[int]int `json:"mastery"`
	BadgeCount     int         `json:"badge_count"`
	Certified      bool        `json:"certified"`
	LastActive     time.Time   `json:"last_active"`
}

// Roster is the stored collection of snapshots.
type Roster struct {
	states store.StateRepo
	rows   []StudentSnapshot
}

// Load reads the roster; a missing or unreadable record starts empty.
func Load(ctx context.Context, states store.StateRepo) (*Roster, error) {
	r := &Roster{states: states}
	if _, err := store.LoadState(ctx, states, store.KeyRoster, &r.rows); err != nil {
		return nil, err
	}
	return r, nil
}

// Upsert records the snapshot, replacing any prior row for the same student.
// Identity matching is case-insensitive so "maya / 5a" and "Maya / 5A" do
// not split into two rows.
func (r *Roster) Upsert(ctx context.Context, snap StudentSnapshot) error {
	for i, row := range r.rows {
		if sameStudent(row, snap) {
			r.rows[i] = snap
			return r.save(ctx)
		}
	}
	r.rows = append(r.rows, snap)
	return r.save(ctx)
}

// Rows returns the snapshots ordered by class, then name.
func (r *Roster) Rows() []StudentSnapshot {
	out := make([]StudentSnapshot, len(r.rows))
	copy(out, r.rows)
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClassName != out[j].ClassName {
			return out[i].ClassName < out[j].ClassName
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of students on the roster.
func (r *Roster) Len() int { return len(r.rows) }

// Clear empties the roster.
func (r *Roster) Clear(ctx context.Context) error {
	r.rows = nil
	return r.states.Remove(ctx, store.KeyRoster)
}

func (r *Roster) save(ctx context.Context) error {
	return r.states.Set(ctx, store.KeyRoster, r.rows)
}

func sameStudent(a, b StudentSnapshot) bool {
	return strings.EqualFold(a.Name, b.Name) && strings.EqualFold(a.ClassName, b.ClassName)
}

// exportHeader is the shared column layout of both export formats: fixed
// columns first, then one mastery column per skill.
func exportHeader() []string {
	head := []string{
		"Name", "Class", "XP", "Level", "Texts Completed",
		"Correct", "Answered", "Badges", "Certified", "Last Active",
	}
	for _, sk := range skills.All() {
		head = append(head, sk.Name)
	}
	return head
}

func exportRow(snap StudentSnapshot) []string {
	certified := "no"
	if snap.Certified {
		certified = "yes"
	}
	lastActive := ""
	if !snap.LastActive.IsZero() {
		lastActive = snap.LastActive.Format("2006-01-02 15:04")
	}
	row := []string{
		snap.Name,
		snap.ClassName,
		strconv.Itoa(snap.XP),
		strconv.Itoa(snap.Level),
		strconv.Itoa(snap.TextsCompleted),
		strconv.Itoa(snap.TotalCorrect),
		strconv.Itoa(snap.TotalAnswered),
		strconv.Itoa(snap.BadgeCount),
		certified,
		lastActive,
	}
	for _, sk := range skills.All() {
		if m, ok := snap.Mastery[sk.ID]; ok {
			row = append(row, strconv.Itoa(m)+"%")
		} else {
			row = append(row, "")
		}
	}
	return row
}
