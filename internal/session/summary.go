package session

import (
	"sort"
	"time"

	"github.com/abhisek/readhero/internal/badges"
	"github.com/abhisek/readhero/internal/certificate"
	"github.com/abhisek/readhero/internal/skills"
)

// weakThreshold marks a per-session skill line as weak when the session
// accuracy for that skill falls below it.
const weakThreshold = 50

// SkillLine is one per-skill row of the summary.
type SkillLine struct {
	SkillID   int
	SkillName string
	Correct   int
	Attempted int
	Percent   int
	Mastery   int
	Weak      bool
}

// Summary is everything the end-of-session screen shows.
type Summary struct {
	Mode           Mode
	PassageID      string
	PassageTitle   string
	Duration       time.Duration
	TotalQuestions int
	Answered       int
	Correct        int
	ScorePercent   int
	Grade          string
	XPEarned       int
	XPTotal        int
	Level          int
	LeveledUp      bool
	Streak         int
	SkillLines     []SkillLine
	NewBadges      []badges.Definition
	CertStatus     certificate.Status
	TimeExpired    bool
}

func (s *Session) buildSummary(duration time.Duration, newBadges []badges.Definition, certStatus certificate.Status) *Summary {
	type tally struct{ correct, attempted int }
	bySkill := make(map[int]*tally)
	for _, item := range s.Items {
		if !item.Answered {
			continue
		}
		t := bySkill[item.Question.SkillID]
		if t == nil {
			t = &tally{}
			bySkill[item.Question.SkillID] = t
		}
		t.attempted++
		if item.Correct {
			t.correct++
		}
	}

	var lines []SkillLine
	for id, t := range bySkill {
		pct := 100 * t.correct / t.attempted
		rec := s.engine.Tracker.Get(id)
		m := 0
		if rec != nil {
			m = rec.Mastery
		}
		lines = append(lines, SkillLine{
			SkillID:   id,
			SkillName: skills.Name(id),
			Correct:   t.correct,
			Attempted: t.attempted,
			Percent:   pct,
			Mastery:   m,
			Weak:      pct < weakThreshold,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].SkillID < lines[j].SkillID })

	prog := s.engine.Ledger.Progress()
	level := s.engine.Ledger.Level()
	title := ""
	if s.Passage != nil {
		title = s.Passage.Title
	}

	return &Summary{
		Mode:           s.Mode,
		PassageID:      s.PassageID,
		PassageTitle:   title,
		Duration:       duration,
		TotalQuestions: len(s.Items),
		Answered:       s.answered,
		Correct:        s.correct,
		ScorePercent:   s.ScorePercent(),
		Grade:          certificate.Grade(s.ScorePercent()),
		XPEarned:       prog.XP - s.xpBefore,
		XPTotal:        prog.XP,
		Level:          level,
		LeveledUp:      level > s.lvBefore,
		Streak:         s.Streak,
		SkillLines:     lines,
		NewBadges:      newBadges,
		CertStatus:     certStatus,
		TimeExpired:    s.Mode == ModeExam && s.answered < len(s.Items),
	}
}

// WeakSkills returns the skill lines flagged weak, for the improvement tip
// block.
func (sum *Summary) WeakSkills() []SkillLine {
	var out []SkillLine
	for _, l := range sum.SkillLines {
		if l.Weak {
			out = append(out, l)
		}
	}
	return out
}
