package summary

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readhero/internal/certificate"
	"github.com/abhisek/readhero/internal/router"
	"github.com/abhisek/readhero/internal/screen"
	sess "github.com/abhisek/readhero/internal/session"
	"github.com/abhisek/readhero/internal/ui/components"
	"github.com/abhisek/readhero/internal/ui/layout"
	"github.com/abhisek/readhero/internal/ui/theme"
)

// SummaryScreen shows the end-of-session results.
type SummaryScreen struct {
	sum  *sess.Summary
	done components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen for a settled session.
func New(sum *sess.Summary) *SummaryScreen {
	return &SummaryScreen{
		sum: sum,
		done: components.NewButton("Back to home", true, func() tea.Cmd {
			return func() tea.Msg { return router.PopToRootMsg{} }
		}),
	}
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.done, cmd = s.done.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to home"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.sum

	score := theme.Title.Render(fmt.Sprintf("%d%%", sum.ScorePercent))
	grade := theme.Subtitle.Render(sum.Grade)

	stats := theme.Body.Render(fmt.Sprintf(
		"%d / %d correct · +%d xp · level %d",
		sum.Correct, sum.Answered, sum.XPEarned, sum.Level,
	))

	parts := []string{score, grade, "", stats}

	if sum.TimeExpired {
		parts = append(parts, theme.Incorrect.Render(
			fmt.Sprintf("time ran out with %d questions unanswered", sum.TotalQuestions-sum.Answered)))
	}
	if sum.LeveledUp {
		parts = append(parts, theme.Correct.Render("★ Level up!"))
	}
	if sum.Mode == sess.ModeDaily {
		parts = append(parts, theme.Selected.Render(fmt.Sprintf("★ Daily streak: %d days", sum.Streak)))
	}

	if len(sum.SkillLines) > 0 {
		parts = append(parts, "", theme.Subtitle.Render("Skills in this session"))
		for _, line := range sum.SkillLines {
			bar := components.NewProgressBar("", float64(line.Percent)/100, false, 20)
			row := fmt.Sprintf("%-28s %s %d/%d", line.SkillName, bar.View(), line.Correct, line.Attempted)
			if line.Weak {
				row += "  " + theme.Incorrect.Render("needs work")
			}
			parts = append(parts, theme.Body.Render(row))
		}
	}

	if len(sum.NewBadges) > 0 {
		parts = append(parts, "", theme.Subtitle.Render("New badges"))
		for _, b := range sum.NewBadges {
			parts = append(parts, theme.Correct.Render(fmt.Sprintf("%s  %s", b.Icon, b.Name)))
		}
	}

	switch sum.CertStatus {
	case certificate.StatusEligible:
		parts = append(parts, "", theme.Selected.Render("You qualify for your reading certificate! Visit the skill map."))
	case certificate.StatusIssued:
		parts = append(parts, "", theme.Hint.Render("Certificate earned"))
	}

	parts = append(parts, "", s.done.View())

	content := theme.Card.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
