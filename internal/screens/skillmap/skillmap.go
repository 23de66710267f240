package skillmap

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readhero/internal/badges"
	"github.com/abhisek/readhero/internal/certificate"
	"github.com/abhisek/readhero/internal/profile"
	"github.com/abhisek/readhero/internal/screen"
	sess "github.com/abhisek/readhero/internal/session"
	"github.com/abhisek/readhero/internal/skills"
	"github.com/abhisek/readhero/internal/ui/components"
	"github.com/abhisek/readhero/internal/ui/layout"
	"github.com/abhisek/readhero/internal/ui/theme"
)

// SkillMapScreen shows per-skill mastery, earned badges, and the
// certificate panel.
type SkillMapScreen struct {
	engine *sess.Engine
	cert   *certificate.Certificate
	status certificate.Status
	issue  error
}

var _ screen.Screen = (*SkillMapScreen)(nil)
var _ screen.KeyHintProvider = (*SkillMapScreen)(nil)

// New creates the skill map from current student state.
func New(engine *sess.Engine) *SkillMapScreen {
	s := &SkillMapScreen{engine: engine}
	s.refresh()
	return s
}

func (s *SkillMapScreen) refresh() {
	s.cert = s.engine.Cert.Certificate()
	s.status = s.engine.Cert.Status(s.engine.CertSnapshot())
}

func (s *SkillMapScreen) Title() string {
	return "Skill Map"
}

func (s *SkillMapScreen) Init() tea.Cmd {
	return nil
}

func (s *SkillMapScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
	if s.status == certificate.StatusEligible {
		hints = append([]layout.KeyHint{{Key: "c", Description: "Claim certificate"}}, hints...)
	}
	return hints
}

func (s *SkillMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "c" && s.status == certificate.StatusEligible {
			ctx := context.Background()
			p, err := profile.Load(ctx, s.engine.States)
			if err == nil {
				_, err = s.engine.Cert.Issue(ctx, p.Name, p.ClassName, s.engine.CertSnapshot())
			}
			s.issue = err
			s.refresh()
		}
	}
	return s, nil
}

func (s *SkillMapScreen) View(width, height int) string {
	left := s.skillPanel()
	right := lipgloss.JoinVertical(lipgloss.Left, s.badgePanel(), "", s.certPanel())

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SkillMapScreen) skillPanel() string {
	parts := []string{theme.Subtitle.Render("Mastery by skill"), ""}
	for _, sk := range skills.All() {
		rec := s.engine.Tracker.Get(sk.ID)
		var row string
		if rec == nil || rec.TotalAnswered == 0 {
			row = fmt.Sprintf("%-28s %s", sk.Name, theme.Hint.Render("not started"))
		} else {
			bar := components.NewProgressBar("", float64(rec.Mastery)/100, true, 28)
			row = fmt.Sprintf("%-28s %s", sk.Name, bar.View())
		}
		parts = append(parts, theme.Body.Render(row))
	}
	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (s *SkillMapScreen) badgePanel() string {
	parts := []string{theme.Subtitle.Render("Badges"), ""}
	for _, def := range badges.Definitions() {
		if s.engine.Badges.Has(def.ID) {
			parts = append(parts, theme.Correct.Render(fmt.Sprintf("%s  %s", def.Icon, def.Name)))
		} else {
			parts = append(parts, theme.Hint.Render(fmt.Sprintf("○  %s", def.Name)))
		}
	}
	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (s *SkillMapScreen) certPanel() string {
	parts := []string{theme.Subtitle.Render("Certificate"), ""}

	switch s.status {
	case certificate.StatusIssued:
		c := s.cert
		parts = append(parts,
			theme.Correct.Render("Earned: "+c.Grade),
			theme.Body.Render(fmt.Sprintf("%s · %s", c.Name, c.IssuedAt.Format("2 Jan 2006"))),
			theme.Selected.Render("code "+c.VerificationCode),
		)
	case certificate.StatusEligible:
		parts = append(parts, theme.Selected.Render("Ready to claim! Press c"))
	default:
		elig := s.engine.Cert.Check(s.engine.CertSnapshot())
		parts = append(parts,
			condLine(elig.AllMastered, fmt.Sprintf("all practiced skills at %d%%+", elig.MasteryThreshold)),
			condLine(elig.EnoughTexts, fmt.Sprintf("%d/%d texts completed", elig.TextsCompleted, elig.MinTexts)),
			condLine(elig.GoodAverage, fmt.Sprintf("average %d%% (need %d%%)", elig.AvgPercent, elig.MinAvgPercent)),
		)
	}
	if s.issue != nil {
		parts = append(parts, "", theme.Incorrect.Render(s.issue.Error()))
	}
	return theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func condLine(met bool, text string) string {
	if met {
		return theme.Correct.Render("✓ " + text)
	}
	return theme.Hint.Render("○ " + text)
}
