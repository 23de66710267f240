package session

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/readhero/internal/session"
	"github.com/abhisek/readhero/internal/ui/components"
	"github.com/abhisek/readhero/internal/ui/layout"
	"github.com/abhisek/readhero/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.quitConfirm {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Card.Render(
				theme.Body.Render("Leave this session?")+"\n\n"+
					theme.Hint.Render("answered questions are kept · y leave · n stay"),
			))
	}

	var content string
	switch s.phase {
	case phaseLoading:
		content = theme.Hint.Render("picking your text...")
	case phaseReading:
		content = s.readingView(width)
	case phaseQuestion:
		content = s.questionView(width)
	case phaseFeedback:
		content = s.feedbackView(width)
	case phaseError:
		content = theme.Incorrect.Render(s.err.Error()) + "\n\n" +
			theme.Hint.Render("press enter to go back")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SessionScreen) readingView(width int) string {
	p := s.sess.Passage
	title := theme.Title.Render(p.Title)
	meta := theme.Hint.Render(fmt.Sprintf("%s · %s · %d questions", p.Genre, p.Difficulty, s.sess.Len()))
	body := theme.Prose.Render(layout.WrapProse(p.Body, width))

	parts := []string{title, meta, "", body, ""}
	if s.sess.Mode == sess.ModeExam {
		parts = append(parts, s.timerLine())
	}
	parts = append(parts, theme.Hint.Render("read carefully, then press enter"))
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (s *SessionScreen) questionView(width int) string {
	item := s.sess.Current()
	if item == nil {
		return ""
	}

	header := s.progressLine()
	var source string
	if s.sess.Mode == sess.ModeDrill {
		source = theme.Card.Render(
			theme.Selected.Render(item.PassageTitle) + "\n" +
				layout.WrapProse(item.PassageBody, width),
		)
	}

	parts := []string{header, ""}
	if source != "" {
		parts = append(parts, source, "")
	}
	parts = append(parts, s.choice.View())
	if s.sess.Mode == sess.ModeExam {
		parts = append(parts, s.timerLine())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *SessionScreen) feedbackView(width int) string {
	res := s.lastResult

	var verdict string
	if res.Correct {
		verdict = theme.Correct.Render("Correct!  +" + fmt.Sprintf("%d", s.engine.Config.XPPerCorrect) + " xp")
	} else {
		verdict = theme.Incorrect.Render("Not quite.")
	}

	parts := []string{s.choice.View(), verdict}
	if res.Explanation != "" {
		parts = append(parts, "", theme.Body.Render(layout.WrapProse(res.Explanation, width)))
	}
	parts = append(parts, "", theme.Hint.Render(fmt.Sprintf("skill mastery now %d%%", res.Mastery)))
	if res.LeveledUp {
		parts = append(parts, theme.Correct.Render(fmt.Sprintf("★ Level up! You reached level %d", res.Level)))
	}

	next := "next question"
	if s.sess.Current() == nil {
		next = "see your results"
	}
	parts = append(parts, "", theme.Hint.Render("press enter for "+next))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *SessionScreen) progressLine() string {
	done := s.sess.Index()
	total := s.sess.Len()
	bar := components.NewProgressBar("", float64(done)/float64(total), false, 30)
	return fmt.Sprintf("%s  %s",
		theme.Hint.Render(fmt.Sprintf("Question %d of %d", done+1, total)),
		bar.View())
}

func (s *SessionScreen) timerLine() string {
	mins := int(s.remaining.Minutes())
	secs := int(s.remaining.Seconds()) % 60
	line := fmt.Sprintf("⏱ %02d:%02d remaining", mins, secs)
	if s.remaining < 5*time.Minute {
		return theme.Incorrect.Render(line)
	}
	return theme.Hint.Render(line)
}
