package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readhero/internal/router"
	"github.com/abhisek/readhero/internal/screen"
	sessionscreen "github.com/abhisek/readhero/internal/screens/session"
	"github.com/abhisek/readhero/internal/screens/skillmap"
	sess "github.com/abhisek/readhero/internal/session"
	"github.com/abhisek/readhero/internal/ui/components"
	"github.com/abhisek/readhero/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	engine        *sess.Engine
	menu          components.Menu
	tip           string
	streak        int
	todayDone     bool
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen from the current student state.
func New(engine *sess.Engine) *HomeScreen {
	h := &HomeScreen{engine: engine}

	st, _ := engine.Daily.State(context.Background())
	h.streak = st.Streak
	h.todayDone = st.LastDate == engine.Daily.Today() && st.TodayDone
	h.tip = engine.Daily.Tip()

	switch {
	case h.streak >= 3:
		h.mascotVariant = MascotStreak
	case engine.Cert.Certificate() != nil:
		h.mascotVariant = MascotCelebrating
	default:
		h.mascotVariant = MascotIdle
	}

	dailyDetail := fmt.Sprintf("streak: %d days", h.streak)
	if h.todayDone {
		dailyDetail = "done for today — come back tomorrow!"
	}

	items := []components.MenuItem{
		{Label: "DAILY CHALLENGE", Detail: dailyDetail, Action: func() tea.Cmd {
			return pushSession(engine, "Daily Challenge", func(e *sess.Engine) (*sess.Session, error) {
				return e.StartDaily(context.Background())
			})
		}},
		{Label: "READ A PASSAGE", Detail: "pick up where you left off", Action: func() tea.Cmd {
			return pushSession(engine, "Reading", func(e *sess.Engine) (*sess.Session, error) {
				return e.StartPassage("")
			})
		}},
		{Label: "SKILL DRILL", Detail: "sharpen one skill at a time", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newDrillPicker(engine)}
			}
		}},
		{Label: "EXAM MODE", Detail: fmt.Sprintf("%d minutes on the clock", engine.Config.ExamTotalMinutes), Action: func() tea.Cmd {
			return pushSession(engine, "Exam", func(e *sess.Engine) (*sess.Session, error) {
				return e.StartExam("")
			})
		}},
		{Label: "SKILL MAP", Detail: "mastery, badges and your certificate", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: skillmap.New(engine)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

// pushSession builds a command that opens the session screen for a start
// function.
func pushSession(engine *sess.Engine, title string, start sessionscreen.StartFunc) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: sessionscreen.New(engine, title, start)}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	mascot := lipgloss.NewStyle().Foreground(theme.Secondary).Render(h.mascotVariant.Art())

	tip := theme.Card.Render(
		theme.Hint.Render("Tip of the day") + "\n" +
			theme.Body.Render(h.tip),
	)

	left := lipgloss.JoinVertical(lipgloss.Center, mascot, "", tip)
	right := h.menu.View()

	content := lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", 6), right)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
