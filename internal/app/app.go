package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readhero/internal/profile"
	"github.com/abhisek/readhero/internal/router"
	"github.com/abhisek/readhero/internal/screen"
	"github.com/abhisek/readhero/internal/screens/home"
	sessionscreen "github.com/abhisek/readhero/internal/screens/session"
	"github.com/abhisek/readhero/internal/screens/welcome"
	"github.com/abhisek/readhero/internal/selector"
	"github.com/abhisek/readhero/internal/session"
	"github.com/abhisek/readhero/internal/skills"
	"github.com/abhisek/readhero/internal/ui/layout"
)

// StartTarget opens the app directly into a session, for the play command's
// mode flags.
type StartTarget struct {
	Mode      session.Mode
	SkillID   int
	PassageID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	engine *session.Engine
	router *router.Router
	target *StartTarget
	width  int
	height int
}

// newAppModel starts on the welcome screen until a profile exists, then on
// home. A start target skips the menu and opens its session directly.
func newAppModel(engine *session.Engine, target *StartTarget) AppModel {
	homeFactory := func() screen.Screen { return home.New(engine) }

	var initial screen.Screen
	p, err := profile.Load(context.Background(), engine.States)
	if err == nil && p.Complete() {
		initial = homeFactory()
	} else {
		// First run collects the profile; any start target waits behind it.
		target = nil
		initial = welcome.New(engine.States, homeFactory)
	}

	return AppModel{
		engine: engine,
		router: router.New(initial),
		target: target,
	}
}

func targetScreen(engine *session.Engine, t StartTarget) screen.Screen {
	switch t.Mode {
	case session.ModeDaily:
		return sessionscreen.New(engine, "Daily Challenge", func(e *session.Engine) (*session.Session, error) {
			return e.StartDaily(context.Background())
		})
	case session.ModeExam:
		return sessionscreen.New(engine, "Exam", func(e *session.Engine) (*session.Session, error) {
			return e.StartExam(t.PassageID)
		})
	case session.ModeDrill:
		return sessionscreen.New(engine, "Drill: "+skills.Name(t.SkillID), func(e *session.Engine) (*session.Session, error) {
			return e.StartDrill(t.SkillID, selector.DefaultDrillMax)
		})
	default:
		return sessionscreen.New(engine, "Reading", func(e *session.Engine) (*session.Session, error) {
			return e.StartPassage(t.PassageID)
		})
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.target != nil {
		engine, target := m.engine, *m.target
		cmds = append(cmds, func() tea.Msg {
			return router.PushScreenMsg{Screen: targetScreen(engine, target)}
		})
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if guard, ok := m.router.Active().(screen.EscGuard); ok && guard.HandleEsc() {
				return m, nil
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	st, _ := m.engine.Daily.State(context.Background())
	header := layout.RenderHeader(title, layout.HeaderStats{
		Level:  m.engine.Ledger.Level(),
		XP:     m.engine.Ledger.Progress().XP,
		Streak: st.Streak,
	}, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program over a wired engine.
func Run(engine *session.Engine, target *StartTarget) error {
	p := tea.NewProgram(newAppModel(engine, target))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
