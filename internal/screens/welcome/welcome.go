package welcome

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readhero/internal/profile"
	"github.com/abhisek/readhero/internal/router"
	"github.com/abhisek/readhero/internal/screen"
	"github.com/abhisek/readhero/internal/store"
	"github.com/abhisek/readhero/internal/ui/components"
	"github.com/abhisek/readhero/internal/ui/layout"
	"github.com/abhisek/readhero/internal/ui/theme"
)

type step int

const (
	stepName step = iota
	stepClass
)

// WelcomeScreen collects the student's name and class on first run, then
// hands over to the home screen.
type WelcomeScreen struct {
	states      store.StateRepo
	homeFactory func() screen.Screen

	step      step
	nameInput components.TextInput
	classInp  components.TextInput
	name      string
	errText   string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that saves the profile and transitions to the
// screen produced by homeFactory.
func New(states store.StateRepo, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		states:      states,
		homeFactory: homeFactory,
		nameInput:   components.NewTextInput("your name", false, 40),
		classInp:    components.NewTextInput("your class, like 5A", false, 20),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.nameInput.Init()
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return w, w.submit()
	}

	var cmd tea.Cmd
	switch w.step {
	case stepName:
		w.nameInput, cmd = w.nameInput.Update(msg)
	case stepClass:
		w.classInp, cmd = w.classInp.Update(msg)
	}
	return w, cmd
}

func (w *WelcomeScreen) submit() tea.Cmd {
	switch w.step {
	case stepName:
		if w.nameInput.Value() == "" {
			w.errText = "tell me your name first"
			return nil
		}
		w.name = w.nameInput.Value()
		w.errText = ""
		w.step = stepClass
		return w.classInp.Init()

	case stepClass:
		p := profile.Profile{Name: w.name, ClassName: w.classInp.Value()}
		if _, err := profile.Save(context.Background(), w.states, p); err != nil {
			w.errText = err.Error()
			return nil
		}
		home := w.homeFactory()
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: home}
		}
	}
	return nil
}

func (w *WelcomeScreen) View(width, height int) string {
	var prompt, input string
	switch w.step {
	case stepName:
		prompt = "What's your name, reader?"
		input = w.nameInput.View()
	case stepClass:
		prompt = "Hi " + w.name + "! Which class are you in?"
		input = w.classInp.View()
	}

	parts := []string{
		RenderBanner(width),
		"",
		theme.Body.Render(prompt),
		"",
		input,
	}
	if w.errText != "" {
		parts = append(parts, "", theme.Incorrect.Render(w.errText))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
