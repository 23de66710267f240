package home

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/readhero/internal/router"
	"github.com/abhisek/readhero/internal/screen"
	sessionscreen "github.com/abhisek/readhero/internal/screens/session"
	"github.com/abhisek/readhero/internal/selector"
	sess "github.com/abhisek/readhero/internal/session"
	"github.com/abhisek/readhero/internal/skills"
	"github.com/abhisek/readhero/internal/ui/components"
)

// drillPicker lists the skill categories to drill. Skills without enough
// catalog questions are shown but disabled.
type drillPicker struct {
	menu components.Menu
}

var _ screen.Screen = (*drillPicker)(nil)

func newDrillPicker(engine *sess.Engine) *drillPicker {
	var items []components.MenuItem
	for _, sk := range skills.All() {
		skillID := sk.ID
		available := len(engine.Catalog.QuestionsForSkill(skillID))
		disabled := available < selector.MinDrillQuestions

		detail := fmt.Sprintf("%d questions", available)
		rec := engine.Tracker.Get(skillID)
		if rec != nil && rec.TotalAnswered > 0 {
			detail = fmt.Sprintf("%d questions · mastery %d%%", available, rec.Mastery)
		}

		items = append(items, components.MenuItem{
			Label:    sk.Name,
			Detail:   detail,
			Disabled: disabled,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.ReplaceScreenMsg{
						Screen: sessionscreen.New(engine, "Drill: "+skills.Name(skillID),
							func(e *sess.Engine) (*sess.Session, error) {
								return e.StartDrill(skillID, selector.DefaultDrillMax)
							}),
					}
				}
			},
		})
	}
	return &drillPicker{menu: components.NewMenu(items)}
}

func (d *drillPicker) Title() string { return "Skill Drill" }

func (d *drillPicker) Init() tea.Cmd { return nil }

func (d *drillPicker) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *drillPicker) View(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, d.menu.View())
}
