package installer

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

var assistantModels = []list.Item{
	item{id: "gpt-4o", title: "gpt-4o", desc: "Default, good tool calling"},
	item{id: "gpt-4o-mini", title: "gpt-4o-mini", desc: "Cheaper and faster"},
	item{id: "gpt-4.1", title: "gpt-4.1", desc: "Newer, larger context"},
	item{id: "gpt-4.1-mini", title: "gpt-4.1-mini", desc: "Newer, cheaper"},
}

// ModelStep picks the model of a newly created assistant. An existing
// assistant keeps its own model, so the step is skipped.
type ModelStep struct {
	list list.Model
}

func NewModelStep() Step {
	l := list.New(assistantModels, list.NewDefaultDelegate(), 40, 20)
	l.Title = "Select the assistant model"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return &ModelStep{list: l}
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.UseExistingAssistant {
		return nil, nil
	}

	if width > 0 && height > 4 {
		s.list.SetSize(width, height-4)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if i, ok := s.list.SelectedItem().(item); ok {
			state.Settings.Model = i.id
			return nil, nil
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	return s.list.View()
}
