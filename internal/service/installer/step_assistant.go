package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var assistantChoices = []string{
	"Create a new assistant on first start",
	"Use an existing assistant id",
}

// AssistantStep decides whether a configured assistant is reused.
type AssistantStep struct {
	cursor  int
	asking  bool
	input   textinput.Model
	problem string
}

func NewAssistantStep() Step {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Placeholder = "asst_..."

	return &AssistantStep{input: ti}
}

func (s *AssistantStep) Init() tea.Cmd {
	return nil
}

func (s *AssistantStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	if s.asking {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if isKey && key.String() == "enter" {
			id := strings.TrimSpace(s.input.Value())
			if !strings.HasPrefix(id, "asst_") {
				s.problem = "Assistant ids start with asst_"
				return s, nil
			}
			state.Settings.AssistantID = id
			state.UseExistingAssistant = true
			return nil, nil
		}
		return s, cmd
	}

	if !isKey {
		return s, nil
	}
	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(assistantChoices)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor == 0 {
			state.UseExistingAssistant = false
			state.Settings.AssistantID = ""
			return nil, nil
		}
		s.asking = true
		s.input.Focus()
		return s, textinput.Blink
	}
	return s, nil
}

func (s *AssistantStep) View(state *InstallState) string {
	if s.asking {
		problem := ""
		if s.problem != "" {
			problem = errorStyle.Render(s.problem) + "\n\n"
		}
		return fmt.Sprintf("Enter the assistant id:\n\n%s\n\n%s(press enter to confirm)\n", s.input.View(), problem)
	}
	return renderChoices("Which assistant should answer customers?", assistantChoices, s.cursor)
}

func renderChoices(title string, choices []string, cursor int) string {
	var b strings.Builder
	b.WriteString(title + "\n\n")
	for i, choice := range choices {
		if cursor == i {
			b.WriteString(selStyle.Render("❯ "+choice) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+choice) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
