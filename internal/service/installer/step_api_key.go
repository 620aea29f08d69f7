package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// APIKeyStep collects the OpenAI API key. It cannot be skipped.
type APIKeyStep struct {
	input   textinput.Model
	problem string
}

func NewAPIKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "sk-..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &APIKeyStep{input: ti}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if value == "" {
			s.problem = "The API key is required to talk to the assistant."
			return s, nil
		}
		state.Settings.APIKey = value
		return nil, nil
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	problem := ""
	if s.problem != "" {
		problem = errorStyle.Render(s.problem) + "\n\n"
	}
	return fmt.Sprintf("Enter your OpenAI API Key:\n\n%s\n\n%s(press enter to confirm)\n", s.input.View(), problem)
}
