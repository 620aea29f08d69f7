package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

const (
	ChannelTerminal = "Terminal"
	ChannelTelegram = "Telegram"
	ChannelBoth     = "Terminal and Telegram"
)

// ChannelStep allows selection of the chat channel/transport
type ChannelStep struct {
	choices []string
	cursor  int
}

func NewChannelStep() Step {
	return &ChannelStep{
		choices: []string{ChannelTerminal, ChannelTelegram, ChannelBoth},
	}
}

func (s *ChannelStep) Init() tea.Cmd {
	return nil
}

func (s *ChannelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.choices)-1 {
			s.cursor++
		}
	case "enter":
		state.Channel = s.choices[s.cursor]
		return nil, nil
	}
	return s, nil
}

func (s *ChannelStep) View(state *InstallState) string {
	return renderChoices("Where will customers chat with the assistant?", s.choices, s.cursor)
}
