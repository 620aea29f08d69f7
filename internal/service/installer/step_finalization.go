package installer

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep derives transport switches and defaults from the choices made.
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	cli := state.Channel == ChannelTerminal || state.Channel == ChannelBoth || state.Channel == ""
	telegram := (state.Channel == ChannelTelegram || state.Channel == ChannelBoth) && state.Settings.TelegramToken != ""

	// Telegram without a token cannot start; fall back to the terminal.
	if !cli && !telegram {
		cli = true
	}

	state.Settings.EnableCLI = strconv.FormatBool(cli)
	state.Settings.EnableTelegram = strconv.FormatBool(telegram)
	if !telegram {
		state.Settings.TelegramToken = ""
	}

	if state.Settings.EnableTranscripts == "" {
		state.Settings.EnableTranscripts = "true"
	}
	if state.Settings.Debug == "" {
		state.Settings.Debug = "0"
	}
}
