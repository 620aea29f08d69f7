package installer

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrInterrupted = errors.New("shopdesk installation interrupted")

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Step represents a single step in the installation wizard.
// Returning a nil Step from Update moves the wizard on.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

func getSteps() []Step {
	return []Step{
		NewAPIKeyStep(),
		NewAssistantStep(),
		NewModelStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewFinalizationStep(),
		NewSaveEnvStep(),
		NewInitializeFilesStep(),
	}
}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

type nextMsg struct{}

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	width       int
	height      int
}

func newModel(runtimePath string, steps []Step) model {
	return model{
		steps: steps,
		state: NewInstallState(runtimePath),
	}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	nextStep, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)
	if nextStep == nil {
		m.currentStep++
		if m.currentStep >= len(m.steps) {
			return m, tea.Quit
		}
		// Steps that skip themselves react to the first message they see.
		next := m.steps[m.currentStep].Init()
		if next == nil {
			next = func() tea.Msg { return nextMsg{} }
		}
		return m, next
	}

	m.steps[m.currentStep] = nextStep
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Installation cancelled.\n"
	}
	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}
	return titleStyle.Render("Installing ShopDesk 🛍") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard starts the TUI and writes the result under runtimePath.
func RunWizard(runtimePath string) (*InstallState, error) {
	p := tea.NewProgram(newModel(runtimePath, getSteps()), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	finalModel := m.(model)
	if finalModel.quitting {
		return nil, ErrInterrupted
	}
	if finalModel.currentStep < len(finalModel.steps) {
		return nil, fmt.Errorf("installation stopped at step %d", finalModel.currentStep+1)
	}
	return finalModel.state, nil
}
