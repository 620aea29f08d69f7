package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	fs "github.com/sandevgo/shopdesk/configs"
	"github.com/sandevgo/shopdesk/pkg/env"
)

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := saveEnv(state); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// saveEnv refuses to overwrite an existing .env.
func saveEnv(state *InstallState) error {
	if err := os.MkdirAll(state.RuntimePath, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(state.RuntimePath, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := env.MarshalEnv(&state.Settings)
	if err != nil {
		return err
	}

	return os.WriteFile(envPath, []byte(content), 0600)
}

// InitializeFilesStep seeds the record files the assistant's actions read.
type InitializeFilesStep struct {
	err  error
	done bool
}

func NewInitializeFilesStep() Step {
	return &InitializeFilesStep{}
}

func (s *InitializeFilesStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *InitializeFilesStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.done {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := initFiles(state.RuntimePath); err != nil {
		s.err = err
		return s, nil
	}

	s.done = true
	return nil, nil
}

func (s *InitializeFilesStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.done {
		return "Runtime files initialized successfully!\n"
	}
	return "Initializing runtime files...\n"
}

// initFiles writes the embedded templates, keeping files that already exist.
func initFiles(runtimePath string) error {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	for _, name := range []string{"Orders_Info.csv"} {
		dst := filepath.Join(runtimePath, name)
		if _, err := os.Stat(dst); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}

		data, err := fs.FS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read embedded %s: %w", name, err)
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dst, err)
		}
	}
	return nil
}
