package installer

// Settings is what the wizard writes to the runtime .env file.
// Booleans are kept as text so an explicit "false" survives marshalling.
type Settings struct {
	APIKey      string `env:"OPENAI_API_KEY"`
	AssistantID string `env:"OPENAI_ASSISTANT_ID"`
	Model       string `env:"OPENAI_MODEL"`

	EnableCLI         string `env:"DESK_ENABLE_CLI"`
	EnableTelegram    string `env:"DESK_ENABLE_TELEGRAM"`
	TelegramToken     string `env:"DESK_TELEGRAM_TOKEN"`
	EnableTranscripts string `env:"DESK_ENABLE_TRANSCRIPTS"`
	Debug             string `env:"DESK_DEBUG"`
}

type InstallState struct {
	RuntimePath string
	Settings    Settings

	// Wizard choices that are not persisted directly.
	UseExistingAssistant bool
	Channel              string
}

func NewInstallState(runtimePath string) *InstallState {
	return &InstallState{RuntimePath: runtimePath}
}
