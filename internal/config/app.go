package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/shopdesk/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"DESK_RUNTIME_PATH" envDefault:".shopdesk"`

	// Record files. Relative paths resolve against RuntimePath.
	ContactsFile string `env:"DESK_CONTACTS_FILE" envDefault:"Contacts_For_Human_Representative.csv"`
	OrdersFile   string `env:"DESK_ORDERS_FILE" envDefault:"Orders_Info.csv"`

	// Transport Flags
	EnableTelegram bool `env:"DESK_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"DESK_ENABLE_CLI" envDefault:"true"`

	EnableTranscripts bool `env:"DESK_ENABLE_TRANSCRIPTS" envDefault:"true"`

	// Run polling
	PollInterval    time.Duration `env:"DESK_POLL_INTERVAL" envDefault:"500ms"`
	PollMaxInterval time.Duration `env:"DESK_POLL_MAX_INTERVAL" envDefault:"4s"`
	RunTimeout      time.Duration `env:"DESK_RUN_TIMEOUT" envDefault:"2m"`

	// Input guard, 0 disables it
	MaxInputTokens    int    `env:"DESK_MAX_INPUT_TOKENS" envDefault:"1000"`
	TokenizerEncoding string `env:"DESK_TOKENIZER_ENCODING" envDefault:"o200k_base"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetContactsPath() string {
	return c.resolve(c.ContactsFile)
}

func (c AppConfig) GetOrdersPath() string {
	return c.resolve(c.OrdersFile)
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "transcripts.db")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.RuntimePath, path)
}
