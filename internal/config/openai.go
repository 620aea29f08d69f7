package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/shopdesk/pkg/log"
)

type OpenAIConfig struct {
	APIKey string `env:"OPENAI_API_KEY,required,notEmpty"`
	// AssistantID is optional; a new assistant is created when it is empty or unknown.
	AssistantID string `env:"OPENAI_ASSISTANT_ID"`
	Model       string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	BaseURL     string `env:"OPENAI_BASE_URL"`
	MaxRetries  int    `env:"OPENAI_MAX_RETRIES" envDefault:"2"`
}

// NewOpenAIConfig terminates the process when the API key is missing.
func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c, err := ParseOpenAIConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("OpenAI API key not found, set OPENAI_API_KEY to run the assistant")
	}
	return c
}

func ParseOpenAIConfig() (*OpenAIConfig, error) {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}
