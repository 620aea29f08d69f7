package env

import (
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appConf struct {
	Path     string        `env:"DESK_RUNTIME_PATH" envDefault:".shopdesk"`
	CLI      bool          `env:"DESK_ENABLE_CLI"`
	Timeout  time.Duration `env:"DESK_RUN_TIMEOUT"`
	MaxInput int           `env:"DESK_MAX_INPUT_TOKENS"`
	skipped  string        `env:"SKIPPED"`
	NoTag    string
}

type keyConf struct {
	APIKey string `env:"OPENAI_API_KEY,required,notEmpty"`
	Model  string `env:"OPENAI_MODEL"`
}

func TestMarshalEnv(t *testing.T) {
	out, err := MarshalEnv(
		&appConf{Path: "/tmp/desk", CLI: true, Timeout: 90 * time.Second, skipped: "x", NoTag: "y"},
		&keyConf{APIKey: "sk-test"},
	)
	require.NoError(t, err)

	assert.Equal(t, "DESK_RUNTIME_PATH=/tmp/desk\nDESK_ENABLE_CLI=true\nDESK_RUN_TIMEOUT=1m30s\nOPENAI_API_KEY=sk-test\n", out)
}

func TestMarshalEnv_RoundTripsThroughGodotenv(t *testing.T) {
	out, err := MarshalEnv(&keyConf{APIKey: "sk-test", Model: "gpt 4o # custom"})
	require.NoError(t, err)

	parsed, err := godotenv.Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", parsed["OPENAI_API_KEY"])
	assert.Equal(t, "gpt 4o # custom", parsed["OPENAI_MODEL"])
}

func TestMarshalEnv_Empty(t *testing.T) {
	out, err := MarshalEnv(&keyConf{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMarshalEnv_RejectsNonStruct(t *testing.T) {
	_, err := MarshalEnv(keyConf{})
	assert.Error(t, err)
}
