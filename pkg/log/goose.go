package log

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// GooseLogger adapts zerolog to goose's Logger interface.
type GooseLogger struct {
	logger zerolog.Logger
}

func (g *GooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Fatal().Msgf(strings.TrimSuffix(format, "\n"), v...)
}

// Printf logs migration progress at debug level; it is noise on every start.
func (g *GooseLogger) Printf(format string, v ...interface{}) {
	g.logger.Debug().Msgf(strings.TrimSuffix(format, "\n"), v...)
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{
		logger: FromCtx(ctx).With().Str("component", "migrations").Logger(),
	}
}
