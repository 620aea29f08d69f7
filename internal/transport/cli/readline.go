package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/shopdesk/internal/config"
	"github.com/sandevgo/shopdesk/pkg/conv"
	"github.com/sandevgo/shopdesk/pkg/log"
)

type Replier interface {
	Reply(ctx context.Context, key, input string) (string, error)
}

type ReadLine struct {
	cfg       *config.AppConfig
	chat      Replier
	sessionID string
	rl        *readline.Instance

	// OnExit runs when the user leaves the chat.
	OnExit func()
}

func NewReadLine(cfg *config.AppConfig, chat Replier, sessionID string) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "you> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:       cfg,
		chat:      chat,
		sessionID: sessionID,
		rl:        rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("session", r.sessionID).Msg("support chat started, type 'exit' to quit")

	err := Loop(ctx, lineReader{r.rl}, r.rl.Stdout(), r.chat, r.sessionID)
	if r.OnExit != nil {
		r.OnExit()
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

type LineReader interface {
	ReadLine() (string, error)
}

type lineReader struct{ rl *readline.Instance }

func (l lineReader) ReadLine() (string, error) {
	line, err := l.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		if len(line) == 0 {
			return "", io.EOF // Ctrl+C on an empty line exits
		}
		return "", nil
	}
	return line, err
}

// Loop reads lines until exit or EOF and prints each reply as plain text.
func Loop(ctx context.Context, in LineReader, out io.Writer, chat Replier, sessionID string) error {
	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "" {
			continue
		}

		reply, err := chat.Reply(ctx, sessionID, line)
		if err != nil && reply == "" {
			continue
		}
		fmt.Fprintf(out, "assistant> %s\n", strings.TrimSpace(conv.MarkdownToText(reply)))
	}
}
