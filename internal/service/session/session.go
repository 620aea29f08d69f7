package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/pkg/log"
	"github.com/sandevgo/shopdesk/pkg/retry"
)

const cancelTimeout = 10 * time.Second

type Executor interface {
	Execute(ctx context.Context, calls []core.ToolCall) []core.ToolOutput
}

type Options struct {
	SessionID       string
	PollInterval    time.Duration
	PollMaxInterval time.Duration
	// RunTimeout bounds one Ask; zero means the caller's context decides.
	RunTimeout time.Duration

	// StatusRetry governs retries of run status fetches.
	StatusRetry *retry.Config

	MaxInputTokens int
	Tokens         core.TokenCounter
	Transcripts    core.TranscriptRepository
}

func DefaultOptions() Options {
	return Options{
		PollInterval:    500 * time.Millisecond,
		PollMaxInterval: 4 * time.Second,
		RunTimeout:      2 * time.Minute,
		StatusRetry: &retry.Config{
			MaxRetries:    3,
			BackoffFactor: 2,
			InitialDelay:  200 * time.Millisecond,
			MaxDelay:      2 * time.Second,
			Jitter:        50 * time.Millisecond,
		},
	}
}

// Session is one dialogue bound to a single thread of the hosted assistant.
// Turns are serialized; a second Ask waits for the first to finish.
type Session struct {
	svc         core.ConversationService
	exec        Executor
	opts        Options
	assistantID string
	threadID    string

	mu sync.Mutex
}

// New opens the session's thread. The thread is reused by every later turn.
func New(ctx context.Context, svc core.ConversationService, assistantID string, exec Executor, opts Options) (*Session, error) {
	defaults := DefaultOptions()
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaults.PollInterval
	}
	if opts.PollMaxInterval < opts.PollInterval {
		opts.PollMaxInterval = opts.PollInterval
	}
	if opts.StatusRetry == nil {
		opts.StatusRetry = defaults.StatusRetry
	}

	threadID, err := svc.CreateThread(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	log.FromCtx(ctx).Info().
		Str("session", opts.SessionID).
		Str("thread", threadID).
		Msg("conversation session opened")

	return &Session{
		svc:         svc,
		exec:        exec,
		opts:        opts,
		assistantID: assistantID,
		threadID:    threadID,
	}, nil
}

func (s *Session) ID() string          { return s.opts.SessionID }
func (s *Session) ThreadID() string    { return s.threadID }
func (s *Session) AssistantID() string { return s.assistantID }

// Ask sends one user turn and returns the assistant's reply,
// running requested tools along the way.
func (s *Session) Ask(ctx context.Context, input string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := log.FromCtx(ctx)

	if err := s.checkInput(input); err != nil {
		return "", err
	}

	msgID, err := s.svc.AddUserMessage(ctx, s.threadID, input)
	if err != nil {
		return "", fmt.Errorf("failed to add user message: %w", err)
	}
	s.record(ctx, core.RoleUser, input)

	run, err := s.svc.CreateRun(ctx, s.threadID, s.assistantID)
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	logger.Debug().Str("run", run.ID).Str("status", string(run.Status)).Msg("run started")

	if err := s.wait(ctx, run); err != nil {
		return "", err
	}

	reply, err := s.reply(ctx, msgID)
	if err != nil {
		return "", err
	}
	s.record(ctx, core.RoleAssistant, reply)

	return reply, nil
}

func (s *Session) checkInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return core.ErrEmptyInput
	}
	if s.opts.MaxInputTokens > 0 && s.opts.Tokens != nil {
		if n := s.opts.Tokens.Count(input); n > s.opts.MaxInputTokens {
			return fmt.Errorf("%w: %d tokens, limit %d", core.ErrInputTooLong, n, s.opts.MaxInputTokens)
		}
	}
	return nil
}

// wait polls the run until it completes. Tool calls requested along the way are
// executed and their outputs submitted together as one batch.
func (s *Session) wait(ctx context.Context, run core.Run) error {
	logger := log.FromCtx(ctx)

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.opts.RunTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, s.opts.RunTimeout)
	}
	defer cancel()

	poller := retry.NewRetrier(&retry.Config{
		BackoffFactor: 1.5,
		InitialDelay:  s.opts.PollInterval,
		MaxDelay:      s.opts.PollMaxInterval,
	})

	current := run
	fetch := false
	err := poller.Poll(runCtx, func(ctx context.Context) (bool, error) {
		if fetch {
			next, err := s.getRun(ctx, current.ID)
			if err != nil {
				return false, err
			}
			current = next
		}
		fetch = true

		switch current.Status {
		case core.RunCompleted:
			return true, nil

		case core.RunRequiresAction:
			logger.Info().Str("run", current.ID).Int("calls", len(current.ToolCalls)).Msg("function calling")
			outputs := s.exec.Execute(ctx, current.ToolCalls)
			for _, out := range outputs {
				s.record(ctx, core.RoleTool, out.Output)
			}

			next, err := s.svc.SubmitToolOutputs(ctx, s.threadID, current.ID, outputs)
			if err != nil {
				return false, fmt.Errorf("failed to submit tool outputs: %w", err)
			}
			current = next
			return false, nil

		case core.RunFailed, core.RunCancelled, core.RunExpired, core.RunIncomplete:
			return false, fmt.Errorf("%w: status %s: %s", core.ErrRunFailed, current.Status, current.LastError)

		default:
			logger.Debug().Str("run", current.ID).Str("status", string(current.Status)).Msg("waiting for the assistant")
			return false, nil
		}
	})
	if err == nil {
		return nil
	}

	if runCtx.Err() != nil {
		s.cancelRun(ctx, current.ID)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w after %s (run %s, last status %s)", core.ErrRunTimeout, s.opts.RunTimeout, current.ID, current.Status)
	}
	if !current.Status.Terminal() {
		s.cancelRun(ctx, current.ID)
	}
	return err
}

func (s *Session) getRun(ctx context.Context, runID string) (core.Run, error) {
	var run core.Run
	err := retry.NewRetrier(s.opts.StatusRetry).Do(ctx, func() error {
		var err error
		run, err = s.svc.GetRun(ctx, s.threadID, runID)
		if err != nil && ctx.Err() != nil {
			return retry.Permanent(err)
		}
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("run", runID).Msg("failed to fetch run status")
		}
		return err
	})
	if err != nil {
		return core.Run{}, fmt.Errorf("failed to fetch run: %w", err)
	}
	return run, nil
}

// cancelRun stops a run we gave up on so the thread accepts new messages.
func (s *Session) cancelRun(ctx context.Context, runID string) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cancelTimeout)
	defer cancel()

	if err := s.svc.CancelRun(cctx, s.threadID, runID); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("run", runID).Msg("failed to cancel run")
	}
}

// reply returns the first assistant message written after the user turn.
func (s *Session) reply(ctx context.Context, userMsgID string) (string, error) {
	msgs, err := s.svc.MessagesAfter(ctx, s.threadID, userMsgID)
	if err != nil {
		return "", fmt.Errorf("failed to list messages: %w", err)
	}

	for _, m := range msgs {
		if m.Role == core.RoleAssistant && m.Content != "" {
			return m.Content, nil
		}
	}
	return "", core.ErrEmptyReply
}

func (s *Session) record(ctx context.Context, role, content string) {
	if s.opts.Transcripts == nil {
		return
	}

	err := s.opts.Transcripts.AddTurn(ctx, core.Turn{
		SessionID: s.opts.SessionID,
		ThreadID:  s.threadID,
		Role:      role,
		Content:   content,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.FromCtx(ctx).Error().Err(err).Str("role", role).Msg("failed to save transcript turn")
	}
}
