package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instantService completes every run immediately and echoes the user message.
type instantService struct {
	threads int
	last    map[string]string
	runErr  error
}

func (s *instantService) CreateThread(ctx context.Context) (string, error) {
	s.threads++
	return fmt.Sprintf("thread_%d", s.threads), nil
}

func (s *instantService) AddUserMessage(ctx context.Context, threadID, content string) (string, error) {
	if s.last == nil {
		s.last = map[string]string{}
	}
	s.last[threadID] = content
	return "msg_user", nil
}

func (s *instantService) CreateRun(ctx context.Context, threadID, assistantID string) (core.Run, error) {
	if s.runErr != nil {
		return core.Run{}, s.runErr
	}
	return core.Run{ID: "run_1", ThreadID: threadID, Status: core.RunCompleted}, nil
}

func (s *instantService) GetRun(ctx context.Context, threadID, runID string) (core.Run, error) {
	return core.Run{ID: runID, ThreadID: threadID, Status: core.RunCompleted}, nil
}

func (s *instantService) CancelRun(ctx context.Context, threadID, runID string) error { return nil }

func (s *instantService) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []core.ToolOutput) (core.Run, error) {
	return core.Run{}, errors.New("unexpected submit")
}

func (s *instantService) MessagesAfter(ctx context.Context, threadID, messageID string) ([]core.Message, error) {
	return []core.Message{{ID: "msg_reply", Role: core.RoleAssistant, Content: "echo: " + s.last[threadID]}}, nil
}

type noTools struct{}

func (noTools) Execute(ctx context.Context, calls []core.ToolCall) []core.ToolOutput { return nil }

type slashOnly struct{}

func (slashOnly) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	if input == "/ping" {
		return "pong " + sessionID, true
	}
	return "", false
}

func (slashOnly) ListCommands() []core.Command { return nil }

func newTestHandler(svc *instantService) *Handler {
	m := session.NewManager(func(ctx context.Context, key string) (*session.Session, error) {
		opts := session.DefaultOptions()
		opts.SessionID = key
		return session.New(ctx, svc, "asst_1", noTools{}, opts)
	})
	return NewHandler(slashOnly{}, m)
}

func TestHandler_Reply(t *testing.T) {
	svc := &instantService{}
	h := newTestHandler(svc)
	ctx := context.Background()

	out, err := h.Reply(ctx, "chat-1", "/ping")
	require.NoError(t, err)
	assert.Equal(t, "pong chat-1", out)
	assert.Equal(t, 0, svc.threads, "commands must not open a thread")

	out, err = h.Reply(ctx, "chat-1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "echo: hello", out)

	_, err = h.Reply(ctx, "chat-2", "hi")
	require.NoError(t, err)
	_, err = h.Reply(ctx, "chat-1", "again")
	require.NoError(t, err)
	assert.Equal(t, 2, svc.threads)
}

func TestHandler_ReplyError(t *testing.T) {
	svc := &instantService{runErr: errors.New("connection refused")}
	h := newTestHandler(svc)

	out, err := h.Reply(context.Background(), "chat-1", "hello")
	require.Error(t, err)
	assert.Equal(t, msgUnhandled, out)
}

func TestFriendlyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{core.ErrEmptyInput, ""},
		{fmt.Errorf("%w: 5000 tokens", core.ErrInputTooLong), msgTooLong},
		{fmt.Errorf("%w after 2m", core.ErrRunTimeout), msgTimeout},
		{fmt.Errorf("%w: status failed", core.ErrRunFailed), msgFailed},
		{core.ErrEmptyReply, msgNoReply},
		{errors.New("boom"), msgUnhandled},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, FriendlyError(tt.err))
		})
	}
}
