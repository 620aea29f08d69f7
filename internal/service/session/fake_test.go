package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sandevgo/shopdesk/internal/core"
)

// simAssistant imitates the hosted run lifecycle:
// queued -> (requires_action -> in_progress)? -> completed.
type simAssistant struct {
	// plan returns the tool calls a user turn triggers; nil means answer directly.
	plan func(input string) []core.ToolCall
	// answer builds the reply from the input and any submitted outputs.
	answer func(input string, outputs []core.ToolOutput) string
	// stuck keeps every run in_progress forever.
	stuck bool
	// failWith ends every run as failed with this message.
	failWith string
	// getErrs are returned by successive GetRun calls before normal behaviour.
	getErrs []error
	// submitErr fails every SubmitToolOutputs call.
	submitErr error

	mu        sync.Mutex
	threads   []string
	messages  map[string][]core.Message
	runs      map[string]*simRun
	submits   [][]core.ToolOutput
	cancelled []string
	getCalls  int
	nextID    int
}

type simRun struct {
	run     core.Run
	input   string
	calls   []core.ToolCall
	outputs []core.ToolOutput
}

func newSimAssistant() *simAssistant {
	return &simAssistant{
		messages: make(map[string][]core.Message),
		runs:     make(map[string]*simRun),
	}
}

func (a *simAssistant) id(prefix string) string {
	a.nextID++
	return fmt.Sprintf("%s_%d", prefix, a.nextID)
}

func (a *simAssistant) CreateThread(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.id("thread")
	a.threads = append(a.threads, id)
	return id, nil
}

func (a *simAssistant) AddUserMessage(ctx context.Context, threadID, content string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.id("msg")
	a.messages[threadID] = append(a.messages[threadID], core.Message{ID: id, Role: core.RoleUser, Content: content})
	return id, nil
}

func (a *simAssistant) CreateRun(ctx context.Context, threadID, assistantID string) (core.Run, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	msgs := a.messages[threadID]
	input := msgs[len(msgs)-1].Content

	r := &simRun{
		run:   core.Run{ID: a.id("run"), ThreadID: threadID, Status: core.RunQueued},
		input: input,
	}
	if a.plan != nil {
		r.calls = a.plan(input)
	}
	a.runs[r.run.ID] = r
	return r.run, nil
}

func (a *simAssistant) GetRun(ctx context.Context, threadID, runID string) (core.Run, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.getCalls++
	if len(a.getErrs) > 0 {
		err := a.getErrs[0]
		a.getErrs = a.getErrs[1:]
		return core.Run{}, err
	}

	r, ok := a.runs[runID]
	if !ok {
		return core.Run{}, errors.New("no such run")
	}

	switch {
	case a.stuck:
		r.run.Status = core.RunInProgress
	case a.failWith != "":
		r.run.Status = core.RunFailed
		r.run.LastError = a.failWith
	case r.run.Status == core.RunQueued && len(r.calls) > 0 && r.outputs == nil:
		r.run.Status = core.RunRequiresAction
		r.run.ToolCalls = r.calls
	case r.run.Status == core.RunQueued || r.run.Status == core.RunInProgress:
		r.run.Status = core.RunCompleted
		r.run.ToolCalls = nil
		if a.answer != nil {
			a.messages[threadID] = append(a.messages[threadID], core.Message{
				ID:      a.id("msg"),
				Role:    core.RoleAssistant,
				Content: a.answer(r.input, r.outputs),
			})
		}
	}
	return r.run, nil
}

func (a *simAssistant) CancelRun(ctx context.Context, threadID, runID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelled = append(a.cancelled, runID)
	return nil
}

func (a *simAssistant) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []core.ToolOutput) (core.Run, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.submitErr != nil {
		return core.Run{}, a.submitErr
	}

	r, ok := a.runs[runID]
	if !ok || r.run.Status != core.RunRequiresAction {
		return core.Run{}, errors.New("run is not waiting for tool outputs")
	}
	if len(outputs) != len(r.calls) {
		return core.Run{}, fmt.Errorf("expected %d outputs, got %d", len(r.calls), len(outputs))
	}

	a.submits = append(a.submits, outputs)
	r.outputs = outputs
	r.run.Status = core.RunInProgress
	r.run.ToolCalls = nil
	return r.run, nil
}

func (a *simAssistant) MessagesAfter(ctx context.Context, threadID, messageID string) ([]core.Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	msgs := a.messages[threadID]
	for i, m := range msgs {
		if m.ID == messageID {
			return append([]core.Message(nil), msgs[i+1:]...), nil
		}
	}
	return nil, errors.New("no such message")
}

// echoOutputs answers with the tool outputs, or a canned text when there are none.
func echoOutputs(direct string) func(string, []core.ToolOutput) string {
	return func(input string, outputs []core.ToolOutput) string {
		if len(outputs) == 0 {
			return direct
		}
		parts := make([]string, 0, len(outputs))
		for _, o := range outputs {
			parts = append(parts, o.Output)
		}
		return strings.Join(parts, "\n")
	}
}

type fakeCounter struct{}

// Count treats every whitespace-separated word as one token.
func (fakeCounter) Count(text string) int { return len(strings.Fields(text)) }

type memoryTranscripts struct {
	mu    sync.Mutex
	turns []core.Turn
}

func (m *memoryTranscripts) AddTurn(ctx context.Context, turn core.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, turn)
	return nil
}

func (m *memoryTranscripts) GetTurns(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Turn(nil), m.turns...), nil
}
