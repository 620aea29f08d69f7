package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/internal/storage/csvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct{ id string }

func (f fakeSession) ID() string          { return f.id }
func (f fakeSession) ThreadID() string    { return "thread_" + f.id }
func (f fakeSession) AssistantID() string { return "asst_1" }

type fakeTranscripts struct {
	turns []core.Turn
	err   error
}

func (f *fakeTranscripts) AddTurn(ctx context.Context, turn core.Turn) error { return nil }

func (f *fakeTranscripts) GetTurns(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []core.Turn
	for _, t := range f.turns {
		if t.SessionID == sessionID {
			out = append(out, t)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func newTestRouter(t *testing.T, transcripts core.TranscriptRepository) *Router {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Orders_Info.csv")
	require.NoError(t, os.WriteFile(path, []byte("order_id,owner_name,status\n42,Jane Doe,Shipped\n"), 0644))

	lookup := func(ctx context.Context, key string) (SessionInfo, error) {
		if key == "broken" {
			return nil, errors.New("thread create failed")
		}
		return fakeSession{id: key}, nil
	}
	return New(NewCommands(csvstore.NewOrderStore(path), lookup, transcripts))
}

func TestRouter_NotACommand(t *testing.T) {
	r := newTestRouter(t, nil)

	out, handled := r.Execute(context.Background(), "s1", "What is the return policy?")
	assert.False(t, handled)
	assert.Empty(t, out)
}

func TestRouter_Commands(t *testing.T) {
	transcripts := &fakeTranscripts{turns: []core.Turn{
		{SessionID: "s1", Role: core.RoleUser, Content: "where is order 42"},
		{SessionID: "s1", Role: core.RoleAssistant, Content: "Hi Jane Doe, your order is currently Shipped"},
		{SessionID: "s2", Role: core.RoleUser, Content: "other chat"},
	}}
	r := newTestRouter(t, transcripts)

	tests := []struct {
		name     string
		session  string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "help lists commands",
			session:  "s1",
			input:    "/help",
			contains: []string{"/order", "/session", "/history", "/help"},
		},
		{
			name:     "order found",
			session:  "s1",
			input:    "/order 042",
			contains: []string{"Hi Jane Doe, your order is currently Shipped"},
		},
		{
			name:     "order unknown",
			session:  "s1",
			input:    "/order 7",
			contains: []string{csvstore.OrderNotFoundMsg},
		},
		{
			name:     "order not numeric",
			session:  "s1",
			input:    "/order abc",
			contains: []string{"invalid identifier", "/order 42"},
		},
		{
			name:     "order without id",
			session:  "s1",
			input:    "/order",
			contains: []string{"Usage", "/order [order id]"},
		},
		{
			name:     "bot suffix stripped",
			session:  "s1",
			input:    "/order@shop_bot 42",
			contains: []string{"Shipped"},
		},
		{
			name:     "session ids",
			session:  "s1",
			input:    "/session",
			contains: []string{"s1", "thread_s1", "asst_1"},
		},
		{
			name:     "session error",
			session:  "broken",
			input:    "/session",
			contains: []string{"/session failed", "thread create failed"},
		},
		{
			name:     "history of this session only",
			session:  "s1",
			input:    "/history",
			contains: []string{"where is order 42", "currently Shipped"},
			excludes: []string{"other chat"},
		},
		{
			name:     "history limit",
			session:  "s1",
			input:    "/history 1",
			contains: []string{"currently Shipped"},
			excludes: []string{"where is order 42"},
		},
		{
			name:     "history bad limit",
			session:  "s1",
			input:    "/history -3",
			contains: []string{"Usage"},
		},
		{
			name:     "history empty",
			session:  "s3",
			input:    "/history",
			contains: []string{"Nothing recorded"},
		},
		{
			name:     "unknown command",
			session:  "s1",
			input:    "/refund 42",
			contains: []string{"Unknown command: /refund", "/help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, handled := r.Execute(context.Background(), tt.session, tt.input)
			require.True(t, handled)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRouter_HistoryOnlyWithTranscripts(t *testing.T) {
	r := newTestRouter(t, nil)

	names := make([]string, 0)
	for _, c := range r.ListCommands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"order", "session"}, names)

	out, handled := r.Execute(context.Background(), "s1", "/history")
	assert.True(t, handled)
	assert.Contains(t, out, "Unknown command")
}
