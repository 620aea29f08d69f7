package core

import "context"

// ConversationService is the hosted assistant API as seen by a session.
type ConversationService interface {
	CreateThread(ctx context.Context) (string, error)
	AddUserMessage(ctx context.Context, threadID, content string) (string, error)
	CreateRun(ctx context.Context, threadID, assistantID string) (Run, error)
	GetRun(ctx context.Context, threadID, runID string) (Run, error)
	CancelRun(ctx context.Context, threadID, runID string) error
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) (Run, error)
	// MessagesAfter lists messages created after messageID, oldest first.
	MessagesAfter(ctx context.Context, threadID, messageID string) ([]Message, error)
}

type TokenCounter interface {
	Count(text string) int
}
