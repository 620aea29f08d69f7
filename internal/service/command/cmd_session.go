package command

import (
	"context"
	"fmt"
)

type SessionInfo interface {
	ID() string
	ThreadID() string
	AssistantID() string
}

type SessionLookup func(ctx context.Context, key string) (SessionInfo, error)

type SessionCommand struct {
	lookup    SessionLookup
	formatter *ResponseFormatter
}

func NewSessionCommand(lookup SessionLookup) *SessionCommand {
	return &SessionCommand{
		lookup:    lookup,
		formatter: NewResponseFormatter(),
	}
}

func (c *SessionCommand) Name() string {
	return "session"
}

func (c *SessionCommand) Description() string {
	return "Show the current conversation ids"
}

func (c *SessionCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	s, err := c.lookup(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to open session: %w", err)
	}

	return c.formatter.Combine(
		c.formatter.Info("Session"),
		c.formatter.Label("Session", s.ID())+
			c.formatter.Label("Thread", s.ThreadID())+
			c.formatter.Label("Assistant", s.AssistantID()),
	), nil
}
