package chat

import (
	"context"
	"errors"

	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/internal/service/session"
	"github.com/sandevgo/shopdesk/pkg/log"
)

const (
	msgTooLong   = "Your message is too long for me to handle, could you please shorten it?"
	msgTimeout   = "Sorry, answering is taking longer than expected. Please try again in a moment."
	msgFailed    = "Sorry, I couldn't process that right now. Please try again later."
	msgNoReply   = "Sorry, I don't have an answer for that. Could you rephrase your question?"
	msgUnhandled = "Something went wrong on our side. Please try again."
)

// Handler routes one chat line either to a slash command or to the
// conversation session of the chat it came from.
type Handler struct {
	router   core.CmdRouter
	sessions *session.Manager
}

func NewHandler(router core.CmdRouter, sessions *session.Manager) *Handler {
	return &Handler{router: router, sessions: sessions}
}

// Reply returns the text to show the user. The error is returned for logging;
// the text is already a customer-safe message when it is non-nil.
func (h *Handler) Reply(ctx context.Context, key, input string) (string, error) {
	if h.router != nil {
		if out, ok := h.router.Execute(ctx, key, input); ok {
			return out, nil
		}
	}

	s, err := h.sessions.Get(ctx, key)
	if err != nil {
		return msgUnhandled, err
	}

	reply, err := s.Ask(ctx, input)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("session", key).Msg("assistant turn failed")
		return FriendlyError(err), err
	}
	return reply, nil
}

// FriendlyError turns a turn failure into something a customer can act on.
func FriendlyError(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyInput):
		return ""
	case errors.Is(err, core.ErrInputTooLong):
		return msgTooLong
	case errors.Is(err, core.ErrRunTimeout):
		return msgTimeout
	case errors.Is(err, core.ErrRunFailed):
		return msgFailed
	case errors.Is(err, core.ErrEmptyReply):
		return msgNoReply
	default:
		return msgUnhandled
	}
}
