package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/shopdesk/internal/config"
	"github.com/sandevgo/shopdesk/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Replier interface {
	Reply(ctx context.Context, key, input string) (string, error)
}

type Bot struct {
	bot    *tele.Bot
	cfg    *config.TelegramConfig
	chat   Replier
	sender *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	chat Replier,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			log.FromCtx(ctx).Error().Err(err).Msg("telegram handler failed")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		cfg:    cfg,
		chat:   chat,
		sender: newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// sessionKey gives every chat its own conversation thread.
func sessionKey(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	key := sessionKey(c.Chat().ID)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	reply, err := b.chat.Reply(ctx, key, c.Text())
	if err != nil {
		logger.Error().Err(err).Str("session", key).Msg("failed to answer telegram message")
	}
	if reply == "" {
		return nil
	}

	return b.sender.sendMarkdown(ctx, c.Chat(), reply)
}
