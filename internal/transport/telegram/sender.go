package telegram

import (
	"context"
	"strings"

	"github.com/sandevgo/shopdesk/pkg/conv"
	"github.com/sandevgo/shopdesk/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

type sender struct {
	bot *tele.Bot
}

func newSender(bot *tele.Bot) *sender {
	return &sender{bot: bot}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if needed.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string) error {
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return nil
	}

	for i, chunk := range splitHTML(html, maxTelegramMsgLen) {
		if _, err := s.bot.Send(to, chunk, tele.ModeHTML); err != nil {
			log.FromCtx(ctx).Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// splitHTML cuts text into pieces of at most maxLen bytes, preferring a
// newline in the last two thirds of each piece and never splitting a rune.
func splitHTML(text string, maxLen int) []string {
	var chunks []string
	for len(text) > maxLen {
		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		} else {
			for cut > 0 && !isRuneStart(text[cut]) {
				cut--
			}
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
