package tokens

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/shopdesk/internal/core"
	"github.com/sandevgo/shopdesk/pkg/log"
)

var (
	_ core.TokenCounter = (*Tiktoken)(nil)
	_ core.TokenCounter = Approx{}
)

type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

func NewTiktoken(encoding string) (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load encoding %q: %w", encoding, err)
	}
	return &Tiktoken{enc: enc}, nil
}

func (t *Tiktoken) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// Approx estimates about four bytes of UTF-8 per token.
type Approx struct{}

func (Approx) Count(text string) int {
	n := len(text) / 4
	if n == 0 && utf8.RuneCountInString(text) > 0 {
		return 1
	}
	return n
}

// NewCounter prefers the exact tokenizer and falls back to Approx when
// the encoding cannot be loaded (tiktoken fetches its tables on first use).
func NewCounter(ctx context.Context, encoding string) core.TokenCounter {
	t, err := NewTiktoken(encoding)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("tokenizer unavailable, using approximate token counts")
		return Approx{}
	}
	return t
}
