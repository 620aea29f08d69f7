package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	tgPolicy   = bluemonday.NewPolicy()
)

func init() {
	// Allowed tags https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")
}

func render(md []byte) []byte {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	return markdown.Render(p.Parse(md), renderer)
}

// MarkdownToTelegramHTML renders assistant replies into the HTML subset Telegram accepts.
func MarkdownToTelegramHTML(md []byte) string {
	return string(tgPolicy.SanitizeBytes(render(md)))
}

// MarkdownToText renders assistant replies for a terminal. Links keep their
// target in parentheses. On conversion failure the input is returned unchanged.
func MarkdownToText(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	text, err := html2text.FromString(string(render([]byte(md))), html2text.Options{
		PrettyTables: true,
		TextOnly:     true,
	})
	if err != nil {
		return md
	}
	return text
}
