package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/fatvo"
	"github.com/fwojciec/fatvo/markdown"
)

var _ MessageBlock = (*AssistantBlock)(nil)

// AssistantBlock renders an answer as markdown, followed by the cited
// sources and the answer in the other script as a caption.
type AssistantBlock struct {
	content     string
	caption     string
	sources     []string
	showCaption bool
	theme       fatvo.Theme
	styles      Styles

	// Rendered markdown per width; answers never change once shown.
	byWidth map[int]string
}

// NewAssistantBlock creates a block for a settled answer. caption may be
// empty when the answer could not be converted.
func NewAssistantBlock(content, caption string, showCaption bool, theme fatvo.Theme, styles Styles) *AssistantBlock {
	return &AssistantBlock{
		content:     content,
		caption:     caption,
		sources:     markdown.Sources(content),
		showCaption: showCaption,
		theme:       theme,
		styles:      styles,
		byWidth:     make(map[int]string),
	}
}

func (b *AssistantBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if msg, ok := msg.(CaptionsMsg); ok {
		b.showCaption = msg.Show
	}
	return b, nil
}

func (b *AssistantBlock) View(width int) string {
	body, ok := b.byWidth[width]
	if !ok {
		body = markdown.Render(b.content, width, b.theme)
		b.byWidth[width] = body
	}

	var sb strings.Builder
	sb.WriteString(body)
	if len(b.sources) > 0 {
		sb.WriteString("\n")
		sb.WriteString(b.styles.Muted.Width(width).Render("Manbalar: " + strings.Join(b.sources, ", ")))
	}
	if b.showCaption && b.caption != "" {
		sb.WriteString("\n")
		sb.WriteString(b.styles.Caption.Width(max(width-2, 10)).MarginLeft(2).Render(markdown.StripCitations(b.caption)))
	}
	return sb.String()
}
