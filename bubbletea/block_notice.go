package bubbletea

import tea "github.com/charmbracelet/bubbletea"

var _ MessageBlock = (*NoticeBlock)(nil)

// NoticeBlock renders a transient informational notice. Notices are not
// part of the session history.
type NoticeBlock struct {
	text   string
	styles Styles
}

// NewNoticeBlock creates a NoticeBlock.
func NewNoticeBlock(text string, styles Styles) *NoticeBlock {
	return &NoticeBlock{text: text, styles: styles}
}

func (b *NoticeBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *NoticeBlock) View(width int) string {
	return b.styles.Notice.Width(width).Render("· " + b.text)
}
