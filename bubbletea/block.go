package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// MessageBlock is a renderable element in the conversation.
// View takes a width so the root model controls layout and blocks are
// testable in isolation.
type MessageBlock interface {
	Update(tea.Msg) (MessageBlock, tea.Cmd)
	View(width int) string
}

// CaptionsMsg tells blocks whether alternate-script captions are visible.
type CaptionsMsg struct {
	Show bool
}

// blockSeparator returns the gap placed before curr. A notice stays attached
// to the question it describes.
func blockSeparator(prev, curr MessageBlock) string {
	if _, ok := curr.(*NoticeBlock); ok {
		if _, ok := prev.(*UserMessageBlock); ok {
			return "\n"
		}
	}
	return "\n\n"
}
