package fatvo

// Presenter renders a conversation. The core calls it; it never owns
// rendering. Implementations must be safe to call from the goroutine that
// runs a turn.
type Presenter interface {
	RenderMessage(role Role, content, caption string)
	ShowNotice(text string)
	ShowError(text string)
}

// Event is a sealed interface representing one presenter call, for
// presenters that forward calls across goroutines.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventMessage carries a rendered conversation message.
type EventMessage struct {
	Role    Role
	Content string
	Caption string
}

func (EventMessage) event() {}

// EventNotice carries a transient informational notice.
type EventNotice struct {
	Text string
}

func (EventNotice) event() {}

// EventError carries a diagnostic to display.
type EventError struct {
	Text string
}

func (EventError) event() {}

// Interface compliance checks.
var (
	_ Event = EventMessage{}
	_ Event = EventNotice{}
	_ Event = EventError{}

	_ Presenter = EventFunc(nil)
)

// EventFunc adapts a callback receiving Events into a Presenter.
type EventFunc func(Event)

// RenderMessage emits EventMessage.
func (f EventFunc) RenderMessage(role Role, content, caption string) {
	f(EventMessage{Role: role, Content: content, Caption: caption})
}

// ShowNotice emits EventNotice.
func (f EventFunc) ShowNotice(text string) {
	f(EventNotice{Text: text})
}

// ShowError emits EventError.
func (f EventFunc) ShowError(text string) {
	f(EventError{Text: text})
}
