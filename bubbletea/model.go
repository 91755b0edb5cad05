package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/fatvo"
	"github.com/fwojciec/fatvo/session"
	"github.com/mattn/go-runewidth"
)

const (
	noticeReset = "Suhbat tozalandi. Keyingi savol yangi suhbatni boshlaydi."
	helpLine    = "Enter yuborish · Ctrl+R yangi suhbat · Ctrl+T kirill izoh · Ctrl+C chiqish"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the fatvo TUI. It presents one session.
type Model struct {
	// Input is the question input. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable conversation area. Exported for test access.
	Viewport viewport.Model
	// Spinner is shown in the status line while a turn runs.
	Spinner spinner.Model

	turn    TurnFunc
	session *session.Manager
	theme   fatvo.Theme
	styles  Styles

	blocks   []MessageBlock
	captions bool

	running     bool
	interrupted bool
	cancel      context.CancelFunc
	eventCh     chan fatvo.Event
	doneCh      chan error
	err         error
	ready       bool
}

// New creates a TUI Model that runs turn for questions typed into s.
func New(turn TurnFunc, s *session.Manager, theme fatvo.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Savolingizni lotin yozuvida yozing..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = fatvo.MaxInputRunes

	styles := NewStyles(theme)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Accent))

	return Model{
		Input:    ti,
		Spinner:  sp,
		turn:     turn,
		session:  s,
		theme:    theme,
		styles:   styles,
		captions: true,
	}
}

// Running returns whether a turn is in flight.
func (m Model) Running() bool { return m.running }

// Err returns the error of the last turn, if any.
func (m Model) Err() error { return m.err }

// Captions reports whether alternate-script captions are visible.
func (m Model) Captions() bool { return m.captions }

// SetRunning is a test helper that puts the model in a running state.
func SetRunning(m Model) (Model, tea.Cmd) {
	m.running = true
	return m, nil
}

// SetRunningWithCancel is a test helper that puts the model in a running
// state with a cancel function.
func SetRunningWithCancel(m Model, cancel func()) (Model, tea.Cmd) {
	m.running = true
	m.cancel = cancel
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case PresenterEventMsg:
		m = m.processEvent(msg.Event)
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
		if m.eventCh != nil {
			return m, listenForEvent(m.eventCh, m.doneCh)
		}
		return m, nil

	case TurnDoneMsg:
		if m.interrupted {
			// Events emitted after cancellation may have been dropped; the
			// session still holds the full record.
			m = m.renderSession()
			m.Viewport.SetContent(m.renderContent())
			m.Viewport.GotoBottom()
		}
		m.running = false
		m.interrupted = false
		m.cancel = nil
		m.eventCh = nil
		m.doneCh = nil
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		cmds = append(cmds, m.Input.Focus())
		return m, tea.Batch(cmds...)
	}

	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Yuklanmoqda..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := max(msg.Height-inputH-statusHeight-borderHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderSession()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			m.interrupted = true
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submitInput(text)

	case tea.KeyCtrlR:
		if m.running {
			return m, nil
		}
		m.session.Reset()
		m.err = nil
		m.blocks = []MessageBlock{NewNoticeBlock(noticeReset, m.styles)}
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoTop()
		return m, nil

	case tea.KeyCtrlT:
		m.captions = !m.captions
		var cmds []tea.Cmd
		for i, block := range m.blocks {
			var cmd tea.Cmd
			m.blocks[i], cmd = block.Update(CaptionsMsg{Show: m.captions})
			cmds = append(cmds, cmd)
		}
		m.Viewport.SetContent(m.renderContent())
		return m, tea.Batch(cmds...)
	}

	// Only non-character keys scroll, so typing 'j' or 'k' stays in the input.
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) submitInput(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.eventCh = make(chan fatvo.Event, 16)
	m.doneCh = make(chan error, 1)
	m.running = true

	m.Input.Blur()

	return m, tea.Batch(
		startTurn(m.turn, ctx, text, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
		m.Spinner.Tick,
	)
}

// renderSession rebuilds blocks from the session history.
func (m Model) renderSession() Model {
	m.blocks = nil
	for _, msg := range m.session.Snapshot().Messages {
		switch {
		case msg.Role == fatvo.RoleUser:
			m.blocks = append(m.blocks, NewUserMessageBlock(msg.Content, m.styles))
		case msg.Diagnostic():
			m.blocks = append(m.blocks, NewErrorBlock(msg.Content, m.styles))
		default:
			var caption string
			if msg.HasAlternate() {
				caption = msg.Alternate
			}
			m.blocks = append(m.blocks, NewAssistantBlock(msg.Content, caption, m.captions, m.theme, m.styles))
		}
	}
	return m
}

func (m Model) renderContent() string {
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString(blockSeparator(m.blocks[i-1], block))
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

// processEvent turns one presenter call into a block.
func (m Model) processEvent(evt fatvo.Event) Model {
	switch e := evt.(type) {
	case fatvo.EventMessage:
		if e.Role == fatvo.RoleUser {
			m.blocks = append(m.blocks, NewUserMessageBlock(e.Content, m.styles))
			return m
		}
		m.blocks = append(m.blocks, NewAssistantBlock(e.Content, e.Caption, m.captions, m.theme, m.styles))
	case fatvo.EventNotice:
		m.blocks = append(m.blocks, NewNoticeBlock(e.Text, m.styles))
	case fatvo.EventError:
		m.blocks = append(m.blocks, NewErrorBlock(e.Text, m.styles))
	}
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(m.truncate(fmt.Sprintf("Xato: %v", m.err)))
	}
	if m.running {
		return m.Spinner.View() + " " + m.styles.Muted.Render("Javob kutilmoqda...")
	}
	thread := m.session.ThreadID()
	if thread == "" {
		thread = "yangi"
	}
	info := fmt.Sprintf("suhbat: %s · %d xabar · %s", thread, m.session.Len(), helpLine)
	return m.styles.Muted.Render(m.truncate(info))
}

func (m Model) truncate(s string) string {
	if m.Viewport.Width <= 0 {
		return s
	}
	return runewidth.Truncate(s, m.Viewport.Width, "…")
}

// startTurn runs the turn in a goroutine and signals completion.
func startTurn(turn TurnFunc, ctx context.Context, text string, eventCh chan<- fatvo.Event, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := turn(ctx, text, fatvo.EventFunc(func(e fatvo.Event) {
			select {
			case eventCh <- e:
			case <-ctx.Done():
			}
		}))
		close(eventCh)
		doneCh <- err
		return nil
	}
}

// listenForEvent waits for the next event from the channel. When the
// channel closes it reads the turn's error and returns TurnDoneMsg.
func listenForEvent(ch <-chan fatvo.Event, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return TurnDoneMsg{Err: <-doneCh}
		}
		return PresenterEventMsg{Event: evt}
	}
}
