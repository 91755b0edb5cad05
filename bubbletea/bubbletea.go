// Package bubbletea provides the terminal presenter for fatvo, built on
// Bubble Tea.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/fatvo"
)

// TurnFunc runs one conversation turn for input, reporting through p. It
// blocks until the turn settles or ctx is cancelled.
type TurnFunc func(ctx context.Context, input string, p fatvo.Presenter) error

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. Cancelling ctx quits the program.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// PresenterEventMsg delivers one presenter call to the model.
type PresenterEventMsg struct {
	Event fatvo.Event
}

// TurnDoneMsg signals that a turn has returned.
type TurnDoneMsg struct {
	Err error
}
