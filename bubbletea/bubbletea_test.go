package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/fatvo"
	bt "github.com/fwojciec/fatvo/bubbletea"
	"github.com/fwojciec/fatvo/mock"
	"github.com/fwojciec/fatvo/session"
	"github.com/stretchr/testify/require"
)

// newSession returns a session whose remote thread is "thread_abc".
func newSession() *session.Manager {
	return session.NewManager("s1", &mock.Gateway{
		CreateThreadFn: func(context.Context) (string, error) { return "thread_abc", nil },
	})
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, turn bt.TurnFunc) bt.Model {
	t.Helper()
	return initModelWith(t, turn, newSession(), 80, 24)
}

// initModelWith creates a model for s with a custom terminal size.
func initModelWith(t *testing.T, turn bt.TurnFunc, s *session.Manager, width, height int) bt.Model {
	t.Helper()
	m := bt.New(turn, s, fatvo.DefaultTheme())
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// nopTurn is a turn that reports nothing.
func nopTurn(context.Context, string, fatvo.Presenter) error {
	return nil
}
