package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/fatvo"
	bt "github.com/fwojciec/fatvo/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestUserMessageBlock_View(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(fatvo.DefaultTheme())

	t.Run("renders prompt prefix and text", func(t *testing.T) {
		t.Parallel()
		view := bt.NewUserMessageBlock("Ro'za haqida savol", styles).View(80)
		assert.Contains(t, view, "> ")
		assert.Contains(t, view, "Ro'za haqida savol")
	})

	t.Run("wraps long text to width", func(t *testing.T) {
		t.Parallel()
		text := "Safarda bo'lgan kishi ro'zani keyinga qoldirishi mumkinmi yoki yo'qmi"
		view := bt.NewUserMessageBlock(text, styles).View(30)
		lines := strings.Split(view, "\n")
		assert.Greater(t, len(lines), 1)
		for _, line := range lines {
			assert.LessOrEqual(t, lipgloss.Width(line), 30)
		}
	})
}
