package bubbletea_test

import (
	"testing"

	"github.com/fwojciec/fatvo"
	bt "github.com/fwojciec/fatvo/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestAssistantBlock_View(t *testing.T) {
	t.Parallel()

	theme := fatvo.DefaultTheme()
	styles := bt.NewStyles(theme)

	t.Run("renders answer and caption", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantBlock("Vaalaykum assalom", "Ваалайкум ассалом", true, theme, styles)
		view := block.View(80)
		assert.Contains(t, view, "Vaalaykum assalom")
		assert.Contains(t, view, "Ваалайкум ассалом")
	})

	t.Run("caption hidden when disabled", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantBlock("Vaalaykum assalom", "Ваалайкум ассалом", false, theme, styles)
		assert.NotContains(t, block.View(80), "Ваалайкум")
	})

	t.Run("captions message toggles caption", func(t *testing.T) {
		t.Parallel()
		var block bt.MessageBlock = bt.NewAssistantBlock("Ha", "Ҳа", true, theme, styles)
		block, cmd := block.Update(bt.CaptionsMsg{Show: false})
		assert.Nil(t, cmd)
		assert.NotContains(t, block.View(80), "Ҳа")
		block, _ = block.Update(bt.CaptionsMsg{Show: true})
		assert.Contains(t, block.View(80), "Ҳа")
	})

	t.Run("no caption when conversion failed", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantBlock("Ҳа, жоиз", "", true, theme, styles)
		assert.Contains(t, block.View(80), "Ҳа, жоиз")
	})

	t.Run("lists cited sources once", func(t *testing.T) {
		t.Parallel()
		content := "Joiz【4:0†fatvolar.pdf】, lekin makruh【4:1†fatvolar.pdf】."
		caption := "Жоиз【4:0†fatvolar.pdf】, лекин макруҳ【4:1†fatvolar.pdf】."
		view := bt.NewAssistantBlock(content, caption, true, theme, styles).View(80)
		assert.Contains(t, view, "Manbalar: fatvolar.pdf")
		assert.Contains(t, view, "Жоиз, лекин макруҳ.")
	})

	t.Run("renders markdown", func(t *testing.T) {
		t.Parallel()
		view := bt.NewAssistantBlock("- bomdod\n- peshin", "", true, theme, styles).View(80)
		assert.Contains(t, view, "• bomdod")
		assert.Contains(t, view, "• peshin")
	})

	t.Run("rerenders at new width", func(t *testing.T) {
		t.Parallel()
		block := bt.NewAssistantBlock("bir ikki uch to'rt besh olti yetti sakkiz", "", true, theme, styles)
		narrow := block.View(12)
		wide := block.View(80)
		assert.NotEqual(t, narrow, wide)
		assert.Contains(t, wide, "bir ikki uch to'rt besh olti yetti sakkiz")
	})
}
