package sneatv

import (
	"strings"
	"testing"

	"github.com/datatug/filechooser/pkg/sneatv/ttestutils"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
)

func TestBoxed_Draw(t *testing.T) {
	t.Run("blurred_title_and_borders", func(t *testing.T) {
		screen := ttestutils.NewSimScreen(t, 30, 5)
		inner := tview.NewBox().SetTitle("docs")
		boxed := NewBoxed(inner, WithSideBorders(1))
		boxed.SetRect(0, 0, 30, 5)

		boxed.Draw(screen)

		top := ttestutils.ReadLine(screen, 0, 30)
		assert.Contains(t, top, "┤docs├")
		assert.True(t, strings.HasPrefix(top, "┌"))
		assert.True(t, strings.HasSuffix(top, "┐"))
		assert.True(t, strings.HasPrefix(ttestutils.ReadLine(screen, 2, 30), "│"))
		assert.True(t, strings.HasPrefix(ttestutils.ReadLine(screen, 4, 30), "└"))
	})

	t.Run("focused_uses_double_lines", func(t *testing.T) {
		screen := ttestutils.NewSimScreen(t, 30, 5)
		inner := tview.NewBox().SetTitle("docs")
		boxed := NewBoxed(inner, WithSideBorders(0))
		boxed.SetRect(0, 0, 30, 5)
		boxed.Focus(func(p tview.Primitive) {})

		boxed.Draw(screen)

		top := ttestutils.ReadLine(screen, 0, 30)
		assert.Contains(t, top, "╡docs╞")
		assert.True(t, strings.HasPrefix(top, "╒"))
	})

	t.Run("footer", func(t *testing.T) {
		screen := ttestutils.NewSimScreen(t, 30, 5)
		footer := tview.NewTextView().SetText("3 items")
		boxed := NewBoxed(tview.NewBox(), WithFooter(footer))
		boxed.SetRect(0, 0, 30, 5)

		boxed.Draw(screen)

		assert.Contains(t, ttestutils.ReadLine(screen, 4, 30), "┤3 items├")
	})

	t.Run("label_wider_than_box", func(t *testing.T) {
		screen := ttestutils.NewSimScreen(t, 6, 3)
		inner := tview.NewBox().SetTitle("a-very-long-title")
		boxed := NewBoxed(inner)
		boxed.SetRect(0, 0, 6, 3)

		assert.NotPanics(t, func() { boxed.Draw(screen) })
	})
}
