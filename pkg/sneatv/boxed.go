package sneatv

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	focusedStyle = tcell.StyleDefault.Foreground(tcell.ColorCornflowerBlue).Background(tcell.ColorBlack)
	blurredStyle = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
)

// BoxedContent is a primitive that can be framed by Boxed.
type BoxedContent interface {
	tview.Primitive
	GetTitle() string
	SetBorderPadding(top, bottom, left, right int) *tview.Box
}

// Boxed draws a frame around its content: the content title in the top line and
// an optional footer in the bottom one. A focused frame uses double lines.
type Boxed struct {
	BoxedContent
	options boxOptions
}

type boxOptions struct {
	sideBorders bool
	padding     int
	footer      tview.Primitive
}

type BoxOption func(*boxOptions)

// WithSideBorders draws vertical borders and pads the content horizontally.
func WithSideBorders(padding int) BoxOption {
	return func(opts *boxOptions) {
		opts.sideBorders = true
		opts.padding = padding
	}
}

func WithFooter(footer tview.Primitive) BoxOption {
	return func(opts *boxOptions) {
		opts.footer = footer
	}
}

func NewBoxed(inner BoxedContent, o ...BoxOption) *Boxed {
	b := &Boxed{
		BoxedContent: inner,
	}
	for _, option := range o {
		option(&b.options)
	}
	inner.SetBorderPadding(1, 1, b.options.padding, b.options.padding)
	return b
}

func (b *Boxed) Draw(screen tcell.Screen) {
	b.BoxedContent.Draw(screen)
	b.drawFrame(screen)
}

func (b *Boxed) drawFrame(screen tcell.Screen) {
	x, y, width, height := b.GetRect()
	if width <= 0 || height <= 0 {
		return
	}
	style, line := blurredStyle, '─'
	hasFocus := b.HasFocus()
	if hasFocus {
		style, line = focusedStyle, '═'
	}

	// framedLine draws a horizontal border with label centred in it.
	framedLine := func(row int, labelWidth int, drawLabel func(x, width int)) {
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, row, line, nil, style)
		}
		if labelWidth <= 0 || drawLabel == nil {
			return
		}
		if labelWidth > width-2 {
			labelWidth = width - 2
		}
		if labelWidth <= 0 {
			return
		}
		start := x + (width-labelWidth)/2
		left, right := '┤', '├'
		if hasFocus {
			left, right = '╡', '╞'
		}
		screen.SetContent(start-1, row, left, nil, style)
		drawLabel(start, labelWidth)
		screen.SetContent(start+labelWidth, row, right, nil, style)
	}

	title := b.GetTitle()
	framedLine(y, tview.TaggedStringWidth(title), func(x, width int) {
		tview.Print(screen, title, x, y, width, tview.AlignLeft, tcell.ColorGhostWhite)
	})

	if footer := b.options.footer; footer != nil {
		framedLine(y+height-1, primitiveWidth(footer), func(x, width int) {
			footer.SetRect(x, y+height-1, width, 1)
			footer.Draw(screen)
		})
	} else {
		framedLine(y+height-1, 0, nil)
	}

	if !b.options.sideBorders || height < 2 {
		return
	}
	side := func(col int, top, bottom rune) {
		screen.SetContent(col, y, top, nil, style)
		for i := 1; i < height-1; i++ {
			screen.SetContent(col, y+i, '│', nil, style)
		}
		screen.SetContent(col, y+height-1, bottom, nil, style)
	}
	if hasFocus {
		side(x, '╒', '╘')
		side(x+width-1, '╕', '╛')
	} else {
		side(x, '┌', '└')
		side(x+width-1, '┐', '┘')
	}
}

func primitiveWidth(p tview.Primitive) int {
	switch p := p.(type) {
	case *tview.TextView:
		text := p.GetText(false)
		if newline := strings.IndexByte(text, '\n'); newline >= 0 {
			text = text[:newline]
		}
		return tview.TaggedStringWidth(text)
	default:
		_, _, width, _ := p.GetRect()
		return max(width, 0)
	}
}
