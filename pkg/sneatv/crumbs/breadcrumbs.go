package crumbs

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const defaultSeparator = " > "
const ellipsis = "…"

type span struct {
	start, end int // screen columns, end exclusive
	index      int
}

// Breadcrumbs draws a one-line trail of breadcrumbs. When the trail is wider than
// the box the leading items are elided so the last one stays visible.
type Breadcrumbs struct {
	*tview.Box
	items             []Breadcrumb
	separator         string
	selectedItemIndex int
	onError           func(err error)
	spans             []span
}

func NewBreadcrumbs(home Breadcrumb, o ...Option) *Breadcrumbs {
	bc := &Breadcrumbs{
		Box:       tview.NewBox(),
		separator: defaultSeparator,
	}
	if home != nil {
		bc.items = append(bc.items, home)
	}
	for _, opt := range o {
		opt(bc)
	}
	return bc
}

func (b *Breadcrumbs) Push(item Breadcrumb) {
	b.items = append(b.items, item)
	b.selectedItemIndex = len(b.items) - 1
}

// Clear removes every item, the home one included.
func (b *Breadcrumbs) Clear() {
	b.items = nil
	b.spans = nil
	b.selectedItemIndex = 0
}

func (b *Breadcrumbs) Len() int {
	return len(b.items)
}

func (b *Breadcrumbs) Titles() []string {
	titles := make([]string, len(b.items))
	for i, item := range b.items {
		titles[i] = item.GetTitle()
	}
	return titles
}

// GoHome runs the action of the first item.
func (b *Breadcrumbs) GoHome() error {
	if len(b.items) == 0 {
		return nil
	}
	return b.items[0].Action()
}

func (b *Breadcrumbs) activate(i int) {
	if i < 0 || i >= len(b.items) {
		return
	}
	b.selectedItemIndex = i
	if err := b.items[i].Action(); err != nil && b.onError != nil {
		b.onError(err)
	}
}

func (b *Breadcrumbs) Draw(screen tcell.Screen) {
	b.Box.DrawForSubclass(screen, b)
	x, y, width, height := b.GetInnerRect()
	b.spans = b.spans[:0]
	if width <= 0 || height <= 0 || len(b.items) == 0 {
		return
	}

	sepWidth := tview.TaggedStringWidth(tview.Escape(b.separator))
	widths := make([]int, len(b.items))
	total := 0
	for i, item := range b.items {
		widths[i] = tview.TaggedStringWidth(tview.Escape(item.GetTitle()))
		total += widths[i]
		if i > 0 {
			total += sepWidth
		}
	}

	first := 0
	prefix := ""
	prefixWidth := tview.TaggedStringWidth(tview.Escape(ellipsis + b.separator))
	for first < len(b.items)-1 && total > width {
		total -= widths[first] + sepWidth
		if first == 0 {
			total += prefixWidth
		}
		first++
		prefix = ellipsis + b.separator
	}

	col := x
	if prefix != "" {
		_, w := tview.Print(screen, tview.Escape(prefix), col, y, width, tview.AlignLeft, tcell.ColorGray)
		col += w
	}
	focused := b.HasFocus()
	for i := first; i < len(b.items); i++ {
		if i > first {
			_, w := tview.Print(screen, tview.Escape(b.separator), col, y, x+width-col, tview.AlignLeft, tcell.ColorGray)
			col += w
		}
		if col >= x+width {
			break
		}
		item := b.items[i]
		color := item.GetColor()
		if color == tcell.ColorDefault {
			color = tview.Styles.PrimaryTextColor
		}
		if focused && i == b.selectedItemIndex {
			color = tcell.ColorYellow
		}
		_, w := tview.Print(screen, tview.Escape(item.GetTitle()), col, y, x+width-col, tview.AlignLeft, color)
		b.spans = append(b.spans, span{start: col, end: col + w, index: i})
		col += w
	}
}

func (b *Breadcrumbs) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return b.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyLeft:
			if b.selectedItemIndex > 0 {
				b.selectedItemIndex--
			}
		case tcell.KeyRight:
			if b.selectedItemIndex < len(b.items)-1 {
				b.selectedItemIndex++
			}
		case tcell.KeyEnter:
			b.activate(b.selectedItemIndex)
		}
	})
}

func (b *Breadcrumbs) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return b.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		if action != tview.MouseLeftClick {
			return false, nil
		}
		x, y := event.Position()
		if !b.InRect(x, y) {
			return false, nil
		}
		for _, s := range b.spans {
			if x >= s.start && x < s.end {
				b.activate(s.index)
				return true, nil
			}
		}
		return false, nil
	})
}
