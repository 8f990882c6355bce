package filechooser

import (
	"sync/atomic"

	"github.com/datatug/filechooser/pkg/chooser"
	"github.com/datatug/filechooser/pkg/sneatv"
	"github.com/datatug/filechooser/pkg/sneatv/crumbs"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const hintsText = "[yellow]Enter[-] open/select  [yellow]Backspace[-] back  [yellow]Home[-] root  [yellow]Esc[-] back/cancel  [yellow]q[-] quit"

type viewOptions struct {
	storeTitle string
	controller []chooser.Option
}

type Option func(o *viewOptions)

// WithStoreTitle shows title above the breadcrumbs.
func WithStoreTitle(title string) Option {
	return func(o *viewOptions) {
		o.storeTitle = title
	}
}

// WithControllerOptions passes options to the underlying chooser.Controller.
func WithControllerOptions(opts ...chooser.Option) Option {
	return func(o *viewOptions) {
		o.controller = append(o.controller, opts...)
	}
}

// View shows the top panel of a chooser.Controller with a breadcrumb trail of the
// whole navigation stack. Everything it shows is read from the controller on Refresh.
type View struct {
	*tview.Flex
	app           App
	controller    *chooser.Controller
	header        *tview.TextView
	crumbs        *crumbs.Breadcrumbs
	table         *tview.Table
	panel         *sneatv.Boxed
	footer        *tview.TextView
	rows          *panelRows
	selected      map[string]int // last selected row per path
	stopped       atomic.Bool
	refreshQueued atomic.Bool
}

// New creates a view and the controller it drives. onSelect is called once,
// after the view stopped listening for directory changes.
func New(app App, provider chooser.Provider, onSelect chooser.SelectFunc, o ...Option) *View {
	var opts viewOptions
	for _, opt := range o {
		opt(&opts)
	}
	v := &View{
		app:      app,
		header:   tview.NewTextView().SetDynamicColors(true),
		table:    tview.NewTable(),
		footer:   tview.NewTextView().SetDynamicColors(true),
		selected: make(map[string]int),
	}
	v.header.SetText(tview.Escape(opts.storeTitle))
	v.crumbs = crumbs.NewBreadcrumbs(nil)
	v.table.SetSelectable(false, false)
	v.table.SetInputCapture(v.inputCapture)
	v.panel = sneatv.NewBoxed(v.table, sneatv.WithSideBorders(1), sneatv.WithFooter(v.footer))

	hints := tview.NewTextView().SetDynamicColors(true).SetText(hintsText)

	v.Flex = tview.NewFlex().SetDirection(tview.FlexRow)
	if opts.storeTitle != "" {
		v.AddItem(v.header, 1, 0, false)
	}
	v.AddItem(v.crumbs, 1, 0, false)
	v.AddItem(v.panel, 0, 1, true)
	v.AddItem(hints, 1, 0, false)

	controllerOptions := append([]chooser.Option{chooser.WithOnChange(v.onDirectoryChange)}, opts.controller...)
	v.controller = chooser.New(provider, func(path string, ok bool) {
		v.stopped.Store(true)
		if onSelect != nil {
			onSelect(path, ok)
		}
	}, controllerOptions...)
	return v
}

func (v *View) Controller() *chooser.Controller {
	return v.controller
}

// Open starts browsing at rootPath and focuses the panel.
func (v *View) Open(rootPath string) {
	v.controller.Open(rootPath)
	v.Refresh()
	v.app.SetFocus(v.table)
}

// Close stops listening for changes and cancels outstanding listings.
func (v *View) Close() {
	v.stopped.Store(true)
	v.controller.Close()
}

// onDirectoryChange runs on fetch goroutines. At most one refresh is queued at a
// time: Refresh reads the latest state, so changes arriving while one is pending
// are covered by it. Queueing happens on its own goroutine because
// QueueUpdateDraw blocks when the update queue is full, and Close waits for
// fetch goroutines.
func (v *View) onDirectoryChange(string) {
	if v.stopped.Load() || !v.refreshQueued.CompareAndSwap(false, true) {
		return
	}
	go v.app.QueueUpdateDraw(v.queuedRefresh)
}

func (v *View) queuedRefresh() {
	v.refreshQueued.Store(false)
	v.Refresh()
}

// Refresh redraws the breadcrumbs and the top panel from the controller.
// It must run on the UI goroutine.
func (v *View) Refresh() {
	views := v.controller.View()
	if len(views) == 0 {
		return
	}

	v.crumbs.Clear()
	for i, panel := range views {
		depth := i + 1
		v.crumbs.Push(crumbs.NewBreadcrumb(panel.Title, func() error {
			v.closeTo(depth)
			return nil
		}))
	}

	top := views[len(views)-1]
	samePath := v.rows != nil && v.rows.Path() == top.Path
	if v.rows != nil && !samePath && v.rows.HasEntries() {
		row, _ := v.table.GetSelection()
		v.selected[v.rows.Path()] = row
	}
	row := v.selected[top.Path]
	if samePath {
		row, _ = v.table.GetSelection()
	}

	v.rows = newPanelRows(top)
	v.table.SetContent(v.rows)
	v.table.SetTitle(tview.Escape(top.Title))
	v.footer.SetText(footerText(top.Status))
	if !v.rows.HasEntries() {
		v.table.SetSelectable(false, false)
		v.table.Select(0, 0)
		return
	}
	v.table.SetSelectable(true, false)
	v.table.Select(min(max(row, 0), v.rows.GetRowCount()-1), 0)
}

// closeTo closes panels until depth panels are left.
func (v *View) closeTo(depth int) {
	for len(v.controller.Panels()) > depth {
		if !v.controller.CloseTop() {
			break
		}
	}
	v.Refresh()
}

func (v *View) activateSelected() {
	if v.rows == nil {
		return
	}
	row, _ := v.table.GetSelection()
	entry, ok := v.rows.Entry(row)
	if !ok {
		return
	}
	v.controller.Activate(entry)
	v.Refresh()
}

func (v *View) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEnter:
		v.activateSelected()
		return nil
	case tcell.KeyRight:
		if entry, ok := v.selectedEntry(); ok && entry.IsDir() {
			v.activateSelected()
		}
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyLeft:
		if v.controller.CloseTop() {
			v.Refresh()
		}
		return nil
	case tcell.KeyHome:
		if err := v.crumbs.GoHome(); err != nil {
			return event
		}
		return nil
	case tcell.KeyEscape:
		if v.controller.CloseTop() {
			v.Refresh()
		} else {
			v.controller.Cancel()
		}
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			v.controller.Cancel()
			return nil
		}
		return event
	default:
		return event
	}
}

func (v *View) selectedEntry() (chooser.DirectoryEntry, bool) {
	if v.rows == nil {
		return chooser.DirectoryEntry{}, false
	}
	row, _ := v.table.GetSelection()
	return v.rows.Entry(row)
}
