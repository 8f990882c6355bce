package filechooser

import (
	"github.com/rivo/tview"
)

// App is the part of *tview.Application the chooser talks to.
type App interface {
	QueueUpdateDraw(f func())
	SetFocus(p tview.Primitive)
	Stop()
}

var _ App = (*appProxy)(nil)

type appProxy struct {
	queueUpdateDraw func(f func()) *tview.Application
	setFocus        func(p tview.Primitive) *tview.Application
	stop            func()
}

// NewApp adapts app to App.
func NewApp(app *tview.Application) App {
	return appProxy{
		queueUpdateDraw: app.QueueUpdateDraw,
		setFocus:        app.SetFocus,
		stop:            app.Stop,
	}
}

func (a appProxy) QueueUpdateDraw(f func()) {
	_ = a.queueUpdateDraw(f)
}

func (a appProxy) SetFocus(p tview.Primitive) {
	_ = a.setFocus(p)
}

func (a appProxy) Stop() {
	a.stop()
}
