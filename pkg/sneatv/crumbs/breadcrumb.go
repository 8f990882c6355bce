package crumbs

import "github.com/gdamore/tcell/v2"

// Breadcrumb is one element of a breadcrumb trail.
type Breadcrumb interface {
	GetTitle() string
	GetColor() tcell.Color
	Action() error
}

type BreadcrumbOption func(b *breadcrumb)

func WithColor(color tcell.Color) BreadcrumbOption {
	return func(b *breadcrumb) {
		b.color = color
	}
}

type breadcrumb struct {
	title  string
	color  tcell.Color
	action func() error
}

func (b *breadcrumb) GetTitle() string      { return b.title }
func (b *breadcrumb) GetColor() tcell.Color { return b.color }

func (b *breadcrumb) Action() error {
	if b.action == nil {
		return nil
	}
	return b.action()
}

func NewBreadcrumb(title string, action func() error, o ...BreadcrumbOption) Breadcrumb {
	b := &breadcrumb{title: title, action: action}
	for _, opt := range o {
		opt(b)
	}
	return b
}
