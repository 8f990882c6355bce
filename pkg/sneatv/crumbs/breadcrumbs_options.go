package crumbs

type Option func(bc *Breadcrumbs)

func WithSeparator(separator string) Option {
	return func(bc *Breadcrumbs) {
		bc.separator = separator
	}
}

// WithOnError sets the handler for errors returned by breadcrumb actions.
func WithOnError(f func(err error)) Option {
	return func(bc *Breadcrumbs) {
		bc.onError = f
	}
}
