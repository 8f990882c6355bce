package files

import (
	"context"
	"errors"
	"net/url"
	"os"
)

// ErrNotImplemented is returned by stores for operations their backend can not serve.
var ErrNotImplemented = errors.New("not implemented")

// Store lists the immediate children of a directory.
// Names passed to ReadDir are absolute slash-separated paths within the store.
type Store interface {
	RootTitle() string
	RootURL() url.URL
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
}
