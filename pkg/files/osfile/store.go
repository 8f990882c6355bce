package osfile

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/datatug/filechooser/pkg/files"
	"github.com/datatug/filechooser/pkg/fsutils"
)

var osReadDir = os.ReadDir
var osHostname = os.Hostname

var _ files.Store = (*Store)(nil)

// Store exposes a local directory tree. Store paths are slash-separated and
// resolved relative to root, so "/" is the root directory itself.
type Store struct {
	title string
	root  string
}

func (s Store) RootURL() url.URL {
	return url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(s.root),
	}
}

func (s Store) RootTitle() string {
	return strings.TrimSuffix(s.title, ".station")
}

// OSPath maps a store path to the local filesystem path.
func (s Store) OSPath(name string) string {
	clean := path.Clean("/" + name)
	return filepath.Join(s.root, filepath.FromSlash(clean))
}

func (s Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := osReadDir(s.OSPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", name, err)
	}
	return entries, nil
}

func NewStore(root string) *Store {
	if root == "" {
		_, _ = fmt.Fprintf(os.Stderr, "osfile store root is empty, defaulting to /\n")
		root = "/"
	}
	store := Store{root: fsutils.ExpandHome(root)}
	var err error
	if store.title, err = osHostname(); err != nil {
		store.title = err.Error()
	}
	return &store
}
