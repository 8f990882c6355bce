package chooser

import (
	"context"
	"path"

	"github.com/datatug/filechooser/pkg/files"
	"golang.org/x/text/unicode/norm"
)

// Provider lists the immediate children of a directory. The returned order is kept as is.
type Provider interface {
	ListChildren(ctx context.Context, dir Directory) ([]DirectoryEntry, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, dir Directory) ([]DirectoryEntry, error)

func (f ProviderFunc) ListChildren(ctx context.Context, dir Directory) ([]DirectoryEntry, error) {
	return f(ctx, dir)
}

var _ Provider = (*StoreProvider)(nil)

// StoreProvider serves listings from a files.Store.
// Identifiers are slash-separated store paths.
type StoreProvider struct {
	store files.Store
}

func NewStoreProvider(store files.Store) *StoreProvider {
	return &StoreProvider{store: store}
}

func (p *StoreProvider) ListChildren(ctx context.Context, dir Directory) ([]DirectoryEntry, error) {
	children, err := p.store.ReadDir(ctx, dir.Identifier)
	if err != nil {
		return nil, err
	}
	entries := make([]DirectoryEntry, 0, len(children))
	for _, child := range children {
		entryType := EntryTypeFile
		if child.IsDir() {
			entryType = EntryTypeDirectory
		}
		entries = append(entries, DirectoryEntry{
			Identifier: path.Join(dir.Identifier, child.Name()),
			// macOS reports decomposed names
			Name: norm.NFC.String(child.Name()),
			Type: entryType,
		})
	}
	return entries, nil
}
