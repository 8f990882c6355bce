package chooser

import (
	"path"
	"strings"
)

// EntryType tells files from directories.
type EntryType string

const (
	EntryTypeFile      EntryType = "file"
	EntryTypeDirectory EntryType = "directory"
)

// DirectoryEntry is one child returned by a Provider. Entries are never modified after
// the provider returns them.
type DirectoryEntry struct {
	Identifier string
	Name       string
	Type       EntryType
}

func (e DirectoryEntry) IsDir() bool {
	return e.Type == EntryTypeDirectory
}

// Directory identifies the directory a Provider is asked to list.
type Directory struct {
	Identifier string
	Name       string
}

// DirectoryStatus is what the cache knows about one path.
// Contents is empty while Loading. Failed is set when the last listing returned an error.
type DirectoryStatus struct {
	Path     string
	Loading  bool
	Contents []DirectoryEntry
	Failed   bool
	Err      error
}

// PanelEntry binds a panel of the navigation stack to a path.
// Contents are never stored here: they are looked up in the cache by Path.
type PanelEntry struct {
	Path  string
	Title string
}

// PanelView is a panel together with the status it displays at the time of the read.
type PanelView struct {
	PanelEntry
	Status DirectoryStatus
}

// baseName returns the last element of p, or p itself when it has none (e.g. "/").
func baseName(p string) string {
	trimmed := strings.TrimSuffix(p, "/")
	if trimmed == "" {
		return p
	}
	name := path.Base(trimmed)
	if name == "." || name == "/" {
		return p
	}
	return name
}
