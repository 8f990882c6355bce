package files

import (
	"os"
	"path/filepath"
)

var _ os.DirEntry = (*DirEntry)(nil)

// DirEntry is a minimal os.DirEntry for stores that only know a name and a kind.
type DirEntry struct {
	name  string
	isDir bool
}

func NewDirEntry(name string, isDir bool) DirEntry {
	if parent, _ := filepath.Split(name); parent != "" {
		// It's OK to have panic here.
		panic("dir entry name can not have path: " + name)
	}
	return DirEntry{
		name:  name,
		isDir: isDir,
	}
}

func (d DirEntry) Name() string { return d.name }
func (d DirEntry) IsDir() bool  { return d.isDir }
func (d DirEntry) Type() os.FileMode {
	if d.isDir {
		return os.ModeDir
	}
	return 0
}

// Info is not known for bare entries.
func (d DirEntry) Info() (os.FileInfo, error) {
	return nil, nil
}
