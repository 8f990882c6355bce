package files

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDirEntry(t *testing.T) {
	t.Parallel()

	t.Run("file", func(t *testing.T) {
		de := NewDirEntry("notes.txt", false)
		assert.Equal(t, "notes.txt", de.Name())
		assert.False(t, de.IsDir())
		assert.Equal(t, os.FileMode(0), de.Type())
		info, err := de.Info()
		assert.NoError(t, err)
		assert.Nil(t, info)
	})

	t.Run("directory", func(t *testing.T) {
		de := NewDirEntry("docs", true)
		assert.True(t, de.IsDir())
		assert.Equal(t, os.ModeDir, de.Type())
	})

	t.Run("name_with_path_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewDirEntry("docs/notes.txt", false)
		})
	})
}
