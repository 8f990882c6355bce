package filechooser

import (
	"context"
	"fmt"
	"net/url"

	"github.com/datatug/filechooser/pkg/files"
	"github.com/datatug/filechooser/pkg/files/ftpfile"
	"github.com/datatug/filechooser/pkg/files/httpfile"
	"github.com/datatug/filechooser/pkg/files/osfile"
	"github.com/datatug/filechooser/pkg/files/s3file"
	"github.com/datatug/filechooser/pkg/fsutils"
	"github.com/datatug/filechooser/pkg/settings"
)

var newS3Store = s3file.NewStore

// NewStore creates the store addressed by s.Store.
func NewStore(ctx context.Context, s settings.Settings) (files.Store, error) {
	root, err := url.Parse(s.Store)
	if err != nil {
		return nil, fmt.Errorf("invalid store URL %q: %w", s.Store, err)
	}
	switch root.Scheme {
	case "", "file":
		dir := root.Path
		if root.Opaque != "" {
			dir = root.Opaque
		}
		if dir == "" {
			dir = "/"
		}
		exists, err := fsutils.DirExists(fsutils.ExpandHome(dir))
		if err != nil {
			return nil, fmt.Errorf("failed to check store root %q: %w", dir, err)
		}
		if !exists {
			return nil, fmt.Errorf("store root %q is not a directory", dir)
		}
		return osfile.NewStore(dir), nil
	case "http", "https":
		return httpfile.NewStore(*root), nil
	case "ftp", "ftps":
		store := ftpfile.NewStore(*root)
		if root.Scheme == "ftps" {
			store.SetTLS(true, false)
		}
		return store, nil
	case "s3":
		store, err := newS3Store(ctx, s3file.Config{
			Endpoint:  s.S3.Endpoint,
			Bucket:    root.Host,
			Prefix:    root.Path,
			Region:    s.S3.Region,
			AccessKey: s.S3.AccessKey,
			SecretKey: s.S3.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported store scheme %q: %w", root.Scheme, files.ErrNotImplemented)
	}
}
