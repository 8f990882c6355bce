package ftpfile

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/datatug/filechooser/pkg/files"
	"github.com/jlaffaye/ftp"
)

const schema = "ftp"

const dialTimeout = 5 * time.Second

// conn is the subset of *ftp.ServerConn the store needs.
type conn interface {
	Login(user, password string) error
	List(path string) ([]*ftp.Entry, error)
	Quit() error
}

var dial = func(addr string, options ...ftp.DialOption) (conn, error) {
	return ftp.Dial(addr, options...)
}

var _ files.Store = (*Store)(nil)

// Store lists directories of an FTP server. A new connection is opened per listing.
type Store struct {
	host     string
	path     string
	user     string
	password string
	explicit bool
	implicit bool
}

func (s *Store) RootURL() url.URL {
	return url.URL{
		Scheme: schema,
		Host:   s.host,
		Path:   s.path,
	}
}

func (s *Store) RootTitle() string {
	return schema + "://" + s.host
}

func NewStore(root url.URL) *Store {
	s := &Store{
		host: root.Host,
		path: root.Path,
	}
	if root.User != nil {
		s.user = root.User.Username()
		s.password, _ = root.User.Password()
	}
	return s
}

func (s *Store) SetTLS(explicit, implicit bool) {
	s.explicit = explicit
	s.implicit = implicit
}

func (s *Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	host, port, err := net.SplitHostPort(s.host)
	if err != nil {
		host = s.host
		port = "21"
	}
	addr := net.JoinHostPort(host, port)
	options := []ftp.DialOption{
		ftp.DialWithTimeout(dialTimeout),
		ftp.DialWithContext(ctx),
	}
	if s.implicit {
		options = append(options, ftp.DialWithTLS(&tls.Config{ServerName: host}))
	}
	if s.explicit {
		options = append(options, ftp.DialWithExplicitTLS(&tls.Config{ServerName: host}))
	}

	c, err := dial(addr, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ftp server: %w", err)
	}
	defer func() {
		_ = c.Quit()
	}()

	if s.user != "" {
		if err = c.Login(s.user, s.password); err != nil {
			return nil, fmt.Errorf("failed to login to ftp server: %w", err)
		}
	}

	entries, err := c.List(path.Join("/", s.path, name))
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	result := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "." || entry.Name == ".." {
			continue
		}
		result = append(result, &ftpDirEntry{entry: entry})
	}
	return result, nil
}

type ftpDirEntry struct {
	entry *ftp.Entry
}

func (e *ftpDirEntry) Name() string {
	return e.entry.Name
}

func (e *ftpDirEntry) IsDir() bool {
	return e.entry.Type == ftp.EntryTypeFolder
}

func (e *ftpDirEntry) Type() os.FileMode {
	if e.IsDir() {
		return os.ModeDir
	}
	return 0
}

func (e *ftpDirEntry) Info() (os.FileInfo, error) {
	return &ftpFileInfo{entry: e.entry}, nil
}

type ftpFileInfo struct {
	entry *ftp.Entry
}

func (f *ftpFileInfo) Name() string       { return f.entry.Name }
func (f *ftpFileInfo) Size() int64        { return int64(f.entry.Size) }
func (f *ftpFileInfo) Mode() os.FileMode  { return (&ftpDirEntry{entry: f.entry}).Type() }
func (f *ftpFileInfo) ModTime() time.Time { return f.entry.Time }
func (f *ftpFileInfo) IsDir() bool        { return f.entry.Type == ftp.EntryTypeFolder }
func (f *ftpFileInfo) Sys() any           { return f.entry }
