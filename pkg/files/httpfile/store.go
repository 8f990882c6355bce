package httpfile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/datatug/filechooser/pkg/files"
)

// hrefPattern matches the anchors of an autoindex page (nginx, Apache, http.FileServer).
var hrefPattern = regexp.MustCompile(`<a href="([^"]+)">`)

type StoreOption func(*HttpStore)

func NewStore(root url.URL, o ...StoreOption) *HttpStore {
	store := &HttpStore{
		Root: root,
	}
	for _, opt := range o {
		opt(store)
	}
	return store
}

func WithHttpClient(client *http.Client) StoreOption {
	return func(store *HttpStore) {
		store.client = client
	}
}

var _ files.Store = (*HttpStore)(nil)

// HttpStore browses directory index pages served over HTTP.
// Store paths are resolved below Root.Path.
type HttpStore struct {
	Root   url.URL
	client *http.Client
}

func (h HttpStore) RootURL() url.URL {
	return h.Root
}

func (h HttpStore) RootTitle() string {
	root := h.Root
	root.User = nil
	return root.String()
}

func (h HttpStore) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	u := h.Root
	u.Path = path.Join("/", h.Root.Path, name)
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	client := h.client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directory listing: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return parseIndex(string(body), u.Path), nil
}

// parseIndex extracts the children of dirPath from an index page, keeping page order.
func parseIndex(body, dirPath string) []os.DirEntry {
	var entries []os.DirEntry
	seen := make(map[string]bool)
	for _, match := range hrefPattern.FindAllStringSubmatch(body, -1) {
		href := match[1]
		if strings.ContainsAny(href, "?#") || strings.Contains(href, "://") {
			continue
		}
		if strings.HasPrefix(href, "/") {
			if !strings.HasPrefix(href, dirPath) {
				continue
			}
			href = strings.TrimPrefix(href, dirPath)
		}
		isDir := strings.HasSuffix(href, "/")
		entryName := strings.TrimSuffix(href, "/")
		if unescaped, err := url.PathUnescape(entryName); err == nil {
			entryName = unescaped
		}
		if entryName == "" || entryName == "." || entryName == ".." || strings.Contains(entryName, "/") {
			continue
		}
		if seen[entryName] {
			continue
		}
		seen[entryName] = true
		entries = append(entries, files.NewDirEntry(entryName, isDir))
	}
	return entries
}
