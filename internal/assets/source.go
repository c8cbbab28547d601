package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Source reads asset bytes for a URL-style path such as "/models/room.glb?v=13".
type Source interface {
	Open(ctx context.Context, assetPath string) ([]byte, error)
	String() string
}

// NewSource returns an HTTPSource for http(s) base URLs and a DirSource otherwise.
func NewSource(base string, timeout time.Duration) Source {
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return NewHTTPSource(base, timeout)
	}
	return &DirSource{Root: base}
}

// stripQuery removes cache-busting query strings and fragments.
func stripQuery(assetPath string) string {
	if i := strings.IndexAny(assetPath, "?#"); i >= 0 {
		return assetPath[:i]
	}
	return assetPath
}

// DirSource serves assets from a directory tree. Query strings are ignored.
type DirSource struct {
	Root string
}

// Open implements Source.
func (d *DirSource) Open(ctx context.Context, assetPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean("/" + stripQuery(assetPath))
	full := filepath.Join(d.Root, filepath.FromSlash(clean))

	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", full, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", full, err)
	}
	return data, nil
}

func (d *DirSource) String() string {
	return "dir:" + d.Root
}

// HTTPSource fetches assets from a web origin, keeping query strings.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates an HTTP source with a per-request timeout.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// Open implements Source.
func (h *HTTPSource) Open(ctx context.Context, assetPath string) ([]byte, error) {
	url := h.BaseURL + "/" + strings.TrimPrefix(assetPath, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return data, nil
}

func (h *HTTPSource) String() string {
	return h.BaseURL
}
