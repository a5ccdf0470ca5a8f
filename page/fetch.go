package page

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// DefaultCacheDir returns the on-disk page cache location.
func DefaultCacheDir() string {
	return filepath.Join(os.TempDir(), "focstest-cache")
}

// FetcherConfig holds configuration for creating a Fetcher.
type FetcherConfig struct {
	CacheDir string
	Client   *http.Client
	Log      log.Logger
}

// Fetcher retrieves pages over HTTP with an on-disk cache, keyed by the
// page's filename.
type Fetcher struct {
	cacheDir string
	client   *http.Client
	log      log.Logger
}

// NewFetcher creates a page fetcher.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir()
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	return &Fetcher{
		cacheDir: cfg.CacheDir,
		client:   cfg.Client,
		log:      cfg.Log,
	}
}

// Fetch returns the page body, from cache when present unless refresh is
// set. A fetched page is written back to the cache; cache write failures
// are logged, not fatal.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string, refresh bool) ([]byte, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing url %q: %w", pageURL, err)
	}
	cachePath := filepath.Join(f.cacheDir, path.Base(parsed.Path))

	if !refresh {
		if data, err := os.ReadFile(cachePath); err == nil {
			f.log.Debug("Using cached page", "url", pageURL, "path", cachePath)
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %q: %w", pageURL, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: unexpected status %s", pageURL, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", pageURL, err)
	}

	if err := os.MkdirAll(f.cacheDir, 0o755); err != nil {
		f.log.Warn("Couldn't create page cache directory", "dir", f.cacheDir, "err", err)
		return data, nil
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		f.log.Warn("Couldn't cache page", "path", cachePath, "err", err)
	} else {
		f.log.Debug("Cached page", "url", pageURL, "path", cachePath)
	}
	return data, nil
}
