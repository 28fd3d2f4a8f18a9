// Package diff fetches unified diffs and splits them into per-file
// fragments. It is an I/O collaborator of the manifest editor: nothing here
// touches the manifest graph.
package diff

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pbxedit-dev/pbxedit/internal/fileutil"
)

// Fetcher downloads diffs with an on-disk cache keyed by source URL.
// A zero MaxAge disables reuse.
type Fetcher struct {
	Client   *http.Client
	CacheDir string
	MaxAge   time.Duration
	Logger   *zap.Logger
}

// Fetch returns the diff at source. Local paths are read directly; URLs go
// through the cache.
func (f *Fetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if !strings.Contains(source, "://") {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read diff %s: %w", source, err)
		}
		return data, nil
	}

	key := fileutil.HashBytes([]byte(source))
	st := loadCacheState(f.CacheDir)

	if entry, ok := st.Entries[key]; ok && f.MaxAge > 0 && time.Since(entry.FetchedAt) < f.MaxAge {
		path := filepath.Join(f.CacheDir, entry.File)
		if sum, err := fileutil.HashFile(path); err == nil && sum == entry.Hash {
			cached, err := os.ReadFile(path)
			if err == nil {
				f.logger().Debug("diff cache hit",
					zap.String("url", source),
					zap.Time("fetched_at", entry.FetchedAt))
				return cached, nil
			}
		} else {
			f.logger().Debug("diff cache entry stale or corrupt", zap.String("url", source))
		}
	}

	data, err := f.download(ctx, source)
	if err != nil {
		return nil, err
	}

	file := key + ".diff"
	if _, err := fileutil.WriteIfChanged(filepath.Join(f.CacheDir, file), data); err != nil {
		return nil, fmt.Errorf("cache diff: %w", err)
	}
	st.Entries[key] = cacheEntry{
		URL:       source,
		File:      file,
		Hash:      fileutil.HashBytes(data),
		FetchedAt: time.Now(),
	}
	if err := st.save(f.CacheDir); err != nil {
		return nil, fmt.Errorf("save cache state: %w", err)
	}
	return data, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	f.logger().Debug("fetching diff", zap.String("url", url))
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}

func (f *Fetcher) logger() *zap.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return zap.NewNop()
}
