package diff

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheStateFile      = "cache.json"
	currentCacheVersion = "1"
)

// cacheEntry records one fetched diff on disk.
type cacheEntry struct {
	URL       string    `json:"url"`
	File      string    `json:"file"`
	Hash      string    `json:"hash"`
	FetchedAt time.Time `json:"fetched_at"`
}

// cacheState is the JSON index of the on-disk diff cache.
type cacheState struct {
	Version   string                `json:"version"`
	UpdatedAt time.Time             `json:"updated_at"`
	Entries   map[string]cacheEntry `json:"entries"`
}

func newCacheState() *cacheState {
	return &cacheState{Version: currentCacheVersion, Entries: make(map[string]cacheEntry)}
}

// loadCacheState reads the cache index, returning an empty one when absent
// or unreadable; a corrupt cache only costs a refetch.
func loadCacheState(dir string) *cacheState {
	data, err := os.ReadFile(filepath.Join(dir, cacheStateFile))
	if err != nil {
		return newCacheState()
	}
	var st cacheState
	if err := json.Unmarshal(data, &st); err != nil || st.Entries == nil {
		return newCacheState()
	}
	return &st
}

func (st *cacheState) save(dir string) error {
	st.Version = currentCacheVersion
	st.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, cacheStateFile), data, 0644)
}
