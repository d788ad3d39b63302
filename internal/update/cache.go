package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	cacheFileName = ".last-check"
	cacheDuration = 10 * time.Minute
)

// CacheEntry stores the summary of the last batch check so the CLI can show
// recent results without another network round trip.
type CacheEntry struct {
	CheckedAt time.Time `json:"checked_at"`
	Total     int       `json:"total"`
	Available int       `json:"available"`
	Apps      []string  `json:"apps,omitempty"` // names with updates available
}

// CachePath returns the cache file location under the manager's config dir.
func CachePath(configDir string) string {
	return filepath.Join(configDir, cacheFileName)
}

// LoadCache reads the cached check summary.
func LoadCache(configDir string) (*CacheEntry, error) {
	data, err := os.ReadFile(CachePath(configDir))
	if err != nil {
		return nil, err
	}

	var entry CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SaveCache writes the check summary.
func SaveCache(configDir string, entry *CacheEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(CachePath(configDir), data, 0o644)
}

// IsCacheValid reports whether the summary is fresh enough to show.
func IsCacheValid(entry *CacheEntry) bool {
	return time.Since(entry.CheckedAt) < cacheDuration
}

// SummarizeProbes converts batch probe results into a cache entry.
func SummarizeProbes(results []UpdateProbeResult) *CacheEntry {
	entry := &CacheEntry{CheckedAt: time.Now(), Total: len(results)}
	for _, r := range results {
		if r.HasUpdate {
			entry.Available++
			entry.Apps = append(entry.Apps, r.App)
		}
	}
	return entry
}
