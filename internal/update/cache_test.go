package update

import (
	"testing"
	"time"
)

func TestCacheRoundtrip(t *testing.T) {
	dir := t.TempDir()

	entry := &CacheEntry{
		CheckedAt: time.Now().Truncate(time.Second),
		Total:     4,
		Available: 2,
		Apps:      []string{"AppA", "AppB"},
	}
	if err := SaveCache(dir, entry); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}

	got, err := LoadCache(dir)
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if !got.CheckedAt.Equal(entry.CheckedAt) || got.Total != 4 || got.Available != 2 {
		t.Errorf("loaded entry = %+v", got)
	}
	if len(got.Apps) != 2 || got.Apps[0] != "AppA" {
		t.Errorf("apps = %v", got.Apps)
	}
}

func TestLoadCacheMissing(t *testing.T) {
	if _, err := LoadCache(t.TempDir()); err == nil {
		t.Fatal("want error for missing cache file")
	}
}

func TestIsCacheValid(t *testing.T) {
	fresh := &CacheEntry{CheckedAt: time.Now().Add(-5 * time.Minute)}
	stale := &CacheEntry{CheckedAt: time.Now().Add(-15 * time.Minute)}
	if !IsCacheValid(fresh) {
		t.Error("5 minute old entry should be valid")
	}
	if IsCacheValid(stale) {
		t.Error("15 minute old entry should be stale")
	}
}

func TestSummarizeProbes(t *testing.T) {
	results := []UpdateProbeResult{
		{App: "AppA", HasUpdate: true},
		{App: "AppB", Reason: SkipAlreadyCurrent},
		{App: "AppC", HasUpdate: true, AvailableVersion: "2.0"},
		{App: "AppD", Failed: true},
	}
	entry := SummarizeProbes(results)
	if entry.Total != 4 || entry.Available != 2 {
		t.Errorf("entry = %+v", entry)
	}
	if len(entry.Apps) != 2 || entry.Apps[0] != "AppA" || entry.Apps[1] != "AppC" {
		t.Errorf("apps = %v", entry.Apps)
	}
}
