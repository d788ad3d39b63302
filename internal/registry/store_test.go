package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	store := NewFileStore(path)

	records := []*InstallationRecord{
		{Name: "Zed", Path: "/apps/zed.AppImage", Version: "0.150.0", OriginalUpdateLink: "https://github.com/zed/zed"},
		{Name: "Arduino", Path: "/apps/arduino.AppImage", LastModified: "Wed, 10 Dec 2025 12:39:35 GMT", ContentLength: "1024"},
	}
	if err := store.Save(records); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d records, want 2", len(loaded))
	}
	// Save sorts by name.
	if loaded[0].Name != "Arduino" || loaded[1].Name != "Zed" {
		t.Errorf("order = %s, %s", loaded[0].Name, loaded[1].Name)
	}
	if loaded[1].Version != "0.150.0" || loaded[1].OriginalUpdateLink != "https://github.com/zed/zed" {
		t.Errorf("record = %+v", loaded[1])
	}
	if loaded[0].LastModified != "Wed, 10 Dec 2025 12:39:35 GMT" || loaded[0].ContentLength != "1024" {
		t.Errorf("fingerprint fields lost: %+v", loaded[0])
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	records, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if records != nil {
		t.Errorf("got %v, want empty registry", records)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).LoadAll(); err == nil {
		t.Fatal("want parse error for corrupt registry")
	}
}

func TestFileStoreCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "registry.json")
	store := NewFileStore(path)
	if err := store.Save([]*InstallationRecord{{Name: "A", Path: "/a"}}); err != nil {
		t.Fatalf("Save into missing dir: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("registry file not created: %v", err)
	}
}

func TestFileStoreSaveDoesNotReorderInput(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "registry.json"))
	records := []*InstallationRecord{{Name: "B", Path: "/b"}, {Name: "A", Path: "/a"}}
	if err := store.Save(records); err != nil {
		t.Fatal(err)
	}
	if records[0].Name != "B" {
		t.Error("Save mutated the caller's slice order")
	}
}
