package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kem-a/AppManager/internal/registry"
)

func TestHandleRollback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("APPMAN_HOME", home)

	appDir := t.TempDir()
	target := filepath.Join(appDir, "tool.AppImage")
	if err := os.WriteFile(target, []byte("broken update"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target+".backup", []byte("last good"), 0o755); err != nil {
		t.Fatal(err)
	}

	store := registry.NewFileStore(filepath.Join(home, "registry.json"))
	if err := store.Save([]*registry.InstallationRecord{{Name: "tool", Path: target}}); err != nil {
		t.Fatal(err)
	}

	if err := handleRollback(rollbackCmd, []string{"tool"}); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "last good" {
		t.Errorf("target content = %q, want backup restored", data)
	}
}

func TestHandleRollbackNoBackup(t *testing.T) {
	home := t.TempDir()
	t.Setenv("APPMAN_HOME", home)

	target := filepath.Join(t.TempDir(), "tool.AppImage")
	store := registry.NewFileStore(filepath.Join(home, "registry.json"))
	if err := store.Save([]*registry.InstallationRecord{{Name: "tool", Path: target}}); err != nil {
		t.Fatal(err)
	}

	if err := handleRollback(rollbackCmd, []string{"tool"}); err == nil {
		t.Fatal("want error when no backup exists")
	}
}

func TestHandleRollbackUnknownApp(t *testing.T) {
	t.Setenv("APPMAN_HOME", t.TempDir())
	if err := handleRollback(rollbackCmd, []string{"ghost"}); err == nil {
		t.Fatal("want error for unregistered app")
	}
}
