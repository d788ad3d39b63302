package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.ConfigDir == "" || cfg.RegistryPath == "" || cfg.LogPath == "" {
		t.Errorf("incomplete defaults: %+v", cfg)
	}
	if cfg.Concurrency != 5 {
		t.Errorf("concurrency = %d, want 5", cfg.Concurrency)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.Timeout)
	}
	if filepath.Dir(cfg.RegistryPath) != cfg.ConfigDir {
		t.Errorf("registry %s not under config dir %s", cfg.RegistryPath, cfg.ConfigDir)
	}
}

func TestLoadHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APPMAN_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ConfigDir != dir {
		t.Errorf("config dir = %s, want %s", cfg.ConfigDir, dir)
	}
	if cfg.RegistryPath != filepath.Join(dir, "registry.json") {
		t.Errorf("registry path = %s", cfg.RegistryPath)
	}
	if cfg.LogPath != filepath.Join(dir, "update.log") {
		t.Errorf("log path = %s", cfg.LogPath)
	}
}

func TestLoadFileMerge(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APPMAN_HOME", dir)
	yaml := "apps_dir: /opt/apps\narch: aarch64\nconcurrency: 8\ntimeout: 45s\n"
	if err := os.WriteFile(filepath.Join(dir, "updater.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppsDir != "/opt/apps" {
		t.Errorf("apps dir = %s", cfg.AppsDir)
	}
	if cfg.Arch != "aarch64" {
		t.Errorf("arch = %s", cfg.Arch)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("concurrency = %d", cfg.Concurrency)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APPMAN_HOME", dir)
	if err := os.WriteFile(filepath.Join(dir, "updater.yaml"), []byte("arch: armv7l\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Arch != "armv7l" {
		t.Errorf("arch = %s", cfg.Arch)
	}
	if cfg.Concurrency != 5 || cfg.Timeout != 30*time.Second {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APPMAN_HOME", dir)
	if err := os.WriteFile(filepath.Join(dir, "updater.yaml"), []byte("timeout: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("want error for unparseable timeout")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APPMAN_HOME", dir)
	if err := os.WriteFile(filepath.Join(dir, "updater.yaml"), []byte("\t{bad yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("want error for malformed config file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("APPMAN_HOME", t.TempDir())
	if _, err := Load(); err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
}
