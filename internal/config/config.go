package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds user/system configuration for the update engine and CLI.
type Config struct {
	ConfigDir    string // manager state: registry, cache, log
	AppsDir      string // where installed AppImages live
	RegistryPath string
	LogPath      string
	Arch         string // override detected architecture; empty = detect
	Concurrency  int    // batch width
	Timeout      time.Duration
}

// fileConfig is the YAML shape of updater.yaml. All fields optional.
type fileConfig struct {
	AppsDir     string `yaml:"apps_dir"`
	Arch        string `yaml:"arch"`
	Concurrency int    `yaml:"concurrency"`
	Timeout     string `yaml:"timeout"` // Go duration string, e.g. "45s"
}

// Defaults returns the stock configuration rooted in the user's home.
func Defaults() Config {
	home, _ := os.UserHomeDir()
	configDir := filepath.Join(home, ".config", "appman")
	return Config{
		ConfigDir:    configDir,
		AppsDir:      filepath.Join(home, "Applications"),
		RegistryPath: filepath.Join(configDir, "registry.json"),
		LogPath:      filepath.Join(configDir, "update.log"),
		Concurrency:  5,
		Timeout:      30 * time.Second,
	}
}

// Load returns defaults merged with the APPMAN_HOME env override and, when
// present, ConfigDir/updater.yaml. A malformed file is an error; a missing
// one is not.
func Load() (Config, error) {
	cfg := Defaults()
	if v := os.Getenv("APPMAN_HOME"); v != "" {
		cfg.ConfigDir = v
		cfg.RegistryPath = filepath.Join(v, "registry.json")
		cfg.LogPath = filepath.Join(v, "update.log")
	}

	path := filepath.Join(cfg.ConfigDir, "updater.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if fc.AppsDir != "" {
		cfg.AppsDir = fc.AppsDir
	}
	if fc.Arch != "" {
		cfg.Arch = fc.Arch
	}
	if fc.Concurrency > 0 {
		cfg.Concurrency = fc.Concurrency
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: invalid timeout %q", path, fc.Timeout)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
