package main

import (
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/kem-a/AppManager/internal/config"
	"github.com/kem-a/AppManager/internal/exitcodes"
	"github.com/kem-a/AppManager/internal/registry"
	"github.com/kem-a/AppManager/internal/update"
)

// loadCfg loads configuration, applying persistent flag overrides.
func loadCfg() (config.Config, error) {
	if flagHome != "" {
		os.Setenv("APPMAN_HOME", flagHome)
	}
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagArch != "" {
		cfg.Arch = flagArch
	}
	return cfg, nil
}

func openStore(cfg config.Config) registry.Store {
	return registry.NewFileStore(cfg.RegistryPath)
}

// openLog opens the append-only update log that terminal-event lines go to.
func openLog(cfg config.Config) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// buildUpdater assembles the engine from config plus an optional observer.
func buildUpdater(cfg config.Config, obs update.Observer, logSink *os.File) *update.Updater {
	return buildUpdaterProgress(cfg, obs, logSink, nil)
}

func buildUpdaterProgress(cfg config.Config, obs update.Observer, logSink *os.File, progress update.ProgressFunc) *update.Updater {
	return update.New(update.Options{
		HTTP:        &http.Client{Timeout: cfg.Timeout},
		Arch:        cfg.Arch,
		Observer:    obs,
		Log:         logSink,
		Concurrency: cfg.Concurrency,
		Progress:    progress,
	})
}

// selectRecords narrows the registry to the app named in args, or returns
// all records when no name is given.
func selectRecords(records []*registry.InstallationRecord, args []string) ([]*registry.InstallationRecord, error) {
	if len(args) == 0 {
		return records, nil
	}
	for _, r := range records {
		if r.Name == args[0] {
			return []*registry.InstallationRecord{r}, nil
		}
	}
	return nil, exitcodes.PreconditionErrorf("unknown app: %s", args[0])
}

// drainEvents keeps consuming observer events until the batch finishes.
// Run after the live view exits: the view may quit early while workers are
// still emitting, and a full buffer would block them forever.
func drainEvents(events <-chan update.Event, done <-chan struct{}) {
	for {
		select {
		case <-events:
		case <-done:
			return
		}
	}
}

// interactive reports whether the live batch view should run.
func interactive() bool {
	return !flagPlain && flagOutput == "text" && term.IsTerminal(int(os.Stdout.Fd()))
}
