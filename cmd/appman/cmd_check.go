package main

import (
	"github.com/spf13/cobra"

	"github.com/kem-a/AppManager/internal/exitcodes"
	"github.com/kem-a/AppManager/internal/ui"
	"github.com/kem-a/AppManager/internal/update"
)

var flagCheckExitCode bool

var checkCmd = &cobra.Command{
	Use:   "check [app]",
	Short: "Check installed apps for available updates",
	Args:  cobra.MaximumNArgs(1),
	RunE:  handleCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagCheckExitCode, "exit-code", false, "Exit 10 when updates are available")
}

func handleCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadCfg()
	if err != nil {
		return err
	}
	store := openStore(cfg)
	all, err := store.LoadAll()
	if err != nil {
		return err
	}
	records, err := selectRecords(all, args)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		getPrinter().Info("no apps registered; use 'appman add' first")
		return nil
	}

	logSink, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer logSink.Close()

	var results []update.UpdateProbeResult
	if interactive() {
		events := make(chan update.Event, 64)
		done := make(chan struct{})
		updater := buildUpdater(cfg, update.ObserverFunc(func(e update.Event) { events <- e }), logSink)
		go func() {
			results = updater.ProbeAll(cmd.Context(), records)
			close(done)
		}()
		uiErr := ui.RunBatchUI(events, done)
		drainEvents(events, done)
		if uiErr != nil {
			return uiErr
		}
	} else {
		updater := buildUpdater(cfg, nil, logSink)
		results = updater.ProbeAll(cmd.Context(), records)
	}

	_ = update.SaveCache(cfg.ConfigDir, update.SummarizeProbes(results))
	printProbeResults(results)

	if flagCheckExitCode {
		for _, r := range results {
			if r.HasUpdate {
				exitcodes.Exit(exitcodes.UpdatesAvailable)
			}
		}
	}
	return nil
}

func printProbeResults(results []update.UpdateProbeResult) {
	p := getPrinter()
	p.Render(results, func() {
		available := 0
		for _, r := range results {
			switch {
			case r.HasUpdate:
				available++
				version := r.AvailableVersion
				if version == "" {
					version = "new content"
				}
				p.Textf("%s %-24s update available: %s\n", p.Colors.Success("↑"), r.App, version)
			case r.Failed:
				p.Textf("%s %-24s %s\n", p.Colors.Error("✗"), r.App, r.Message)
			case r.Reason == update.SkipAlreadyCurrent:
				p.Textf("%s %-24s up to date\n", p.Colors.Dimmed("="), r.App)
			default:
				p.Textf("%s %-24s skipped: %s\n", p.Colors.Dimmed("○"), r.App, r.Reason)
			}
		}
		p.Textf("\n%d of %d apps have updates available\n", available, len(results))
	})
}
