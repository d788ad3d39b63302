package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kem-a/AppManager/internal/exitcodes"
	"github.com/kem-a/AppManager/internal/ui"
	"github.com/kem-a/AppManager/internal/update"
)

var updateCmd = &cobra.Command{
	Use:   "update [app]",
	Short: "Download and install available updates",
	Args:  cobra.MaximumNArgs(1),
	RunE:  handleUpdate,
}

func handleUpdate(cmd *cobra.Command, args []string) error {
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

	var results []update.UpdateResult
	if interactive() {
		events := make(chan update.Event, 64)
		done := make(chan struct{})
		updater := buildUpdater(cfg, update.ObserverFunc(func(e update.Event) { events <- e }), logSink)
		go func() {
			results = updater.UpdateAll(cmd.Context(), records)
			close(done)
		}()
		uiErr := ui.RunBatchUI(events, done)
		drainEvents(events, done)
		if uiErr != nil {
			return uiErr
		}
	} else {
		// A live byte counter only makes sense for a single sequential
		// download; batch runs would interleave.
		var bar *ui.ProgressBar
		var progress update.ProgressFunc
		if len(records) == 1 && flagOutput == "text" {
			progress = func(app string, current, total int64) {
				if bar == nil {
					bar = ui.NewProgressBar(os.Stdout, total)
				}
				bar.Update(current)
			}
		}
		updater := buildUpdaterProgress(cfg, nil, logSink, progress)
		results = updater.UpdateAll(cmd.Context(), records)
		if bar != nil {
			bar.Finish()
		}
	}

	// Successful updates mutated tracking fields in place; persist them.
	if err := store.Save(all); err != nil {
		return err
	}

	printUpdateResults(results)

	for _, r := range results {
		if r.Status == update.StatusFailed {
			return exitcodes.UpdateErrf("%s: %s", r.App, r.Message)
		}
	}
	return nil
}

func printUpdateResults(results []update.UpdateResult) {
	p := getPrinter()
	p.Render(results, func() {
		updated := 0
		for _, r := range results {
			switch r.Status {
			case update.StatusUpdated:
				updated++
				detail := r.NewVersion
				if detail == "" {
					detail = "latest content"
				}
				p.Textf("%s %-24s updated to %s\n", p.Colors.Success("✓"), r.App, detail)
			case update.StatusFailed:
				p.Textf("%s %-24s %s\n", p.Colors.Error("✗"), r.App, r.Message)
			default:
				if r.Reason == update.SkipAlreadyCurrent {
					p.Textf("%s %-24s up to date\n", p.Colors.Dimmed("="), r.App)
				} else {
					p.Textf("%s %-24s skipped: %s\n", p.Colors.Dimmed("○"), r.App, r.Reason)
				}
			}
		}
		p.Textf("\n%d of %d apps updated\n", updated, len(results))
	})
}
