package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kem-a/AppManager/internal/exitcodes"
	"github.com/kem-a/AppManager/internal/registry"
	"github.com/kem-a/AppManager/internal/update"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered apps",
	RunE:  handleList,
}

var (
	flagAddPath    string
	flagAddURL     string
	flagAddVersion string
	flagAddDesktop string
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register an installed AppImage",
	Long:  "Register an AppImage for update tracking. Metadata can come from flags or be read from the app's .desktop file.",
	Args:  cobra.ExactArgs(1),
	RunE:  handleAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddPath, "path", "", "Installed AppImage path")
	addCmd.Flags().StringVar(&flagAddURL, "url", "", "Update URL (GitHub/GitLab project or direct download)")
	addCmd.Flags().StringVar(&flagAddVersion, "app-version", "", "Currently installed version")
	addCmd.Flags().StringVar(&flagAddDesktop, "desktop", "", "Read name/version/update URL from a .desktop file")
}

func handleList(cmd *cobra.Command, args []string) error {
	cfg, err := loadCfg()
	if err != nil {
		return err
	}
	records, err := openStore(cfg).LoadAll()
	if err != nil {
		return err
	}

	p := getPrinter()
	p.Render(records, func() {
		if len(records) == 0 {
			p.Info("no apps registered")
			return
		}
		for _, r := range records {
			version := r.Version
			if version == "" {
				version = "-"
			}
			link := r.EffectiveUpdateLink()
			if link == "" {
				link = p.Colors.Dimmed("(no update URL)")
			}
			p.Textf("%-24s %-12s %s\n", p.Colors.Label(r.Name), version, link)
		}
		if entry, err := update.LoadCache(cfg.ConfigDir); err == nil && update.IsCacheValid(entry) {
			p.Textf("\nlast check %s: %d of %d with updates\n",
				entry.CheckedAt.Format(time.RFC3339), entry.Available, entry.Total)
		}
	})
	return nil
}

func handleAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadCfg()
	if err != nil {
		return err
	}
	store := openStore(cfg)
	records, err := store.LoadAll()
	if err != nil {
		return err
	}

	name := args[0]
	for _, r := range records {
		if r.Name == name {
			return exitcodes.PreconditionErrorf("app %s is already registered", name)
		}
	}

	rec := &registry.InstallationRecord{
		Name:               name,
		Path:               flagAddPath,
		Version:            flagAddVersion,
		OriginalUpdateLink: flagAddURL,
	}
	if flagAddDesktop != "" {
		entry, err := registry.ParseDesktopFile(flagAddDesktop)
		if err != nil {
			return exitcodes.WrapError(exitcodes.InvalidArgs, "read desktop file", err)
		}
		if rec.Version == "" {
			rec.Version = entry.Version
		}
		if rec.OriginalUpdateLink == "" {
			rec.OriginalUpdateLink = entry.UpdateLink
		}
	}

	records = append(records, rec)
	if err := store.Save(records); err != nil {
		return err
	}
	getPrinter().Success("registered " + name)
	return nil
}
