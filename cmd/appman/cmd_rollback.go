package main

import (
	"github.com/spf13/cobra"

	"github.com/kem-a/AppManager/internal/exitcodes"
	"github.com/kem-a/AppManager/internal/installer"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback <app>",
	Short: "Restore the previous version of an app",
	Long:  "Restore the backup left next to the installed file by the last update.",
	Args:  cobra.ExactArgs(1),
	RunE:  handleRollback,
}

func handleRollback(cmd *cobra.Command, args []string) error {
	cfg, err := loadCfg()
	if err != nil {
		return err
	}
	records, err := openStore(cfg).LoadAll()
	if err != nil {
		return err
	}
	selected, err := selectRecords(records, args)
	if err != nil {
		return err
	}

	rec := selected[0]
	if rec.Path == "" {
		return exitcodes.PreconditionErrorf("app %s has no install path", rec.Name)
	}
	if err := installer.Rollback(rec.Path); err != nil {
		return exitcodes.WrapError(exitcodes.UpdateError, "rollback "+rec.Name, err)
	}

	getPrinter().Success("restored previous version of " + rec.Name)
	return nil
}
