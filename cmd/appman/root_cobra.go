package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kem-a/AppManager/internal/exitcodes"
	"github.com/kem-a/AppManager/internal/ui"
)

// Version information - set via -ldflags during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// rootCmd wires the CLI surface using Cobra. Persistent flags are applied in
// loadCfg(); subcommands implement the operations (check, update, logs, ...).
var rootCmd = &cobra.Command{
	Use:           "appman",
	Short:         "AppImage update manager",
	Long:          "Check installed AppImages for newer releases and apply updates from GitHub, GitLab, or direct download URLs.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			// lipgloss and other libraries respect NO_COLOR
			os.Setenv("NO_COLOR", "1")
		}
	},
}

var (
	flagHome    string
	flagOutput  string
	flagArch    string
	flagNoColor bool
	flagPlain   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHome, "home", "", "Manager config directory (overrides APPMAN_HOME)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format: json|yaml|text")
	rootCmd.PersistentFlags().StringVar(&flagArch, "arch", "", "Override detected architecture (e.g. x86_64, aarch64)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable ANSI colors")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "Plain line output instead of the live view")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(versionCmd)
}

func getPrinter() ui.Printer {
	return ui.NewPrinter(flagOutput)
}

// Execute runs the root command and maps errors onto process exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		getPrinter().Error(err.Error())
		exitcodes.Exit(exitcodes.CodeForError(err))
	}
}
