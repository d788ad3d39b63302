package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		info := map[string]string{
			"version":    Version,
			"commit":     Commit,
			"build_date": BuildDate,
		}
		p := getPrinter()
		p.Render(info, func() {
			fmt.Printf("appman %s (%s) built %s\n", Version, Commit, BuildDate)
		})
	},
}
