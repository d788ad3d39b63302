package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"github.com/kem-a/AppManager/internal/exitcodes"
)

var flagLogsFollow bool

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the update event log",
	RunE:  handleLogs,
}

func init() {
	logsCmd.Flags().BoolVarP(&flagLogsFollow, "follow", "f", false, "Keep following new log lines")
}

func handleLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadCfg()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.LogPath); err != nil {
		return exitcodes.PreconditionErrorf("no update log at %s", cfg.LogPath)
	}

	if !flagLogsFollow {
		data, err := os.ReadFile(cfg.LogPath)
		if err != nil {
			return err
		}
		fmt.Print(strings.TrimLeft(string(data), "\n"))
		return nil
	}

	t, err := tail.TailFile(cfg.LogPath, tail.Config{
		Follow: true,
		ReOpen: true,
		Logger: tail.DiscardingLogger,
	})
	if err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		_ = t.Stop()
	}()

	for line := range t.Lines {
		if line.Err != nil {
			return line.Err
		}
		fmt.Println(line.Text)
	}
	return nil
}
