package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"litshelf/internal/logging"
	"litshelf/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Display the litshelf log file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := logging.FilePath(cfg)
			if path == "" {
				return fmt.Errorf("file logging is disabled; set paths.log_dir in %s", ctx.configPath())
			}
			out := cmd.OutOrStdout()
			printed, err := logs.Follow(cmd.Context(), path, lines, follow, func(line string) {
				fmt.Fprintln(out, line)
			})
			if err != nil {
				return fmt.Errorf("tail logs: %w", err)
			}
			if !printed && !follow {
				fmt.Fprintln(out, "No log entries available")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow log output")
	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "Number of lines to show (0 for all)")
	return cmd
}
