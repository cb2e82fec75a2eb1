package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"launchmeta/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tools used to produce images",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			status := deps.CheckTranscoder(cfg.Artifacts.Transcoder)
			rows := [][]string{{status.Name, status.Command, yesNo(status.Available), status.Detail}}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Tool", "Command", "Available", "Detail"}, rows, nil))
			if !status.Available {
				return fmt.Errorf("%s not available: %s", status.Name, status.Detail)
			}
			return nil
		},
	}
}
