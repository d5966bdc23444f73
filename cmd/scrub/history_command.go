package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"scrub/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}

			if jsonFlag {
				return writeJSON(cmd, runs)
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.DateTime),
					run.Label,
					strconv.Itoa(run.OK),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Failed),
					yesNo(run.ResidualTagWarning),
					run.ManifestPath,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Started", "Label", "OK", "Skipped", "Failed", "Tag Warning", "Manifest"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the runs as JSON")
	return cmd
}
