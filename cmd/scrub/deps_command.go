package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrub/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Report availability of required external binaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := deps.CheckBinaries(deps.Requirements(cfg))
			if jsonFlag {
				return writeJSON(cmd, results)
			}

			rows := make([][]string, 0, len(results))
			missing := 0
			for _, status := range results {
				detail := status.Detail
				if detail == "" {
					detail = "-"
				}
				rows = append(rows, []string{status.Name, status.Command, yesNo(status.Available), detail})
				if !status.Available {
					missing++
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Command", "Available", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			if missing > 0 {
				return fmt.Errorf("%d required dependency(ies) missing", missing)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the report as JSON")
	return cmd
}
