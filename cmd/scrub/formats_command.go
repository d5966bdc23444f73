package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scrub/internal/ffmpeg"
	"scrub/internal/format"
)

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List known target formats and their encoder availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			prober := ffmpeg.NewProber(ctx.runner, cfg.FFmpegBinary())
			caps, err := prober.Capabilities(cmd.Context())
			if err != nil {
				return err
			}

			available, unavailable, err := format.Resolve(nil, caps)
			if err != nil {
				return err
			}

			if jsonFlag {
				return writeJSON(cmd, formatListing(available, unavailable))
			}

			rows := make([][]string, 0, len(format.Known()))
			for _, entry := range formatListing(available, unavailable) {
				encoder := entry.Encoder
				if encoder == "" {
					encoder = "-"
				}
				rows = append(rows, []string{
					entry.Key, entry.Extension, entry.Description, encoder, yesNo(entry.Available),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Format", "Ext", "Description", "Encoder", "Available"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the listing as JSON")
	return cmd
}

type formatEntry struct {
	Key         string `json:"key"`
	Extension   string `json:"extension"`
	Description string `json:"description"`
	Encoder     string `json:"encoder,omitempty"`
	Available   bool   `json:"available"`
	Tried       string `json:"tried,omitempty"`
}

func formatListing(available []format.Resolved, unavailable []format.Unavailable) []formatEntry {
	entries := make([]formatEntry, 0, len(available)+len(unavailable))
	for _, spec := range format.Known() {
		entry := formatEntry{Key: spec.Key, Extension: spec.Extension, Description: spec.Description}
		for _, resolved := range available {
			if resolved.Spec.Key == spec.Key {
				entry.Encoder = resolved.Encoder
				entry.Available = true
			}
		}
		for _, u := range unavailable {
			if u.Spec.Key == spec.Key {
				entry.Tried = strings.Join(u.Tried, ", ")
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
