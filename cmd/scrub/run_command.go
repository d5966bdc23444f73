package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"scrub/internal/config"
	"scrub/internal/history"
	"scrub/internal/logging"
	"scrub/internal/manifest"
	"scrub/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var outFlag string
	var formatsFlag string
	var jobsFlag int
	var mirrorFlag bool
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "run <source-dir>",
		Short: "Convert every source file under a directory into tag-free outputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCfg, err := mergeRunFlags(cfg, outFlag, formatsFlag, jobsFlag, mirrorFlag, cmd)
			if err != nil {
				return err
			}

			sourceDir, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve source directory: %w", err)
			}

			logger, err := logging.NewFromConfig(runCfg)
			if err != nil {
				return err
			}

			result, err := pipeline.New(runCfg, logger, ctx.runner).Run(cmd.Context(), sourceDir)
			if err != nil {
				return err
			}

			if runCfg.History.Enabled && !result.NoSources {
				if err := recordHistory(cmd, runCfg, result); err != nil {
					logger.Warn("record run history", "error", err)
				}
			}

			if jsonFlag {
				return writeJSON(cmd, result.Manifest)
			}
			printRunSummary(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output directory (overrides config)")
	cmd.Flags().StringVarP(&formatsFlag, "formats", "f", "", "Comma-separated target format keys (default: all known formats)")
	cmd.Flags().IntVarP(&jobsFlag, "jobs", "j", 0, "Concurrent conversions (overrides config)")
	cmd.Flags().BoolVar(&mirrorFlag, "mirror", false, "Copy originals into the output tree")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the manifest as JSON instead of a summary")

	return cmd
}

// mergeRunFlags layers command-line overrides onto a copy of the loaded
// config and re-validates the result.
func mergeRunFlags(cfg *config.Config, out, formats string, jobs int, mirror bool, cmd *cobra.Command) (*config.Config, error) {
	merged := *cfg
	if strings.TrimSpace(out) != "" {
		expanded, err := config.ExpandPath(out)
		if err != nil {
			return nil, fmt.Errorf("resolve output directory: %w", err)
		}
		merged.Paths.OutputDir = expanded
	}
	if strings.TrimSpace(formats) != "" {
		var keys []string
		for _, key := range strings.Split(formats, ",") {
			key = strings.ToLower(strings.TrimSpace(key))
			if key != "" {
				keys = append(keys, key)
			}
		}
		merged.Conversion.Formats = keys
	}
	if jobs > 0 {
		merged.Conversion.Jobs = jobs
	}
	if cmd.Flags().Changed("mirror") {
		merged.Conversion.MirrorOriginals = mirror
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func recordHistory(cmd *cobra.Command, cfg *config.Config, result *pipeline.Result) error {
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(cmd.Context(), result.Manifest, result.ManifestPath)
}

func printRunSummary(cmd *cobra.Command, result *pipeline.Result) {
	out := cmd.OutOrStdout()
	m := result.Manifest

	if result.NoSources {
		fmt.Fprintf(out, "no sources found under %s\n", m.SourceDir)
		fmt.Fprintf(out, "manifest: %s\n", result.ManifestPath)
		return
	}

	rows := [][]string{
		{"ok", strconv.Itoa(m.Summary.OK)},
		{"skipped", strconv.Itoa(m.Summary.Skipped)},
		{"failed", strconv.Itoa(m.Summary.Failed)},
	}
	fmt.Fprintln(out, renderTable([]string{"Status", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))

	if bytes := outputBytes(m); bytes > 0 {
		fmt.Fprintf(out, "wrote %s across %d outputs\n", humanize.Bytes(bytes), m.Summary.OK)
	}
	for _, unavailable := range result.SkippedFormats {
		fmt.Fprintf(out, "format %s skipped: no encoder available (tried %s)\n",
			unavailable.Spec.Key, joinOrDash(unavailable.Tried))
	}
	if m.ResidualTagWarning {
		fmt.Fprintln(out, "warning: at least one output still carries non-technical tags")
	}
	fmt.Fprintf(out, "manifest: %s\n", result.ManifestPath)
}

func outputBytes(m *manifest.Manifest) uint64 {
	var total uint64
	for _, file := range m.Files {
		for _, output := range file.Outputs {
			if output.Status != manifest.StatusOK || output.Dest == "" {
				continue
			}
			if info, err := os.Stat(output.Dest); err == nil {
				total += uint64(info.Size())
			}
		}
	}
	return total
}
