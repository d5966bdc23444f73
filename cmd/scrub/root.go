package main

import (
	"github.com/spf13/cobra"

	"scrub/internal/ffmpeg"
)

func newRootCommand() *cobra.Command {
	return newRootCommandWith(ffmpeg.CommandRunner{})
}

func newRootCommandWith(runner ffmpeg.Runner) *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)
	ctx.runner = runner

	rootCmd := &cobra.Command{
		Use:           "scrub",
		Short:         "Batch tag-free audio transcoding",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newFormatsCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if current.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
