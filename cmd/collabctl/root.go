package main

import (
	"codecollab-be/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var noColor bool
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:           "collabctl",
		Short:         "Operator tooling for the collaborative editor backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	loadConfig := func() *config.Config {
		if cfg == nil {
			cfg = config.Load()
		}
		return cfg
	}

	rootCmd.AddCommand(newClustersCommand(loadConfig))
	rootCmd.AddCommand(newActivityCommand(loadConfig))
	rootCmd.AddCommand(newExecCommand(loadConfig))

	return rootCmd
}
