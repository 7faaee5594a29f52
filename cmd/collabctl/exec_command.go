package main

import (
	"fmt"
	"io"
	"os"

	"codecollab-be/internal/config"
	"codecollab-be/pkg/sandbox"

	"github.com/spf13/cobra"
)

func newExecCommand(loadConfig func() *config.Config) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "exec [file]",
		Short: "Run a snippet through the execution sandbox (stdin when no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				code []byte
				err  error
			)
			if len(args) == 1 {
				code, err = os.ReadFile(args[0])
			} else {
				code, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			cfg := loadConfig().Sandbox
			box := sandbox.New(
				sandbox.WithTimeout(cfg.Timeout),
				sandbox.WithTempDir(cfg.TempDir),
				sandbox.WithToolchain(sandbox.Toolchain{
					Python: cfg.PythonBin,
					Node:   cfg.NodeBin,
					Javac:  cfg.JavacBin,
					Cxx:    cfg.CxxBin,
				}),
			)

			fmt.Fprint(cmd.OutOrStdout(), box.Execute(cmd.Context(), string(code), language))
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", sandbox.DefaultLanguage, "Language tag (python, javascript, java, cpp)")
	return cmd
}
