package main

import (
	"github.com/spf13/cobra"

	"github.com/orizon-lang/minijs/internal/cli"
)

func newVersionCommand(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(*cobra.Command, []string) error {
			return cli.PrintVersion(a.stdout, cli.ToolName, jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output version information as JSON")

	return cmd
}
