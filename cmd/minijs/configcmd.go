package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orizon-lang/minijs/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	base := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "Write the default configuration as TOML",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(_ *cobra.Command, args []string) error {
			path := config.FileName + ".toml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Init(path, force); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return config.WriteTOML(a.stdout, a.cfg)
		},
	}

	base.AddCommand(initCmd, showCmd)
	return base
}
