package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func configCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage featurize configuration files",
	}
	cmd.AddCommand(configInitCmd(g))
	return cmd
}

func configInitCmd(g *globalOptions) *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration as YAML",
		Long: `init writes the configuration featurize would run with: the defaults, overlaid
with --config and the global flags. Edit the result and pass it back with --config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, g)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", output)
				}
			}
			if err := a.cfg.SaveToFile(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote configuration to %s.\n", output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "featurize.yaml", "Config file to write")
	f.BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
