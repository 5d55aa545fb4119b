package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"perishables/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if cfgSource == "" {
				fmt.Fprintln(out, "Source: defaults (no config file found)")
				for _, p := range config.SearchPaths() {
					fmt.Fprintf(out, "  searched %s\n", p)
				}
			} else {
				fmt.Fprintf(out, "Source: %s\n", cfgSource)
			}
			fmt.Fprintln(out, cfg.Summary())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	})

	return cmd
}
