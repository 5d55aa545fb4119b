package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database ready (%s)\n", cfg.Database.Driver)
			if !seed {
				return nil
			}
			return runSeed(cmd, svc)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "load sample data when the inventory is empty")
	return cmd
}
