package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"perishables/internal/service"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample data into an empty inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()
			return runSeed(cmd, svc)
		},
	}
}

func runSeed(cmd *cobra.Command, svc *service.InventoryService) error {
	seeded, err := svc.SeedSampleData(cmd.Context())
	if err != nil {
		return err
	}
	if seeded {
		fmt.Fprintln(cmd.OutOrStdout(), "Sample data loaded.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Inventory is not empty; nothing seeded.")
	}
	return nil
}
