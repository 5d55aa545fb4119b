package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func expiringCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "expiring",
		Short: "List items expiring soon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = -1
			} else if days < 0 {
				return fmt.Errorf("--days must not be negative, got %d", days)
			}

			svc, closeStore, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			items, err := svc.ListExpiring(cmd.Context(), days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "Nothing expiring.")
				return nil
			}

			today := svc.Today()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tQTY\tEXPIRES\tDAYS\tLOCATION")
			for _, item := range items {
				left, _ := item.DaysUntilExpiry(today)
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%s\n",
					item.ID, item.Name, item.Quantity, item.ExpiryDate, left, item.StorageLocation)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "window in days (default from config)")
	return cmd
}
