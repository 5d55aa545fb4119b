package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print inventory totals",
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

			stats, err := svc.Stats(cmd.Context(), days)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "As of:\t%s\n", stats.AsOf)
			fmt.Fprintf(tw, "Items:\t%d\n", stats.ItemCount)
			fmt.Fprintf(tw, "Total quantity:\t%d\n", stats.TotalQuantity)
			fmt.Fprintf(tw, "Total value:\t%s\n", stats.TotalValue.StringFixed(2))
			fmt.Fprintf(tw, "Expiring (%dd):\t%d\n", stats.WindowDays, stats.ExpiringSoon)
			fmt.Fprintf(tw, "Expired:\t%d\n", stats.Expired)
			if len(stats.Categories) > 0 {
				fmt.Fprintln(tw, "Categories:\t")
				for _, c := range stats.Categories {
					fmt.Fprintf(tw, "  %s\t%d\n", c.Name, c.Items)
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "expiring window in days (default from config)")
	return cmd
}
