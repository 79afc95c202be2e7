package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/genno-io/genno/internal/domain/pricing"

	"github.com/spf13/cobra"
)

// PlansListCmd prints the plan catalog
func PlansListCmd(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMONTHLY\tYEARLY\tCREDITS\tFEATURES")
	for _, plan := range pricing.Catalog(pricing.PriceIDs{}, pricing.PriceIDs{}) {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%d\t%s\n",
			plan.ID, plan.Name, plan.Price.Monthly, plan.Price.Yearly, plan.Credits, strings.Join(plan.Features, "; "))
	}
	return w.Flush()
}

// InitPlanCommands registers the plans command group
func InitPlanCommands(rootCmd *cobra.Command) error {
	plansCmd := &cobra.Command{
		Use:   "plans",
		Short: "Show subscription plans",
	}
	plansCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plans with prices and monthly credits",
		Args:  cobra.NoArgs,
		RunE:  PlansListCmd,
	})

	rootCmd.AddCommand(plansCmd)
	return nil
}
