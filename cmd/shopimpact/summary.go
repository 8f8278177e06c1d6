package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/cli"
	"github.com/Veraticus/shopimpact/internal/tracker"
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals, this month's progress and the category breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, cleanup, err := initTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			printSummary(cmd.OutOrStdout(), tr.Summary(time.Now()))
			return nil
		},
	}
}

func printSummary(w io.Writer, s tracker.Summary) {
	var totals strings.Builder
	fmt.Fprintf(&totals, "Purchases:  %d (%d eco, %.0f%%)\n", s.Purchases, s.EcoCount, s.EcoShare*100)
	fmt.Fprintf(&totals, "Spend:      %s\n", cli.FormatMoney(s.TotalSpend))
	fmt.Fprintf(&totals, "Footprint:  %s\n", cli.FormatCO2(s.TotalCO2))
	fmt.Fprintf(&totals, "Badges:     %d/%d", len(s.Badges), s.BadgesTotal)
	fmt.Fprintln(w, cli.RenderBox(fmt.Sprintf("%s Hello, %s", cli.LeafIcon, s.Name), totals.String()))

	fmt.Fprintln(w, cli.FormatTitle("This month"))
	spend := fmt.Sprintf("Spend: %s of %s", cli.FormatMoney(s.MonthSpend), cli.FormatMoney(s.MonthlyBudget))
	if s.OverBudget() {
		fmt.Fprintln(w, cli.FormatWarning(spend+" (over budget)"))
	} else {
		fmt.Fprintln(w, cli.FormatSuccess(spend))
	}
	co2 := fmt.Sprintf("CO2: %.2f of %.2f kg", s.MonthCO2, s.CO2Goal)
	if s.OverCO2Goal() {
		fmt.Fprintln(w, cli.FormatWarning(co2+" (over goal)"))
	} else {
		fmt.Fprintln(w, cli.FormatSuccess(co2))
	}

	if len(s.Categories) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.FormatTitle("By category"))
	for _, c := range s.Categories {
		eco := ""
		if c.Eco {
			eco = " 🌿"
		}
		fmt.Fprintf(w, "  %-28s %3d  %10s  %s%s\n", c.Category, c.Count, cli.FormatMoney(c.Spend), cli.FormatCO2(c.CO2), eco)
	}
}
