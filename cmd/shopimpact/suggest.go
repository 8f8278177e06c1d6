package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/cli"
	"github.com/Veraticus/shopimpact/internal/impact"
)

func newSuggestCmd() *cobra.Command {
	var price float64

	cmd := &cobra.Command{
		Use:   "suggest <category>",
		Short: "Show the multiplier and a greener alternative for a category",
		Long: `Show how a category is classified without logging anything.

Examples:
  shopimpact suggest Electronics
  shopimpact suggest "Leather Jacket" --price 250`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := args[0]
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, cli.FormatTitle(category))
			fmt.Fprintf(out, "Multiplier: %.2f\n", impact.Multiplier(category))
			if impact.IsEco(category) {
				fmt.Fprintln(out, cli.FormatSuccess("Eco-friendly category (CO2 estimate halved)"))
			}

			if cmd.Flags().Changed("price") {
				if err := impact.ValidatePrice(price); err != nil {
					return err
				}
				fmt.Fprintf(out, "Estimate for %s: %s\n", cli.FormatMoney(price), cli.FormatCO2(impact.Estimate(category, price)))
			}

			if tip, ok := impact.Suggest(category); ok {
				fmt.Fprintln(out, cli.FormatInfo("Greener option: "+tip))
			} else {
				fmt.Fprintln(out, cli.SubtleStyle.Render("No greener alternative on file."))
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&price, "price", "p", 0, "price to estimate")

	return cmd
}
