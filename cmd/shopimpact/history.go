package main

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/cli"
	"github.com/Veraticus/shopimpact/internal/impact"
	"github.com/Veraticus/shopimpact/internal/model"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List logged purchases, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, cleanup, err := initTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			history := tr.History()
			if len(history) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No purchases yet. Log one with 'shopimpact log'."))
				return nil
			}

			slices.Reverse(history)
			if limit > 0 && len(history) > limit {
				history = history[:limit]
			}

			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s Purchase history", cli.ChartIcon)))
			fmt.Fprintln(out, renderPurchaseTable(history))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum purchases to show (0 for all)")

	return cmd
}

func renderPurchaseTable(purchases []model.Purchase) string {
	t := table.New().
		Headers("Date", "Category", "Brand", "Price", "CO2 (kg)", "Eco").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cli.TableCellStyle.Bold(true)
			}
			return cli.TableCellStyle
		})

	for _, p := range purchases {
		eco := ""
		if impact.IsEco(p.Category) {
			eco = "🌿"
		}
		t.Row(
			p.Timestamp.Format("2006-01-02 15:04"),
			p.Category,
			p.Brand,
			fmt.Sprintf("%.2f", p.Price),
			fmt.Sprintf("%.3f", p.CO2Impact),
			eco,
		)
	}
	return t.Render()
}
