package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/impact"
)

type purchaseForm struct {
	Category string
	Brand    string
	Price    string
}

func newLogCmd() *cobra.Command {
	var (
		category string
		brand    string
		price    float64
	)

	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"add"},
		Short:   "Log a purchase and see its footprint",
		Long: `Log a purchase. The CO2 estimate is computed from the category and price,
and a badge may unlock.

Without --category and --price an interactive form is shown.

Examples:
  shopimpact log --category "Books (Used)" --brand Goodwill --price 100
  shopimpact log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if category == "" || !cmd.Flags().Changed("price") {
				fm := purchaseForm{Category: category, Brand: brand}
				if cmd.Flags().Changed("price") {
					fm.Price = strconv.FormatFloat(price, 'f', -1, 64)
				}
				if err := newPurchaseForm(&fm).
					WithInput(cmd.InOrStdin()).
					WithOutput(cmd.OutOrStdout()).
					RunWithContext(ctx); err != nil {
					return fmt.Errorf("purchase form: %w", err)
				}
				parsed, err := parsePrice(fm.Price)
				if err != nil {
					return err
				}
				category, brand, price = strings.TrimSpace(fm.Category), strings.TrimSpace(fm.Brand), parsed
			}

			tr, cleanup, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			outcome, err := tr.RecordPurchase(ctx, category, brand, price)
			if outcome == nil {
				return err
			}
			out := cmd.OutOrStdout()
			printOutcome(out, outcome)
			return persistWarning(out, err)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "purchase category, e.g. \"Electronics\"")
	cmd.Flags().StringVarP(&brand, "brand", "b", "", "brand or store")
	cmd.Flags().Float64VarP(&price, "price", "p", 0, "price paid")

	return cmd
}

func newPurchaseForm(fm *purchaseForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Category").
				Suggestions(impact.Categories()).
				Value(&fm.Category).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("category is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Brand").
				Description("Optional").
				Value(&fm.Brand),
			huh.NewInput().
				Title("Price").
				Value(&fm.Price).
				Validate(func(s string) error {
					_, err := parsePrice(s)
					return err
				}),
		),
	)
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", impact.ErrInvalidPrice, raw)
	}
	if err := impact.ValidatePrice(price); err != nil {
		return 0, err
	}
	return price, nil
}
