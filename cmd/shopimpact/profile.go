package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/cli"
	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/tracker"
)

type profileForm struct {
	Name   string
	Budget string
	Goal   string
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileEditCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, cleanup, err := initTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			printProfile(cmd.OutOrStdout(), tr.Profile())
			return nil
		},
	}
}

func newProfileEditCmd() *cobra.Command {
	var (
		name   string
		budget float64
		goal   float64
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change your name, monthly budget or CO2 goal",
		Long: `Change profile settings. Flags that are not given keep their current value.
With no flags at all an interactive form is shown.

Examples:
  shopimpact profile edit --name Sam --budget 2000 --goal 40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tr, cleanup, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			current := tr.Profile()
			flags := cmd.Flags()

			if !flags.Changed("name") && !flags.Changed("budget") && !flags.Changed("goal") {
				fm := profileForm{
					Name:   current.Name,
					Budget: strconv.FormatFloat(current.MonthlyBudget, 'f', -1, 64),
					Goal:   strconv.FormatFloat(current.CO2Goal, 'f', -1, 64),
				}
				if err := newProfileForm(&fm).
					WithInput(cmd.InOrStdin()).
					WithOutput(cmd.OutOrStdout()).
					RunWithContext(ctx); err != nil {
					return fmt.Errorf("profile form: %w", err)
				}
				name = strings.TrimSpace(fm.Name)
				budget, _ = strconv.ParseFloat(strings.TrimSpace(fm.Budget), 64)
				goal, _ = strconv.ParseFloat(strings.TrimSpace(fm.Goal), 64)
			} else {
				if !flags.Changed("name") {
					name = current.Name
				}
				if !flags.Changed("budget") {
					budget = current.MonthlyBudget
				}
				if !flags.Changed("goal") {
					goal = current.CO2Goal
				}
			}

			profile, err := tr.UpdateProfile(ctx, name, budget, goal)
			if err != nil && !errors.Is(err, tracker.ErrPersist) {
				return err
			}
			out := cmd.OutOrStdout()
			printProfile(out, profile)
			return persistWarning(out, err)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().Float64Var(&budget, "budget", 0, "monthly budget")
	cmd.Flags().Float64Var(&goal, "goal", 0, "monthly CO2 goal in kg")

	return cmd
}

func newProfileForm(fm *profileForm) *huh.Form {
	nonNegative := func(s string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		if f < 0 {
			return fmt.Errorf("must not be negative")
		}
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Monthly budget").
				Value(&fm.Budget).
				Validate(nonNegative),
			huh.NewInput().
				Title("CO2 goal (kg/month)").
				Value(&fm.Goal).
				Validate(nonNegative),
		),
	)
}

func printProfile(w io.Writer, p model.Profile) {
	content := fmt.Sprintf("Name:           %s\nMonthly budget: %s\nCO2 goal:       %.2f kg\nBadges:         %d\nJoined:         %s",
		p.Name, cli.FormatMoney(p.MonthlyBudget), p.CO2Goal, len(p.Badges), p.JoinedDate.Format("2006-01-02"))
	fmt.Fprintln(w, cli.RenderBox("👤 Profile", content))
}
