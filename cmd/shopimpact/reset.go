package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/cli"
)

func newResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all purchases and badges and restore the default profile",
		Long: `Reset clears the purchase history and every unlocked badge together, and
restores the default profile with a new joined date.

This is a destructive operation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tr, cleanup, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if !force {
				fmt.Fprintf(out, "This will delete %d purchases and %d badges.\n", len(tr.History()), len(tr.Profile().Badges))
				ok, err := cli.Confirm(ctx, cli.NewLineReader(cmd.InOrStdin()), out, "Are you sure you want to continue?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.FormatInfo("Reset cancelled"))
					return nil
				}
			}

			if err := tr.ResetAll(ctx); err != nil {
				return persistWarning(out, err)
			}
			fmt.Fprintln(out, cli.FormatSuccess("All data has been reset"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
