package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/badge"
	"github.com/Veraticus/shopimpact/internal/cli"
)

func newBadgesCmd() *cobra.Command {
	var unlockedOnly bool

	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Show unlocked and locked badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, cleanup, err := initTracker(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			profile := tr.Profile()
			catalog := badge.All()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Badges %d/%d", len(profile.Badges), len(catalog))))
			for _, b := range catalog {
				if profile.HasBadge(b.ID) {
					fmt.Fprintf(out, "  %s\n     %s\n", cli.FormatBadge(b), cli.SubtleStyle.Render(b.Description))
					continue
				}
				if unlockedOnly {
					continue
				}
				fmt.Fprintf(out, "  %s %s\n", cli.LockIcon, cli.SubtleStyle.Render(b.Name+": "+b.Description))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unlockedOnly, "unlocked", false, "only show unlocked badges")

	return cmd
}
