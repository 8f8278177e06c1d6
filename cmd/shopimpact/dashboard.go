package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/tui"
	"github.com/Veraticus/shopimpact/internal/tui/themes"
)

func newDashboardCmd() *cobra.Command {
	var (
		theme  string
		record bool
	)

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tr, cleanup, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(ctx, tr,
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithRecording(record),
			)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "forest", "color theme (forest, catppuccin-mocha)")
	cmd.Flags().BoolVar(&record, "record", false, "record dashboard events for debugging")

	return cmd
}
