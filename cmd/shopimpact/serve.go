package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/shopimpact/internal/certs"
	"github.com/Veraticus/shopimpact/internal/config"
	"github.com/Veraticus/shopimpact/internal/metrics"
)

func newServeCmd() *cobra.Command {
	var useTLS bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve Prometheus metrics and a JSON summary over HTTP",
		Long: `Expose /metrics, /api/summary and /healthz. Gauges are refreshed from the
saved state on every scrape.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tr, cleanup, err := initTracker(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			addr := viper.GetString("metrics.addr")
			server := metrics.NewServer(metrics.New(tr, nil), slog.Default())
			if useTLS {
				cert, err := certs.NewStore(filepath.Join(config.Dir(), "certs")).Certificate()
				if err != nil {
					return fmt.Errorf("failed to prepare TLS certificate: %w", err)
				}
				server.UseTLS(cert)
			}

			slog.Info("Serving metrics", "addr", addr, "data", tr.Location())
			if err := server.Run(ctx, addr); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :9464)")
	cmd.Flags().BoolVar(&useTLS, "tls", false, "serve HTTPS with a self-signed localhost certificate")
	_ = viper.BindPFlag("metrics.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
