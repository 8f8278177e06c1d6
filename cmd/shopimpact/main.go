package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/shopimpact/internal/cli"
	"github.com/Veraticus/shopimpact/internal/common"
	"github.com/Veraticus/shopimpact/internal/config"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "shopimpact",
		Short: "🌱 Track the carbon footprint of what you buy",
		Long: `shopimpact: log your purchases, see an estimate of their CO2 footprint,
get greener alternatives and unlock badges along the way.

Estimates are rough spend-based multipliers, not real emissions data.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/shopimpact/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, text, json)")
	flags.String("log-file", "", "write logs to a rotated file instead of stderr")
	flags.String("storage", "", "storage driver (json, sqlite, sqlite-pure)")
	flags.String("data", "", "path of the saved state (default: $HOME/.local/share/shopimpact/shopimpact.{json,db})")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("logging.file", flags.Lookup("log-file"))
	_ = viper.BindPFlag("storage.driver", flags.Lookup("storage"))
	_ = viper.BindPFlag("storage.path", flags.Lookup("data"))

	rootCmd.AddCommand(
		newLogCmd(),
		newHistoryCmd(),
		newBadgesCmd(),
		newProfileCmd(),
		newResetCmd(),
		newSuggestCmd(),
		newSummaryCmd(),
		newImportCmd(),
		newImportOFXCmd(),
		newExportCmd(),
		newSecretCmd(),
		newDashboardCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func initConfig(cfgFile string) error {
	config.SetDefaults()

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("SHOPIMPACT")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	return setupLogging()
}

func setupLogging() error {
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	switch level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: invalid log level %q", common.ErrInvalidConfig, level)
	}
	switch format {
	case "console", "text", "json":
	default:
		return fmt.Errorf("%w: invalid log format %q", common.ErrInvalidConfig, format)
	}

	file := viper.GetString("logging.file")
	if file != "" {
		file = filepath.Clean(config.ExpandPath(file))
	}

	if _, err := common.SetupLogger(common.ParseLevel(level), format, file); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			slog.Debug("shopimpact version", "version", version)
			fmt.Fprintf(cmd.OutOrStdout(), "shopimpact %s\n", version)
		},
	}
}
