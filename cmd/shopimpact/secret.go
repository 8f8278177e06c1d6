package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/shopimpact/internal/cli"
	"github.com/Veraticus/shopimpact/internal/config"
)

func newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Keep Google Sheets credentials in the OS keyring",
		Long: fmt.Sprintf(`Store OAuth credentials in the OS keyring instead of the config file.
Export reads them when neither the config nor the GOOGLE_SHEETS_* environment
sets them.

Names: %s`, strings.Join(config.SecretNames(), ", ")),
	}
	cmd.AddCommand(newSecretSetCmd(), newSecretDeleteCmd())
	return cmd
}

func newSecretSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <name>",
		Short:     "Store a credential read from standard input",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.SecretNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: ", name)

			value, err := cli.NewLineReader(cmd.InOrStdin()).ReadLine(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			fmt.Fprintln(out)

			if err := config.SetSecret(name, value); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Stored %s in the keyring", name)))
			return nil
		},
	}
}

func newSecretDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "delete <name>",
		Short:     "Remove a credential from the keyring",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.SecretNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			err := config.DeleteSecret(name)
			if errors.Is(err, config.ErrSecretNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("%s was not stored", name)))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Removed %s from the keyring", name)))
			return nil
		},
	}
}
