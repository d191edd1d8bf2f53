package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage authorized accounts",
	}

	cmd.AddCommand(
		newAccountListCmd(app),
		newAccountRemoveCmd(app),
	)

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured accounts and their channels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.service.Status(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(status)
			}

			rendered, err := app.statusRenderer(status)
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output raw JSON")

	return cmd
}

func newAccountRemoveCmd(app *app) *cobra.Command {
	var accountRef string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an account; a running daemon stops its session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveAccountID(cmd.Context(), app, accountRef)
			if err != nil {
				return err
			}
			if err := app.service.RemoveAccount(cmd.Context(), id); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed account %s\n", id)
			return err
		},
	}

	cmd.Flags().StringVar(&accountRef, "account", "", "Account ID or login")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
