package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChannelCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Manage the channels an account logs",
	}

	cmd.AddCommand(
		newChannelAddCmd(app),
		newChannelRemoveCmd(app),
	)

	return cmd
}

func newChannelAddCmd(app *app) *cobra.Command {
	var accountRef string

	cmd := &cobra.Command{
		Use:   "add <channel>...",
		Short: "Add channels to an account",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveAccountID(cmd.Context(), app, accountRef)
			if err != nil {
				return err
			}
			channels, err := app.service.AddChannels(cmd.Context(), id, args...)
			if err != nil {
				return err
			}

			return printChannels(cmd, string(id), channels)
		},
	}

	cmd.Flags().StringVar(&accountRef, "account", "", "Account ID or login")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newChannelRemoveCmd(app *app) *cobra.Command {
	var accountRef string

	cmd := &cobra.Command{
		Use:   "remove <channel>...",
		Short: "Stop logging channels for an account",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveAccountID(cmd.Context(), app, accountRef)
			if err != nil {
				return err
			}
			channels, err := app.service.RemoveChannels(cmd.Context(), id, args...)
			if err != nil {
				return err
			}

			return printChannels(cmd, string(id), channels)
		},
	}

	cmd.Flags().StringVar(&accountRef, "account", "", "Account ID or login")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func printChannels(cmd *cobra.Command, id string, channels []string) error {
	listed := "none"
	if len(channels) > 0 {
		listed = "#" + strings.Join(channels, ", #")
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s channels: %s\n", id, listed)
	return err
}
