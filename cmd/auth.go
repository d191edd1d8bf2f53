package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Twitch accounts",
	}

	cmd.AddCommand(newAuthURLCmd(app))

	return cmd
}

func newAuthURLCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the address that starts authorizing an account",
		Long:  "Open the printed address in a browser while `tcl run` is active. The authorized account is saved and its session starts without a restart.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.cfg.LoginURL())
			return err
		},
	}
}
