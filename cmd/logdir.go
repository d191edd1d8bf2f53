package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogDirCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log-dir [path]",
		Short: "Show or set the chat log directory",
		Long:  "Without an argument prints the directory chat logs are written to. With one, stores it; running sessions keep their directory until restarted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := app.service.SetLogDirectory(cmd.Context(), args[0]); err != nil {
					return err
				}
			}

			dir, err := app.service.LogDirectory(cmd.Context())
			if err != nil {
				return err
			}
			if dir == "" {
				dir = "(working directory)"
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
			return err
		},
	}
}
