package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "tcl",
		Short:         "Twitch chat logger (tcl): record chat for a fleet of accounts",
		Long:          "tcl keeps one chat session per authorized Twitch account, logs every message, join and part to per-channel daily files, and follows changes to the accounts file while running.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	app, err := wireApp(&verbose)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newAccountCmd(app),
		newChannelCmd(app),
		newLogDirCmd(app),
		newAuthCmd(app),
	)

	return rootCmd
}
