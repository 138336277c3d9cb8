package main

import (
	"github.com/spf13/cobra"
	"github.com/terraincognita07/titanlift/internal/cli"
	"github.com/terraincognita07/titanlift/internal/config"
)

var (
	userDBPath     string
	resetConfirmed bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Inspect or reset the locally stored onboarding profile",
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the local profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cli.RunShowUserCommand(cmd.OutOrStdout(), resolveUserDBPath())
	},
}

var userResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the local profile so onboarding runs again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cli.RunResetUserCommand(cmd.OutOrStdout(), resolveUserDBPath(), resetConfirmed)
	},
}

func init() {
	userCmd.PersistentFlags().StringVar(&userDBPath, "db", "", "database path (defaults to DB_PATH)")
	userResetCmd.Flags().BoolVarP(&resetConfirmed, "yes", "y", false, "confirm removal")
	userCmd.AddCommand(userShowCmd, userResetCmd)
}

func resolveUserDBPath() string {
	if userDBPath != "" {
		return userDBPath
	}
	return config.DatabasePath(envFile)
}
