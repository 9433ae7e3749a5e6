package cmd

import "github.com/spf13/cobra"

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "soulsync",
		Short:        "Operator tools for a SoulSync data directory",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(AccountsCmd())
	rootCmd.AddCommand(PendingCmd())
	rootCmd.AddCommand(StoreCmd())
	rootCmd.AddCommand(MigrateCmd())
	return rootCmd
}
