package cmd

import (
	"github.com/spf13/cobra"
	"github.com/templui/soulsync/internal/app"
)

func AccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Inspect the account directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every account in the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				accounts, err := a.AuthService.Accounts(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]any, 0, len(accounts))
				for _, account := range accounts {
					rows = append(rows, []any{account.ID, account.Email, account.Username, account.Role, account.Verified})
				}
				return table(cmd.OutOrStdout(), "ID\tEMAIL\tUSERNAME\tROLE\tVERIFIED", rows)
			})
		},
	})

	return cmd
}
