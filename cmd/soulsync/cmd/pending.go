package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/soulsync/internal/app"
)

func PendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Review professionals awaiting verification",
	}

	cmd.AddCommand(pendingListCmd())
	cmd.AddCommand(pendingVerifyCmd())
	cmd.AddCommand(pendingRejectCmd())
	return cmd
}

func pendingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the verification queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				pending, err := a.AuthService.PendingProfessionals(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]any, 0, len(pending))
				for _, p := range pending {
					rows = append(rows, []any{p.ID, p.Email, p.Username, p.Occupation, p.CreatedAt.Format("2006-01-02")})
				}
				return table(cmd.OutOrStdout(), "ID\tEMAIL\tUSERNAME\tOCCUPATION\tREGISTERED", rows)
			})
		},
	}
}

func pendingVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Approve a professional account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				account, err := a.AuthService.VerifyProfessional(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if account == nil {
					return fmt.Errorf("no pending professional with id %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "verified %s (%s)\n", account.Username, account.Email)
				return nil
			})
		},
	}
}

func pendingRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <id>",
		Short: "Drop a professional from the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				entry, err := a.AuthService.RejectProfessional(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if entry == nil {
					return fmt.Errorf("no pending professional with id %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rejected %s (%s)\n", entry.Username, entry.Email)
				return nil
			})
		},
	}
}
