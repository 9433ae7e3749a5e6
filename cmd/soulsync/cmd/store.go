package cmd

import (
	"github.com/spf13/cobra"
	"github.com/templui/soulsync/internal/app"
)

func StoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect raw local storage",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List every stored key and the size of its value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				keys, err := a.Store.Keys(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]any, 0, len(keys))
				for _, key := range keys {
					value, err := a.Store.Get(cmd.Context(), key)
					if err != nil {
						return err
					}
					rows = append(rows, []any{key, len(value)})
				}
				return table(cmd.OutOrStdout(), "KEY\tBYTES", rows)
			})
		},
	})

	return cmd
}
