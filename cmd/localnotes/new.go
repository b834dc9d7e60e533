package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			id := store.Create(ctx)
			if patch := patchFromFlags(cmd.Flags()); !patch.Empty() {
				store.Update(ctx, id, patch)
			}
			if err := saved(ctx, store); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	addPatchFlags(cmd.Flags())
	return cmd
}
