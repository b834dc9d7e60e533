package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Long:  `Delete removes the note with the given id. Deleting an unknown id is not an error.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			id := args[0]
			if !store.Delete(ctx, id) {
				fmt.Fprintf(cmd.OutOrStdout(), "Note not found: %s\n", id)
				return nil
			}
			if err := saved(ctx, store); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %s\n", id)
			return nil
		},
	}
}
