package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/localnotes"
)

var errNoteNotFound = errors.New("note not found")

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or content of a note",
		Long: `Edit applies only the flags that are given: --title "" clears the title,
leaving --title out keeps it. Without any flag the note is only touched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			id := args[0]
			if !store.Update(ctx, id, patchFromFlags(cmd.Flags())) {
				return fmt.Errorf("%w: %s", errNoteNotFound, id)
			}
			if err := saved(ctx, store); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %s\n", id)
			return nil
		},
	}

	addPatchFlags(cmd.Flags())
	return cmd
}

func addPatchFlags(flags *pflag.FlagSet) {
	flags.String("title", "", "Note title")
	flags.String("content", "", "Note content")
}

// patchFromFlags maps the explicitly given flags to patch fields.
func patchFromFlags(flags *pflag.FlagSet) localnotes.Patch {
	var patch localnotes.Patch
	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		patch = patch.WithTitle(title)
	}
	if flags.Changed("content") {
		content, _ := flags.GetString("content")
		patch = patch.WithContent(content)
	}
	return patch
}
