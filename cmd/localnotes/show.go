package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON, asYAML bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}

			note, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", errNoteNotFound, args[0])
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				return writeJSON(out, note)
			case asYAML:
				return writeYAML(out, note)
			default:
				printNote(out, note)
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output in YAML format")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}
