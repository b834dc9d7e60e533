package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/localnotes"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON, asYAML bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			return renderNotes(cmd, store.List(), asJSON, asYAML)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output in YAML format")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}

func renderNotes(cmd *cobra.Command, notes []localnotes.Note, asJSON, asYAML bool) error {
	if notes == nil {
		notes = []localnotes.Note{}
	}
	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		return writeJSON(out, notes)
	case asYAML:
		return writeYAML(out, notes)
	default:
		printNotes(out, notes)
		return nil
	}
}
