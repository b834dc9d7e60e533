package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/localnotes"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of localnotes",
		Args:  cobra.NoArgs,
		// Skip config resolution; version must work anywhere.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "localnotes version %s\n", localnotes.Version())
		},
	}
}
