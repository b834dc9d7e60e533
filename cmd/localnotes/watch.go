package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	lifecycleadapter "github.com/aretw0/localnotes/pkg/adapters/lifecycle"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the notes again whenever the data file changes",
		Long: `Watch lists the notes, then reloads and lists them again each time the
data file is changed by another process. Stop it with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd)
		},
	}
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command) error {
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}

	events, err := store.Watch(ctx)
	if err != nil {
		return err
	}

	src := lifecycleadapter.NewSource(events,
		lifecycleadapter.WithKey(a.cfg.Key),
		lifecycleadapter.ChangedOnly(store),
	)
	if err := src.Start(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printNotes(out, store.List())
	a.logger.Info("watching for changes", "dir", a.cfg.DataDir, "key", a.cfg.Key)

	for e := range src.Events() {
		a.logger.Debug("change detected", "event", e.String())
		if err := store.Reload(ctx); err != nil {
			a.logger.Warn("reload failed", "error", err)
			continue
		}
		fmt.Fprintf(out, "--- %s\n", e)
		printNotes(out, store.List())
	}

	a.logger.Info("watch stopped", "state", src.State())
	return nil
}
