package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/localnotes"
)

// app carries the global flags and what PersistentPreRunE resolves from them.
type app struct {
	verbose    bool
	configPath string
	dir        string
	key        string
	format     string
	memory     bool

	cfg    localnotes.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "localnotes",
		Short: "A single-user note store with write-through persistence",
		Long: `localnotes keeps an ordered list of notes, newest first, and saves the
whole collection after every change. Data lives in one file under the data
directory, written atomically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to a config file (default: .localnotes.json found upwards)")
	flags.StringVar(&a.dir, "dir", "", "Data directory")
	flags.StringVar(&a.key, "key", "", "Storage key of the note collection")
	flags.StringVar(&a.format, "format", "", "Data file format (json|yaml)")
	flags.BoolVar(&a.memory, "memory", false, "Keep notes in memory only (nothing is saved)")

	rootCmd.AddCommand(
		newListCmd(a),
		newSearchCmd(a),
		newNewCmd(a),
		newEditCmd(a),
		newShowCmd(a),
		newDeleteCmd(a),
		newWatchCmd(a),
		newStatusCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// setup resolves the configuration and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := localnotes.LoadConfig(localnotes.LoadConfigInput{
		ConfigPath: a.configPath,
		Env:        environ(),
		Overrides: localnotes.Config{
			DataDir: a.dir,
			Key:     a.key,
			Format:  a.format,
		},
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.SlogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
	slog.SetDefault(a.logger)

	a.logger.Debug("config resolved",
		"data_dir", cfg.DataDir,
		"key", cfg.Key,
		"format", cfg.Format,
		"global", cfg.Sources.Global,
		"project", cfg.Sources.Project,
		"dotenv", cfg.Sources.DotEnv,
	)
	return nil
}

// openStore opens the note store described by the resolved configuration.
func (a *app) openStore(ctx context.Context) (*localnotes.Store, error) {
	opts := []localnotes.Option{
		localnotes.WithFormat(a.cfg.Format),
		localnotes.WithKey(a.cfg.Key),
		localnotes.WithLogger(a.logger),
	}
	if a.memory {
		opts = append(opts, localnotes.WithAdapter("memory"))
	}

	store, err := localnotes.New(ctx, a.cfg.DataDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("open notes: %w", err)
	}
	return store, nil
}

// saved turns a write-through failure into a command error.
// The store keeps the change in memory, so one more Flush is worth a try.
func saved(ctx context.Context, store *localnotes.Store) error {
	if store.InSync() {
		return nil
	}
	return store.Flush(ctx)
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
