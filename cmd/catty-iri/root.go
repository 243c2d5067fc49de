package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/metavacua/catty/config"
)

const (
	// Version is the catty-iri release version.
	Version = "0.1.0"

	appName = "catty-iri"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	verbose    bool
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     appName,
		Short:   "Manage the Catty ontology IRI registry",
		Long: `catty-iri is the single source of truth for the Catty ontology IRI
registry. It looks up canonical localhost/production IRIs, rebinds
JSON-LD documents between environments, detects fabricated IRIs, and
scaffolds new ontology documents. Everything runs offline.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath,
		"path to the IRI registry config")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"enable debug logging")

	cmd.AddCommand(
		rebindCommand(opts),
		validateCommand(opts),
		newCommand(opts),
		registerCommand(opts),
		listCommand(opts),
	)
	return cmd
}
