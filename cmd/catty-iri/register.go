package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/metavacua/catty/registry"
)

func registerCommand(opts *rootOptions) *cobra.Command {
	var (
		localhostIRI  string
		productionIRI string
		file          string
	)

	cmd := &cobra.Command{
		Use:   "register NAME",
		Short: "Add an ontology to the IRI registry",
		Long: `Register validates an ontology entry and persists it to the registry
config. When the IRI flags are omitted, the canonical base IRIs are
derived from the configured environments
({base_url}{namespace_path}/NAME#).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			reg, err := registry.Load(opts.configPath)
			if err != nil {
				return err
			}

			if localhostIRI == "" {
				localhostIRI = reg.Localhost().BaseIRI(name)
			}
			if productionIRI == "" {
				productionIRI = reg.Production().BaseIRI(name)
			}

			if err := reg.Register(name, localhostIRI, productionIRI, file); err != nil {
				return err
			}

			slog.Info("registered ontology",
				slog.String("name", name),
				slog.String("localhost_iri", localhostIRI),
				slog.String("production_iri", productionIRI))
			return nil
		},
	}

	cmd.Flags().StringVar(&localhostIRI, "localhost-iri", "", "localhost base IRI (derived when empty)")
	cmd.Flags().StringVar(&productionIRI, "production-iri", "", "production base IRI (derived when empty)")
	cmd.Flags().StringVar(&file, "file", "", "repository-relative path to the JSON-LD file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
