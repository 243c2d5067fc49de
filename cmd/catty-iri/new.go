package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/metavacua/catty/rebind"
	"github.com/metavacua/catty/registry"
	"github.com/metavacua/catty/scaffold"
)

func newCommand(opts *rootOptions) *cobra.Command {
	var (
		description string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Scaffold a skeleton document for a new ontology",
		Long: `New produces a minimal JSON-LD skeleton for a freshly named ontology:
the shared context by its relative name, a localhost @base derived from
the registry's localhost environment, and an owl:Ontology root node.

The ontology is not registered; run "catty-iri register" once the file
is committed to the repository.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			reg, err := registry.Load(opts.configPath)
			if err != nil {
				return err
			}

			doc, err := scaffold.New(reg.Localhost()).Ontology(name, description)
			if err != nil {
				return err
			}

			data, err := rebind.Marshal(doc)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write scaffold: %w", err)
			}
			slog.Info("scaffolded ontology",
				slog.String("name", name),
				slog.String("output", output))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "human-readable ontology description")
	cmd.Flags().StringVar(&output, "output", "-", "output file (\"-\" for stdout)")
	return cmd
}
