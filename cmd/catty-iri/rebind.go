package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/metavacua/catty/rebind"
	"github.com/metavacua/catty/registry"
)

func rebindCommand(opts *rootOptions) *cobra.Command {
	var (
		ontology string
		target   string
		input    string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "rebind",
		Short: "Rewrite a JSON-LD file for a target environment",
		Long: `Rebind rewrites every registered IRI in a JSON-LD file so the
document becomes internally consistent with the target environment.
The input file is left untouched; the rewritten document is written to
the output path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Load(opts.configPath)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read input document: %w", err)
			}

			rebound, err := rebind.New(reg).Rebind(content, ontology, rebind.Target(target))
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, rebound, 0o644); err != nil {
				return fmt.Errorf("write output document: %w", err)
			}

			slog.Info("rebound document",
				slog.String("ontology", ontology),
				slog.String("target", target),
				slog.String("output", output))
			return nil
		},
	}

	cmd.Flags().StringVar(&ontology, "ontology", "", "ontology key to rebind")
	cmd.Flags().StringVar(&target, "target", "production", "target environment (localhost or production)")
	cmd.Flags().StringVar(&input, "input", "", "input JSON-LD file")
	cmd.Flags().StringVar(&output, "output", "", "output JSON-LD file")
	_ = cmd.MarkFlagRequired("ontology")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
