package main

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/metavacua/catty/registry"
	"github.com/metavacua/catty/scan"
)

func validateCommand(opts *rootOptions) *cobra.Command {
	var (
		globs []string
		root  string
	)

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Detect fabricated IRIs in ontology files",
		Long: `Validate audits JSON-LD files against the IRI registry: each file
must be valid JSON, declare a registered @base, and contain no @id
that falls outside the registered bases, the trusted external
namespaces, or the known compact-IRI prefixes.

With no files or globs, every ontology referenced by the registry is
validated. All findings across all files are reported in one pass; the
command fails if any file produced an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Load(opts.configPath)
			if err != nil {
				return err
			}

			files := append([]string(nil), args...)
			for _, pattern := range globs {
				matches, err := doublestar.FilepathGlob(pattern)
				if err != nil {
					return fmt.Errorf("invalid glob %q: %w", pattern, err)
				}
				files = append(files, matches...)
			}

			validator := scan.NewValidator(reg, root)
			ok := true
			if len(files) == 0 {
				ok = validator.ValidateAll()
			}
			for _, file := range files {
				if !validator.ValidateFile(file) {
					ok = false
				}
			}

			validator.Report(cmd.OutOrStdout())
			if !ok {
				return errors.New("IRI validation failed")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&globs, "glob", nil,
		"glob pattern of files to validate (supports **, repeatable)")
	cmd.Flags().StringVar(&root, "root", ".",
		"repository root for resolving registered ontology file paths")
	return cmd
}
