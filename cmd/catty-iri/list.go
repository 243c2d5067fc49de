package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/metavacua/catty/registry"
)

func listCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered ontologies",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Load(opts.configPath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLOCALHOST\tPRODUCTION\tFILE")
			for _, name := range reg.Names() {
				entry, err := reg.Entry(name)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					name, entry.LocalhostIRI, entry.ProductionIRI, entry.File)
			}
			return w.Flush()
		},
	}
}
