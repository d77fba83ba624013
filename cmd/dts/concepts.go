package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var conceptKind string

var conceptsCmd = &cobra.Command{
	Use:   "concepts <entrypoint.xsd> [more entry points...]",
	Short: "List concept declarations of a taxonomy",
	Long: `List the concept declarations of a taxonomy, one per line, with
their classification.

Examples:

  # List every concept
  dts concepts entry.xsd

  # Only hypercubes
  dts concepts --kind hypercube entry.xsd

  # Only dimensions (typed and explicit)
  dts concepts --kind explicitDimension entry.xsd
  dts concepts --kind typedDimension entry.xsd
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tax, err := loadTaxonomy(cmd, args)
		if err != nil {
			return err
		}

		for _, c := range tax.ConceptDecls() {
			if conceptKind != "" && c.Kind().String() != conceptKind {
				continue
			}
			fmt.Printf("%-18s %s\n", c.Kind(), c.TargetEName())
		}
		return nil
	},
}

func init() {
	conceptsCmd.Flags().StringVar(&conceptKind, "kind", "",
		"filter by kind (primaryItem, tuple, hypercube, explicitDimension, typedDimension)")
	rootCmd.AddCommand(conceptsCmd)
}
