package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aethiopicuschan/dts-go/pkg/taxonomy"
	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

var (
	relArcrole string
	relSource  string
	relResolve bool
)

var relsCmd = &cobra.Command{
	Use:   "rels <entrypoint.xsd> [more entry points...]",
	Short: "List relationships of a taxonomy",
	Long: `List the relationships of a taxonomy, one per line.

Standard relationships print source and target concepts; non-standard
relationships print endpoint fragment keys.

Examples:

  # All relationships
  dts rels entry.xsd

  # Only domain-member arcs
  dts rels --arcrole http://xbrl.org/int/dim/arcrole/domain-member entry.xsd

  # Outgoing relationships of one concept
  dts rels --source '{http://example.com/tax}Sales' entry.xsd

  # After prohibition/overriding resolution
  dts rels --resolve entry.xsd
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tax, err := loadTaxonomy(cmd, args)
		if err != nil {
			return err
		}
		if relResolve {
			tax, err = tax.ResolveProhibitionAndOverriding(taxonomy.XBRL21NetworkFactory{})
			if err != nil {
				return fmt.Errorf("resolve networks: %w", err)
			}
		}

		rels := tax.Relationships()
		if relSource != "" {
			source, err := xmlx.ParseEName(relSource)
			if err != nil {
				return err
			}
			rels = nil
			for _, rel := range tax.OutgoingStandard(source) {
				rels = append(rels, rel)
			}
		}

		for _, rel := range rels {
			if relArcrole != "" && rel.Arcrole() != relArcrole {
				continue
			}
			printRelationship(rel)
		}
		return nil
	},
}

func printRelationship(rel taxonomy.Relationship) {
	switch r := rel.(type) {
	case taxonomy.InterConceptRelationship:
		fmt.Printf("%s  %s -> %s  [%s]\n", r.Arcrole(), r.SourceConcept(), r.TargetConcept(), r.ELR())
	case taxonomy.ConceptResourceRelationship:
		fmt.Printf("%s  %s -> %q  [%s]\n", r.Arcrole(), r.SourceConcept(), r.Resource().Text(), r.ELR())
	default:
		fmt.Printf("%s  %s -> %s  [%s]\n", rel.Arcrole(), rel.SourceKey(), rel.TargetKey(), rel.ELR())
	}
}

func init() {
	relsCmd.Flags().StringVar(&relArcrole, "arcrole", "", "filter by arcrole URI")
	relsCmd.Flags().StringVar(&relSource, "source", "", "filter by source concept ({namespace}local)")
	relsCmd.Flags().BoolVar(&relResolve, "resolve", false, "apply prohibition/overriding resolution first")
	rootCmd.AddCommand(relsCmd)
}
