package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aethiopicuschan/dts-go/pkg/instance"
)

var validateCmd = &cobra.Command{
	Use:   "validate-instance <instance.xbrl> <entrypoint.xsd> [more entry points...]",
	Short: "Check an instance document's dimensional contexts",
	Long: `Check an XBRL instance document's dimensional contexts against the
taxonomy loaded from the given entry points: repeated dimensions,
explicit use of default members, and dimension references that are not
dimension concepts.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := instance.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("parse instance: %w", err)
		}

		tax, err := loadTaxonomy(cmd, args[1:])
		if err != nil {
			return err
		}

		errs := instance.ValidateDimensions(doc, tax)
		if len(errs) == 0 {
			fmt.Println("ok: no dimensional findings")
			return nil
		}
		for _, e := range errs {
			fmt.Println(e)
		}
		return fmt.Errorf("%d dimensional finding(s)", len(errs))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
