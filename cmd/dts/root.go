package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aethiopicuschan/dts-go/pkg/dts"
	"github.com/aethiopicuschan/dts-go/pkg/loader"
	"github.com/aethiopicuschan/dts-go/pkg/taxonomy"
)

var (
	configPath string
	cacheSize  int
	lenient    bool
	trivial    bool
	mirrorRoot string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dts <entrypoint.xsd> [more entry points...]",
	Short: "dts is a CLI for exploring XBRL taxonomies",
	Long: `dts is a CLI tool built on top of the dts-go library.

By default it discovers the full taxonomy set from the given entry
points and prints a summary:
  - number of documents
  - number of concept declarations
  - number of relationships

Use the 'concepts' and 'rels' subcommands to inspect the taxonomy, and
'validate-instance' to check an instance document's dimensional
contexts against it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tax, err := loadTaxonomy(cmd, args)
		if err != nil {
			return err
		}

		fmt.Printf("documents    : %d\n", len(tax.Base().Documents()))
		fmt.Printf("concepts     : %d\n", len(tax.ConceptDecls()))
		fmt.Printf("relationships: %d\n", len(tax.Relationships()))

		return nil
	},
}

func init() {
	bi, ok := debug.ReadBuildInfo()
	if ok {
		rootCmd.Version = bi.Main.Version
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file with build options")
	pf.IntVar(&cacheSize, "cache-size", 0, "document cache capacity (default 5000)")
	pf.BoolVar(&lenient, "lenient", false, "tolerate per-document and per-arc failures")
	pf.BoolVar(&trivial, "trivial", false, "load only the given documents, follow nothing")
	pf.StringVar(&mirrorRoot, "mirror-root", "", "map remote URIs into this local mirror directory")
	pf.BoolVar(&verbose, "verbose", false, "log skipped items and cache activity")
}

// buildOptions assembles loader options from the config file (if any)
// overridden by flags.
func buildOptions(cmd *cobra.Command) (loader.Options, error) {
	var opts loader.Options
	if configPath != "" {
		cfg, err := loader.LoadConfigFile(configPath)
		if err != nil {
			return loader.Options{}, err
		}
		opts = cfg.Options()
	}

	if cmd.Flags().Changed("cache-size") {
		opts.CacheSize = cacheSize
	}
	if cmd.Flags().Changed("lenient") {
		opts.Lenient = lenient
	}
	if cmd.Flags().Changed("trivial") && trivial {
		opts.Mode = loader.CollectTrivial
	}
	if cmd.Flags().Changed("mirror-root") {
		opts.Resolver = dts.LocalMirrorResolver{Root: mirrorRoot}
	}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return loader.Options{}, err
		}
		opts.Logger = logger
	}
	return opts, nil
}

// entryPointURL turns a CLI argument into a URL; bare paths become
// file URIs.
func entryPointURL(arg string) (*url.URL, error) {
	u, err := url.Parse(arg)
	if err != nil {
		return nil, fmt.Errorf("entry point %q: %w", arg, err)
	}
	if u.Scheme == "" {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("entry point %q: %w", arg, err)
		}
		u = &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	}
	return u, nil
}

func loadTaxonomy(cmd *cobra.Command, args []string) (*taxonomy.Taxonomy, error) {
	opts, err := buildOptions(cmd)
	if err != nil {
		return nil, err
	}

	entrypoints := make([]*url.URL, 0, len(args))
	for _, arg := range args {
		u, err := entryPointURL(arg)
		if err != nil {
			return nil, err
		}
		entrypoints = append(entrypoints, u)
	}

	tax, err := loader.Load(cmd.Context(), entrypoints, opts)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	return tax, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
