// Package loader wires discovery, parsing and relationship extraction
// into a single front door for building taxonomies.
package loader

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/aethiopicuschan/dts-go/pkg/dts"
	"github.com/aethiopicuschan/dts-go/pkg/taxonomy"
	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// CollectMode selects the document collection strategy.
type CollectMode int

const (
	// CollectDiscovery follows the XBRL discovery rules to a fixed
	// point.
	CollectDiscovery CollectMode = iota
	// CollectTrivial loads exactly the supplied documents.
	CollectTrivial
)

// Options configures a taxonomy build.
type Options struct {
	// CacheSize caps the document cache; zero means the default.
	CacheSize int
	// Lenient tolerates per-item failures during discovery,
	// classification and concept building.
	Lenient bool
	// Mode selects the collection strategy.
	Mode CollectMode
	// Resolver maps logical URIs to fetch locations; nil means
	// identity.
	Resolver dts.Resolver
	// HTTPClient is used for http(s) URIs; nil means the default
	// client.
	HTTPClient *http.Client
	// Logger receives lenient-mode warnings; nil means no logging.
	Logger *zap.Logger
	// ArcFilter restricts which arcs yield relationships; nil admits
	// all.
	ArcFilter taxonomy.ArcFilter
	// ExtraSubstitutionGroups supplies substitution-group edges for
	// globals outside the loaded documents.
	ExtraSubstitutionGroups taxonomy.SubstitutionGroupMap
	// Builder overrides the document builder; nil means a caching
	// fetching builder per the options above.
	Builder dts.DocumentBuilder
}

// Load builds a taxonomy from the given entry points: collect the DTS,
// index it, extract relationships and assemble the query facade.
func Load(ctx context.Context, entrypoints []*url.URL, opts Options) (*taxonomy.Taxonomy, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	builder := opts.Builder
	if builder == nil {
		fetching := dts.NewFetchingBuilder(opts.Resolver, opts.HTTPClient)
		builder = dts.NewCachingBuilder(fetching, opts.CacheSize, logger)
	}

	collector := &dts.Collector{Builder: builder, Lenient: opts.Lenient, Logger: logger}
	var (
		docs []*xmlx.Document
		err  error
	)
	switch opts.Mode {
	case CollectTrivial:
		docs, err = collector.CollectTrivial(ctx, entrypoints)
	default:
		docs, err = collector.Collect(ctx, entrypoints)
	}
	if err != nil {
		return nil, fmt.Errorf("loader: collect documents: %w", err)
	}

	base := taxonomy.NewBase(docs)

	factory := &taxonomy.Factory{
		Lenient:   opts.Lenient,
		Logger:    logger,
		ArcFilter: opts.ArcFilter,
	}
	rels, err := factory.Relationships(base)
	if err != nil {
		return nil, fmt.Errorf("loader: extract relationships: %w", err)
	}

	tax, err := taxonomy.New(base, rels, taxonomy.Config{
		Lenient:                 opts.Lenient,
		Logger:                  logger,
		ExtraSubstitutionGroups: opts.ExtraSubstitutionGroups,
	})
	if err != nil {
		return nil, fmt.Errorf("loader: build taxonomy: %w", err)
	}
	return tax, nil
}
