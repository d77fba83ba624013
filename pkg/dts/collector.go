package dts

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// Namespaces driving document discovery.
const (
	nsXSD    = "http://www.w3.org/2001/XMLSchema"
	nsLink   = "http://www.xbrl.org/2003/linkbase"
	nsXBRLDT = "http://xbrl.org/2005/xbrldt"
)

// A DiscoveryError aborts a strict-mode DTS build.
type DiscoveryError struct {
	URI   string
	Cause error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("dts: discover %s: %v", e.URI, e.Cause)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Cause
}

// A Collector finds the transitive closure of taxonomy documents
// reachable from a set of entry points, per the XBRL discovery rules:
// schema import/include locations, linkbaseRef/loc/roleRef/arcroleRef
// hrefs (including linkbases embedded in schema appinfo) and
// typedDomainRef document parts.
type Collector struct {
	Builder DocumentBuilder
	// Lenient skips documents that fail to fetch or parse, with a
	// warning; otherwise the first failure aborts the build.
	Lenient bool
	Logger  *zap.Logger
}

// Collect runs discovery to a fixed point and returns the documents in
// discovery order. The context is checked between documents.
func (c *Collector) Collect(ctx context.Context, entrypoints []*url.URL) ([]*xmlx.Document, error) {
	return c.collect(ctx, entrypoints, true)
}

// CollectTrivial fetches exactly the given URIs, following no
// references.
func (c *Collector) CollectTrivial(ctx context.Context, uris []*url.URL) ([]*xmlx.Document, error) {
	return c.collect(ctx, uris, false)
}

func (c *Collector) collect(ctx context.Context, entrypoints []*url.URL, follow bool) ([]*xmlx.Document, error) {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	seen := make(map[string]bool)
	var queue []*url.URL
	for _, u := range entrypoints {
		u = stripFragment(u)
		if u == nil || seen[u.String()] {
			continue
		}
		seen[u.String()] = true
		queue = append(queue, u)
	}

	var docs []*xmlx.Document
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		uri := queue[0]
		queue = queue[1:]

		doc, err := c.Builder.Build(ctx, uri)
		if err != nil {
			if !c.Lenient {
				return nil, &DiscoveryError{URI: uri.String(), Cause: err}
			}
			logger.Warn("skipping document", zap.String("uri", uri.String()), zap.Error(err))
			continue
		}
		docs = append(docs, doc)

		if !follow {
			continue
		}
		for _, ref := range discoverReferences(doc) {
			if seen[ref.String()] {
				continue
			}
			seen[ref.String()] = true
			queue = append(queue, ref)
		}
	}
	return docs, nil
}

// discoverReferences enumerates the document URIs referenced from one
// taxonomy document, resolved against base URIs and with fragments
// stripped. Order is document order; duplicates are removed.
func discoverReferences(doc *xmlx.Document) []*url.URL {
	var (
		out  []*url.URL
		seen = make(map[string]bool)
	)
	add := func(e xmlx.Elem, raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return
		}
		ref, err := url.Parse(raw)
		if err != nil {
			return
		}
		target := stripFragment(e.BaseURI().ResolveReference(ref))
		if target.String() == "" || seen[target.String()] {
			return
		}
		seen[target.String()] = true
		out = append(out, target)
	}

	xlinkHref := xmlx.EName{Namespace: xmlx.XLinkNamespace, Local: "href"}
	xlinkType := xmlx.EName{Namespace: xmlx.XLinkNamespace, Local: "type"}

	for _, e := range doc.Root().Descendants() {
		name := e.Name()
		switch {
		case name.Namespace == nsXSD && (name.Local == "import" || name.Local == "include"):
			add(e, e.AttrOr(xmlx.EName{Local: "schemaLocation"}, ""))

		case name.Namespace == nsLink &&
			(name.Local == "linkbaseRef" || name.Local == "loc" ||
				name.Local == "roleRef" || name.Local == "arcroleRef"):
			add(e, e.AttrOr(xlinkHref, ""))

		case e.AttrOr(xlinkType, "") == "locator":
			// Locators in non-standard links still pull their target
			// documents into the DTS.
			add(e, e.AttrOr(xlinkHref, ""))
		}

		if ref, ok := e.Attr(xmlx.EName{Namespace: nsXBRLDT, Local: "typedDomainRef"}); ok {
			add(e, ref)
		}
	}
	return out
}

func stripFragment(u *url.URL) *url.URL {
	if u == nil || u.Fragment == "" {
		return u
	}
	clone := *u
	clone.Fragment = ""
	return &clone
}
