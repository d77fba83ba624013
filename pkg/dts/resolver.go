// Package dts locates, fetches, caches and discovers the documents of
// a Discoverable Taxonomy Set.
package dts

import (
	"net/url"
	"path"
	"path/filepath"
)

// A Resolver maps a logical document URI to the URI it is actually
// fetched from. Resolvers are total: they always produce a URI, and
// whether that URI can be opened is the document builder's problem.
type Resolver interface {
	Resolve(uri *url.URL) *url.URL
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(uri *url.URL) *url.URL

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(uri *url.URL) *url.URL {
	return f(uri)
}

// Identity returns the resolver that maps every URI to itself.
func Identity() Resolver {
	return ResolverFunc(func(uri *url.URL) *url.URL {
		return uri
	})
}

// A LocalMirrorResolver rewrites remote URIs into a local mirror
// directory, mapping scheme://authority/path to <root>/authority/path.
// URIs that are already local are passed through unchanged.
type LocalMirrorResolver struct {
	Root string
}

// Resolve implements Resolver.
func (r LocalMirrorResolver) Resolve(uri *url.URL) *url.URL {
	if uri == nil {
		return nil
	}
	switch uri.Scheme {
	case "http", "https":
	default:
		return uri
	}
	local := filepath.ToSlash(r.Root)
	return &url.URL{
		Scheme: "file",
		Path:   path.Join("/", local, uri.Host, uri.Path),
	}
}
