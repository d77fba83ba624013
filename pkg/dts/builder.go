package dts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// A DocumentBuilder turns a document URI into a parsed document.
type DocumentBuilder interface {
	Build(ctx context.Context, uri *url.URL) (*xmlx.Document, error)
}

// A FetchError reports that a document could not be fetched or parsed.
type FetchError struct {
	URI   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("dts: fetch %s: %v", e.URI, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// A FetchingBuilder fetches documents over file and http(s) URIs,
// after mapping them through a Resolver. The parsed document keeps the
// logical URI, not the resolved one, so relative references inside it
// resolve the way the document intends.
type FetchingBuilder struct {
	resolver Resolver
	client   *http.Client
}

// NewFetchingBuilder creates a builder using the given resolver.
// A nil resolver means identity; a nil client means
// http.DefaultClient.
func NewFetchingBuilder(resolver Resolver, client *http.Client) *FetchingBuilder {
	if resolver == nil {
		resolver = Identity()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &FetchingBuilder{resolver: resolver, client: client}
}

// Build implements DocumentBuilder.
func (b *FetchingBuilder) Build(ctx context.Context, uri *url.URL) (*xmlx.Document, error) {
	if uri == nil {
		return nil, &FetchError{URI: "", Cause: fmt.Errorf("nil URI")}
	}

	rc, err := b.open(ctx, b.resolver.Resolve(uri))
	if err != nil {
		return nil, &FetchError{URI: uri.String(), Cause: err}
	}
	defer rc.Close()

	doc, err := xmlx.Parse(rc, uri)
	if err != nil {
		return nil, &FetchError{URI: uri.String(), Cause: err}
	}
	return doc, nil
}

func (b *FetchingBuilder) open(ctx context.Context, located *url.URL) (io.ReadCloser, error) {
	switch located.Scheme {
	case "", "file":
		f, err := os.Open(located.Path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, located.String(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := b.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return resp.Body, nil
	default:
		return nil, fmt.Errorf("unsupported scheme %q", located.Scheme)
	}
}
