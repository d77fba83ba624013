package dts_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/aethiopicuschan/dts-go/pkg/dts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	entryURI    = "http://example.com/taxonomy/entry.xsd"
	importedURI = "http://example.com/taxonomy/imported.xsd"
	linkbaseURI = "http://example.com/taxonomy/entry-definition.xml"
	typedURI    = "http://example.com/taxonomy/typed-domains.xsd"
)

func discoveryFixture() map[string]string {
	return map[string]string{
		entryURI: `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:xlink="http://www.w3.org/1999/xlink"
  xmlns:xbrldt="http://xbrl.org/2005/xbrldt"
  targetNamespace="http://example.com/taxonomy">
  <xs:annotation>
    <xs:appinfo>
      <link:linkbaseRef xlink:type="simple" xlink:href="entry-definition.xml"/>
    </xs:appinfo>
  </xs:annotation>
  <xs:import namespace="http://example.com/imported" schemaLocation="imported.xsd"/>
  <xs:element name="Head" xbrldt:typedDomainRef="typed-domains.xsd#dom"/>
</xs:schema>`,
		importedURI: `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  targetNamespace="http://example.com/imported"/>`,
		linkbaseURI: `<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:definitionLink xlink:type="extended" xlink:role="http://www.xbrl.org/2003/role/link">
    <link:loc xlink:type="locator" xlink:href="entry.xsd#Head" xlink:label="head"/>
  </link:definitionLink>
</link:linkbase>`,
		typedURI: `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  targetNamespace="http://example.com/typed">
  <xs:element name="dom" id="dom"/>
</xs:schema>`,
	}
}

func TestCollector_DiscoveryClosure(t *testing.T) {
	t.Parallel()

	inner := newMapBuilder(discoveryFixture())
	c := &dts.Collector{Builder: inner}

	docs, err := c.Collect(context.Background(), []*url.URL{mustURL(t, entryURI)})
	require.NoError(t, err)

	var uris []string
	for _, d := range docs {
		uris = append(uris, d.URI().String())
	}
	// Discovery order: entry point first, then its references in
	// document order.
	assert.Equal(t, []string{entryURI, linkbaseURI, importedURI, typedURI}, uris)

	// The locator back to entry.xsd does not re-fetch it.
	assert.Equal(t, 1, inner.callCount(entryURI))
}

func TestCollector_Trivial(t *testing.T) {
	t.Parallel()

	inner := newMapBuilder(discoveryFixture())
	c := &dts.Collector{Builder: inner}

	docs, err := c.CollectTrivial(context.Background(), []*url.URL{mustURL(t, entryURI)})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, entryURI, docs[0].URI().String())
	assert.Equal(t, 0, inner.callCount(linkbaseURI))
}

func TestCollector_StrictFailsOnMissingDocument(t *testing.T) {
	t.Parallel()

	fixture := discoveryFixture()
	delete(fixture, importedURI)
	c := &dts.Collector{Builder: newMapBuilder(fixture)}

	_, err := c.Collect(context.Background(), []*url.URL{mustURL(t, entryURI)})
	require.Error(t, err)

	var derr *dts.DiscoveryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, importedURI, derr.URI)
}

func TestCollector_LenientSkipsMissingDocument(t *testing.T) {
	t.Parallel()

	fixture := discoveryFixture()
	delete(fixture, importedURI)
	c := &dts.Collector{Builder: newMapBuilder(fixture), Lenient: true}

	docs, err := c.Collect(context.Background(), []*url.URL{mustURL(t, entryURI)})
	require.NoError(t, err)

	var uris []string
	for _, d := range docs {
		uris = append(uris, d.URI().String())
	}
	assert.Equal(t, []string{entryURI, linkbaseURI, typedURI}, uris)
}

func TestCollector_Cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &dts.Collector{Builder: newMapBuilder(discoveryFixture())}
	_, err := c.Collect(ctx, []*url.URL{mustURL(t, entryURI)})
	assert.ErrorIs(t, err, context.Canceled)
}
