package loader_test

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/aethiopicuschan/dts-go/pkg/dts"
	"github.com/aethiopicuschan/dts-go/pkg/loader"
	"github.com/aethiopicuschan/dts-go/pkg/taxonomy"
	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	entryURI = "http://example.com/mini/entry.xsd"
	defURI   = "http://example.com/mini/definition.xml"
)

// miniDTS is a self-contained two-document DTS. It imports no xbrli or
// xbrldt schema; the tests supply those substitution-group roots as
// extras instead.
var miniDTS = map[string]string{
	entryURI: `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:xlink="http://www.w3.org/1999/xlink"
  xmlns:xbrli="http://www.xbrl.org/2003/instance"
  xmlns:xbrldt="http://xbrl.org/2005/xbrldt"
  targetNamespace="http://example.com/mini">
  <xs:annotation>
    <xs:appinfo>
      <link:linkbaseRef xlink:type="simple" xlink:href="definition.xml"/>
    </xs:appinfo>
  </xs:annotation>
  <xs:element name="Revenue" id="Revenue" substitutionGroup="xbrli:item"/>
  <xs:element name="Cube" id="Cube" substitutionGroup="xbrldt:hypercubeItem" abstract="true"/>
  <xs:element name="GeoDim" id="GeoDim" substitutionGroup="xbrldt:dimensionItem" abstract="true"/>
</xs:schema>`,
	defURI: `<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:definitionLink xlink:type="extended" xlink:role="http://example.com/roles/d">
    <link:loc xlink:type="locator" xlink:href="entry.xsd#Revenue" xlink:label="rev"/>
    <link:loc xlink:type="locator" xlink:href="entry.xsd#Cube" xlink:label="cube"/>
    <link:loc xlink:type="locator" xlink:href="entry.xsd#GeoDim" xlink:label="geo"/>
    <link:definitionArc xlink:type="arc" xlink:from="rev" xlink:to="cube"
      xlink:arcrole="http://xbrl.org/int/dim/arcrole/all"/>
    <link:definitionArc xlink:type="arc" xlink:from="cube" xlink:to="geo"
      xlink:arcrole="http://xbrl.org/int/dim/arcrole/hypercube-dimension"/>
  </link:definitionLink>
</link:linkbase>`,
}

// mapBuilder serves documents from memory.
type mapBuilder struct {
	docs map[string]string

	mu    sync.Mutex
	calls int
}

func (b *mapBuilder) Build(_ context.Context, uri *url.URL) (*xmlx.Document, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()

	src, ok := b.docs[uri.String()]
	if !ok {
		return nil, &dts.FetchError{URI: uri.String(), Cause: fmt.Errorf("no such document")}
	}
	return xmlx.Parse(strings.NewReader(src), uri)
}

// xbrldtExtras supplies the substitution-group edges normally found in
// the xbrli/xbrldt schemas.
func xbrldtExtras() taxonomy.SubstitutionGroupMap {
	return taxonomy.NewSubstitutionGroupMap(map[xmlx.EName]xmlx.EName{
		taxonomy.ENameHypercubeItem: taxonomy.ENameItem,
		taxonomy.ENameDimensionItem: taxonomy.ENameItem,
	})
}

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func TestLoad_Discovery(t *testing.T) {
	t.Parallel()

	tax, err := loader.Load(context.Background(), []*url.URL{mustURL(t, entryURI)}, loader.Options{
		Builder:                 &mapBuilder{docs: miniDTS},
		ExtraSubstitutionGroups: xbrldtExtras(),
	})
	require.NoError(t, err)

	assert.Len(t, tax.Base().Documents(), 2)
	assert.Len(t, tax.Relationships(), 2)

	mini := xmlx.EName{Namespace: "http://example.com/mini", Local: "Cube"}
	c, ok := tax.ConceptDecl(mini)
	require.True(t, ok)
	assert.Equal(t, taxonomy.ConceptHypercube, c.Kind())
}

func TestLoad_Trivial(t *testing.T) {
	t.Parallel()

	tax, err := loader.Load(context.Background(), []*url.URL{mustURL(t, entryURI)}, loader.Options{
		Builder:                 &mapBuilder{docs: miniDTS},
		Mode:                    loader.CollectTrivial,
		ExtraSubstitutionGroups: xbrldtExtras(),
	})
	require.NoError(t, err)

	assert.Len(t, tax.Base().Documents(), 1)
	assert.Empty(t, tax.Relationships())
}

func TestLoad_StrictFailure(t *testing.T) {
	t.Parallel()

	docs := map[string]string{entryURI: miniDTS[entryURI]} // linkbase missing

	_, err := loader.Load(context.Background(), []*url.URL{mustURL(t, entryURI)}, loader.Options{
		Builder: &mapBuilder{docs: docs},
	})
	var derr *dts.DiscoveryError
	require.ErrorAs(t, err, &derr)

	// Lenient mode shrugs and loads what it can.
	tax, err := loader.Load(context.Background(), []*url.URL{mustURL(t, entryURI)}, loader.Options{
		Builder:                 &mapBuilder{docs: docs},
		Lenient:                 true,
		ExtraSubstitutionGroups: xbrldtExtras(),
	})
	require.NoError(t, err)
	assert.Len(t, tax.Base().Documents(), 1)
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	cfg := loader.Config{
		CacheSize:   100,
		Lenient:     true,
		MirrorRoot:  "/mirror",
		Trivial:     true,
		EntryPoints: []string{entryURI},
	}

	opts := cfg.Options()
	assert.Equal(t, 100, opts.CacheSize)
	assert.True(t, opts.Lenient)
	assert.Equal(t, loader.CollectTrivial, opts.Mode)
	require.NotNil(t, opts.Resolver)

	got := opts.Resolver.Resolve(mustURL(t, entryURI))
	assert.Equal(t, "file", got.Scheme)
	assert.Equal(t, "/mirror/example.com/mini/entry.xsd", got.Path)

	urls, err := cfg.EntryPointURLs()
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Equal(t, entryURI, urls[0].String())
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/dts.yaml"
	src := `cache-size: 42
lenient: true
mirror-root: /data/mirror
entry-points:
  - http://example.com/mini/entry.xsd
`
	require.NoError(t, writeFile(path, src))

	cfg, err := loader.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.CacheSize)
	assert.True(t, cfg.Lenient)
	assert.Equal(t, "/data/mirror", cfg.MirrorRoot)
	assert.Equal(t, []string{entryURI}, cfg.EntryPoints)

	_, err = loader.LoadConfigFile(path + ".missing")
	assert.Error(t, err)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
