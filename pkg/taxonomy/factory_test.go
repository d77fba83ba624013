package taxonomy_test

import (
	"testing"

	"github.com/aethiopicuschan/dts-go/pkg/taxonomy"
	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func extractRels(t *testing.T, factory *taxonomy.Factory) []taxonomy.Relationship {
	t.Helper()

	base := taxonomy.NewBase(fixtureDocs(t))
	rels, err := factory.Relationships(base)
	require.NoError(t, err)
	return rels
}

func TestFactory_ClassifiesFixture(t *testing.T) {
	t.Parallel()

	rels := extractRels(t, &taxonomy.Factory{})

	counts := make(map[string]int)
	for _, rel := range rels {
		switch rel.(type) {
		case *taxonomy.HasHypercubeRel:
			counts["hasHypercube"]++
		case *taxonomy.HypercubeDimensionRel:
			counts["hypercubeDimension"]++
		case *taxonomy.DimensionDomainRel:
			counts["dimensionDomain"]++
		case *taxonomy.DomainMemberRel:
			counts["domainMember"]++
		case *taxonomy.DimensionDefaultRel:
			counts["dimensionDefault"]++
		case *taxonomy.ParentChildRel:
			counts["parentChild"]++
		case *taxonomy.CalculationRel:
			counts["calculation"]++
		case *taxonomy.ConceptLabelRel:
			counts["conceptLabel"]++
		case *taxonomy.NonStandardRel:
			counts["nonStandard"]++
		default:
			counts["other"]++
		}
	}

	assert.Equal(t, map[string]int{
		"hasHypercube":       2,
		"hypercubeDimension": 2,
		"dimensionDomain":    1,
		"domainMember":       3,
		"dimensionDefault":   1,
		"parentChild":        1,
		"calculation":        1,
		"conceptLabel":       1,
		"nonStandard":        1,
	}, counts)
}

func TestFactory_EffectiveTargetRole(t *testing.T) {
	t.Parallel()

	rels := extractRels(t, &taxonomy.Factory{})

	var hhSales *taxonomy.HasHypercubeRel
	var hhIncome *taxonomy.HasHypercubeRel
	for _, rel := range rels {
		if hh, ok := rel.(*taxonomy.HasHypercubeRel); ok {
			switch hh.Primary() {
			case en("Sales"):
				hhSales = hh
			case en("IncomeStatement"):
				hhIncome = hh
			}
		}
	}
	require.NotNil(t, hhSales)
	require.NotNil(t, hhIncome)

	// xbrldt:targetRole wins when present.
	assert.Equal(t, elrCube, hhSales.ELR())
	assert.Equal(t, elrDims, hhSales.EffectiveTargetRole())

	// Without targetRole the effective target role is the arc's own
	// ELR.
	assert.Equal(t, elrCube, hhIncome.EffectiveTargetRole())
}

func TestFactory_ConceptLabel(t *testing.T) {
	t.Parallel()

	rels := extractRels(t, &taxonomy.Factory{})

	var label *taxonomy.ConceptLabelRel
	for _, rel := range rels {
		if l, ok := rel.(*taxonomy.ConceptLabelRel); ok {
			label = l
		}
	}
	require.NotNil(t, label)

	assert.Equal(t, en("Sales"), label.SourceConcept())
	assert.Equal(t, "Sales", label.LabelText())
	assert.Equal(t, "http://www.xbrl.org/2003/role/label", label.LabelRole())
	assert.Equal(t, "en", label.Lang())
}

func TestFactory_NonStandardLink(t *testing.T) {
	t.Parallel()

	rels := extractRels(t, &taxonomy.Factory{})

	var ns *taxonomy.NonStandardRel
	for _, rel := range rels {
		if r, ok := rel.(*taxonomy.NonStandardRel); ok {
			ns = r
		}
	}
	require.NotNil(t, ns)

	assert.Equal(t, elrCustom, ns.ELR())
	assert.Equal(t, "http://example.com/arcrole/custom", ns.Arcrole())

	// Endpoint identity is the fragment key; the source happens to be
	// the Sales declaration in the schema document.
	assert.Equal(t, uriTax, ns.SourceKey().DocURI)
	assert.Equal(t, uriCustom, ns.TargetKey().DocURI)

	_, isStandard := taxonomy.Relationship(ns).(taxonomy.StandardRelationship)
	assert.False(t, isStandard)
}

func TestFactory_ArcFilter(t *testing.T) {
	t.Parallel()

	factory := &taxonomy.Factory{
		ArcFilter: func(a taxonomy.Arc) bool {
			return a.Arcrole() != taxonomy.ArcroleDomainMember
		},
	}
	rels := extractRels(t, factory)

	for _, rel := range rels {
		_, isDM := rel.(*taxonomy.DomainMemberRel)
		assert.False(t, isDM)
	}
}

func TestFactory_DanglingLocator(t *testing.T) {
	t.Parallel()

	linkbase := `<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:presentationLink xlink:type="extended" xlink:role="http://example.com/roles/pres">
    <link:loc xlink:type="locator" xlink:href="tax.xsd#Missing" xlink:label="missing"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#Sales" xlink:label="sales"/>
    <link:presentationArc xlink:type="arc" xlink:from="missing" xlink:to="sales"
      xlink:arcrole="http://www.xbrl.org/2003/arcrole/parent-child"/>
  </link:presentationLink>
</link:linkbase>`

	docs := []*xmlx.Document{
		parseDoc(t, uriXbrli, xbrliSchema),
		parseDoc(t, uriXbrldt, xbrldtSchema),
		parseDoc(t, uriTax, taxSchema),
		parseDoc(t, "http://example.com/tax/broken.xml", linkbase),
	}
	base := taxonomy.NewBase(docs)

	// Strict: the dangling locator aborts the build.
	strict := &taxonomy.Factory{}
	_, err := strict.Relationships(base)
	var derr *taxonomy.DanglingLocatorError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "tax.xsd#Missing", derr.Href)

	// Lenient: the locator is skipped; the arc then has no source and
	// is skipped too.
	lenient := &taxonomy.Factory{Lenient: true, Logger: zap.NewNop()}
	rels, err := lenient.Relationships(base)
	require.NoError(t, err)
	assert.Empty(t, rels)
}

func TestFactory_CartesianProductPerArc(t *testing.T) {
	t.Parallel()

	linkbase := `<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:presentationLink xlink:type="extended" xlink:role="http://example.com/roles/pres">
    <link:loc xlink:type="locator" xlink:href="tax.xsd#IncomeStatement" xlink:label="p"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#Sales" xlink:label="c"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#Wine" xlink:label="c"/>
    <link:presentationArc xlink:type="arc" xlink:from="p" xlink:to="c"
      xlink:arcrole="http://www.xbrl.org/2003/arcrole/parent-child"/>
  </link:presentationLink>
</link:linkbase>`

	docs := []*xmlx.Document{
		parseDoc(t, uriXbrli, xbrliSchema),
		parseDoc(t, uriXbrldt, xbrldtSchema),
		parseDoc(t, uriTax, taxSchema),
		parseDoc(t, "http://example.com/tax/multi.xml", linkbase),
	}
	base := taxonomy.NewBase(docs)

	factory := &taxonomy.Factory{}
	rels, err := factory.Relationships(base)
	require.NoError(t, err)

	// One arc, one from-endpoint, two to-endpoints: two
	// relationships backed by the same arc, in locator order.
	require.Len(t, rels, 2)
	assert.Equal(t, rels[0].Arc(), rels[1].Arc())

	first := rels[0].(*taxonomy.ParentChildRel)
	second := rels[1].(*taxonomy.ParentChildRel)
	assert.Equal(t, en("Sales"), first.TargetConcept())
	assert.Equal(t, en("Wine"), second.TargetConcept())
}

func TestFactory_StrictRejectsUnknownNonStandardArcInStandardLink(t *testing.T) {
	t.Parallel()

	linkbase := `<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:my="http://example.com/my"
  xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:presentationLink xlink:type="extended" xlink:role="http://example.com/roles/pres">
    <link:loc xlink:type="locator" xlink:href="tax.xsd#IncomeStatement" xlink:label="p"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#Sales" xlink:label="c"/>
    <my:arc xlink:type="arc" xlink:from="p" xlink:to="c"
      xlink:arcrole="http://example.com/arcrole/strange"/>
  </link:presentationLink>
</link:linkbase>`

	docs := []*xmlx.Document{
		parseDoc(t, uriXbrli, xbrliSchema),
		parseDoc(t, uriXbrldt, xbrldtSchema),
		parseDoc(t, uriTax, taxSchema),
		parseDoc(t, "http://example.com/tax/strange.xml", linkbase),
	}
	base := taxonomy.NewBase(docs)

	strict := &taxonomy.Factory{}
	_, err := strict.Relationships(base)
	var cerr *taxonomy.ClassificationError
	require.ErrorAs(t, err, &cerr)

	// Lenient: mapped to the generic inter-concept kind.
	lenient := &taxonomy.Factory{Lenient: true}
	rels, err := lenient.Relationships(base)
	require.NoError(t, err)
	require.Len(t, rels, 1)
	_, ok := rels[0].(*taxonomy.OtherInterConceptRel)
	assert.True(t, ok)
}
