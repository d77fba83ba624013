package taxonomy_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/aethiopicuschan/dts-go/pkg/taxonomy"
	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
	"github.com/stretchr/testify/require"
)

// Fixture namespaces and URIs.
const (
	nsTax = "http://example.com/tax"

	uriXbrli      = "http://example.com/tax/xbrl-instance.xsd"
	uriXbrldt     = "http://example.com/tax/xbrldt.xsd"
	uriTax        = "http://example.com/tax/tax.xsd"
	uriDefinition = "http://example.com/tax/definition.xml"
	uriPresent    = "http://example.com/tax/presentation.xml"
	uriLabel      = "http://example.com/tax/label.xml"
	uriCustom     = "http://example.com/tax/custom.xml"

	elrCube   = "http://example.com/roles/cube"
	elrDims   = "http://example.com/roles/dims"
	elrPres   = "http://example.com/roles/pres"
	elrCustom = "http://example.com/roles/custom"
)

const xbrliSchema = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  targetNamespace="http://www.xbrl.org/2003/instance">
  <xs:element name="item" abstract="true"/>
  <xs:element name="tuple" abstract="true"/>
</xs:schema>`

const xbrldtSchema = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  xmlns:xbrli="http://www.xbrl.org/2003/instance"
  targetNamespace="http://xbrl.org/2005/xbrldt">
  <xs:element name="hypercubeItem" substitutionGroup="xbrli:item" abstract="true"/>
  <xs:element name="dimensionItem" substitutionGroup="xbrli:item" abstract="true"/>
</xs:schema>`

const taxSchema = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  xmlns:xbrli="http://www.xbrl.org/2003/instance"
  xmlns:xbrldt="http://xbrl.org/2005/xbrldt"
  targetNamespace="http://example.com/tax">
  <xs:element name="Sales" id="Sales" substitutionGroup="xbrli:item" type="xs:decimal"
    xbrli:periodType="duration" xbrli:balance="credit"/>
  <xs:element name="IncomeStatement" id="IncomeStatement" substitutionGroup="xbrli:item" abstract="true"/>
  <xs:element name="AllProducts" id="AllProducts" substitutionGroup="xbrli:item" abstract="true"/>
  <xs:element name="Wine" id="Wine" substitutionGroup="xbrli:item" abstract="true"/>
  <xs:element name="Discontinued" id="Discontinued" substitutionGroup="xbrli:item" abstract="true"/>
  <xs:element name="MyHypercube" id="MyHypercube" substitutionGroup="xbrldt:hypercubeItem" abstract="true"/>
  <xs:element name="SecondCube" id="SecondCube" substitutionGroup="xbrldt:hypercubeItem" abstract="true"/>
  <xs:element name="ProdDim" id="ProdDim" substitutionGroup="xbrldt:dimensionItem" abstract="true"/>
  <xs:element name="RegionDim" id="RegionDim" substitutionGroup="xbrldt:dimensionItem" abstract="true"/>
  <xs:element name="TypedDim" id="TypedDim" substitutionGroup="xbrldt:dimensionItem" abstract="true"
    xbrldt:typedDomainRef="#domainDef"/>
  <xs:element name="MyTuple" id="MyTuple" substitutionGroup="xbrli:tuple"/>
  <xs:element name="DomainDef" id="domainDef" type="xs:string"/>
  <xs:simpleType name="shareType">
    <xs:restriction base="xs:decimal"/>
  </xs:simpleType>
</xs:schema>`

const definitionLinkbase = `<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:xlink="http://www.w3.org/1999/xlink"
  xmlns:xbrldt="http://xbrl.org/2005/xbrldt">
  <link:definitionLink xlink:type="extended" xlink:role="http://example.com/roles/cube">
    <link:loc xlink:type="locator" xlink:href="tax.xsd#Sales" xlink:label="sales"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#IncomeStatement" xlink:label="income"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#MyHypercube" xlink:label="cube"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#SecondCube" xlink:label="cube2"/>
    <link:definitionArc xlink:type="arc" xlink:from="sales" xlink:to="cube"
      xlink:arcrole="http://xbrl.org/int/dim/arcrole/all"
      xbrldt:targetRole="http://example.com/roles/dims"/>
    <link:definitionArc xlink:type="arc" xlink:from="income" xlink:to="cube2"
      xlink:arcrole="http://xbrl.org/int/dim/arcrole/all"/>
    <link:definitionArc xlink:type="arc" xlink:from="income" xlink:to="sales"
      xlink:arcrole="http://xbrl.org/int/dim/arcrole/domain-member"/>
  </link:definitionLink>
  <link:definitionLink xlink:type="extended" xlink:role="http://example.com/roles/dims">
    <link:loc xlink:type="locator" xlink:href="tax.xsd#MyHypercube" xlink:label="cube"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#ProdDim" xlink:label="prodDim"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#RegionDim" xlink:label="regionDim"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#AllProducts" xlink:label="allProducts"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#Wine" xlink:label="wine"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#Discontinued" xlink:label="disc"/>
    <link:definitionArc xlink:type="arc" xlink:from="cube" xlink:to="prodDim"
      xlink:arcrole="http://xbrl.org/int/dim/arcrole/hypercube-dimension" order="1"/>
    <link:definitionArc xlink:type="arc" xlink:from="cube" xlink:to="regionDim"
      xlink:arcrole="http://xbrl.org/int/dim/arcrole/hypercube-dimension" order="2"/>
    <link:definitionArc xlink:type="arc" xlink:from="prodDim" xlink:to="allProducts"
      xlink:arcrole="http://xbrl.org/int/dim/arcrole/dimension-domain"/>
    <link:definitionArc xlink:type="arc" xlink:from="allProducts" xlink:to="wine"
      xlink:arcrole="http://xbrl.org/int/dim/arcrole/domain-member"/>
    <link:definitionArc xlink:type="arc" xlink:from="allProducts" xlink:to="disc"
      xlink:arcrole="http://xbrl.org/int/dim/arcrole/domain-member" xbrldt:usable="false"/>
    <link:definitionArc xlink:type="arc" xlink:from="prodDim" xlink:to="allProducts"
      xlink:arcrole="http://xbrl.org/int/dim/arcrole/dimension-default"/>
  </link:definitionLink>
</link:linkbase>`

const presentationLinkbase = `<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:presentationLink xlink:type="extended" xlink:role="http://example.com/roles/pres">
    <link:loc xlink:type="locator" xlink:href="tax.xsd#IncomeStatement" xlink:label="income"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#Sales" xlink:label="sales"/>
    <link:presentationArc xlink:type="arc" xlink:from="income" xlink:to="sales"
      xlink:arcrole="http://www.xbrl.org/2003/arcrole/parent-child" order="1"/>
  </link:presentationLink>
  <link:calculationLink xlink:type="extended" xlink:role="http://example.com/roles/pres">
    <link:loc xlink:type="locator" xlink:href="tax.xsd#IncomeStatement" xlink:label="income"/>
    <link:loc xlink:type="locator" xlink:href="tax.xsd#Sales" xlink:label="sales"/>
    <link:calculationArc xlink:type="arc" xlink:from="income" xlink:to="sales"
      xlink:arcrole="http://www.xbrl.org/2003/arcrole/summation-item" weight="1.0"/>
  </link:calculationLink>
</link:linkbase>`

const labelLinkbase = `<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:labelLink xlink:type="extended" xlink:role="http://www.xbrl.org/2003/role/link">
    <link:loc xlink:type="locator" xlink:href="tax.xsd#Sales" xlink:label="sales"/>
    <link:label xlink:type="resource" xlink:label="salesLabel"
      xlink:role="http://www.xbrl.org/2003/role/label" xml:lang="en">Sales</link:label>
    <link:labelArc xlink:type="arc" xlink:from="sales" xlink:to="salesLabel"
      xlink:arcrole="http://www.xbrl.org/2003/arcrole/concept-label"/>
  </link:labelLink>
</link:linkbase>`

const customLinkbase = `<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
  xmlns:gen="http://example.com/gen"
  xmlns:xlink="http://www.w3.org/1999/xlink">
  <gen:link xlink:type="extended" xlink:role="http://example.com/roles/custom">
    <gen:loc xlink:type="locator" xlink:href="tax.xsd#Sales" xlink:label="a"/>
    <gen:note xlink:type="resource" xlink:label="b">annotation</gen:note>
    <gen:arc xlink:type="arc" xlink:from="a" xlink:to="b"
      xlink:arcrole="http://example.com/arcrole/custom"/>
  </gen:link>
</link:linkbase>`

func parseDoc(t *testing.T, uri, src string) *xmlx.Document {
	t.Helper()

	u, err := url.Parse(uri)
	require.NoError(t, err)
	doc, err := xmlx.Parse(strings.NewReader(src), u)
	require.NoError(t, err)
	return doc
}

// fixtureDocs returns the full fixture DTS in discovery order.
func fixtureDocs(t *testing.T) []*xmlx.Document {
	t.Helper()
	return []*xmlx.Document{
		parseDoc(t, uriXbrli, xbrliSchema),
		parseDoc(t, uriXbrldt, xbrldtSchema),
		parseDoc(t, uriTax, taxSchema),
		parseDoc(t, uriDefinition, definitionLinkbase),
		parseDoc(t, uriPresent, presentationLinkbase),
		parseDoc(t, uriLabel, labelLinkbase),
		parseDoc(t, uriCustom, customLinkbase),
	}
}

// buildTaxonomy builds the fixture taxonomy strictly with no arc
// filter.
func buildTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()

	base := taxonomy.NewBase(fixtureDocs(t))
	factory := &taxonomy.Factory{}
	rels, err := factory.Relationships(base)
	require.NoError(t, err)

	tax, err := taxonomy.New(base, rels, taxonomy.Config{})
	require.NoError(t, err)
	return tax
}

// en returns an expanded name in the fixture taxonomy namespace.
func en(local string) xmlx.EName {
	return xmlx.EName{Namespace: nsTax, Local: local}
}
