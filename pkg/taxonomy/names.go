// Package taxonomy builds a typed, queryable model over the parsed
// documents of a Discoverable Taxonomy Set: schemas, linkbases, global
// declarations, concept declarations and the graph of relationships
// extracted from XLink arcs.
package taxonomy

import "github.com/aethiopicuschan/dts-go/pkg/xmlx"

// Namespaces of the XBRL vocabulary.
const (
	NsXSD    = "http://www.w3.org/2001/XMLSchema"
	NsXBRLI  = "http://www.xbrl.org/2003/instance"
	NsLink   = "http://www.xbrl.org/2003/linkbase"
	NsXLink  = xmlx.XLinkNamespace
	NsXBRLDT = "http://xbrl.org/2005/xbrldt"
)

// Substitution-group roots.
var (
	ENameItem          = xmlx.EName{Namespace: NsXBRLI, Local: "item"}
	ENameTuple         = xmlx.EName{Namespace: NsXBRLI, Local: "tuple"}
	ENameHypercubeItem = xmlx.EName{Namespace: NsXBRLDT, Local: "hypercubeItem"}
	ENameDimensionItem = xmlx.EName{Namespace: NsXBRLDT, Local: "dimensionItem"}
)

// Standard arcroles.
const (
	ArcroleParentChild      = "http://www.xbrl.org/2003/arcrole/parent-child"
	ArcroleSummationItem    = "http://www.xbrl.org/2003/arcrole/summation-item"
	ArcroleConceptLabel     = "http://www.xbrl.org/2003/arcrole/concept-label"
	ArcroleConceptReference = "http://www.xbrl.org/2003/arcrole/concept-reference"
)

// Dimensional arcroles.
const (
	ArcroleAll                = "http://xbrl.org/int/dim/arcrole/all"
	ArcroleNotAll             = "http://xbrl.org/int/dim/arcrole/notAll"
	ArcroleHypercubeDimension = "http://xbrl.org/int/dim/arcrole/hypercube-dimension"
	ArcroleDimensionDomain    = "http://xbrl.org/int/dim/arcrole/dimension-domain"
	ArcroleDomainMember       = "http://xbrl.org/int/dim/arcrole/domain-member"
	ArcroleDimensionDefault   = "http://xbrl.org/int/dim/arcrole/dimension-default"
)

// XLink attribute names.
var (
	attrXLinkType    = xmlx.EName{Namespace: NsXLink, Local: "type"}
	attrXLinkHref    = xmlx.EName{Namespace: NsXLink, Local: "href"}
	attrXLinkLabel   = xmlx.EName{Namespace: NsXLink, Local: "label"}
	attrXLinkFrom    = xmlx.EName{Namespace: NsXLink, Local: "from"}
	attrXLinkTo      = xmlx.EName{Namespace: NsXLink, Local: "to"}
	attrXLinkRole    = xmlx.EName{Namespace: NsXLink, Local: "role"}
	attrXLinkArcrole = xmlx.EName{Namespace: NsXLink, Local: "arcrole"}
)

// XBRL attribute names outside the XLink namespace.
var (
	attrTargetRole     = xmlx.EName{Namespace: NsXBRLDT, Local: "targetRole"}
	attrUsable         = xmlx.EName{Namespace: NsXBRLDT, Local: "usable"}
	attrTypedDomainRef = xmlx.EName{Namespace: NsXBRLDT, Local: "typedDomainRef"}
	attrPeriodType     = xmlx.EName{Namespace: NsXBRLI, Local: "periodType"}
	attrBalance        = xmlx.EName{Namespace: NsXBRLI, Local: "balance"}
)

// Standard extended-link element names.
var standardLinkNames = map[xmlx.EName]bool{
	{Namespace: NsLink, Local: "definitionLink"}:   true,
	{Namespace: NsLink, Local: "presentationLink"}: true,
	{Namespace: NsLink, Local: "calculationLink"}:  true,
	{Namespace: NsLink, Local: "labelLink"}:        true,
	{Namespace: NsLink, Local: "referenceLink"}:    true,
	{Namespace: NsLink, Local: "footnoteLink"}:     true,
}
