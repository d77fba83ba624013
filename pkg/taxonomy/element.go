package taxonomy

import (
	"strconv"
	"strings"

	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// ElemKind classifies a taxonomy element.
type ElemKind int

const (
	KindOther ElemKind = iota
	KindSchema
	KindLinkbase
	KindGlobalElementDecl
	KindGlobalAttributeDecl
	KindNamedTypeDef
	KindExtendedLink
	KindArc
	KindLocator
	KindResource
	KindRoleRef
	KindArcroleRef
	KindRoleType
	KindArcroleType
)

// String implements fmt.Stringer.
func (k ElemKind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindLinkbase:
		return "linkbase"
	case KindGlobalElementDecl:
		return "globalElementDecl"
	case KindGlobalAttributeDecl:
		return "globalAttributeDecl"
	case KindNamedTypeDef:
		return "namedTypeDef"
	case KindExtendedLink:
		return "extendedLink"
	case KindArc:
		return "arc"
	case KindLocator:
		return "locator"
	case KindResource:
		return "resource"
	case KindRoleRef:
		return "roleRef"
	case KindArcroleRef:
		return "arcroleRef"
	case KindRoleType:
		return "roleType"
	case KindArcroleType:
		return "arcroleType"
	default:
		return "other"
	}
}

// Kind classifies an element by its expanded name, xlink:type and
// position.
func Kind(e xmlx.Elem) ElemKind {
	name := e.Name()
	switch name {
	case xmlx.EName{Namespace: NsXSD, Local: "schema"}:
		return KindSchema
	case xmlx.EName{Namespace: NsLink, Local: "linkbase"}:
		return KindLinkbase
	case xmlx.EName{Namespace: NsLink, Local: "roleRef"}:
		return KindRoleRef
	case xmlx.EName{Namespace: NsLink, Local: "arcroleRef"}:
		return KindArcroleRef
	case xmlx.EName{Namespace: NsLink, Local: "roleType"}:
		return KindRoleType
	case xmlx.EName{Namespace: NsLink, Local: "arcroleType"}:
		return KindArcroleType
	}

	if name.Namespace == NsXSD {
		parent, hasParent := e.Parent()
		isTopLevel := hasParent && Kind(parent) == KindSchema
		switch name.Local {
		case "element":
			if isTopLevel {
				return KindGlobalElementDecl
			}
		case "attribute":
			if isTopLevel {
				return KindGlobalAttributeDecl
			}
		case "simpleType", "complexType":
			if isTopLevel {
				if _, ok := e.Attr(xmlx.EName{Local: "name"}); ok {
					return KindNamedTypeDef
				}
			}
		}
		return KindOther
	}

	switch e.AttrOr(attrXLinkType, "") {
	case "extended":
		return KindExtendedLink
	case "arc":
		return KindArc
	case "locator":
		return KindLocator
	case "resource":
		return KindResource
	}
	return KindOther
}

// An XsdSchema wraps a schema root element.
type XsdSchema struct {
	xmlx.Elem
}

// AsXsdSchema narrows an element to a schema.
func AsXsdSchema(e xmlx.Elem) (XsdSchema, bool) {
	if Kind(e) != KindSchema {
		return XsdSchema{}, false
	}
	return XsdSchema{Elem: e}, true
}

// TargetNamespace returns the schema's target namespace, or "".
func (s XsdSchema) TargetNamespace() string {
	return s.AttrOr(xmlx.EName{Local: "targetNamespace"}, "")
}

// GlobalElementDecls returns the schema's top-level element
// declarations in document order.
func (s XsdSchema) GlobalElementDecls() []GlobalElementDecl {
	var out []GlobalElementDecl
	for _, c := range s.ChildrenNamed(xmlx.EName{Namespace: NsXSD, Local: "element"}) {
		out = append(out, GlobalElementDecl{Elem: c})
	}
	return out
}

// GlobalAttributeDecls returns the schema's top-level attribute
// declarations in document order.
func (s XsdSchema) GlobalAttributeDecls() []GlobalAttributeDecl {
	var out []GlobalAttributeDecl
	for _, c := range s.ChildrenNamed(xmlx.EName{Namespace: NsXSD, Local: "attribute"}) {
		out = append(out, GlobalAttributeDecl{Elem: c})
	}
	return out
}

// NamedTypeDefs returns the schema's named type definitions in
// document order.
func (s XsdSchema) NamedTypeDefs() []NamedTypeDef {
	var out []NamedTypeDef
	for _, c := range s.Children() {
		if Kind(c) == KindNamedTypeDef {
			out = append(out, NamedTypeDef{Elem: c})
		}
	}
	return out
}

// A Linkbase wraps a linkbase element (a document root or a linkbase
// embedded in a schema's appinfo).
type Linkbase struct {
	xmlx.Elem
}

// AsLinkbase narrows an element to a linkbase.
func AsLinkbase(e xmlx.Elem) (Linkbase, bool) {
	if Kind(e) != KindLinkbase {
		return Linkbase{}, false
	}
	return Linkbase{Elem: e}, true
}

// ExtendedLinks returns the linkbase's extended links in document
// order.
func (l Linkbase) ExtendedLinks() []ExtendedLink {
	var out []ExtendedLink
	for _, c := range l.Children() {
		if Kind(c) == KindExtendedLink {
			out = append(out, ExtendedLink{Elem: c})
		}
	}
	return out
}

// A GlobalElementDecl wraps a top-level xs:element declaration.
type GlobalElementDecl struct {
	xmlx.Elem
}

// AsGlobalElementDecl narrows an element to a global element
// declaration.
func AsGlobalElementDecl(e xmlx.Elem) (GlobalElementDecl, bool) {
	if Kind(e) != KindGlobalElementDecl {
		return GlobalElementDecl{}, false
	}
	return GlobalElementDecl{Elem: e}, true
}

// TargetEName returns the declaration's target expanded name: the
// enclosing schema's target namespace plus @name.
func (d GlobalElementDecl) TargetEName() xmlx.EName {
	name := d.AttrOr(xmlx.EName{Local: "name"}, "")
	ns := ""
	if parent, ok := d.Parent(); ok {
		if schema, ok := AsXsdSchema(parent); ok {
			ns = schema.TargetNamespace()
		}
	}
	return xmlx.EName{Namespace: ns, Local: name}
}

// SubstitutionGroup returns the resolved @substitutionGroup, if
// present.
func (d GlobalElementDecl) SubstitutionGroup() (xmlx.EName, bool) {
	return d.AttrEName(xmlx.EName{Local: "substitutionGroup"})
}

// TypeEName returns the resolved @type, if present.
func (d GlobalElementDecl) TypeEName() (xmlx.EName, bool) {
	return d.AttrEName(xmlx.EName{Local: "type"})
}

// IsAbstract reports @abstract, defaulting to false.
func (d GlobalElementDecl) IsAbstract() bool {
	return parseXsdBool(d.AttrOr(xmlx.EName{Local: "abstract"}, ""))
}

// IsNillable reports @nillable, defaulting to false.
func (d GlobalElementDecl) IsNillable() bool {
	return parseXsdBool(d.AttrOr(xmlx.EName{Local: "nillable"}, ""))
}

// PeriodType returns @xbrli:periodType, or "".
func (d GlobalElementDecl) PeriodType() string {
	return d.AttrOr(attrPeriodType, "")
}

// Balance returns @xbrli:balance, or "".
func (d GlobalElementDecl) Balance() string {
	return d.AttrOr(attrBalance, "")
}

// TypedDomainRef returns @xbrldt:typedDomainRef, if present.
func (d GlobalElementDecl) TypedDomainRef() (string, bool) {
	return d.Attr(attrTypedDomainRef)
}

// A GlobalAttributeDecl wraps a top-level xs:attribute declaration.
type GlobalAttributeDecl struct {
	xmlx.Elem
}

// TargetEName returns the declaration's target expanded name.
func (d GlobalAttributeDecl) TargetEName() xmlx.EName {
	name := d.AttrOr(xmlx.EName{Local: "name"}, "")
	ns := ""
	if parent, ok := d.Parent(); ok {
		if schema, ok := AsXsdSchema(parent); ok {
			ns = schema.TargetNamespace()
		}
	}
	return xmlx.EName{Namespace: ns, Local: name}
}

// A NamedTypeDef wraps a named top-level simpleType or complexType.
type NamedTypeDef struct {
	xmlx.Elem
}

// TargetEName returns the type's target expanded name.
func (d NamedTypeDef) TargetEName() xmlx.EName {
	name := d.AttrOr(xmlx.EName{Local: "name"}, "")
	ns := ""
	if parent, ok := d.Parent(); ok {
		if schema, ok := AsXsdSchema(parent); ok {
			ns = schema.TargetNamespace()
		}
	}
	return xmlx.EName{Namespace: ns, Local: name}
}

// IsSimple reports whether this is a simple type definition.
func (d NamedTypeDef) IsSimple() bool {
	return d.Name().Local == "simpleType"
}

// BaseType returns the resolved @base of the type's restriction or
// extension, one step up the derivation chain.
func (d NamedTypeDef) BaseType() (xmlx.EName, bool) {
	for _, e := range d.Descendants() {
		name := e.Name()
		if name.Namespace != NsXSD {
			continue
		}
		if name.Local == "restriction" || name.Local == "extension" {
			return e.AttrEName(xmlx.EName{Local: "base"})
		}
	}
	return xmlx.EName{}, false
}

// An ExtendedLink wraps an element with xlink:type="extended".
type ExtendedLink struct {
	xmlx.Elem
}

// Role returns the extended link role (ELR).
func (l ExtendedLink) Role() string {
	return l.AttrOr(attrXLinkRole, "")
}

// IsStandard reports whether the link is one of the standard XBRL
// extended links.
func (l ExtendedLink) IsStandard() bool {
	return standardLinkNames[l.Name()]
}

// Arcs returns the link's arc children in document order.
func (l ExtendedLink) Arcs() []Arc {
	var out []Arc
	for _, c := range l.Children() {
		if Kind(c) == KindArc {
			out = append(out, Arc{Elem: c})
		}
	}
	return out
}

// Locators returns the link's locator children in document order.
func (l ExtendedLink) Locators() []Locator {
	var out []Locator
	for _, c := range l.Children() {
		if Kind(c) == KindLocator {
			out = append(out, Locator{Elem: c})
		}
	}
	return out
}

// Resources returns the link's resource children in document order.
func (l ExtendedLink) Resources() []Resource {
	var out []Resource
	for _, c := range l.Children() {
		if Kind(c) == KindResource {
			out = append(out, Resource{Elem: c})
		}
	}
	return out
}

// An Arc wraps an element with xlink:type="arc".
type Arc struct {
	xmlx.Elem
}

// From returns the xlink:from label.
func (a Arc) From() string {
	return a.AttrOr(attrXLinkFrom, "")
}

// To returns the xlink:to label.
func (a Arc) To() string {
	return a.AttrOr(attrXLinkTo, "")
}

// Arcrole returns the xlink:arcrole.
func (a Arc) Arcrole() string {
	return a.AttrOr(attrXLinkArcrole, "")
}

// ExtendedLink returns the enclosing extended link.
func (a Arc) ExtendedLink() (ExtendedLink, bool) {
	parent, ok := a.Parent()
	if !ok || Kind(parent) != KindExtendedLink {
		return ExtendedLink{}, false
	}
	return ExtendedLink{Elem: parent}, true
}

// Order returns @order, defaulting to 1.
func (a Arc) Order() float64 {
	v, ok := a.Attr(xmlx.EName{Local: "order"})
	if !ok {
		return 1
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 1
	}
	return f
}

// Priority returns @priority, defaulting to 0. The second return is
// false when the attribute is present but not an integer.
func (a Arc) Priority() (int, bool) {
	v, ok := a.Attr(xmlx.EName{Local: "priority"})
	if !ok {
		return 0, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Use returns @use, defaulting to "optional".
func (a Arc) Use() string {
	return a.AttrOr(xmlx.EName{Local: "use"}, "optional")
}

// IsProhibiting reports use="prohibited".
func (a Arc) IsProhibiting() bool {
	return a.Use() == "prohibited"
}

// Weight returns @weight (calculation arcs), defaulting to 1.
func (a Arc) Weight() float64 {
	v, ok := a.Attr(xmlx.EName{Local: "weight"})
	if !ok {
		return 1
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 1
	}
	return f
}

// PreferredLabel returns @preferredLabel (presentation arcs), or "".
func (a Arc) PreferredLabel() string {
	return a.AttrOr(xmlx.EName{Local: "preferredLabel"}, "")
}

// TargetRole returns @xbrldt:targetRole, if present.
func (a Arc) TargetRole() (string, bool) {
	return a.Attr(attrTargetRole)
}

// Usable returns @xbrldt:usable, defaulting to true.
func (a Arc) Usable() bool {
	v, ok := a.Attr(attrUsable)
	if !ok {
		return true
	}
	return parseXsdBool(v)
}

// A Locator wraps an element with xlink:type="locator".
type Locator struct {
	xmlx.Elem
}

// Label returns the xlink:label.
func (l Locator) Label() string {
	return l.AttrOr(attrXLinkLabel, "")
}

// Href returns the raw xlink:href.
func (l Locator) Href() string {
	return l.AttrOr(attrXLinkHref, "")
}

// A Resource wraps an element with xlink:type="resource".
type Resource struct {
	xmlx.Elem
}

// Label returns the xlink:label.
func (r Resource) Label() string {
	return r.AttrOr(attrXLinkLabel, "")
}

// Role returns the xlink:role, or "".
func (r Resource) Role() string {
	return r.AttrOr(attrXLinkRole, "")
}

// Lang returns the xml:lang in effect on the resource, or "".
func (r Resource) Lang() string {
	return r.AttrOr(xmlx.EName{Namespace: xmlx.XMLNamespace, Local: "lang"}, "")
}

// parseXsdBool interprets the XML Schema boolean lexical forms.
func parseXsdBool(s string) bool {
	switch strings.TrimSpace(s) {
	case "true", "1":
		return true
	default:
		return false
	}
}
