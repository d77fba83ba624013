// Package instance parses XBRL instance documents and checks their
// dimensional contexts against a built taxonomy.
package instance

import (
	"maps"

	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// A Document is a parsed XBRL instance document.
type Document struct {
	schemaRefs []SchemaRef
	contexts   map[string]*Context
	units      map[string]*Unit
	facts      []*Fact
}

// A SchemaRef is a <schemaRef> element: the instance's DTS entry
// point.
type SchemaRef struct {
	href string
}

// Href returns the schema reference target.
func (s SchemaRef) Href() string {
	return s.href
}

// A Context is an XBRL <context> element.
type Context struct {
	id         string
	entity     Entity
	period     Period
	dimensions []Dimension
}

// An Entity is the <entity> of a context.
type Entity struct {
	identifier EntityIdentifier
}

// Identifier returns the entity's identifier.
func (e Entity) Identifier() EntityIdentifier {
	return e.identifier
}

// An EntityIdentifier is the <identifier> inside <entity>.
type EntityIdentifier struct {
	scheme string
	value  string
}

// Scheme returns the identifier scheme.
func (i EntityIdentifier) Scheme() string {
	return i.scheme
}

// Value returns the identifier value.
func (i EntityIdentifier) Value() string {
	return i.value
}

// A Period is the <period> of a context.
type Period struct {
	instant   *string
	startDate *string
	endDate   *string
	forever   bool
}

// Instant returns the instant date if the period is an instant.
func (p Period) Instant() (string, bool) {
	if p.instant == nil {
		return "", false
	}
	return *p.instant, true
}

// StartDate returns the start date of a duration period.
func (p Period) StartDate() (string, bool) {
	if p.startDate == nil {
		return "", false
	}
	return *p.startDate, true
}

// EndDate returns the end date of a duration period.
func (p Period) EndDate() (string, bool) {
	if p.endDate == nil {
		return "", false
	}
	return *p.endDate, true
}

// IsInstant reports whether the period is an instant.
func (p Period) IsInstant() bool {
	return p.instant != nil && p.startDate == nil && p.endDate == nil && !p.forever
}

// IsForever reports whether the period is "forever".
func (p Period) IsForever() bool {
	return p.forever
}

// A Dimension is a dimensional qualifier (explicit or typed) attached
// to a context via <segment> or <scenario>.
type Dimension struct {
	dimension  xmlx.EName
	explicit   bool
	member     xmlx.EName // explicit member (zero value if typed)
	typedValue string     // raw text for typedMember (empty for explicit)
}

// Dimension returns the dimension concept's name (the @dimension
// attribute, resolved).
func (d Dimension) Dimension() xmlx.EName {
	return d.dimension
}

// IsExplicit reports whether this is an explicit dimension.
func (d Dimension) IsExplicit() bool {
	return d.explicit
}

// Member returns the explicit member's name. For typed dimensions
// this is the zero value.
func (d Dimension) Member() xmlx.EName {
	return d.member
}

// TypedValue returns the text of a typed member. For explicit
// dimensions this is empty.
func (d Dimension) TypedValue() string {
	return d.typedValue
}

// ID returns the context ID.
func (c *Context) ID() string {
	if c == nil {
		return ""
	}
	return c.id
}

// Entity returns the context's entity.
func (c *Context) Entity() Entity {
	if c == nil {
		return Entity{}
	}
	return c.entity
}

// Period returns the context's period.
func (c *Context) Period() Period {
	if c == nil {
		return Period{}
	}
	return c.period
}

// Dimensions returns a copy of the dimensions from segment and
// scenario, in document order.
func (c *Context) Dimensions() []Dimension {
	if c == nil {
		return nil
	}
	out := make([]Dimension, len(c.dimensions))
	copy(out, c.dimensions)
	return out
}

// DimensionByName returns the first dimension with the given name.
func (c *Context) DimensionByName(dim xmlx.EName) (Dimension, bool) {
	if c == nil {
		return Dimension{}, false
	}
	for _, d := range c.dimensions {
		if d.dimension == dim {
			return d, true
		}
	}
	return Dimension{}, false
}

// HasRepeatedDimensions reports whether any dimension name appears
// more than once across the context's segment and scenario.
func (c *Context) HasRepeatedDimensions() bool {
	if c == nil {
		return false
	}
	seen := make(map[xmlx.EName]bool, len(c.dimensions))
	for _, d := range c.dimensions {
		if seen[d.dimension] {
			return true
		}
		seen[d.dimension] = true
	}
	return false
}

// A Unit is an XBRL <unit> element: either a list of measures or a
// <divide> of numerator and denominator measures.
type Unit struct {
	id string

	measures []xmlx.EName

	divide      bool
	numerator   []xmlx.EName
	denominator []xmlx.EName
}

// ID returns the unit ID.
func (u *Unit) ID() string {
	if u == nil {
		return ""
	}
	return u.id
}

// Measures returns a copy of the simple measures of the unit.
func (u *Unit) Measures() []xmlx.EName {
	if u == nil {
		return nil
	}
	out := make([]xmlx.EName, len(u.measures))
	copy(out, u.measures)
	return out
}

// IsDivide reports whether the unit uses a <divide> structure.
func (u *Unit) IsDivide() bool {
	if u == nil {
		return false
	}
	return u.divide
}

// NumeratorMeasures returns a copy of the <unitNumerator> measures.
func (u *Unit) NumeratorMeasures() []xmlx.EName {
	if u == nil {
		return nil
	}
	out := make([]xmlx.EName, len(u.numerator))
	copy(out, u.numerator)
	return out
}

// DenominatorMeasures returns a copy of the <unitDenominator>
// measures.
func (u *Unit) DenominatorMeasures() []xmlx.EName {
	if u == nil {
		return nil
	}
	out := make([]xmlx.EName, len(u.denominator))
	copy(out, u.denominator)
	return out
}

// A Fact is a single XBRL item fact.
type Fact struct {
	name xmlx.EName

	value string

	contextRef string
	unitRef    string
	decimals   string
	precision  string
	id         string
	lang       string
	nil_       bool
}

// Name returns the fact's concept name.
func (f *Fact) Name() xmlx.EName {
	if f == nil {
		return xmlx.EName{}
	}
	return f.name
}

// Value returns the raw fact value as written in the instance.
func (f *Fact) Value() string {
	if f == nil {
		return ""
	}
	return f.value
}

// NormalizedValue returns the fact value with space-like characters
// converted to ASCII space and runs of whitespace collapsed.
func (f *Fact) NormalizedValue() string {
	if f == nil {
		return ""
	}
	return normalizeSpace(f.value)
}

// ContextRef returns the ID of the fact's context.
func (f *Fact) ContextRef() string {
	if f == nil {
		return ""
	}
	return f.contextRef
}

// UnitRef returns the ID of the fact's unit.
func (f *Fact) UnitRef() string {
	if f == nil {
		return ""
	}
	return f.unitRef
}

// Decimals returns the @decimals of the fact.
func (f *Fact) Decimals() string {
	if f == nil {
		return ""
	}
	return f.decimals
}

// Precision returns the @precision of the fact.
func (f *Fact) Precision() string {
	if f == nil {
		return ""
	}
	return f.precision
}

// ID returns the @id of the fact.
func (f *Fact) ID() string {
	if f == nil {
		return ""
	}
	return f.id
}

// Lang returns the xml:lang of the fact.
func (f *Fact) Lang() string {
	if f == nil {
		return ""
	}
	return f.lang
}

// IsNil reports whether the fact carries xsi:nil="true".
func (f *Fact) IsNil() bool {
	if f == nil {
		return false
	}
	return f.nil_
}

// SchemaRefs returns a copy of the document's schema references.
func (d *Document) SchemaRefs() []SchemaRef {
	if d == nil {
		return nil
	}
	out := make([]SchemaRef, len(d.schemaRefs))
	copy(out, d.schemaRefs)
	return out
}

// Contexts returns a copy of the contexts map (ID to context).
func (d *Document) Contexts() map[string]*Context {
	if d == nil {
		return nil
	}
	out := make(map[string]*Context, len(d.contexts))
	maps.Copy(out, d.contexts)
	return out
}

// Units returns a copy of the units map (ID to unit).
func (d *Document) Units() map[string]*Unit {
	if d == nil {
		return nil
	}
	out := make(map[string]*Unit, len(d.units))
	maps.Copy(out, d.units)
	return out
}

// Facts returns a copy of the document's facts.
func (d *Document) Facts() []*Fact {
	if d == nil {
		return nil
	}
	out := make([]*Fact, len(d.facts))
	copy(out, d.facts)
	return out
}

// ContextByID returns the context with the given ID, if present.
func (d *Document) ContextByID(id string) (*Context, bool) {
	if d == nil {
		return nil, false
	}
	ctx, ok := d.contexts[id]
	return ctx, ok
}

// UnitByID returns the unit with the given ID, if present.
func (d *Document) UnitByID(id string) (*Unit, bool) {
	if d == nil {
		return nil, false
	}
	u, ok := d.units[id]
	return u, ok
}

// ContextOf returns the context referenced by the given fact.
func (d *Document) ContextOf(f *Fact) (*Context, bool) {
	if d == nil || f == nil {
		return nil, false
	}
	return d.ContextByID(f.ContextRef())
}

// UnitOf returns the unit referenced by the given fact.
func (d *Document) UnitOf(f *Fact) (*Unit, bool) {
	if d == nil || f == nil {
		return nil, false
	}
	return d.UnitByID(f.UnitRef())
}
