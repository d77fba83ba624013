package taxonomy

import "github.com/aethiopicuschan/dts-go/pkg/xmlx"

// A Relationship is one resolved (arc, from-end, to-end) triple. The
// hierarchy is closed: every implementation lives in this package.
type Relationship interface {
	// Arc returns the backing XLink arc.
	Arc() Arc
	// ELR returns the extended link role the arc appears in.
	ELR() string
	// Arcrole returns the arc's xlink:arcrole.
	Arcrole() string
	// SourceElem and TargetElem return the resolved endpoint
	// elements.
	SourceElem() xmlx.Elem
	TargetElem() xmlx.Elem
	// SourceKey and TargetKey return the endpoint identities.
	SourceKey() xmlx.FragmentKey
	TargetKey() xmlx.FragmentKey
	// Order returns the arc's @order.
	Order() float64
	// EffectiveTargetRole returns the ELR that consecutive
	// relationships must appear in: @xbrldt:targetRole when present,
	// the arc's own ELR otherwise.
	EffectiveTargetRole() string

	isRelationship()
}

// A StandardRelationship is a relationship in a standard extended
// link; its source resolves to a concept.
type StandardRelationship interface {
	Relationship
	// SourceConcept returns the source concept's expanded name.
	SourceConcept() xmlx.EName

	isStandard()
}

// An InterConceptRelationship is a standard relationship whose target
// also resolves to a concept.
type InterConceptRelationship interface {
	StandardRelationship
	// TargetConcept returns the target concept's expanded name.
	TargetConcept() xmlx.EName
	// IsFollowedBy reports whether other is consecutive with the
	// receiver: the receiver's target is other's source and the
	// receiver's effective target role is other's ELR. This is the
	// only admissible notion of consecutive relationships in DRS
	// traversal.
	IsFollowedBy(other InterConceptRelationship) bool

	isInterConcept()
}

// A ConceptResourceRelationship is a standard relationship whose
// target is a resource.
type ConceptResourceRelationship interface {
	StandardRelationship
	// Resource returns the target resource.
	Resource() Resource

	isConceptResource()
}

type relCore struct {
	arc                 Arc
	source              xmlx.Elem
	target              xmlx.Elem
	elr                 string
	effectiveTargetRole string
}

func (r *relCore) Arc() Arc                    { return r.arc }
func (r *relCore) ELR() string                 { return r.elr }
func (r *relCore) Arcrole() string             { return r.arc.Arcrole() }
func (r *relCore) SourceElem() xmlx.Elem       { return r.source }
func (r *relCore) TargetElem() xmlx.Elem       { return r.target }
func (r *relCore) SourceKey() xmlx.FragmentKey { return r.source.Key() }
func (r *relCore) TargetKey() xmlx.FragmentKey { return r.target.Key() }
func (r *relCore) Order() float64              { return r.arc.Order() }
func (r *relCore) EffectiveTargetRole() string { return r.effectiveTargetRole }
func (r *relCore) isRelationship()             {}

type standardCore struct {
	relCore
	sourceConcept xmlx.EName
}

func (r *standardCore) SourceConcept() xmlx.EName { return r.sourceConcept }
func (r *standardCore) isStandard()               {}

type interConceptCore struct {
	standardCore
	targetConcept xmlx.EName
}

func (r *interConceptCore) TargetConcept() xmlx.EName { return r.targetConcept }
func (r *interConceptCore) isInterConcept()           {}

func (r *interConceptCore) IsFollowedBy(other InterConceptRelationship) bool {
	return r.targetConcept == other.SourceConcept() &&
		r.effectiveTargetRole == other.ELR()
}

type conceptResourceCore struct {
	standardCore
	resource Resource
}

func (r *conceptResourceCore) Resource() Resource { return r.resource }
func (r *conceptResourceCore) isConceptResource() {}

// ParentChildRel is a presentation parent-child relationship.
type ParentChildRel struct {
	interConceptCore
}

// PreferredLabel returns the arc's @preferredLabel, or "".
func (r *ParentChildRel) PreferredLabel() string {
	return r.arc.PreferredLabel()
}

// CalculationRel is a calculation summation-item relationship.
type CalculationRel struct {
	interConceptCore
}

// Weight returns the arc's @weight.
func (r *CalculationRel) Weight() float64 {
	return r.arc.Weight()
}

// DefinitionRel is a definition-link relationship with a
// non-dimensional arcrole.
type DefinitionRel struct {
	interConceptCore
}

// OtherInterConceptRel is the generic inter-concept relationship used
// as the lenient fallback for unrecognized arcroles.
type OtherInterConceptRel struct {
	interConceptCore
}

// HasHypercubeRel relates a primary item to a hypercube via the "all"
// or "notAll" arcrole.
type HasHypercubeRel struct {
	interConceptCore
}

// IsAll reports whether the arcrole is "all" (as opposed to
// "notAll").
func (r *HasHypercubeRel) IsAll() bool {
	return r.Arcrole() == ArcroleAll
}

// Primary returns the primary item's name.
func (r *HasHypercubeRel) Primary() xmlx.EName {
	return r.sourceConcept
}

// Hypercube returns the hypercube's name.
func (r *HasHypercubeRel) Hypercube() xmlx.EName {
	return r.targetConcept
}

// HypercubeDimensionRel relates a hypercube to one of its dimensions.
type HypercubeDimensionRel struct {
	interConceptCore
}

// Dimension returns the dimension's name.
func (r *HypercubeDimensionRel) Dimension() xmlx.EName {
	return r.targetConcept
}

// DimensionDomainRel relates a dimension to its domain root.
type DimensionDomainRel struct {
	interConceptCore
}

// Dimension returns the dimension's name.
func (r *DimensionDomainRel) Dimension() xmlx.EName {
	return r.sourceConcept
}

// Usable reports whether the domain itself is usable, per
// @xbrldt:usable on this arc (default true).
func (r *DimensionDomainRel) Usable() bool {
	return r.arc.Usable()
}

// DomainMemberRel relates a domain member to a further member.
type DomainMemberRel struct {
	interConceptCore
}

// Member returns the target member's name.
func (r *DomainMemberRel) Member() xmlx.EName {
	return r.targetConcept
}

// Usable reports whether the target member is usable, per
// @xbrldt:usable on this arc (default true). The flag binds only this
// member; members below it follow their own arcs.
func (r *DomainMemberRel) Usable() bool {
	return r.arc.Usable()
}

// DimensionDefaultRel relates a dimension to its default member.
type DimensionDefaultRel struct {
	interConceptCore
}

// Dimension returns the dimension's name.
func (r *DimensionDefaultRel) Dimension() xmlx.EName {
	return r.sourceConcept
}

// DefaultMember returns the default member's name.
func (r *DimensionDefaultRel) DefaultMember() xmlx.EName {
	return r.targetConcept
}

// ConceptLabelRel relates a concept to a label resource.
type ConceptLabelRel struct {
	conceptResourceCore
}

// LabelText returns the label's text content.
func (r *ConceptLabelRel) LabelText() string {
	return r.resource.Text()
}

// LabelRole returns the label resource's role.
func (r *ConceptLabelRel) LabelRole() string {
	return r.resource.Role()
}

// Lang returns the label's language.
func (r *ConceptLabelRel) Lang() string {
	return r.resource.Lang()
}

// ConceptReferenceRel relates a concept to a reference resource.
type ConceptReferenceRel struct {
	conceptResourceCore
}

// OtherConceptResourceRel is the generic concept-resource
// relationship used as the lenient fallback.
type OtherConceptResourceRel struct {
	conceptResourceCore
}

// NonStandardRel is a relationship in a non-standard extended link;
// its endpoints are identified by fragment keys only.
type NonStandardRel struct {
	relCore
}
