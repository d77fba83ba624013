package taxonomy

import "github.com/aethiopicuschan/dts-go/pkg/xmlx"

// ConceptKind is the classification of a concept declaration.
type ConceptKind int

const (
	ConceptPrimaryItem ConceptKind = iota
	ConceptTuple
	ConceptHypercube
	ConceptExplicitDimension
	ConceptTypedDimension
)

// String implements fmt.Stringer.
func (k ConceptKind) String() string {
	switch k {
	case ConceptPrimaryItem:
		return "primaryItem"
	case ConceptTuple:
		return "tuple"
	case ConceptHypercube:
		return "hypercube"
	case ConceptExplicitDimension:
		return "explicitDimension"
	case ConceptTypedDimension:
		return "typedDimension"
	default:
		return "unknown"
	}
}

// A ConceptDecl is a global element declaration classified as an XBRL
// concept: an item or tuple, with items further split into primary
// items, hypercubes and typed/explicit dimensions.
type ConceptDecl struct {
	decl GlobalElementDecl
	kind ConceptKind
}

// Decl returns the underlying global element declaration.
func (c ConceptDecl) Decl() GlobalElementDecl {
	return c.decl
}

// Kind returns the concept's classification.
func (c ConceptDecl) Kind() ConceptKind {
	return c.kind
}

// TargetEName returns the concept's expanded name.
func (c ConceptDecl) TargetEName() xmlx.EName {
	return c.decl.TargetEName()
}

// IsItem reports whether the concept is an item of any kind.
func (c ConceptDecl) IsItem() bool {
	return c.kind != ConceptTuple
}

// IsTuple reports whether the concept is a tuple.
func (c ConceptDecl) IsTuple() bool {
	return c.kind == ConceptTuple
}

// IsPrimaryItem reports whether the concept is a primary item.
func (c ConceptDecl) IsPrimaryItem() bool {
	return c.kind == ConceptPrimaryItem
}

// IsHypercube reports whether the concept is a hypercube.
func (c ConceptDecl) IsHypercube() bool {
	return c.kind == ConceptHypercube
}

// IsDimension reports whether the concept is a dimension of either
// variety.
func (c ConceptDecl) IsDimension() bool {
	return c.kind == ConceptExplicitDimension || c.kind == ConceptTypedDimension
}

// IsAbstract reports whether the underlying declaration is abstract.
func (c ConceptDecl) IsAbstract() bool {
	return c.decl.IsAbstract()
}

// A ConceptDeclBuilder classifies global element declarations against
// a net substitution-group map.
type ConceptDeclBuilder struct {
	sg SubstitutionGroupMap
}

// NewConceptDeclBuilder creates a builder over the given net
// substitution-group map.
func NewConceptDeclBuilder(sg SubstitutionGroupMap) *ConceptDeclBuilder {
	return &ConceptDeclBuilder{sg: sg}
}

// Build classifies one declaration. Non-concept declarations yield
// ok=false; declarations with mutually exclusive substitution groups
// fail with an InvalidConceptError.
func (b *ConceptDeclBuilder) Build(decl GlobalElementDecl) (ConceptDecl, bool, error) {
	sg, ok := decl.SubstitutionGroup()
	if !ok {
		return ConceptDecl{}, false, nil
	}

	var (
		isItem      = b.sg.Reaches(sg, ENameItem)
		isTuple     = b.sg.Reaches(sg, ENameTuple)
		isHypercube = b.sg.Reaches(sg, ENameHypercubeItem)
		isDimension = b.sg.Reaches(sg, ENameDimensionItem)
	)

	target := decl.TargetEName()
	switch {
	case isItem && isTuple:
		return ConceptDecl{}, false, &InvalidConceptError{Target: target, Reason: "both item and tuple"}
	case isHypercube && isDimension:
		return ConceptDecl{}, false, &InvalidConceptError{Target: target, Reason: "both hypercube and dimension"}
	case isHypercube && !isItem:
		return ConceptDecl{}, false, &InvalidConceptError{Target: target, Reason: "hypercube that is not an item"}
	case isDimension && !isItem:
		return ConceptDecl{}, false, &InvalidConceptError{Target: target, Reason: "dimension that is not an item"}
	}

	switch {
	case isTuple:
		return ConceptDecl{decl: decl, kind: ConceptTuple}, true, nil
	case isHypercube:
		return ConceptDecl{decl: decl, kind: ConceptHypercube}, true, nil
	case isDimension:
		if _, typed := decl.TypedDomainRef(); typed {
			return ConceptDecl{decl: decl, kind: ConceptTypedDimension}, true, nil
		}
		return ConceptDecl{decl: decl, kind: ConceptExplicitDimension}, true, nil
	case isItem:
		return ConceptDecl{decl: decl, kind: ConceptPrimaryItem}, true, nil
	default:
		return ConceptDecl{}, false, nil
	}
}
