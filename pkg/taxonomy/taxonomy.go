package taxonomy

import (
	"go.uber.org/zap"

	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// Config carries the construction options of a Taxonomy.
type Config struct {
	// Lenient skips invalid concept declarations with a warning
	// instead of failing the build.
	Lenient bool
	Logger  *zap.Logger
	// ExtraSubstitutionGroups supplies substitution-group edges for
	// globals living outside the collected documents. Extras win on
	// conflict.
	ExtraSubstitutionGroups SubstitutionGroupMap
}

// A Taxonomy is the query facade over a taxonomy base and its
// extracted relationships. It is deeply immutable: every index is
// built once at construction and the filtering and resolution
// operations return new instances.
type Taxonomy struct {
	base    *Base
	extraSG SubstitutionGroupMap
	netSG   SubstitutionGroupMap
	lenient bool
	logger  *zap.Logger

	rels []Relationship

	standardBySource map[xmlx.EName][]StandardRelationship
	interBySource    map[xmlx.EName][]InterConceptRelationship
	interByTarget    map[xmlx.EName][]InterConceptRelationship
	nonStdBySource   map[xmlx.FragmentKey][]*NonStandardRel
	nonStdByTarget   map[xmlx.FragmentKey][]*NonStandardRel

	concepts       []ConceptDecl
	conceptByEName map[xmlx.EName]ConceptDecl
}

// New builds a Taxonomy over a base and a relationship list. The
// relationship list order is preserved everywhere; every derived index
// keeps insertion order within its value lists.
func New(base *Base, rels []Relationship, cfg Config) (*Taxonomy, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Taxonomy{
		base:    base,
		extraSG: cfg.ExtraSubstitutionGroups,
		netSG:   base.SubstitutionGroupMap().Net(cfg.ExtraSubstitutionGroups),
		lenient: cfg.Lenient,
		logger:  logger,
	}

	builder := NewConceptDeclBuilder(t.netSG)
	t.conceptByEName = make(map[xmlx.EName]ConceptDecl)
	for _, decl := range base.GlobalElementDecls() {
		concept, ok, err := builder.Build(decl)
		if err != nil {
			if !cfg.Lenient {
				return nil, err
			}
			logger.Warn("skipping invalid concept declaration", zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		if _, dup := t.conceptByEName[concept.TargetEName()]; dup {
			continue
		}
		t.conceptByEName[concept.TargetEName()] = concept
		t.concepts = append(t.concepts, concept)
	}

	t.indexRelationships(rels)
	return t, nil
}

func (t *Taxonomy) indexRelationships(rels []Relationship) {
	t.rels = rels
	t.standardBySource = make(map[xmlx.EName][]StandardRelationship)
	t.interBySource = make(map[xmlx.EName][]InterConceptRelationship)
	t.interByTarget = make(map[xmlx.EName][]InterConceptRelationship)
	t.nonStdBySource = make(map[xmlx.FragmentKey][]*NonStandardRel)
	t.nonStdByTarget = make(map[xmlx.FragmentKey][]*NonStandardRel)

	for _, rel := range rels {
		switch r := rel.(type) {
		case *NonStandardRel:
			t.nonStdBySource[r.SourceKey()] = append(t.nonStdBySource[r.SourceKey()], r)
			t.nonStdByTarget[r.TargetKey()] = append(t.nonStdByTarget[r.TargetKey()], r)
		default:
			std, ok := rel.(StandardRelationship)
			if !ok {
				continue
			}
			t.standardBySource[std.SourceConcept()] = append(t.standardBySource[std.SourceConcept()], std)
			if ic, ok := rel.(InterConceptRelationship); ok {
				t.interBySource[ic.SourceConcept()] = append(t.interBySource[ic.SourceConcept()], ic)
				t.interByTarget[ic.TargetConcept()] = append(t.interByTarget[ic.TargetConcept()], ic)
			}
		}
	}
}

// withRelationships returns a copy of the taxonomy whose indices are
// rebuilt from the surviving relationships. Concepts and base carry
// over unchanged.
func (t *Taxonomy) withRelationships(rels []Relationship) *Taxonomy {
	out := &Taxonomy{
		base:           t.base,
		extraSG:        t.extraSG,
		netSG:          t.netSG,
		lenient:        t.lenient,
		logger:         t.logger,
		concepts:       t.concepts,
		conceptByEName: t.conceptByEName,
	}
	out.indexRelationships(rels)
	return out
}

// Base returns the underlying taxonomy base.
func (t *Taxonomy) Base() *Base {
	return t.base
}

// NetSubstitutionGroupMap returns the substitution-group map in
// effect: derived edges merged with the configured extras.
func (t *Taxonomy) NetSubstitutionGroupMap() SubstitutionGroupMap {
	return t.netSG
}

// Relationships returns the master relationship list in extraction
// order. The slice is shared; callers must not modify it.
func (t *Taxonomy) Relationships() []Relationship {
	return t.rels
}

// ConceptDecls returns every concept declaration in discovery order.
// The slice is shared; callers must not modify it.
func (t *Taxonomy) ConceptDecls() []ConceptDecl {
	return t.concepts
}

// ConceptDecl returns the concept declaration with the given name.
func (t *Taxonomy) ConceptDecl(target xmlx.EName) (ConceptDecl, bool) {
	c, ok := t.conceptByEName[target]
	return c, ok
}

// GetConceptDecl is like ConceptDecl but fails with a
// MissingElementError when the concept is absent.
func (t *Taxonomy) GetConceptDecl(target xmlx.EName) (ConceptDecl, error) {
	c, ok := t.conceptByEName[target]
	if !ok {
		return ConceptDecl{}, &MissingElementError{What: "concept declaration", Name: target}
	}
	return c, nil
}

// OutgoingStandard returns the standard relationships whose source is
// the given concept.
func (t *Taxonomy) OutgoingStandard(source xmlx.EName) []StandardRelationship {
	return t.standardBySource[source]
}

// OutgoingInterConcept returns the inter-concept relationships whose
// source is the given concept.
func (t *Taxonomy) OutgoingInterConcept(source xmlx.EName) []InterConceptRelationship {
	return t.interBySource[source]
}

// IncomingInterConcept returns the inter-concept relationships whose
// target is the given concept.
func (t *Taxonomy) IncomingInterConcept(target xmlx.EName) []InterConceptRelationship {
	return t.interByTarget[target]
}

// NonStandardOutgoing returns the non-standard relationships sourced
// at the given fragment key.
func (t *Taxonomy) NonStandardOutgoing(source xmlx.FragmentKey) []*NonStandardRel {
	return t.nonStdBySource[source]
}

// NonStandardIncoming returns the non-standard relationships targeted
// at the given fragment key.
func (t *Taxonomy) NonStandardIncoming(target xmlx.FragmentKey) []*NonStandardRel {
	return t.nonStdByTarget[target]
}

// RelationshipsOf returns the relationships of concrete type T, in
// master-list order.
func RelationshipsOf[T Relationship](t *Taxonomy) []T {
	var out []T
	for _, rel := range t.rels {
		if v, ok := rel.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// OutgoingOf returns the outgoing inter-concept relationships of type
// T sourced at the given concept.
func OutgoingOf[T InterConceptRelationship](t *Taxonomy, source xmlx.EName) []T {
	var out []T
	for _, rel := range t.interBySource[source] {
		if v, ok := rel.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// IncomingOf returns the incoming inter-concept relationships of type
// T targeted at the given concept.
func IncomingOf[T InterConceptRelationship](t *Taxonomy, target xmlx.EName) []T {
	var out []T
	for _, rel := range t.interByTarget[target] {
		if v, ok := rel.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// OwnOrInheritedHasHypercubes returns the has-hypercube relationships
// whose primary is the given concept, or an ancestor of it along
// domain-member paths consecutive with the has-hypercube.
func (t *Taxonomy) OwnOrInheritedHasHypercubes(concept xmlx.EName) []*HasHypercubeRel {
	type state struct {
		concept xmlx.EName
		// topELR is the ELR of the highest domain-member
		// relationship walked so far; "" until the first step.
		topELR string
	}

	var out []*HasHypercubeRel
	seenRel := make(map[*HasHypercubeRel]bool)
	emit := func(hh *HasHypercubeRel) {
		if !seenRel[hh] {
			seenRel[hh] = true
			out = append(out, hh)
		}
	}

	visited := map[state]bool{}
	frontier := []state{{concept: concept}}
	for len(frontier) > 0 {
		s := frontier[0]
		frontier = frontier[1:]
		if visited[s] {
			continue
		}
		visited[s] = true

		for _, rel := range t.interBySource[s.concept] {
			hh, ok := rel.(*HasHypercubeRel)
			if !ok {
				continue
			}
			// The has-hypercube must be consecutive with the
			// domain-member chain below it, if any.
			if s.topELR == "" || hh.EffectiveTargetRole() == s.topELR {
				emit(hh)
			}
		}

		for _, rel := range t.interByTarget[s.concept] {
			dm, ok := rel.(*DomainMemberRel)
			if !ok {
				continue
			}
			if s.topELR != "" && dm.EffectiveTargetRole() != s.topELR {
				continue
			}
			frontier = append(frontier, state{concept: dm.SourceConcept(), topELR: dm.ELR()})
		}
	}
	return out
}

// UsableDimensionMembers enumerates the dimensional relationship set
// of one has-hypercube and returns, per dimension, the set of usable
// members.
func (t *Taxonomy) UsableDimensionMembers(hh *HasHypercubeRel) map[xmlx.EName]map[xmlx.EName]bool {
	out := make(map[xmlx.EName]map[xmlx.EName]bool)
	for dim, members := range t.DimensionMembers(hh) {
		usable := make(map[xmlx.EName]bool)
		for m, ok := range members {
			if ok {
				usable[m] = true
			}
		}
		out[dim] = usable
	}
	return out
}

// DimensionMembers enumerates the dimensional relationship set of one
// has-hypercube: each consecutive hypercube-dimension, then each
// consecutive dimension-domain, then all consecutive domain-member
// paths. The result maps each dimension to its members with their
// usability; a member reported usable on any path is usable.
func (t *Taxonomy) DimensionMembers(hh *HasHypercubeRel) map[xmlx.EName]map[xmlx.EName]bool {
	out := make(map[xmlx.EName]map[xmlx.EName]bool)

	for _, rel := range t.interBySource[hh.Hypercube()] {
		hd, ok := rel.(*HypercubeDimensionRel)
		if !ok || !hh.IsFollowedBy(hd) {
			continue
		}
		members := out[hd.Dimension()]
		if members == nil {
			members = make(map[xmlx.EName]bool)
			out[hd.Dimension()] = members
		}

		for _, rel := range t.interBySource[hd.Dimension()] {
			dd, ok := rel.(*DimensionDomainRel)
			if !ok || !hd.IsFollowedBy(dd) {
				continue
			}
			if dd.Usable() {
				members[dd.TargetConcept()] = true
			} else if _, seen := members[dd.TargetConcept()]; !seen {
				members[dd.TargetConcept()] = false
			}
			t.collectDomainMembers(dd, members, make(map[domainStep]bool))
		}
	}
	return out
}

type domainStep struct {
	member xmlx.EName
	elr    string
}

// collectDomainMembers walks consecutive domain-member relationships
// below prev, recording each reached member's usability.
func (t *Taxonomy) collectDomainMembers(prev InterConceptRelationship, members map[xmlx.EName]bool, visited map[domainStep]bool) {
	step := domainStep{member: prev.TargetConcept(), elr: prev.EffectiveTargetRole()}
	if visited[step] {
		return
	}
	visited[step] = true

	for _, rel := range t.interBySource[prev.TargetConcept()] {
		dm, ok := rel.(*DomainMemberRel)
		if !ok || !prev.IsFollowedBy(dm) {
			continue
		}
		if dm.Usable() {
			members[dm.Member()] = true
		} else if _, seen := members[dm.Member()]; !seen {
			members[dm.Member()] = false
		}
		t.collectDomainMembers(dm, members, visited)
	}
}

// DimensionDefaults returns every dimension-default relationship.
func (t *Taxonomy) DimensionDefaults() []*DimensionDefaultRel {
	return RelationshipsOf[*DimensionDefaultRel](t)
}

// DimensionDefault returns the default member of the given dimension,
// if one is declared.
func (t *Taxonomy) DimensionDefault(dimension xmlx.EName) (xmlx.EName, bool) {
	for _, rel := range t.interBySource[dimension] {
		if dd, ok := rel.(*DimensionDefaultRel); ok {
			return dd.DefaultMember(), true
		}
	}
	return xmlx.EName{}, false
}

// FilteringDocumentURIs returns a new taxonomy over only the
// documents in keep. Relationships whose arc lives outside the kept
// documents are dropped, and the current net substitution-group map is
// carried as the extras of the result so concept classification stays
// faithful.
func (t *Taxonomy) FilteringDocumentURIs(keep map[string]bool) (*Taxonomy, error) {
	newBase := t.base.FilteringDocumentURIs(keep)

	var kept []Relationship
	for _, rel := range t.rels {
		uri := rel.Arc().DocURI()
		if uri != nil && keep[uri.String()] {
			kept = append(kept, rel)
		}
	}
	return New(newBase, kept, Config{
		Lenient:                 t.lenient,
		Logger:                  t.logger,
		ExtraSubstitutionGroups: t.netSG,
	})
}

// FilteringRelationships returns a new taxonomy retaining the full
// document content but only the relationships satisfying p.
func (t *Taxonomy) FilteringRelationships(p func(Relationship) bool) *Taxonomy {
	var kept []Relationship
	for _, rel := range t.rels {
		if p(rel) {
			kept = append(kept, rel)
		}
	}
	return t.withRelationships(kept)
}

// ResolveProhibitionAndOverriding applies XBRL 2.1 network resolution
// and returns a new taxonomy with prohibited and overridden
// relationships excised. Applying it twice equals applying it once.
func (t *Taxonomy) ResolveProhibitionAndOverriding(factory NetworkFactory) (*Taxonomy, error) {
	removedBySet, err := factory.ComputeNetworks(t.rels)
	if err != nil {
		return nil, err
	}

	removed := make(map[Relationship]bool)
	for _, rels := range removedBySet {
		for _, rel := range rels {
			removed[rel] = true
		}
	}

	var kept []Relationship
	for _, rel := range t.rels {
		if !removed[rel] {
			kept = append(kept, rel)
		}
	}
	return t.withRelationships(kept), nil
}
