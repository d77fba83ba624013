package taxonomy

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// An ArcFilter restricts which arcs yield relationships. A nil filter
// admits every arc.
type ArcFilter func(Arc) bool

// A Factory resolves XLink arcs into typed relationships. In lenient
// mode unresolvable endpoints and unclassifiable arcs are logged and
// skipped (or mapped to the closest generic kind); otherwise the first
// failure aborts the build.
type Factory struct {
	Lenient   bool
	Logger    *zap.Logger
	ArcFilter ArcFilter
}

// endpoint is one resolved end of an arc.
type endpoint struct {
	elem      xmlx.Elem
	concept   xmlx.EName
	isConcept bool
	resource  Resource
	isRes     bool
}

// Relationships extracts every relationship from every extended link
// in the base's documents, in discovery order then document order.
// One relationship is produced per (arc, from-end, to-end) triple.
func (f *Factory) Relationships(base *Base) ([]Relationship, error) {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var out []Relationship
	for _, doc := range base.Documents() {
		for _, e := range doc.Root().Descendants() {
			if Kind(e) != KindExtendedLink {
				continue
			}
			rels, err := f.linkRelationships(base, ExtendedLink{Elem: e}, logger)
			if err != nil {
				return nil, err
			}
			out = append(out, rels...)
		}
	}
	return out, nil
}

func (f *Factory) linkRelationships(base *Base, link ExtendedLink, logger *zap.Logger) ([]Relationship, error) {
	byLabel := make(map[string][]endpoint)

	for _, loc := range link.Locators() {
		ep, err := f.resolveLocator(base, loc)
		if err != nil {
			if !f.Lenient {
				return nil, err
			}
			logger.Warn("skipping locator", zap.String("href", loc.Href()), zap.Error(err))
			continue
		}
		byLabel[loc.Label()] = append(byLabel[loc.Label()], ep)
	}
	for _, res := range link.Resources() {
		ep := endpoint{elem: res.Elem, resource: res, isRes: true}
		byLabel[res.Label()] = append(byLabel[res.Label()], ep)
	}

	var out []Relationship
	for _, arc := range link.Arcs() {
		if f.ArcFilter != nil && !f.ArcFilter(arc) {
			continue
		}

		froms := byLabel[arc.From()]
		tos := byLabel[arc.To()]
		if len(froms) == 0 || len(tos) == 0 {
			if !f.Lenient {
				return nil, &ClassificationError{
					Arcrole: arc.Arcrole(),
					ArcName: arc.Name(),
					Reason:  "arc label matches no locator or resource",
				}
			}
			logger.Warn("skipping arc with unmatched label",
				zap.String("from", arc.From()), zap.String("to", arc.To()))
			continue
		}

		for _, from := range froms {
			for _, to := range tos {
				rel, err := f.classify(link, arc, from, to)
				if err != nil {
					if !f.Lenient {
						return nil, err
					}
					logger.Warn("dropping unclassifiable arc",
						zap.String("arcrole", arc.Arcrole()), zap.Error(err))
					continue
				}
				if rel != nil {
					out = append(out, rel)
				}
			}
		}
	}
	return out, nil
}

// resolveLocator resolves a locator's href, relative to the locator's
// base URI, to an element in the collected documents.
func (f *Factory) resolveLocator(base *Base, loc Locator) (endpoint, error) {
	href := strings.TrimSpace(loc.Href())
	ref, err := url.Parse(href)
	if err != nil {
		return endpoint{}, &DanglingLocatorError{Href: href, Key: loc.Key()}
	}
	target := ref
	if baseURI := loc.BaseURI(); baseURI != nil {
		target = baseURI.ResolveReference(ref)
	}
	elem, ok := base.ElementByURIFragment(target)
	if !ok {
		return endpoint{}, &DanglingLocatorError{Href: href, Key: loc.Key()}
	}

	ep := endpoint{elem: elem}
	if decl, ok := AsGlobalElementDecl(elem); ok {
		ep.concept = decl.TargetEName()
		ep.isConcept = true
	}
	return ep, nil
}

// classify dispatches one (arc, from, to) triple to its relationship
// kind. A triple that cannot be classified yields a ClassificationError;
// the caller drops it with a warning in lenient mode.
func (f *Factory) classify(link ExtendedLink, arc Arc, from, to endpoint) (Relationship, error) {
	elr := link.Role()
	etr := elr
	if tr, ok := arc.TargetRole(); ok {
		etr = tr
	}
	core := relCore{arc: arc, source: from.elem, target: to.elem, elr: elr, effectiveTargetRole: etr}

	if !link.IsStandard() {
		return &NonStandardRel{relCore: core}, nil
	}

	if !from.isConcept {
		return nil, &ClassificationError{
			Arcrole: arc.Arcrole(),
			ArcName: arc.Name(),
			Reason:  "source of a standard relationship is not a concept",
		}
	}
	std := standardCore{relCore: core, sourceConcept: from.concept}

	switch {
	case to.isRes:
		cr := conceptResourceCore{standardCore: std, resource: to.resource}
		switch arc.Arcrole() {
		case ArcroleConceptLabel:
			return &ConceptLabelRel{conceptResourceCore: cr}, nil
		case ArcroleConceptReference:
			return &ConceptReferenceRel{conceptResourceCore: cr}, nil
		default:
			if isStandardArcName(arc.Name()) {
				return &OtherConceptResourceRel{conceptResourceCore: cr}, nil
			}
			if f.Lenient {
				return &OtherConceptResourceRel{conceptResourceCore: cr}, nil
			}
			return nil, &ClassificationError{
				Arcrole: arc.Arcrole(),
				ArcName: arc.Name(),
				Reason:  "no dispatch entry for concept-resource arc",
			}
		}

	case to.isConcept:
		ic := interConceptCore{standardCore: std, targetConcept: to.concept}
		switch arc.Arcrole() {
		case ArcroleAll, ArcroleNotAll:
			return &HasHypercubeRel{interConceptCore: ic}, nil
		case ArcroleHypercubeDimension:
			return &HypercubeDimensionRel{interConceptCore: ic}, nil
		case ArcroleDimensionDomain:
			return &DimensionDomainRel{interConceptCore: ic}, nil
		case ArcroleDomainMember:
			return &DomainMemberRel{interConceptCore: ic}, nil
		case ArcroleDimensionDefault:
			return &DimensionDefaultRel{interConceptCore: ic}, nil
		case ArcroleParentChild:
			return &ParentChildRel{interConceptCore: ic}, nil
		case ArcroleSummationItem:
			return &CalculationRel{interConceptCore: ic}, nil
		default:
			if arc.Name() == (xmlx.EName{Namespace: NsLink, Local: "definitionArc"}) {
				return &DefinitionRel{interConceptCore: ic}, nil
			}
			if isStandardArcName(arc.Name()) {
				return &OtherInterConceptRel{interConceptCore: ic}, nil
			}
			if f.Lenient {
				return &OtherInterConceptRel{interConceptCore: ic}, nil
			}
			return nil, &ClassificationError{
				Arcrole: arc.Arcrole(),
				ArcName: arc.Name(),
				Reason:  "no dispatch entry for inter-concept arc",
			}
		}

	default:
		return nil, &ClassificationError{
			Arcrole: arc.Arcrole(),
			ArcName: arc.Name(),
			Reason:  "target of a standard relationship is neither concept nor resource",
		}
	}
}

func isStandardArcName(name xmlx.EName) bool {
	if name.Namespace != NsLink {
		return false
	}
	switch name.Local {
	case "definitionArc", "presentationArc", "calculationArc", "labelArc", "referenceArc", "footnoteArc":
		return true
	default:
		return false
	}
}
