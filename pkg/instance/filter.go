package instance

import "github.com/aethiopicuschan/dts-go/pkg/xmlx"

// A FactFilter describes criteria for selecting facts. Configure it
// with the builder-style methods and pass it to Document.FilterFacts.
type FactFilter struct {
	concept    *xmlx.EName
	contextID  string
	unitID     string
	nilFilter  *bool
	dimensions []dimensionFilter
}

// dimensionFilter is one required explicit dimension/member pair.
type dimensionFilter struct {
	dimension xmlx.EName
	member    xmlx.EName
}

// NewFactFilter creates an empty filter; an empty filter matches every
// fact.
func NewFactFilter() *FactFilter {
	return &FactFilter{}
}

// Concept requires the fact's concept name to equal name.
func (f *FactFilter) Concept(name xmlx.EName) *FactFilter {
	if f == nil {
		return nil
	}
	f.concept = &name
	return f
}

// ContextID requires the fact to reference the given context.
func (f *FactFilter) ContextID(id string) *FactFilter {
	if f == nil {
		return nil
	}
	f.contextID = id
	return f
}

// UnitID requires the fact to reference the given unit.
func (f *FactFilter) UnitID(id string) *FactFilter {
	if f == nil {
		return nil
	}
	f.unitID = id
	return f
}

// OnlyNil keeps only xsi:nil facts.
func (f *FactFilter) OnlyNil() *FactFilter {
	if f == nil {
		return nil
	}
	v := true
	f.nilFilter = &v
	return f
}

// ExcludeNil drops xsi:nil facts.
func (f *FactFilter) ExcludeNil() *FactFilter {
	if f == nil {
		return nil
	}
	v := false
	f.nilFilter = &v
	return f
}

// Dimension requires the fact's context to carry the given explicit
// dimension/member pair. Multiple requirements must all hold.
func (f *FactFilter) Dimension(dimension, member xmlx.EName) *FactFilter {
	if f == nil {
		return nil
	}
	f.dimensions = append(f.dimensions, dimensionFilter{dimension: dimension, member: member})
	return f
}

// FilterFacts returns the facts matching the filter, in document
// order. The returned slice is the caller's to modify.
//
// Dimension requirements are evaluated against explicit dimensions
// only; typed dimensions never match.
func (d *Document) FilterFacts(f *FactFilter) []*Fact {
	if d == nil || f == nil {
		return nil
	}

	var out []*Fact
	for _, fact := range d.facts {
		if fact == nil {
			continue
		}
		if f.concept != nil && fact.Name() != *f.concept {
			continue
		}
		if f.contextID != "" && fact.ContextRef() != f.contextID {
			continue
		}
		if f.unitID != "" && fact.UnitRef() != f.unitID {
			continue
		}
		if f.nilFilter != nil && fact.IsNil() != *f.nilFilter {
			continue
		}
		if len(f.dimensions) > 0 && !d.contextMatchesDimensions(fact.ContextRef(), f.dimensions) {
			continue
		}
		out = append(out, fact)
	}
	return out
}

func (d *Document) contextMatchesDimensions(contextID string, required []dimensionFilter) bool {
	ctx, ok := d.contexts[contextID]
	if !ok || ctx == nil {
		return false
	}
	for _, want := range required {
		found := false
		for _, dim := range ctx.dimensions {
			if dim.explicit && dim.dimension == want.dimension && dim.member == want.member {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
