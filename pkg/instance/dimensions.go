package instance

import (
	"fmt"
	"sort"

	"github.com/aethiopicuschan/dts-go/pkg/taxonomy"
	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// A RepeatedDimensionError reports a context qualifying the same
// dimension more than once across its segment and scenario.
type RepeatedDimensionError struct {
	ContextID string
	Dimension xmlx.EName
}

func (e *RepeatedDimensionError) Error() string {
	return fmt.Sprintf("instance: context %q repeats dimension %s", e.ContextID, e.Dimension)
}

// A DefaultValueUsedError reports a context naming a dimension's
// default member explicitly; XBRL Dimensions requires defaults to stay
// implicit.
type DefaultValueUsedError struct {
	ContextID string
	Dimension xmlx.EName
	Member    xmlx.EName
}

func (e *DefaultValueUsedError) Error() string {
	return fmt.Sprintf("instance: context %q uses default member %s of dimension %s explicitly",
		e.ContextID, e.Member, e.Dimension)
}

// An UnknownDimensionError reports a dimensional qualifier whose
// dimension concept is not a dimension in the taxonomy.
type UnknownDimensionError struct {
	ContextID string
	Dimension xmlx.EName
}

func (e *UnknownDimensionError) Error() string {
	return fmt.Sprintf("instance: context %q qualifies %s, which is not a dimension in the taxonomy",
		e.ContextID, e.Dimension)
}

// ValidateDimensions checks every context of the document against the
// taxonomy's dimensional model and returns all findings: repeated
// dimensions, explicit use of default members, and dimension
// references that do not resolve to dimension concepts. A nil result
// means the instance's dimensional contexts are clean.
func ValidateDimensions(doc *Document, tax *taxonomy.Taxonomy) []error {
	if doc == nil || tax == nil {
		return nil
	}

	var errs []error
	for _, ctx := range orderedContexts(doc) {
		seen := make(map[xmlx.EName]bool)
		for _, dim := range ctx.dimensions {
			if seen[dim.dimension] {
				errs = append(errs, &RepeatedDimensionError{
					ContextID: ctx.id,
					Dimension: dim.dimension,
				})
			}
			seen[dim.dimension] = true

			concept, ok := tax.ConceptDecl(dim.dimension)
			if !ok || !concept.IsDimension() {
				errs = append(errs, &UnknownDimensionError{
					ContextID: ctx.id,
					Dimension: dim.dimension,
				})
				continue
			}

			if dim.explicit {
				if def, ok := tax.DimensionDefault(dim.dimension); ok && def == dim.member {
					errs = append(errs, &DefaultValueUsedError{
						ContextID: ctx.id,
						Dimension: dim.dimension,
						Member:    dim.member,
					})
				}
			}
		}
	}
	return errs
}

// orderedContexts returns the contexts sorted by ID so validation
// findings are deterministic.
func orderedContexts(doc *Document) []*Context {
	ids := make([]string, 0, len(doc.contexts))
	for id := range doc.contexts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*Context, 0, len(ids))
	for _, id := range ids {
		out = append(out, doc.contexts[id])
	}
	return out
}
