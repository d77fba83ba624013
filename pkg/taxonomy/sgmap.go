package taxonomy

import "github.com/aethiopicuschan/dts-go/pkg/xmlx"

// A SubstitutionGroupMap maps element expanded names to their
// substitution-group heads (child to parent). It is a value type;
// composition returns new maps.
type SubstitutionGroupMap struct {
	parents map[xmlx.EName]xmlx.EName
}

// NewSubstitutionGroupMap builds a map from child-to-parent pairs.
func NewSubstitutionGroupMap(parents map[xmlx.EName]xmlx.EName) SubstitutionGroupMap {
	m := SubstitutionGroupMap{parents: make(map[xmlx.EName]xmlx.EName, len(parents))}
	for child, parent := range parents {
		m.parents[child] = parent
	}
	return m
}

// Parent returns the substitution-group head of the given element
// name, if known.
func (m SubstitutionGroupMap) Parent(child xmlx.EName) (xmlx.EName, bool) {
	parent, ok := m.parents[child]
	return parent, ok
}

// Len returns the number of edges.
func (m SubstitutionGroupMap) Len() int {
	return len(m.parents)
}

// Edges returns a copy of the child-to-parent map.
func (m SubstitutionGroupMap) Edges() map[xmlx.EName]xmlx.EName {
	out := make(map[xmlx.EName]xmlx.EName, len(m.parents))
	for c, p := range m.parents {
		out[c] = p
	}
	return out
}

// Net merges extra edges over the receiver; extras win on conflict.
func (m SubstitutionGroupMap) Net(extra SubstitutionGroupMap) SubstitutionGroupMap {
	out := SubstitutionGroupMap{parents: make(map[xmlx.EName]xmlx.EName, len(m.parents)+len(extra.parents))}
	for c, p := range m.parents {
		out.parents[c] = p
	}
	for c, p := range extra.parents {
		out.parents[c] = p
	}
	return out
}

// Reaches reports whether the chain from `from` (inclusive of `from`
// itself: a name reaches itself) arrives at root. Cycles are treated
// as non-reaching.
func (m SubstitutionGroupMap) Reaches(from, root xmlx.EName) bool {
	seen := make(map[xmlx.EName]bool)
	for cur := from; ; {
		if cur == root {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		parent, ok := m.parents[cur]
		if !ok {
			return false
		}
		cur = parent
	}
}
