package taxonomy

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// A BaseSetKey identifies one XBRL 2.1 base set: all arcs sharing an
// extended link role, arcrole, arc element name and link element name
// resolve within one network.
type BaseSetKey struct {
	ELR      string
	Arcrole  string
	ArcName  xmlx.EName
	LinkName xmlx.EName
}

// A NetworkFactory computes, per base set, the relationships removed
// by prohibition and overriding.
type NetworkFactory interface {
	ComputeNetworks(rels []Relationship) (map[BaseSetKey][]Relationship, error)
}

// XBRL21NetworkFactory implements the XBRL 2.1 network-of-relationships
// resolution: relationships backed by equivalent arcs form one class;
// the highest @priority wins, and a prohibiting arc at the winning
// priority removes the whole class.
type XBRL21NetworkFactory struct{}

// ComputeNetworks implements NetworkFactory.
func (XBRL21NetworkFactory) ComputeNetworks(rels []Relationship) (map[BaseSetKey][]Relationship, error) {
	type class struct {
		members []Relationship
	}
	classesBySet := make(map[BaseSetKey]map[string]*class)
	var setOrder []BaseSetKey

	for _, rel := range rels {
		set := baseSetOf(rel)
		classes, ok := classesBySet[set]
		if !ok {
			classes = make(map[string]*class)
			classesBySet[set] = classes
			setOrder = append(setOrder, set)
		}
		key := equivalenceKey(rel)
		c, ok := classes[key]
		if !ok {
			c = &class{}
			classes[key] = c
		}
		c.members = append(c.members, rel)
	}

	removed := make(map[BaseSetKey][]Relationship)
	for _, set := range setOrder {
		for _, c := range classesBySet[set] {
			maxPriority := 0
			priorities := make([]int, len(c.members))
			for i, rel := range c.members {
				p, ok := rel.Arc().Priority()
				if !ok {
					return nil, &NetworkComputationError{
						BaseSet: set,
						Reason:  "arc priority is not an integer",
					}
				}
				priorities[i] = p
				if i == 0 || p > maxPriority {
					maxPriority = p
				}
			}

			prohibitedAtTop := false
			for i, rel := range c.members {
				if priorities[i] == maxPriority && rel.Arc().IsProhibiting() {
					prohibitedAtTop = true
					break
				}
			}

			for i, rel := range c.members {
				if prohibitedAtTop || priorities[i] < maxPriority || rel.Arc().IsProhibiting() {
					removed[set] = append(removed[set], rel)
				}
			}
		}
	}
	return removed, nil
}

// baseSetOf derives the base set of a relationship from its arc and
// enclosing link.
func baseSetOf(rel Relationship) BaseSetKey {
	key := BaseSetKey{
		ELR:     rel.ELR(),
		Arcrole: rel.Arcrole(),
		ArcName: rel.Arc().Name(),
	}
	if link, ok := rel.Arc().ExtendedLink(); ok {
		key.LinkName = link.Name()
	}
	return key
}

// equivalenceKey renders the arc-equivalence identity of a
// relationship within its base set: both endpoint identities plus the
// arc's non-exempt attributes. @use and @priority are exempt, as is
// everything in the XLink namespace.
func equivalenceKey(rel Relationship) string {
	arc := rel.Arc()

	var attrs []string
	for _, a := range arc.Attrs() {
		if a.Name.Namespace == NsXLink {
			continue
		}
		switch a.Name {
		case xmlx.EName{Local: "use"}, xmlx.EName{Local: "priority"},
			xmlx.EName{Local: "order"}, xmlx.EName{Local: "weight"}:
			// use and priority are exempt; order and weight join the
			// key below in canonical numeric form so that absent and
			// default-valued attributes compare equal.
			continue
		}
		attrs = append(attrs, a.Name.String()+"="+a.Value)
	}
	sort.Strings(attrs)

	var b strings.Builder
	b.WriteString(rel.SourceKey().String())
	b.WriteByte('\x00')
	b.WriteString(rel.TargetKey().String())
	b.WriteByte('\x00')
	b.WriteString(strconv.FormatFloat(arc.Order(), 'g', -1, 64))
	b.WriteByte('\x00')
	b.WriteString(strconv.FormatFloat(arc.Weight(), 'g', -1, 64))
	for _, a := range attrs {
		b.WriteByte('\x00')
		b.WriteString(a)
	}
	return b.String()
}
