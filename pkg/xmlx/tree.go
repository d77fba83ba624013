package xmlx

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Well-known namespace URIs used across XBRL taxonomies.
const (
	XMLNamespace   = "http://www.w3.org/XML/1998/namespace"
	XLinkNamespace = "http://www.w3.org/1999/xlink"
)

// A NodeID identifies one element within its Document's arena.
type NodeID int32

// noParent marks the root element's parent slot.
const noParent NodeID = -1

// An Attr is a resolved attribute: expanded name plus value.
type Attr struct {
	Name  EName
	Value string
}

// A Document is a parsed XML document backed by an arena of element
// nodes. Documents are immutable after Parse returns.
type Document struct {
	uri   *url.URL
	nodes []node
	byID  map[string]NodeID
}

type node struct {
	name      EName
	attrs     []Attr
	parent    NodeID
	children  []NodeID
	text      string
	scope     Scope
	base      *url.URL // non-nil only where xml:base appears
	elemIndex int      // position among the parent's element children
}

// URI returns the document URI.
func (d *Document) URI() *url.URL {
	return d.uri
}

// Root returns the document's root element.
func (d *Document) Root() Elem {
	return Elem{doc: d, id: 0}
}

// Len returns the number of element nodes in the document.
func (d *Document) Len() int {
	return len(d.nodes)
}

// ElementByID returns the element carrying the given @id value.
func (d *Document) ElementByID(id string) (Elem, bool) {
	nid, ok := d.byID[id]
	if !ok {
		return Elem{}, false
	}
	return Elem{doc: d, id: nid}, true
}

// ElementByFragment resolves a URI fragment to an element. Bare
// fragments are shorthand pointers (@id lookup); the XPointer element
// scheme is supported in its three forms: element(id),
// element(/1/2/3) and element(id/2/3). Child sequence numbers are
// 1-based positions among element children.
func (d *Document) ElementByFragment(frag string) (Elem, bool) {
	if frag == "" {
		return Elem{}, false
	}
	if !strings.HasPrefix(frag, "element(") || !strings.HasSuffix(frag, ")") {
		return d.ElementByID(frag)
	}
	ptr := frag[len("element(") : len(frag)-1]
	if ptr == "" {
		return Elem{}, false
	}

	var cur Elem
	steps := strings.Split(ptr, "/")
	if steps[0] == "" {
		// element(/1/...) addresses from the document itself; the
		// leading /1 selects the root element.
		if len(steps) < 2 || steps[1] != "1" {
			return Elem{}, false
		}
		cur = d.Root()
		steps = steps[2:]
	} else {
		var ok bool
		cur, ok = d.ElementByID(steps[0])
		if !ok {
			return Elem{}, false
		}
		steps = steps[1:]
	}
	for _, step := range steps {
		n, err := strconv.Atoi(step)
		if err != nil || n < 1 {
			return Elem{}, false
		}
		kids := d.nodes[cur.id].children
		if n > len(kids) {
			return Elem{}, false
		}
		cur = Elem{doc: d, id: kids[n-1]}
	}
	return cur, true
}

// An Elem is a handle on one element of a Document. The zero Elem is
// invalid; test with IsValid before use when provenance is unclear.
type Elem struct {
	doc *Document
	id  NodeID
}

// IsValid reports whether the handle points into a document.
func (e Elem) IsValid() bool {
	return e.doc != nil
}

// Doc returns the owning document.
func (e Elem) Doc() *Document {
	return e.doc
}

// DocURI returns the owning document's URI.
func (e Elem) DocURI() *url.URL {
	return e.doc.uri
}

// Name returns the element's expanded name.
func (e Elem) Name() EName {
	return e.doc.nodes[e.id].name
}

// Attrs returns the element's attributes in document order. The slice
// is shared; callers must not modify it.
func (e Elem) Attrs() []Attr {
	return e.doc.nodes[e.id].attrs
}

// Attr returns the value of the attribute with the given expanded
// name.
func (e Elem) Attr(name EName) (string, bool) {
	for _, a := range e.doc.nodes[e.id].attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value, or def when absent.
func (e Elem) AttrOr(name EName, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// AttrEName resolves a QName-valued attribute against the element's
// scope. Prefixless values resolve to the default namespace, which is
// what schema references (type, ref, substitutionGroup) require.
func (e Elem) AttrEName(name EName) (EName, bool) {
	v, ok := e.Attr(name)
	if !ok {
		return EName{}, false
	}
	return e.Scope().ResolveString(strings.TrimSpace(v))
}

// Text returns the concatenated character data directly contained in
// the element.
func (e Elem) Text() string {
	return e.doc.nodes[e.id].text
}

// Parent returns the parent element, if any.
func (e Elem) Parent() (Elem, bool) {
	p := e.doc.nodes[e.id].parent
	if p == noParent {
		return Elem{}, false
	}
	return Elem{doc: e.doc, id: p}, true
}

// Children returns the element children in document order.
func (e Elem) Children() []Elem {
	ids := e.doc.nodes[e.id].children
	out := make([]Elem, len(ids))
	for i, id := range ids {
		out[i] = Elem{doc: e.doc, id: id}
	}
	return out
}

// ChildrenNamed returns the element children with the given name.
func (e Elem) ChildrenNamed(name EName) []Elem {
	var out []Elem
	for _, id := range e.doc.nodes[e.id].children {
		if e.doc.nodes[id].name == name {
			out = append(out, Elem{doc: e.doc, id: id})
		}
	}
	return out
}

// FirstChildNamed returns the first element child with the given name.
func (e Elem) FirstChildNamed(name EName) (Elem, bool) {
	for _, id := range e.doc.nodes[e.id].children {
		if e.doc.nodes[id].name == name {
			return Elem{doc: e.doc, id: id}, true
		}
	}
	return Elem{}, false
}

// Descendants returns the element and every descendant element in
// document order.
func (e Elem) Descendants() []Elem {
	var out []Elem
	stack := []NodeID{e.id}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, Elem{doc: e.doc, id: id})
		kids := e.doc.nodes[id].children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// Scope returns the namespace scope in effect at the element.
func (e Elem) Scope() Scope {
	return e.doc.nodes[e.id].scope
}

// BaseURI returns the element's base URI: the nearest xml:base on the
// ancestor-or-self axis resolved against its own inherited base, or
// the document URI.
func (e Elem) BaseURI() *url.URL {
	for id := e.id; ; {
		n := &e.doc.nodes[id]
		if n.base != nil {
			return n.base
		}
		if n.parent == noParent {
			break
		}
		id = n.parent
	}
	return e.doc.uri
}

// Key returns the element's fragment key, the stable cross-rebuild
// identity of the element.
func (e Elem) Key() FragmentKey {
	var steps []string
	for id := e.id; id != 0; {
		n := &e.doc.nodes[id]
		steps = append(steps, n.name.String()+"["+strconv.Itoa(n.elemIndex)+"]")
		id = n.parent
	}
	var b strings.Builder
	for i := len(steps) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(steps[i])
	}
	uri := ""
	if e.doc.uri != nil {
		uri = e.doc.uri.String()
	}
	return FragmentKey{DocURI: uri, Path: b.String()}
}

// A FragmentKey is the identity of an element: its document URI plus
// the path of (expanded name, element-child index) steps from the
// root. Two elements are the same element iff their keys are equal.
// The path of the root element is the empty string.
type FragmentKey struct {
	DocURI string
	Path   string
}

// String renders the key for diagnostics.
func (k FragmentKey) String() string {
	return fmt.Sprintf("%s#%s", k.DocURI, k.Path)
}
