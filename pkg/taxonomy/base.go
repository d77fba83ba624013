package taxonomy

import (
	"net/url"

	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// A Base is the aggregated, eagerly indexed view of an ordered set of
// parsed taxonomy documents. It is immutable after construction; the
// filtering operation returns a new Base.
type Base struct {
	docs          []*xmlx.Document
	rootElemByURI map[string]xmlx.Elem

	globalElemDecls       []GlobalElementDecl
	globalElemDeclByEName map[xmlx.EName]GlobalElementDecl
	globalAttrDeclByEName map[xmlx.EName]GlobalAttributeDecl
	namedTypeDefByEName   map[xmlx.EName]NamedTypeDef

	sgMap SubstitutionGroupMap
}

// NewBase builds a Base over the documents, in the given order. On a
// duplicate expanded name the first occurrence wins in every index.
func NewBase(docs []*xmlx.Document) *Base {
	b := &Base{
		docs:                  docs,
		rootElemByURI:         make(map[string]xmlx.Elem, len(docs)),
		globalElemDeclByEName: make(map[xmlx.EName]GlobalElementDecl),
		globalAttrDeclByEName: make(map[xmlx.EName]GlobalAttributeDecl),
		namedTypeDefByEName:   make(map[xmlx.EName]NamedTypeDef),
	}

	sgEdges := make(map[xmlx.EName]xmlx.EName)
	for _, doc := range docs {
		root := doc.Root()
		if doc.URI() != nil {
			uri := doc.URI().String()
			if _, dup := b.rootElemByURI[uri]; !dup {
				b.rootElemByURI[uri] = root
			}
		}

		schema, ok := AsXsdSchema(root)
		if !ok {
			continue
		}
		for _, decl := range schema.GlobalElementDecls() {
			b.globalElemDecls = append(b.globalElemDecls, decl)
			target := decl.TargetEName()
			if _, dup := b.globalElemDeclByEName[target]; !dup {
				b.globalElemDeclByEName[target] = decl
			}
			if sg, ok := decl.SubstitutionGroup(); ok {
				if _, dup := sgEdges[target]; !dup {
					sgEdges[target] = sg
				}
			}
		}
		for _, decl := range schema.GlobalAttributeDecls() {
			target := decl.TargetEName()
			if _, dup := b.globalAttrDeclByEName[target]; !dup {
				b.globalAttrDeclByEName[target] = decl
			}
		}
		for _, def := range schema.NamedTypeDefs() {
			target := def.TargetEName()
			if _, dup := b.namedTypeDefByEName[target]; !dup {
				b.namedTypeDefByEName[target] = def
			}
		}
	}
	b.sgMap = NewSubstitutionGroupMap(sgEdges)
	return b
}

// Documents returns the backing documents in construction order. The
// slice is shared; callers must not modify it.
func (b *Base) Documents() []*xmlx.Document {
	return b.docs
}

// RootElem returns the root element of the document with the given
// URI.
func (b *Base) RootElem(uri string) (xmlx.Elem, bool) {
	e, ok := b.rootElemByURI[uri]
	return e, ok
}

// GlobalElementDecls returns every global element declaration in
// document discovery order.
func (b *Base) GlobalElementDecls() []GlobalElementDecl {
	return b.globalElemDecls
}

// GlobalElementDecl returns the declaration with the given target
// name.
func (b *Base) GlobalElementDecl(target xmlx.EName) (GlobalElementDecl, bool) {
	d, ok := b.globalElemDeclByEName[target]
	return d, ok
}

// GetGlobalElementDecl is like GlobalElementDecl but fails with a
// MissingElementError when the declaration is absent.
func (b *Base) GetGlobalElementDecl(target xmlx.EName) (GlobalElementDecl, error) {
	d, ok := b.globalElemDeclByEName[target]
	if !ok {
		return GlobalElementDecl{}, &MissingElementError{What: "global element declaration", Name: target}
	}
	return d, nil
}

// GlobalAttributeDecl returns the attribute declaration with the
// given target name.
func (b *Base) GlobalAttributeDecl(target xmlx.EName) (GlobalAttributeDecl, bool) {
	d, ok := b.globalAttrDeclByEName[target]
	return d, ok
}

// NamedTypeDef returns the named type definition with the given
// target name.
func (b *Base) NamedTypeDef(target xmlx.EName) (NamedTypeDef, bool) {
	d, ok := b.namedTypeDefByEName[target]
	return d, ok
}

// GetNamedTypeDef is like NamedTypeDef but fails with a
// MissingElementError when the definition is absent.
func (b *Base) GetNamedTypeDef(target xmlx.EName) (NamedTypeDef, error) {
	d, ok := b.namedTypeDefByEName[target]
	if !ok {
		return NamedTypeDef{}, &MissingElementError{What: "named type definition", Name: target}
	}
	return d, nil
}

// ElementByURIFragment resolves a URI carrying a fragment to the
// element it points at, by @id or XPointer element scheme.
func (b *Base) ElementByURIFragment(uri *url.URL) (xmlx.Elem, bool) {
	if uri == nil || uri.Fragment == "" {
		return xmlx.Elem{}, false
	}
	clone := *uri
	clone.Fragment = ""
	root, ok := b.rootElemByURI[clone.String()]
	if !ok {
		return xmlx.Elem{}, false
	}
	return root.Doc().ElementByFragment(uri.Fragment)
}

// SubstitutionGroupMap returns the substitution-group edges derived
// from the documents.
func (b *Base) SubstitutionGroupMap() SubstitutionGroupMap {
	return b.sgMap
}

// BaseType returns one step up the type derivation chain of the named
// type, if the type is known and derived.
func (b *Base) BaseType(target xmlx.EName) (xmlx.EName, bool) {
	def, ok := b.namedTypeDefByEName[target]
	if !ok {
		return xmlx.EName{}, false
	}
	return def.BaseType()
}

// FindBaseTypeOrSelfUntil walks the base-type chain from the given
// type (inclusive) and returns the first name satisfying p. The walk
// stops without a result when the chain leaves the known types; cycles
// terminate the walk.
func (b *Base) FindBaseTypeOrSelfUntil(target xmlx.EName, p func(xmlx.EName) bool) (xmlx.EName, bool) {
	seen := make(map[xmlx.EName]bool)
	for cur := target; ; {
		if p(cur) {
			return cur, true
		}
		if seen[cur] {
			return xmlx.EName{}, false
		}
		seen[cur] = true
		next, ok := b.BaseType(cur)
		if !ok {
			return xmlx.EName{}, false
		}
		cur = next
	}
}

// GuessedScope returns the union of the root elements' scopes with the
// default namespace discarded. On conflicting prefixes, later
// documents win.
func (b *Base) GuessedScope() xmlx.Scope {
	var scope xmlx.Scope
	for _, doc := range b.docs {
		scope = scope.Append(doc.Root().Scope())
	}
	return scope.WithoutDefault()
}

// FilteringDocumentURIs returns a new Base over only the documents
// whose URI is in keep. Indices are rebuilt; the caller is expected to
// carry globals from excluded documents in an extra substitution-group
// map where classification must remain faithful.
func (b *Base) FilteringDocumentURIs(keep map[string]bool) *Base {
	var kept []*xmlx.Document
	for _, doc := range b.docs {
		if doc.URI() != nil && keep[doc.URI().String()] {
			kept = append(kept, doc)
		}
	}
	return NewBase(kept)
}
