package xmlx

import (
	"fmt"
	"strings"
)

// An EName is an expanded name: a namespace URI plus a local name.
// It is the universal identifier for elements, attributes, types and
// concepts. The zero Namespace means "no namespace".
type EName struct {
	Namespace string
	Local     string
}

// String returns the James Clark form of the expanded name:
// "{namespace}local", or just "local" when there is no namespace.
func (e EName) String() string {
	if e.Namespace == "" {
		return e.Local
	}
	return "{" + e.Namespace + "}" + e.Local
}

// ParseEName parses the "{namespace}local" wire form. A string without
// a leading brace is a local name in no namespace.
func ParseEName(s string) (EName, error) {
	if !strings.HasPrefix(s, "{") {
		if s == "" {
			return EName{}, fmt.Errorf("xmlx: empty expanded name")
		}
		return EName{Local: s}, nil
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return EName{}, fmt.Errorf("xmlx: expanded name %q: missing '}'", s)
	}
	local := s[end+1:]
	if local == "" {
		return EName{}, fmt.Errorf("xmlx: expanded name %q: empty local name", s)
	}
	return EName{Namespace: s[1:end], Local: local}, nil
}

// MustEName is like ParseEName but panics on a malformed input.
// Intended for package-level constants.
func MustEName(s string) EName {
	e, err := ParseEName(s)
	if err != nil {
		panic(err)
	}
	return e
}

// A QName is a lexical qualified name: an optional prefix plus a local
// name. It carries no namespace of its own; resolve it against a Scope.
type QName struct {
	Prefix string
	Local  string
}

// String returns "prefix:local", or just "local" without a prefix.
func (q QName) String() string {
	if q.Prefix == "" {
		return q.Local
	}
	return q.Prefix + ":" + q.Local
}

// ParseQName splits "prefix:local" into its parts.
func ParseQName(s string) (QName, error) {
	if s == "" {
		return QName{}, fmt.Errorf("xmlx: empty qualified name")
	}
	switch parts := strings.SplitN(s, ":", 2); len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return QName{}, fmt.Errorf("xmlx: malformed qualified name %q", s)
		}
		return QName{Prefix: parts[0], Local: parts[1]}, nil
	default:
		return QName{Local: s}, nil
	}
}

// A Scope maps namespace prefixes to namespace URIs, with an optional
// default namespace. Scopes are immutable; composition returns new
// values.
type Scope struct {
	prefixes  map[string]string
	defaultNS string
}

// NewScope builds a Scope from a prefix-to-URI map. The "" key, if
// present, becomes the default namespace.
func NewScope(m map[string]string) Scope {
	s := Scope{prefixes: make(map[string]string, len(m))}
	for p, uri := range m {
		if p == "" {
			s.defaultNS = uri
			continue
		}
		s.prefixes[p] = uri
	}
	return s
}

// DefaultNamespace returns the default namespace URI, or "".
func (s Scope) DefaultNamespace() string {
	return s.defaultNS
}

// URIForPrefix returns the namespace bound to prefix, if any.
func (s Scope) URIForPrefix(prefix string) (string, bool) {
	if prefix == "" {
		if s.defaultNS == "" {
			return "", false
		}
		return s.defaultNS, true
	}
	uri, ok := s.prefixes[prefix]
	return uri, ok
}

// PrefixForURI returns some prefix bound to uri, or "" if none is.
func (s Scope) PrefixForURI(uri string) string {
	for p, u := range s.prefixes {
		if u == uri {
			return p
		}
	}
	return ""
}

// Append composes two scopes, right-biased: bindings in other win over
// bindings in s.
func (s Scope) Append(other Scope) Scope {
	out := Scope{
		prefixes:  make(map[string]string, len(s.prefixes)+len(other.prefixes)),
		defaultNS: s.defaultNS,
	}
	for p, u := range s.prefixes {
		out.prefixes[p] = u
	}
	for p, u := range other.prefixes {
		out.prefixes[p] = u
	}
	if other.defaultNS != "" {
		out.defaultNS = other.defaultNS
	}
	return out
}

// WithoutDefault returns the scope with the default namespace removed.
func (s Scope) WithoutDefault() Scope {
	if s.defaultNS == "" {
		return s
	}
	return Scope{prefixes: s.prefixes, defaultNS: ""}
}

// Resolve resolves a QName to an EName. A prefixless QName resolves to
// the default namespace (or no namespace when there is none).
func (s Scope) Resolve(q QName) (EName, bool) {
	if q.Prefix == "" {
		return EName{Namespace: s.defaultNS, Local: q.Local}, true
	}
	uri, ok := s.prefixes[q.Prefix]
	if !ok {
		return EName{}, false
	}
	return EName{Namespace: uri, Local: q.Local}, true
}

// ResolveString parses s as a QName and resolves it.
func (s Scope) ResolveString(qname string) (EName, bool) {
	q, err := ParseQName(qname)
	if err != nil {
		return EName{}, false
	}
	return s.Resolve(q)
}

// ResolveNoDefault resolves a QName ignoring the default namespace:
// a prefixless name ends up in no namespace. XML attributes follow
// this rule.
func (s Scope) ResolveNoDefault(q QName) (EName, bool) {
	return s.WithoutDefault().Resolve(q)
}

// Prefixes returns a copy of the prefix map, including the default
// namespace under the "" key when present.
func (s Scope) Prefixes() map[string]string {
	out := make(map[string]string, len(s.prefixes)+1)
	for p, u := range s.prefixes {
		out[p] = u
	}
	if s.defaultNS != "" {
		out[""] = s.defaultNS
	}
	return out
}
