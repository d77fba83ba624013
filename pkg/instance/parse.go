package instance

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// ParseFile parses an XBRL instance document from a file path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("instance: open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse parses an XBRL instance document from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)

	doc := &Document{
		contexts: make(map[string]*Context),
		units:    make(map[string]*Unit),
	}
	ns := newNSStack()

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("instance: decode token: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			ns.push(t)

			if strings.EqualFold(t.Name.Local, "xbrl") {
				continue
			}

			switch {
			case t.Name.Local == "schemaRef":
				doc.schemaRefs = append(doc.schemaRefs, parseSchemaRef(t))

			case t.Name.Local == "context":
				ctx, err := parseContext(dec, t, ns)
				if err != nil {
					return nil, err
				}
				doc.contexts[ctx.id] = ctx
				ns.pop()

			case t.Name.Local == "unit":
				unit, err := parseUnit(dec, t, ns)
				if err != nil {
					return nil, err
				}
				doc.units[unit.id] = unit
				ns.pop()

			default:
				// Item facts, detected by their contextRef.
				if hasAttr(t.Attr, "contextRef") {
					fact, err := parseItemFact(dec, t)
					if err != nil {
						return nil, err
					}
					doc.facts = append(doc.facts, fact)
					ns.pop()
				}
			}

		case xml.EndElement:
			ns.pop()
		}
	}

	return doc, nil
}

// An nsStack tracks namespace bindings during streaming decode so
// QName-valued content and attributes can be resolved.
type nsStack struct {
	scopes []xmlx.Scope
}

func newNSStack() *nsStack {
	return &nsStack{scopes: []xmlx.Scope{{}}}
}

func (s *nsStack) push(t xml.StartElement) {
	top := s.scopes[len(s.scopes)-1]

	var decls map[string]string
	for _, a := range t.Attr {
		switch {
		case a.Name.Space == "xmlns":
			if decls == nil {
				decls = make(map[string]string)
			}
			decls[a.Name.Local] = a.Value
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			if decls == nil {
				decls = make(map[string]string)
			}
			decls[""] = a.Value
		}
	}
	if decls != nil {
		top = top.Append(xmlx.NewScope(decls))
	}
	s.scopes = append(s.scopes, top)
}

func (s *nsStack) pop() {
	if len(s.scopes) > 1 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

// resolve resolves a QName string against the current scope.
func (s *nsStack) resolve(qname string) (xmlx.EName, bool) {
	return s.scopes[len(s.scopes)-1].ResolveString(strings.TrimSpace(qname))
}

func hasAttr(attrs []xml.Attr, local string) bool {
	for _, a := range attrs {
		if a.Name.Local == local {
			return true
		}
	}
	return false
}

func attrValue(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

func parseSchemaRef(se xml.StartElement) SchemaRef {
	return SchemaRef{href: attrValue(se.Attr, "href")}
}

func parseContext(dec *xml.Decoder, start xml.StartElement, ns *nsStack) (*Context, error) {
	ctx := &Context{id: attrValue(start.Attr, "id")}
	var dims []Dimension

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("instance: parse context: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ns.push(t)
			switch t.Name.Local {
			case "entity":
				ent, segDims, err := parseEntity(dec, t, ns)
				if err != nil {
					return nil, err
				}
				ctx.entity = *ent
				dims = append(dims, segDims...)
			case "period":
				p, err := parsePeriod(dec, t)
				if err != nil {
					return nil, err
				}
				ctx.period = *p
			case "scenario":
				scnDims, err := parseDimensions(dec, t, ns)
				if err != nil {
					return nil, err
				}
				dims = append(dims, scnDims...)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
			ns.pop()
		case xml.EndElement:
			ctx.dimensions = dims
			return ctx, nil
		}
	}
}

func parseEntity(dec *xml.Decoder, start xml.StartElement, ns *nsStack) (*Entity, []Dimension, error) {
	ent := &Entity{}
	var dims []Dimension

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("instance: parse entity: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ns.push(t)
			switch t.Name.Local {
			case "identifier":
				ident := EntityIdentifier{scheme: attrValue(t.Attr, "scheme")}
				var value string
				if err := dec.DecodeElement(&value, &t); err != nil {
					return nil, nil, fmt.Errorf("instance: parse identifier: %w", err)
				}
				ident.value = strings.TrimSpace(value)
				ent.identifier = ident
			case "segment":
				segDims, err := parseDimensions(dec, t, ns)
				if err != nil {
					return nil, nil, err
				}
				dims = append(dims, segDims...)
			default:
				if err := dec.Skip(); err != nil {
					return nil, nil, err
				}
			}
			ns.pop()
		case xml.EndElement:
			return ent, dims, nil
		}
	}
}

func parsePeriod(dec *xml.Decoder, start xml.StartElement) (*Period, error) {
	p := &Period{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("instance: parse period: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "instant", "startDate", "endDate":
				var v string
				if err := dec.DecodeElement(&v, &t); err != nil {
					return nil, err
				}
				v = strings.TrimSpace(v)
				switch t.Name.Local {
				case "instant":
					p.instant = &v
				case "startDate":
					p.startDate = &v
				default:
					p.endDate = &v
				}
			case "forever":
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				p.forever = true
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return p, nil
		}
	}
}

// parseDimensions reads the explicit and typed members of a segment
// or scenario container.
func parseDimensions(dec *xml.Decoder, start xml.StartElement, ns *nsStack) ([]Dimension, error) {
	var dims []Dimension
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("instance: parse %s: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ns.push(t)
			switch t.Name.Local {
			case "explicitMember":
				dim, err := parseExplicitMember(dec, t, ns)
				if err != nil {
					return nil, err
				}
				dims = append(dims, dim)
			case "typedMember":
				dim, err := parseTypedMember(dec, t, ns)
				if err != nil {
					return nil, err
				}
				dims = append(dims, dim)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
			ns.pop()
		case xml.EndElement:
			return dims, nil
		}
	}
}

func parseExplicitMember(dec *xml.Decoder, start xml.StartElement, ns *nsStack) (Dimension, error) {
	dimName, ok := ns.resolve(attrValue(start.Attr, "dimension"))
	if !ok {
		return Dimension{}, fmt.Errorf("instance: explicitMember: unresolved dimension %q", attrValue(start.Attr, "dimension"))
	}

	var value string
	if err := dec.DecodeElement(&value, &start); err != nil {
		return Dimension{}, fmt.Errorf("instance: parse explicitMember: %w", err)
	}
	member, ok := ns.resolve(value)
	if !ok {
		return Dimension{}, fmt.Errorf("instance: explicitMember: unresolved member %q", value)
	}

	return Dimension{dimension: dimName, explicit: true, member: member}, nil
}

func parseTypedMember(dec *xml.Decoder, start xml.StartElement, ns *nsStack) (Dimension, error) {
	dimName, ok := ns.resolve(attrValue(start.Attr, "dimension"))
	if !ok {
		return Dimension{}, fmt.Errorf("instance: typedMember: unresolved dimension %q", attrValue(start.Attr, "dimension"))
	}

	// The typed value is the concatenated character data of the
	// member element's content.
	var b strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return Dimension{}, fmt.Errorf("instance: parse typedMember: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			if depth == 0 {
				return Dimension{
					dimension:  dimName,
					typedValue: strings.TrimSpace(b.String()),
				}, nil
			}
			depth--
		}
	}
}

func parseUnit(dec *xml.Decoder, start xml.StartElement, ns *nsStack) (*Unit, error) {
	u := &Unit{id: attrValue(start.Attr, "id")}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("instance: parse unit: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ns.push(t)
			switch t.Name.Local {
			case "measure":
				m, err := parseMeasure(dec, t, ns)
				if err != nil {
					return nil, err
				}
				u.measures = append(u.measures, m)
			case "divide":
				num, den, err := parseDivide(dec, t, ns)
				if err != nil {
					return nil, err
				}
				u.divide = true
				u.numerator = num
				u.denominator = den
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
			ns.pop()
		case xml.EndElement:
			return u, nil
		}
	}
}

func parseMeasure(dec *xml.Decoder, start xml.StartElement, ns *nsStack) (xmlx.EName, error) {
	var value string
	if err := dec.DecodeElement(&value, &start); err != nil {
		return xmlx.EName{}, fmt.Errorf("instance: parse measure: %w", err)
	}
	m, ok := ns.resolve(value)
	if !ok {
		return xmlx.EName{}, fmt.Errorf("instance: measure: unresolved %q", value)
	}
	return m, nil
}

func parseDivide(dec *xml.Decoder, start xml.StartElement, ns *nsStack) (num, den []xmlx.EName, err error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("instance: parse divide: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ns.push(t)
			switch t.Name.Local {
			case "unitNumerator":
				ms, err := parseMeasureContainer(dec, t, ns)
				if err != nil {
					return nil, nil, err
				}
				num = append(num, ms...)
			case "unitDenominator":
				ms, err := parseMeasureContainer(dec, t, ns)
				if err != nil {
					return nil, nil, err
				}
				den = append(den, ms...)
			default:
				if err := dec.Skip(); err != nil {
					return nil, nil, err
				}
			}
			ns.pop()
		case xml.EndElement:
			return num, den, nil
		}
	}
}

func parseMeasureContainer(dec *xml.Decoder, start xml.StartElement, ns *nsStack) ([]xmlx.EName, error) {
	var out []xmlx.EName
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("instance: parse %s: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ns.push(t)
			if t.Name.Local == "measure" {
				m, err := parseMeasure(dec, t, ns)
				if err != nil {
					return nil, err
				}
				out = append(out, m)
			} else if err := dec.Skip(); err != nil {
				return nil, err
			}
			ns.pop()
		case xml.EndElement:
			return out, nil
		}
	}
}

func parseItemFact(dec *xml.Decoder, start xml.StartElement) (*Fact, error) {
	fact := &Fact{
		name:       xmlx.EName{Namespace: start.Name.Space, Local: start.Name.Local},
		contextRef: attrValue(start.Attr, "contextRef"),
		unitRef:    attrValue(start.Attr, "unitRef"),
		decimals:   attrValue(start.Attr, "decimals"),
		precision:  attrValue(start.Attr, "precision"),
		id:         attrValue(start.Attr, "id"),
	}
	for _, a := range start.Attr {
		switch {
		case a.Name.Local == "lang":
			fact.lang = a.Value
		case a.Name.Local == "nil":
			fact.nil_ = strings.TrimSpace(a.Value) == "true" || strings.TrimSpace(a.Value) == "1"
		}
	}

	var value string
	if err := dec.DecodeElement(&value, &start); err != nil {
		return nil, fmt.Errorf("instance: parse fact %s: %w", fact.name, err)
	}
	fact.value = strings.TrimSpace(value)
	return fact, nil
}
