package instance

import (
	"encoding/json"
	"io"
)

// FactJSON is a flat DTO for exporting facts as JSON.
type FactJSON struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	ContextRef string `json:"context"`
	UnitRef    string `json:"unit"`
	Nil        bool   `json:"nil"`
}

// FactsAsJSONDTOs converts the document's facts into FactJSON DTOs.
// Concept names are rendered in the {namespace}local wire form.
func (d *Document) FactsAsJSONDTOs() []FactJSON {
	if d == nil {
		return nil
	}
	out := make([]FactJSON, 0, len(d.facts))
	for _, f := range d.facts {
		if f == nil {
			continue
		}
		value := f.Value()
		if f.IsNil() {
			value = ""
		}
		out = append(out, FactJSON{
			Name:       f.Name().String(),
			Value:      value,
			ContextRef: f.ContextRef(),
			UnitRef:    f.UnitRef(),
			Nil:        f.IsNil(),
		})
	}
	return out
}

// EncodeFactsJSON writes the document's facts as a JSON array. HTML
// escaping is disabled; pretty selects indented output.
func (d *Document) EncodeFactsJSON(w io.Writer, pretty bool) error {
	if d == nil {
		return nil
	}

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)

	return enc.Encode(d.FactsAsJSONDTOs())
}
