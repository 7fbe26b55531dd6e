package parser

import "github.com/erraggy/oasgraph/rawdoc"

// Generic wraps a value found at a location the model has no kind for, such
// as an example payload, a vendor extension or a schema keyword kept in an
// extension bag. A mapping contributes its keys to Extra; any other value is
// held in Value.
type Generic struct {
	Value any
	Extra map[string]any
}

func buildGeneric(_ *decoder, raw any) (*Generic, error) {
	if m, ok := rawdoc.AsMap(raw); ok {
		extra := make(map[string]any, m.Len())
		for k, v := range m.FromOldest() {
			extra[k] = v
		}
		return &Generic{Extra: extra}, nil
	}
	return &Generic{Value: raw}, nil
}

// Kind implements Node.
func (g *Generic) Kind() Kind { return KindGeneric }

// Extensions implements Node.
func (g *Generic) Extensions() map[string]any {
	if g == nil {
		return nil
	}
	return g.Extra
}

// ToRaw implements Node.
func (g *Generic) ToRaw() any {
	if g == nil {
		return nil
	}
	if g.Extra == nil {
		return rawdoc.Normalize(g.Value)
	}
	e := newEmitter()
	e.extra(g.Extra)
	return e.result()
}
