package parser

// Parameter represents a single operation parameter.
//
// Swagger 2.0 non-body parameters describe their type inline (type, format,
// items, collectionFormat); those keys are kept in Extra.
type Parameter struct {
	// Ref is set when the parameter is a "$ref"; no other field is set then.
	Ref *Reference

	Name        string
	In          string // "query", "header", "path", "cookie" (OAS 3.0+), "formData" or "body" (OAS 2.0)
	Description string
	Required    *bool
	Deprecated  *bool // OAS 3.0+

	// Serialization
	Style   string // OAS 3.0+
	Explode *bool  // OAS 3.0+

	Schema   *Schema               // body parameters in OAS 2.0, all parameters in OAS 3.0+
	Example  any                   // OAS 3.0+
	Examples map[string]*Example   // OAS 3.0+
	Content  map[string]*MediaType // OAS 3.0+

	// Extra captures every other key, including specification extensions
	// (fields starting with "x-")
	Extra map[string]any
}

func buildParameter(d *decoder, raw any) (*Parameter, error) {
	o, err := d.object(KindParameter, raw)
	if err != nil {
		return nil, err
	}
	if ref, err := o.reference(); err != nil || ref != nil {
		if err != nil {
			return nil, err
		}
		return &Parameter{Ref: ref}, nil
	}
	p := &Parameter{
		Name:        o.str("name"),
		In:          o.str("in"),
		Description: o.str("description"),
		Required:    o.boolean("required"),
		Deprecated:  o.boolean("deprecated"),
		Style:       o.str("style"),
		Explode:     o.boolean("explode"),
		Example:     o.value("example"),
	}
	p.Schema = child(o, "schema", buildSchema)
	p.Examples = childMap(o, "examples", buildExample)
	p.Content = childMap(o, "content", buildMediaType)
	p.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return p, nil
}

// Kind implements Node.
func (p *Parameter) Kind() Kind { return KindParameter }

// Reference implements Referenceable.
func (p *Parameter) Reference() *Reference {
	if p == nil {
		return nil
	}
	return p.Ref
}

// Extensions implements Node.
func (p *Parameter) Extensions() map[string]any {
	if p == nil {
		return nil
	}
	return p.Extra
}

// ToRaw implements Node.
func (p *Parameter) ToRaw() any {
	if p == nil {
		return nil
	}
	if p.Ref != nil {
		return p.Ref.ToRaw()
	}
	e := newEmitter()
	e.str("name", p.Name)
	e.str("in", p.In)
	e.str("description", p.Description)
	e.boolean("required", p.Required)
	e.boolean("deprecated", p.Deprecated)
	e.str("style", p.Style)
	e.boolean("explode", p.Explode)
	e.node("schema", p.Schema)
	e.value("example", p.Example)
	emitMap(e, "examples", p.Examples)
	emitMap(e, "content", p.Content)
	e.extra(p.Extra)
	return e.result()
}

// IsRequired reports whether the parameter is required. Path parameters are
// always required.
func (p *Parameter) IsRequired() bool {
	if p == nil {
		return false
	}
	if p.In == ParamInPath {
		return true
	}
	return p.Required != nil && *p.Required
}

// paramKey identifies a parameter for precedence purposes.
type paramKey struct {
	name string
	in   string
}

// Header represents a response or encoding header. It has the shape of a
// Parameter without name and in.
type Header struct {
	// Ref is set when the header is a "$ref"; no other field is set then.
	Ref *Reference

	Description string
	Required    *bool
	Deprecated  *bool

	Style   string
	Explode *bool

	Schema   *Schema
	Example  any
	Examples map[string]*Example
	Content  map[string]*MediaType

	// Extra captures every other key, including specification extensions
	// (fields starting with "x-")
	Extra map[string]any
}

func buildHeader(d *decoder, raw any) (*Header, error) {
	o, err := d.object(KindHeader, raw)
	if err != nil {
		return nil, err
	}
	if ref, err := o.reference(); err != nil || ref != nil {
		if err != nil {
			return nil, err
		}
		return &Header{Ref: ref}, nil
	}
	h := &Header{
		Description: o.str("description"),
		Required:    o.boolean("required"),
		Deprecated:  o.boolean("deprecated"),
		Style:       o.str("style"),
		Explode:     o.boolean("explode"),
		Example:     o.value("example"),
	}
	h.Schema = child(o, "schema", buildSchema)
	h.Examples = childMap(o, "examples", buildExample)
	h.Content = childMap(o, "content", buildMediaType)
	h.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return h, nil
}

// Kind implements Node.
func (h *Header) Kind() Kind { return KindHeader }

// Reference implements Referenceable.
func (h *Header) Reference() *Reference {
	if h == nil {
		return nil
	}
	return h.Ref
}

// Extensions implements Node.
func (h *Header) Extensions() map[string]any {
	if h == nil {
		return nil
	}
	return h.Extra
}

// ToRaw implements Node.
func (h *Header) ToRaw() any {
	if h == nil {
		return nil
	}
	if h.Ref != nil {
		return h.Ref.ToRaw()
	}
	e := newEmitter()
	e.str("description", h.Description)
	e.boolean("required", h.Required)
	e.boolean("deprecated", h.Deprecated)
	e.str("style", h.Style)
	e.boolean("explode", h.Explode)
	e.node("schema", h.Schema)
	e.value("example", h.Example)
	emitMap(e, "examples", h.Examples)
	emitMap(e, "content", h.Content)
	e.extra(h.Extra)
	return e.result()
}
