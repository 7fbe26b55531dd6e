package parser

// Components holds reusable objects for the document.
//
// In Swagger 2.0 documents the same objects live at the root under
// "definitions", "parameters", "responses" and "securityDefinitions". The
// document builds Components from those locations and writes them back
// there; Legacy reports that layout.
type Components struct {
	Schemas         map[string]*Schema
	Responses       map[string]*Response
	Parameters      map[string]*Parameter
	Examples        map[string]*Example
	RequestBodies   map[string]*RequestBody
	Headers         map[string]*Header
	SecuritySchemes map[string]*SecurityScheme
	Links           map[string]*Link
	Callbacks       map[string]*Callback
	PathItems       map[string]*PathItem // OAS 3.1+
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any

	legacy bool
}

func buildComponents(d *decoder, raw any) (*Components, error) {
	o, err := d.object(KindComponents, raw)
	if err != nil {
		return nil, err
	}
	c := &Components{}
	c.Schemas = childMap(o, "schemas", buildSchema)
	c.Responses = childMap(o, "responses", buildResponse)
	c.Parameters = childMap(o, "parameters", buildParameter)
	c.Examples = childMap(o, "examples", buildExample)
	c.RequestBodies = childMap(o, "requestBodies", buildRequestBody)
	c.Headers = childMap(o, "headers", buildHeader)
	c.SecuritySchemes = childMap(o, "securitySchemes", buildSecurityScheme)
	c.Links = childMap(o, "links", buildLink)
	c.Callbacks = childMap(o, "callbacks", buildCallback)
	c.PathItems = childMap(o, "pathItems", buildPathItem)
	c.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return c, nil
}

// buildLegacyComponents reads the Swagger 2.0 reusable object sections from
// the root object. It returns nil when the document has none of them.
func buildLegacyComponents(o *object) *Components {
	c := &Components{legacy: true}
	c.Schemas = childMap(o, "definitions", buildSchema)
	c.Parameters = childMap(o, "parameters", buildParameter)
	c.Responses = childMap(o, "responses", buildResponse)
	c.SecuritySchemes = childMap(o, "securityDefinitions", buildSecurityScheme)
	if c.Schemas == nil && c.Parameters == nil && c.Responses == nil && c.SecuritySchemes == nil {
		return nil
	}
	return c
}

// Kind implements Node.
func (c *Components) Kind() Kind { return KindComponents }

// Extensions implements Node.
func (c *Components) Extensions() map[string]any {
	if c == nil {
		return nil
	}
	return c.Extra
}

// Legacy reports whether the components were read from the Swagger 2.0
// root-level sections.
func (c *Components) Legacy() bool {
	return c != nil && c.legacy
}

// ToRaw implements Node. Legacy components produce a mapping keyed by the
// Swagger 2.0 section names.
func (c *Components) ToRaw() any {
	if c == nil {
		return nil
	}
	e := newEmitter()
	if c.legacy {
		c.emitLegacy(e)
	} else {
		emitMap(e, "schemas", c.Schemas)
		emitMap(e, "responses", c.Responses)
		emitMap(e, "parameters", c.Parameters)
		emitMap(e, "examples", c.Examples)
		emitMap(e, "requestBodies", c.RequestBodies)
		emitMap(e, "headers", c.Headers)
		emitMap(e, "securitySchemes", c.SecuritySchemes)
		emitMap(e, "links", c.Links)
		emitMap(e, "callbacks", c.Callbacks)
		emitMap(e, "pathItems", c.PathItems)
	}
	e.extra(c.Extra)
	return e.result()
}

func (c *Components) emitLegacy(e *emitter) {
	emitMap(e, "definitions", c.Schemas)
	emitMap(e, "parameters", c.Parameters)
	emitMap(e, "responses", c.Responses)
	emitMap(e, "securityDefinitions", c.SecuritySchemes)
}

// Count returns the total number of reusable objects.
func (c *Components) Count() int {
	if c == nil {
		return 0
	}
	return len(c.Schemas) + len(c.Responses) + len(c.Parameters) + len(c.Examples) +
		len(c.RequestBodies) + len(c.Headers) + len(c.SecuritySchemes) + len(c.Links) +
		len(c.Callbacks) + len(c.PathItems)
}
