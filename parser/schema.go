package parser

import (
	"slices"

	"github.com/erraggy/oasgraph/rawdoc"
)

// Schema represents a JSON Schema.
// Supports OAS 2.0, OAS 3.0, OAS 3.1+ (JSON Schema Draft 2020-12).
//
// Only the keywords that shape the schema graph, plus a few common
// annotations, are declared. Every other keyword (pattern, minimum,
// discriminator, nullable, $defs, ...) is kept verbatim in Extra.
type Schema struct {
	// Ref is set when the schema is a "$ref"; no other field is set then.
	Ref *Reference

	// Boolean is set for the boolean schema forms true and false, which are
	// allowed wherever a schema is (e.g. additionalProperties: false).
	Boolean *bool

	// Metadata
	Title       string
	Description string

	// Type validation
	Type   any    // string or []string (OAS 3.1+)
	Format string // e.g., "date-time", "email", "uri", etc.
	Enum   []any

	// Object validation
	Properties           map[string]*Schema
	PatternProperties    map[string]*Schema
	AdditionalProperties *Schema
	Required             []string

	// Array validation
	Items *Schema

	// Schema composition
	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	// Extra captures every keyword not declared above, including
	// specification extensions (fields starting with "x-")
	Extra map[string]any
}

func buildSchema(d *decoder, raw any) (*Schema, error) {
	if b, ok := raw.(bool); ok {
		return &Schema{Boolean: &b}, nil
	}
	o, err := d.object(KindSchema, raw)
	if err != nil {
		return nil, err
	}
	if ref, err := o.reference(); err != nil || ref != nil {
		if err != nil {
			return nil, err
		}
		return &Schema{Ref: ref}, nil
	}

	s := &Schema{
		Title:       o.str("title"),
		Description: o.str("description"),
		Format:      o.str("format"),
	}
	s.Type = schemaType(o)
	if v, ok := o.lookup("enum"); ok {
		if seq, isSeq := v.([]any); isSeq {
			s.Enum = seq
			o.consume("enum")
		} else {
			o.wrongType("enum", "sequence", v)
		}
	}
	s.Properties = childMap(o, "properties", buildSchema)
	s.PatternProperties = childMap(o, "patternProperties", buildSchema)
	s.AdditionalProperties = child(o, "additionalProperties", buildSchema)
	s.Required = o.strList("required")
	// Tuple-form items (a sequence) predates 2020-12 and stays in Extra.
	if v, ok := o.lookup("items"); ok {
		if _, isSeq := v.([]any); !isSeq {
			s.Items = child(o, "items", buildSchema)
		}
	}
	s.AllOf = childList(o, "allOf", buildSchema)
	s.AnyOf = childList(o, "anyOf", buildSchema)
	s.OneOf = childList(o, "oneOf", buildSchema)
	s.Not = child(o, "not", buildSchema)
	s.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return s, nil
}

func schemaType(o *object) any {
	v, ok := o.lookup("type")
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		o.consume("type")
		return t
	case []any:
		types := make([]string, 0, len(t))
		for _, item := range t {
			s, isStr := item.(string)
			if !isStr {
				o.fail("type", "\"type\" entries must be strings, got %s", rawdoc.TypeName(item))
				return nil
			}
			types = append(types, s)
		}
		o.consume("type")
		return types
	default:
		o.wrongType("type", "string or sequence", v)
		return nil
	}
}

// Kind implements Node.
func (s *Schema) Kind() Kind { return KindSchema }

// Reference implements Referenceable.
func (s *Schema) Reference() *Reference {
	if s == nil {
		return nil
	}
	return s.Ref
}

// Extensions implements Node.
func (s *Schema) Extensions() map[string]any {
	if s == nil {
		return nil
	}
	return s.Extra
}

// ToRaw implements Node. Boolean schemas become the bare boolean.
func (s *Schema) ToRaw() any {
	if s == nil {
		return nil
	}
	if s.Ref != nil {
		return s.Ref.ToRaw()
	}
	if s.Boolean != nil {
		return *s.Boolean
	}
	e := newEmitter()
	e.str("title", s.Title)
	e.str("description", s.Description)
	switch t := s.Type.(type) {
	case string:
		e.str("type", t)
	case []string:
		e.strList("type", t)
	}
	e.str("format", s.Format)
	if s.Enum != nil {
		e.value("enum", s.Enum)
	}
	emitMap(e, "properties", s.Properties)
	emitMap(e, "patternProperties", s.PatternProperties)
	e.node("additionalProperties", s.AdditionalProperties)
	e.strList("required", s.Required)
	e.node("items", s.Items)
	emitList(e, "allOf", s.AllOf)
	emitList(e, "anyOf", s.AnyOf)
	emitList(e, "oneOf", s.OneOf)
	e.node("not", s.Not)
	e.extra(s.Extra)
	return e.result()
}

// Types returns the declared type names. A single type yields a one-element
// slice; no type yields nil.
func (s *Schema) Types() []string {
	if s == nil {
		return nil
	}
	switch t := s.Type.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	}
	return nil
}

// IsNullable reports whether the schema admits null, understanding every
// wire form: "null" in the type list (OAS 3.1+), "nullable: true"
// (OAS 3.0) and "x-nullable: true" (common OAS 2.0 extension). The wire form
// itself is left untouched.
func (s *Schema) IsNullable() bool {
	if s == nil {
		return false
	}
	if slices.Contains(s.Types(), "null") {
		return true
	}
	for _, key := range []string{"nullable", "x-nullable"} {
		if b, ok := s.Extra[key].(bool); ok && b {
			return true
		}
	}
	return false
}

// IsBoolean reports whether the schema is one of the boolean forms.
func (s *Schema) IsBoolean() bool {
	return s != nil && s.Boolean != nil
}
