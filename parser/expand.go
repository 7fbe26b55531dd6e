package parser

import (
	orderedmap "github.com/pb33f/ordered-map/v2"

	"github.com/erraggy/oasgraph/internal/pathutil"
	"github.com/erraggy/oasgraph/oaserrors"
)

// expander performs one full expansion. Targets are built fresh from the
// raw tree, so their fields can be replaced in place while references are
// expanded; nothing reachable from the document is ever modified.
type expander struct {
	doc   *Document
	max   int
	stack []frame
	memo  map[memoKey]Node
	err   error
}

// frame is one reference on the current resolution path.
type frame struct {
	pointer string // canonical pointer, after legacy aliasing
	ref     string // as written
}

type memoKey struct {
	pointer string
	kind    Kind
}

func newExpander(doc *Document) *expander {
	return &expander{
		doc:  doc,
		max:  doc.maxRefDepth(),
		memo: make(map[memoKey]Node),
	}
}

// resolve follows ref and returns its expanded target. kind is the kind the
// referencing site expects; KindGeneric takes the kind from the target's
// location.
func (x *expander) resolve(ref string, kind Kind) (Node, error) {
	tokens, err := x.doc.refTokens(ref)
	if err != nil {
		return nil, err
	}
	pointer := pathutil.JoinPointer(tokens...)
	for i, f := range x.stack {
		if f.pointer != pointer {
			continue
		}
		cycle := make([]string, 0, len(x.stack)-i+1)
		for _, g := range x.stack[i:] {
			cycle = append(cycle, g.ref)
		}
		return nil, &oaserrors.ReferenceError{
			Ref:        ref,
			RefType:    kind.String(),
			IsCircular: true,
			Cycle:      append(cycle, ref),
		}
	}
	if len(x.stack) >= x.max {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "ref_depth",
			Limit:        int64(x.max),
			Actual:       int64(len(x.stack) + 1),
			Message:      "while expanding " + ref,
		}
	}
	if kind == KindGeneric {
		kind = kindAt(tokens)
	}
	key := memoKey{pointer: pointer, kind: kind}
	if n, ok := x.memo[key]; ok {
		return n, nil
	}

	x.stack = append(x.stack, frame{pointer: pointer, ref: ref})
	defer func() { x.stack = x.stack[:len(x.stack)-1] }()

	n, err := x.build(ref, kind, tokens)
	if err != nil {
		return nil, err
	}
	n, err = x.node(n)
	if err != nil {
		return nil, err
	}
	x.memo[key] = n
	return n, nil
}

// build constructs a fresh node of kind from the value at tokens.
func (x *expander) build(ref string, kind Kind, tokens []string) (Node, error) {
	doc := x.doc
	if len(tokens) == 0 {
		d := newDecoder(doc.dialect)
		defer d.release()
		fresh, err := buildDocument(d, doc.raw)
		if err != nil {
			return nil, err
		}
		fresh.raw, fresh.version, fresh.dialect, fresh.cfg = doc.raw, doc.version, doc.dialect, doc.cfg
		return fresh, nil
	}
	raw, err := doc.lookup(ref, tokens)
	if err != nil {
		return nil, err
	}
	d := newDecoder(doc.dialect, tokens...)
	defer d.release()
	var n Node
	if build, ok := builders[kind]; ok && kind != KindGeneric {
		n, err = build(d, raw)
	} else {
		n, err = constructNode(d, kind, raw)
	}
	if err != nil {
		return nil, &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: kind.String(),
			Message: "target cannot be constructed",
			Cause:   err,
		}
	}
	return n, nil
}

// node expands the references owned by n.
func (x *expander) node(n Node) (Node, error) {
	switch t := n.(type) {
	case *Reference:
		return x.resolve(t.Ref, KindGeneric)
	case *Document:
		return x.document(t)
	case *Components:
		return x.components(t)
	case *Paths:
		return x.paths(t)
	case *PathItem:
		return x.pathItem(t)
	case *Operation:
		return x.operation(t)
	case *Parameter:
		return x.parameter(t)
	case *Header:
		return x.header(t)
	case *RequestBody:
		return x.requestBody(t)
	case *MediaType:
		return x.mediaType(t)
	case *Encoding:
		return x.encoding(t)
	case *Responses:
		return x.responses(t)
	case *Response:
		return x.response(t)
	case *Callback:
		return x.callback(t)
	case *Schema:
		return x.schema(t)
	case *Example:
		return x.example(t)
	case *Link:
		return x.link(t)
	case *SecurityScheme:
		return x.securityScheme(t)
	}
	return n, nil
}

func (x *expander) document(doc *Document) (*Document, error) {
	one(x, &doc.Paths, x.paths)
	one(x, &doc.Webhooks, x.paths)
	one(x, &doc.Components, x.components)
	return doc, x.err
}

func (x *expander) components(c *Components) (*Components, error) {
	if c == nil || x.err != nil {
		return c, x.err
	}
	eachValue(x, c.Schemas, x.schema)
	eachValue(x, c.Responses, x.response)
	eachValue(x, c.Parameters, x.parameter)
	eachValue(x, c.Examples, x.example)
	eachValue(x, c.RequestBodies, x.requestBody)
	eachValue(x, c.Headers, x.header)
	eachValue(x, c.SecuritySchemes, x.securityScheme)
	eachValue(x, c.Links, x.link)
	eachValue(x, c.Callbacks, x.callback)
	eachValue(x, c.PathItems, x.pathItem)
	return c, x.err
}

func (x *expander) paths(p *Paths) (*Paths, error) {
	if p == nil || x.err != nil {
		return p, x.err
	}
	eachOrdered(x, p.Items, x.pathItem)
	return p, x.err
}

func (x *expander) pathItem(pi *PathItem) (*PathItem, error) {
	if pi == nil || x.err != nil {
		return pi, x.err
	}
	if pi.Ref != nil {
		return refTarget[*PathItem](x, pi.Ref, KindPathItem)
	}
	eachOrdered(x, pi.Operations, x.operation)
	each(x, pi.Parameters, x.parameter)
	return pi, x.err
}

func (x *expander) operation(op *Operation) (*Operation, error) {
	if op == nil || x.err != nil {
		return op, x.err
	}
	each(x, op.Parameters, x.parameter)
	one(x, &op.RequestBody, x.requestBody)
	one(x, &op.Responses, x.responses)
	eachValue(x, op.Callbacks, x.callback)
	return op, x.err
}

func (x *expander) parameter(p *Parameter) (*Parameter, error) {
	if p == nil || x.err != nil {
		return p, x.err
	}
	if p.Ref != nil {
		return refTarget[*Parameter](x, p.Ref, KindParameter)
	}
	one(x, &p.Schema, x.schema)
	eachValue(x, p.Examples, x.example)
	eachValue(x, p.Content, x.mediaType)
	return p, x.err
}

func (x *expander) header(h *Header) (*Header, error) {
	if h == nil || x.err != nil {
		return h, x.err
	}
	if h.Ref != nil {
		return refTarget[*Header](x, h.Ref, KindHeader)
	}
	one(x, &h.Schema, x.schema)
	eachValue(x, h.Examples, x.example)
	eachValue(x, h.Content, x.mediaType)
	return h, x.err
}

func (x *expander) requestBody(rb *RequestBody) (*RequestBody, error) {
	if rb == nil || x.err != nil {
		return rb, x.err
	}
	if rb.Ref != nil {
		return refTarget[*RequestBody](x, rb.Ref, KindRequestBody)
	}
	eachValue(x, rb.Content, x.mediaType)
	return rb, x.err
}

func (x *expander) mediaType(mt *MediaType) (*MediaType, error) {
	if mt == nil || x.err != nil {
		return mt, x.err
	}
	one(x, &mt.Schema, x.schema)
	eachValue(x, mt.Examples, x.example)
	eachValue(x, mt.Encoding, x.encoding)
	return mt, x.err
}

func (x *expander) encoding(enc *Encoding) (*Encoding, error) {
	if enc == nil || x.err != nil {
		return enc, x.err
	}
	eachValue(x, enc.Headers, x.header)
	return enc, x.err
}

func (x *expander) responses(r *Responses) (*Responses, error) {
	if r == nil || x.err != nil {
		return r, x.err
	}
	eachValue(x, r.Codes, x.response)
	one(x, &r.Default, x.response)
	return r, x.err
}

func (x *expander) response(r *Response) (*Response, error) {
	if r == nil || x.err != nil {
		return r, x.err
	}
	if r.Ref != nil {
		return refTarget[*Response](x, r.Ref, KindResponse)
	}
	eachValue(x, r.Headers, x.header)
	eachValue(x, r.Content, x.mediaType)
	eachValue(x, r.Links, x.link)
	one(x, &r.Schema, x.schema)
	return r, x.err
}

func (x *expander) callback(cb *Callback) (*Callback, error) {
	if cb == nil || x.err != nil {
		return cb, x.err
	}
	if cb.Ref != nil {
		return refTarget[*Callback](x, cb.Ref, KindCallback)
	}
	eachOrdered(x, cb.Expressions, x.pathItem)
	return cb, x.err
}

func (x *expander) schema(s *Schema) (*Schema, error) {
	if s == nil || x.err != nil {
		return s, x.err
	}
	if s.Ref != nil {
		return x.schemaRef(s.Ref)
	}
	eachValue(x, s.Properties, x.schema)
	eachValue(x, s.PatternProperties, x.schema)
	one(x, &s.AdditionalProperties, x.schema)
	one(x, &s.Items, x.schema)
	each(x, s.AllOf, x.schema)
	each(x, s.AnyOf, x.schema)
	each(x, s.OneOf, x.schema)
	one(x, &s.Not, x.schema)
	return s, x.err
}

// schemaRef expands a schema reference. In the OAS 3.1 dialect keywords
// written next to "$ref" still apply: the result is a schema holding those
// keywords with the target prepended to its allOf.
func (x *expander) schemaRef(ref *Reference) (*Schema, error) {
	target, err := refTarget[*Schema](x, ref, KindSchema)
	if err != nil || !x.doc.dialect.KeepsRefSiblings() {
		return target, err
	}
	siblings := ref.siblings()
	if siblings == nil {
		return target, nil
	}
	d := newDecoder(x.doc.dialect)
	defer d.release()
	s, err := buildSchema(d, siblings)
	if err != nil {
		return nil, err
	}
	if s, err = x.schema(s); err != nil {
		return nil, err
	}
	s.AllOf = append([]*Schema{target}, s.AllOf...)
	return s, nil
}

func (x *expander) example(ex *Example) (*Example, error) {
	if ex == nil || x.err != nil || ex.Ref == nil {
		return ex, x.err
	}
	return refTarget[*Example](x, ex.Ref, KindExample)
}

func (x *expander) link(l *Link) (*Link, error) {
	if l == nil || x.err != nil || l.Ref == nil {
		return l, x.err
	}
	return refTarget[*Link](x, l.Ref, KindLink)
}

func (x *expander) securityScheme(ss *SecurityScheme) (*SecurityScheme, error) {
	if ss == nil || x.err != nil || ss.Ref == nil {
		return ss, x.err
	}
	return refTarget[*SecurityScheme](x, ss.Ref, KindSecurityScheme)
}

// refTarget resolves ref as a node of kind, applying the summary and
// description written next to it (OAS 3.1+) to a copy of the target.
func refTarget[T Node](x *expander, ref *Reference, kind Kind) (T, error) {
	var zero T
	n, err := x.resolve(ref.Ref, kind)
	if err != nil {
		return zero, err
	}
	return nodeAs[T](override(n, ref), kind, ref.Ref)
}

// override returns n with the reference's summary and description applied.
// The target may be shared through the memo, so it is copied first.
func override(n Node, ref *Reference) Node {
	if ref.Summary == "" && ref.Description == "" {
		return n
	}
	switch t := n.(type) {
	case *Parameter:
		c := *t
		overrideString(&c.Description, ref.Description)
		return &c
	case *Header:
		c := *t
		overrideString(&c.Description, ref.Description)
		return &c
	case *RequestBody:
		c := *t
		overrideString(&c.Description, ref.Description)
		return &c
	case *Response:
		c := *t
		overrideString(&c.Description, ref.Description)
		return &c
	case *Link:
		c := *t
		overrideString(&c.Description, ref.Description)
		return &c
	case *SecurityScheme:
		c := *t
		overrideString(&c.Description, ref.Description)
		return &c
	case *Example:
		c := *t
		overrideString(&c.Summary, ref.Summary)
		overrideString(&c.Description, ref.Description)
		return &c
	case *PathItem:
		c := *t
		overrideString(&c.Summary, ref.Summary)
		overrideString(&c.Description, ref.Description)
		return &c
	}
	return n
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// one, each, eachValue and eachOrdered expand children in place and record
// the first error on the expander. Later calls are no-ops once an error is
// recorded.
func one[T any](x *expander, dst *T, expand func(T) (T, error)) {
	if x.err != nil {
		return
	}
	v, err := expand(*dst)
	if err != nil {
		x.err = err
		return
	}
	*dst = v
}

func each[T any](x *expander, list []T, expand func(T) (T, error)) {
	for i := range list {
		one(x, &list[i], expand)
	}
}

func eachValue[T any](x *expander, m map[string]T, expand func(T) (T, error)) {
	for _, k := range sortedKeys(m) {
		v := m[k]
		one(x, &v, expand)
		if x.err != nil {
			return
		}
		m[k] = v
	}
}

func eachOrdered[T any](x *expander, m *orderedmap.OrderedMap[string, T], expand func(T) (T, error)) {
	if m == nil {
		return
	}
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		one(x, &pair.Value, expand)
	}
}
