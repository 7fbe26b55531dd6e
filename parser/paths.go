package parser

import (
	orderedmap "github.com/pb33f/ordered-map/v2"

	"github.com/erraggy/oasgraph/internal/httputil"
	"github.com/erraggy/oasgraph/rawdoc"
)

// Paths holds the relative paths to the individual endpoints, in document
// order. Keys that are not path templates ("x-" extensions) are kept in Extra.
type Paths struct {
	Items *orderedmap.OrderedMap[string, *PathItem]
	Extra map[string]any
}

func buildPaths(d *decoder, raw any) (*Paths, error) {
	items, extra, err := buildPathItems(d, KindPaths, raw)
	if err != nil {
		return nil, err
	}
	return &Paths{Items: items, Extra: extra}, nil
}

// buildPathItems builds a mapping of path templates (or webhook names, or
// callback expressions) to path items, keeping order. Extension keys and
// explicit nulls are returned separately so they survive a round trip.
func buildPathItems(d *decoder, kind Kind, raw any) (*orderedmap.OrderedMap[string, *PathItem], map[string]any, error) {
	m, ok := raw.(*rawdoc.Map)
	if !ok {
		o, err := d.object(kind, raw)
		if err != nil {
			return nil, nil, err
		}
		m = o.m
	}
	var extra map[string]any
	skip := func(key string) bool {
		v, _ := m.Get(key)
		if !IsExtensionKey(key) && v != nil {
			return false
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = v
		return true
	}
	items, err := buildOrdered(d, kind, m, skip, buildPathItem)
	if err != nil {
		return nil, nil, err
	}
	for path, item := range items.FromOldest() {
		item.setPath(path)
	}
	return items, extra, nil
}

// Kind implements Node.
func (p *Paths) Kind() Kind { return KindPaths }

// Extensions implements Node.
func (p *Paths) Extensions() map[string]any {
	if p == nil {
		return nil
	}
	return p.Extra
}

// ToRaw implements Node.
func (p *Paths) ToRaw() any {
	if p == nil {
		return nil
	}
	var out *rawdoc.Map
	if p.Items != nil {
		out = orderedToRaw(p.Items)
	} else {
		out = rawdoc.NewMap()
	}
	e := &emitter{m: out}
	e.extra(p.Extra)
	return e.result()
}

// Get returns the path item for a path template.
func (p *Paths) Get(path string) *PathItem {
	if p == nil || p.Items == nil {
		return nil
	}
	item, _ := p.Items.Get(path)
	return item
}

// Len reports the number of path templates.
func (p *Paths) Len() int {
	if p == nil || p.Items == nil {
		return 0
	}
	return p.Items.Len()
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	// Ref is set when the path item is a "$ref"; no other field is set then.
	Ref *Reference

	Summary     string // OAS 3.0+
	Description string // OAS 3.0+

	// Operations maps lowercase HTTP methods to operations, in document order.
	Operations *orderedmap.OrderedMap[string, *Operation]

	Servers    []*Server // OAS 3.0+
	Parameters []*Parameter

	// Extra captures every other key, including specification extensions
	// (fields starting with "x-")
	Extra map[string]any
}

func buildPathItem(d *decoder, raw any) (*PathItem, error) {
	o, err := d.object(KindPathItem, raw)
	if err != nil {
		return nil, err
	}
	if ref, err := o.reference(); err != nil || ref != nil {
		if err != nil {
			return nil, err
		}
		return &PathItem{Ref: ref}, nil
	}
	pi := &PathItem{
		Summary:     o.str("summary"),
		Description: o.str("description"),
	}
	for key := range o.m.KeysFromOldest() {
		if !httputil.IsMethod(key) {
			continue
		}
		op := child(o, key, buildOperation)
		if op == nil {
			continue
		}
		op.Method = key
		if pi.Operations == nil {
			pi.Operations = orderedmap.New[string, *Operation]()
		}
		pi.Operations.Set(key, op)
	}
	pi.Servers = childList(o, "servers", buildServer)
	pi.Parameters = childList(o, "parameters", buildParameter)
	pi.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return pi, nil
}

func (pi *PathItem) setPath(path string) {
	if pi == nil || pi.Operations == nil {
		return
	}
	for _, op := range pi.Operations.FromOldest() {
		op.Path = path
	}
}

// Kind implements Node.
func (pi *PathItem) Kind() Kind { return KindPathItem }

// Reference implements Referenceable.
func (pi *PathItem) Reference() *Reference {
	if pi == nil {
		return nil
	}
	return pi.Ref
}

// Extensions implements Node.
func (pi *PathItem) Extensions() map[string]any {
	if pi == nil {
		return nil
	}
	return pi.Extra
}

// ToRaw implements Node. Operations are emitted in their original order.
func (pi *PathItem) ToRaw() any {
	if pi == nil {
		return nil
	}
	if pi.Ref != nil {
		return pi.Ref.ToRaw()
	}
	e := newEmitter()
	e.str("summary", pi.Summary)
	e.str("description", pi.Description)
	if pi.Operations != nil {
		for method, op := range pi.Operations.FromOldest() {
			e.node(method, op)
		}
	}
	emitList(e, "servers", pi.Servers)
	emitList(e, "parameters", pi.Parameters)
	e.extra(pi.Extra)
	return e.result()
}

// Operation returns the operation for a lowercase HTTP method, or nil.
func (pi *PathItem) Operation(method string) *Operation {
	if pi == nil || pi.Operations == nil {
		return nil
	}
	op, _ := pi.Operations.Get(method)
	return op
}

// EffectiveParameters returns the parameters that apply to the operation
// for method: the path-level parameters not redeclared by the operation,
// followed by the operation's own parameters. A parameter is redeclared when
// the operation has one with the same name and location.
//
// Parameters that are references cannot be identified without resolution
// and are keyed by their "$ref" string; use Document.EffectiveParameters to
// match references by their targets.
func (pi *PathItem) EffectiveParameters(method string) []*Parameter {
	params, _ := pi.effectiveParameters(method, func(p *Parameter) (paramKey, error) {
		return declaredParamKey(p), nil
	})
	return params
}

func (pi *PathItem) effectiveParameters(method string, identify func(*Parameter) (paramKey, error)) ([]*Parameter, error) {
	op := pi.Operation(method)
	if op == nil {
		return nil, nil
	}
	own := make(map[paramKey]struct{}, len(op.Parameters))
	for _, p := range op.Parameters {
		key, err := identify(p)
		if err != nil {
			return nil, err
		}
		own[key] = struct{}{}
	}
	out := make([]*Parameter, 0, len(pi.Parameters)+len(op.Parameters))
	for _, p := range pi.Parameters {
		key, err := identify(p)
		if err != nil {
			return nil, err
		}
		if _, redeclared := own[key]; !redeclared {
			out = append(out, p)
		}
	}
	return append(out, op.Parameters...), nil
}

func declaredParamKey(p *Parameter) paramKey {
	if p.Ref != nil {
		return paramKey{name: p.Ref.Ref, in: "$ref"}
	}
	return paramKey{name: p.Name, in: p.In}
}

// Operation describes a single API operation on a path.
type Operation struct {
	Tags         []string
	Summary      string
	Description  string
	ExternalDocs *ExternalDocs
	OperationID  string
	Parameters   []*Parameter
	RequestBody  *RequestBody         // OAS 3.0+
	Responses    *Responses
	Callbacks    map[string]*Callback // OAS 3.0+
	Deprecated   *bool
	Security     []SecurityRequirement
	Servers      []*Server // OAS 3.0+

	// Extra captures every other key, including the OAS 2.0 consumes,
	// produces and schemes lists and specification extensions
	Extra map[string]any

	// Method and Path locate the operation in its document. They are set
	// while the document is built and are never emitted.
	Method string
	Path   string
}

func buildOperation(d *decoder, raw any) (*Operation, error) {
	o, err := d.object(KindOperation, raw)
	if err != nil {
		return nil, err
	}
	op := &Operation{
		Tags:        o.strList("tags"),
		Summary:     o.str("summary"),
		Description: o.str("description"),
		OperationID: o.str("operationId"),
		Deprecated:  o.boolean("deprecated"),
	}
	op.ExternalDocs = child(o, "externalDocs", buildExternalDocs)
	op.Parameters = childList(o, "parameters", buildParameter)
	op.RequestBody = child(o, "requestBody", buildRequestBody)
	op.Responses = child(o, "responses", buildResponses)
	op.Callbacks = childMap(o, "callbacks", buildCallback)
	op.Security = childList(o, "security", buildSecurityRequirement)
	op.Servers = childList(o, "servers", buildServer)
	op.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return op, nil
}

// Kind implements Node.
func (op *Operation) Kind() Kind { return KindOperation }

// Extensions implements Node.
func (op *Operation) Extensions() map[string]any {
	if op == nil {
		return nil
	}
	return op.Extra
}

// ToRaw implements Node.
func (op *Operation) ToRaw() any {
	if op == nil {
		return nil
	}
	e := newEmitter()
	e.strList("tags", op.Tags)
	e.str("summary", op.Summary)
	e.str("description", op.Description)
	e.node("externalDocs", op.ExternalDocs)
	e.str("operationId", op.OperationID)
	emitList(e, "parameters", op.Parameters)
	e.node("requestBody", op.RequestBody)
	e.node("responses", op.Responses)
	emitMap(e, "callbacks", op.Callbacks)
	e.boolean("deprecated", op.Deprecated)
	emitList(e, "security", op.Security)
	emitList(e, "servers", op.Servers)
	e.extra(op.Extra)
	return e.result()
}

// IsDeprecated reports whether the operation is marked deprecated.
func (op *Operation) IsDeprecated() bool {
	return op != nil && op.Deprecated != nil && *op.Deprecated
}

// Callback maps runtime expressions to the path items describing the
// requests the API may send (OAS 3.0+).
type Callback struct {
	// Ref is set when the callback is a "$ref"; no other field is set then.
	Ref *Reference

	Expressions *orderedmap.OrderedMap[string, *PathItem]
	Extra       map[string]any
}

func buildCallback(d *decoder, raw any) (*Callback, error) {
	o, err := d.object(KindCallback, raw)
	if err != nil {
		return nil, err
	}
	if ref, err := o.reference(); err != nil || ref != nil {
		if err != nil {
			return nil, err
		}
		return &Callback{Ref: ref}, nil
	}
	exprs, extra, err := buildPathItems(d, KindCallback, o.m)
	if err != nil {
		return nil, err
	}
	return &Callback{Expressions: exprs, Extra: extra}, nil
}

// Kind implements Node.
func (cb *Callback) Kind() Kind { return KindCallback }

// Reference implements Referenceable.
func (cb *Callback) Reference() *Reference {
	if cb == nil {
		return nil
	}
	return cb.Ref
}

// Extensions implements Node.
func (cb *Callback) Extensions() map[string]any {
	if cb == nil {
		return nil
	}
	return cb.Extra
}

// ToRaw implements Node.
func (cb *Callback) ToRaw() any {
	if cb == nil {
		return nil
	}
	if cb.Ref != nil {
		return cb.Ref.ToRaw()
	}
	var out *rawdoc.Map
	if cb.Expressions != nil {
		out = orderedToRaw(cb.Expressions)
	} else {
		out = rawdoc.NewMap()
	}
	e := &emitter{m: out}
	e.extra(cb.Extra)
	return e.result()
}
