package walker

import (
	"maps"
	"slices"

	"github.com/erraggy/oasgraph/parser"
)

func (w *Walker) walkDocument(doc *parser.Document) {
	if !visit(w, w.onDocument, doc) {
		return
	}
	if doc.Info != nil {
		w.walkChild("info", func() { visit(w, w.onInfo, doc.Info) })
	}
	if doc.ExternalDocs != nil {
		w.walkChild("externalDocs", func() { visit(w, w.onExternalDocs, doc.ExternalDocs) })
	}
	walkList(w, "servers", doc.Servers, func(s *parser.Server) { visit(w, w.onServer, s) })
	walkList(w, "tags", doc.Tags, w.walkTag)

	w.walkPaths("paths", doc.Paths)
	w.walkPaths("webhooks", doc.Webhooks)
	w.walkComponents(doc.Components)
}

func (w *Walker) walkTag(tag *parser.Tag) {
	if tag == nil || !visit(w, w.onTag, tag) || tag.ExternalDocs == nil {
		return
	}
	w.walkChild("externalDocs", func() { visit(w, w.onExternalDocs, tag.ExternalDocs) })
}

func (w *Walker) walkPaths(key string, paths *parser.Paths) {
	if paths == nil || paths.Items == nil || w.stopped {
		return
	}
	w.path.Push(key)
	defer w.path.Pop()
	for template, item := range paths.Items.FromOldest() {
		if w.stopped {
			return
		}
		prev := w.state
		w.state.pathTemplate = template
		w.state.name = ""
		w.path.Push(template)
		w.walkPathItem(item)
		w.path.Pop()
		w.state = prev
	}
}

func (w *Walker) walkPathItem(item *parser.PathItem) {
	if item == nil {
		return
	}
	if item.Ref != nil {
		if w.visitRef(item.Ref) {
			visit(w, w.onPathItem, item)
		}
		return
	}
	if !visit(w, w.onPathItem, item) {
		return
	}
	walkList(w, "servers", item.Servers, func(s *parser.Server) { visit(w, w.onServer, s) })
	walkList(w, "parameters", item.Parameters, w.walkParameter)
	if item.Operations == nil {
		return
	}
	for method, op := range item.Operations.FromOldest() {
		if w.stopped {
			return
		}
		prev := w.state
		w.state.method = method
		w.state.name = ""
		w.path.Push(method)
		w.walkOperation(op)
		w.path.Pop()
		w.state = prev
	}
}

func (w *Walker) walkOperation(op *parser.Operation) {
	if !visit(w, w.onOperation, op) {
		return
	}
	if op.ExternalDocs != nil {
		w.walkChild("externalDocs", func() { visit(w, w.onExternalDocs, op.ExternalDocs) })
	}
	walkList(w, "parameters", op.Parameters, w.walkParameter)
	if op.RequestBody != nil {
		w.walkChild("requestBody", func() { w.walkRequestBody(op.RequestBody) })
	}
	if op.Responses != nil {
		w.walkChild("responses", func() { w.walkResponses(op.Responses) })
	}
	walkMap(w, "callbacks", op.Callbacks, w.walkCallback)
	walkList(w, "servers", op.Servers, func(s *parser.Server) { visit(w, w.onServer, s) })
}

// walkResponses visits status codes in sorted order, then the default
// response.
func (w *Walker) walkResponses(r *parser.Responses) {
	for _, code := range slices.Sorted(maps.Keys(r.Codes)) {
		if w.stopped {
			return
		}
		w.walkStatus(code, r.Codes[code])
	}
	if r.Default != nil && !w.stopped {
		w.walkStatus("default", r.Default)
	}
}

func (w *Walker) walkStatus(code string, resp *parser.Response) {
	prev := w.state
	w.state.statusCode = code
	w.state.name = ""
	w.path.Push(code)
	w.walkResponse(resp)
	w.path.Pop()
	w.state = prev
}

func (w *Walker) walkResponse(resp *parser.Response) {
	if resp == nil {
		return
	}
	if resp.Ref != nil {
		if w.visitRef(resp.Ref) {
			visit(w, w.onResponse, resp)
		}
		return
	}
	if !visit(w, w.onResponse, resp) {
		return
	}
	walkMap(w, "headers", resp.Headers, w.walkHeader)
	walkMap(w, "content", resp.Content, w.walkMediaType)
	walkMap(w, "links", resp.Links, w.walkLink)
	if resp.Schema != nil {
		w.walkChild("schema", func() { w.walkSchema(resp.Schema, 0) })
	}
}

func (w *Walker) walkRequestBody(rb *parser.RequestBody) {
	if rb.Ref != nil {
		if w.visitRef(rb.Ref) {
			visit(w, w.onRequestBody, rb)
		}
		return
	}
	if !visit(w, w.onRequestBody, rb) {
		return
	}
	walkMap(w, "content", rb.Content, w.walkMediaType)
}

func (w *Walker) walkParameter(p *parser.Parameter) {
	if p == nil {
		return
	}
	if p.Ref != nil {
		if w.visitRef(p.Ref) {
			visit(w, w.onParameter, p)
		}
		return
	}
	if !visit(w, w.onParameter, p) {
		return
	}
	if p.Schema != nil {
		w.walkChild("schema", func() { w.walkSchema(p.Schema, 0) })
	}
	walkMap(w, "examples", p.Examples, w.walkExample)
	walkMap(w, "content", p.Content, w.walkMediaType)
}

func (w *Walker) walkHeader(h *parser.Header) {
	if h == nil {
		return
	}
	if h.Ref != nil {
		if w.visitRef(h.Ref) {
			visit(w, w.onHeader, h)
		}
		return
	}
	if !visit(w, w.onHeader, h) {
		return
	}
	if h.Schema != nil {
		w.walkChild("schema", func() { w.walkSchema(h.Schema, 0) })
	}
	walkMap(w, "examples", h.Examples, w.walkExample)
	walkMap(w, "content", h.Content, w.walkMediaType)
}

func (w *Walker) walkMediaType(mt *parser.MediaType) {
	if mt == nil || !visit(w, w.onMediaType, mt) {
		return
	}
	if mt.Schema != nil {
		w.walkChild("schema", func() { w.walkSchema(mt.Schema, 0) })
	}
	walkMap(w, "examples", mt.Examples, w.walkExample)
	walkMap(w, "encoding", mt.Encoding, func(enc *parser.Encoding) {
		if enc != nil {
			walkMap(w, "headers", enc.Headers, w.walkHeader)
		}
	})
}

func (w *Walker) walkExample(ex *parser.Example) {
	if ex == nil {
		return
	}
	if ex.Ref != nil && !w.visitRef(ex.Ref) {
		return
	}
	visit(w, w.onExample, ex)
}

func (w *Walker) walkLink(l *parser.Link) {
	if l == nil {
		return
	}
	if l.Ref != nil {
		if w.visitRef(l.Ref) {
			visit(w, w.onLink, l)
		}
		return
	}
	if !visit(w, w.onLink, l) || l.Server == nil {
		return
	}
	w.walkChild("server", func() { visit(w, w.onServer, l.Server) })
}

func (w *Walker) walkCallback(cb *parser.Callback) {
	if cb == nil {
		return
	}
	if cb.Ref != nil {
		if w.visitRef(cb.Ref) {
			visit(w, w.onCallback, cb)
		}
		return
	}
	if !visit(w, w.onCallback, cb) || cb.Expressions == nil {
		return
	}
	for expr, item := range cb.Expressions.FromOldest() {
		if w.stopped {
			return
		}
		prev := w.state
		w.state.name = expr
		w.state.method = ""
		w.state.statusCode = ""
		w.path.Push(expr)
		w.walkPathItem(item)
		w.path.Pop()
		w.state = prev
	}
}

func (w *Walker) walkSecurityScheme(ss *parser.SecurityScheme) {
	if ss == nil {
		return
	}
	if ss.Ref != nil && !w.visitRef(ss.Ref) {
		return
	}
	visit(w, w.onSecurityScheme, ss)
}

func (w *Walker) walkSchema(s *parser.Schema, depth int) {
	if s == nil || w.stopped {
		return
	}
	if s.Ref != nil {
		if w.visitRef(s.Ref) {
			visit(w, w.onSchema, s)
		}
		return
	}
	if depth > w.maxDepth {
		w.skipped("depth", s)
		return
	}
	if w.visitedSchemas[s] {
		w.skipped("cycle", s)
		return
	}
	w.visitedSchemas[s] = true
	defer delete(w.visitedSchemas, s)

	if !visit(w, w.onSchema, s) {
		return
	}
	nested := func(child *parser.Schema) { w.walkSchema(child, depth+1) }
	walkMap(w, "properties", s.Properties, nested)
	walkMap(w, "patternProperties", s.PatternProperties, nested)
	if s.AdditionalProperties != nil {
		w.walkChild("additionalProperties", func() { nested(s.AdditionalProperties) })
	}
	if s.Items != nil {
		w.walkChild("items", func() { nested(s.Items) })
	}
	walkList(w, "allOf", s.AllOf, nested)
	walkList(w, "anyOf", s.AnyOf, nested)
	walkList(w, "oneOf", s.OneOf, nested)
	if s.Not != nil {
		w.walkChild("not", func() { nested(s.Not) })
	}
}

// walkComponents visits the reusable objects. Swagger 2.0 documents keep
// them in root-level sections, which is reflected in the pointers.
func (w *Walker) walkComponents(c *parser.Components) {
	if c == nil || w.stopped {
		return
	}
	prev := w.state
	w.state = walkState{isComponent: true}
	defer func() { w.state = prev }()

	if c.Legacy() {
		walkMap(w, "definitions", c.Schemas, func(s *parser.Schema) { w.walkSchema(s, 0) })
		walkMap(w, "parameters", c.Parameters, w.walkParameter)
		walkMap(w, "responses", c.Responses, w.walkResponse)
		walkMap(w, "securityDefinitions", c.SecuritySchemes, w.walkSecurityScheme)
		return
	}

	w.path.Push("components")
	defer w.path.Pop()
	walkMap(w, "schemas", c.Schemas, func(s *parser.Schema) { w.walkSchema(s, 0) })
	walkMap(w, "responses", c.Responses, w.walkResponse)
	walkMap(w, "parameters", c.Parameters, w.walkParameter)
	walkMap(w, "examples", c.Examples, w.walkExample)
	walkMap(w, "requestBodies", c.RequestBodies, func(rb *parser.RequestBody) {
		if rb != nil {
			w.walkRequestBody(rb)
		}
	})
	walkMap(w, "headers", c.Headers, w.walkHeader)
	walkMap(w, "securitySchemes", c.SecuritySchemes, w.walkSecurityScheme)
	walkMap(w, "links", c.Links, w.walkLink)
	walkMap(w, "callbacks", c.Callbacks, w.walkCallback)
	walkMap(w, "pathItems", c.PathItems, w.walkPathItem)
}

// walkChild visits an unnamed child under key.
func (w *Walker) walkChild(key string, fn func()) {
	if w.stopped {
		return
	}
	prevName := w.state.name
	w.state.name = ""
	w.path.Push(key)
	fn()
	w.path.Pop()
	w.state.name = prevName
}

// walkMap visits the entries of m under key in sorted key order, setting
// the context name to each entry's key.
func walkMap[T any](w *Walker, key string, m map[string]T, fn func(T)) {
	if len(m) == 0 || w.stopped {
		return
	}
	prevName := w.state.name
	w.path.Push(key)
	for _, name := range slices.Sorted(maps.Keys(m)) {
		if w.stopped {
			break
		}
		w.state.name = name
		w.path.Push(name)
		fn(m[name])
		w.path.Pop()
	}
	w.path.Pop()
	w.state.name = prevName
}

// walkList visits the items of list under key.
func walkList[T any](w *Walker, key string, list []T, fn func(T)) {
	if len(list) == 0 || w.stopped {
		return
	}
	prevName := w.state.name
	w.state.name = ""
	w.path.Push(key)
	for i, item := range list {
		if w.stopped {
			break
		}
		w.path.PushIndex(i)
		fn(item)
		w.path.Pop()
	}
	w.path.Pop()
	w.state.name = prevName
}
