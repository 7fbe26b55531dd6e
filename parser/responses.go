package parser

import (
	"github.com/erraggy/oasgraph/internal/httputil"
)

// Responses is the container of the expected responses of an operation.
// Status code keys ("200", "4XX") go to Codes, "default" goes to Default and
// every other key is kept in Extra.
type Responses struct {
	Default *Response
	Codes   map[string]*Response
	// Extra captures specification extensions and unrecognized keys
	Extra map[string]any
}

func buildResponses(d *decoder, raw any) (*Responses, error) {
	o, err := d.object(KindResponses, raw)
	if err != nil {
		return nil, err
	}
	r := &Responses{}
	for key := range o.m.KeysFromOldest() {
		if key != httputil.DefaultResponse && !httputil.IsResponseKey(key) {
			continue
		}
		resp := child(o, key, buildResponse)
		if resp == nil {
			continue
		}
		if key == httputil.DefaultResponse {
			r.Default = resp
			continue
		}
		if r.Codes == nil {
			r.Codes = make(map[string]*Response)
		}
		r.Codes[key] = resp
	}
	r.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return r, nil
}

// Kind implements Node.
func (r *Responses) Kind() Kind { return KindResponses }

// Extensions implements Node.
func (r *Responses) Extensions() map[string]any {
	if r == nil {
		return nil
	}
	return r.Extra
}

// ToRaw implements Node.
func (r *Responses) ToRaw() any {
	if r == nil {
		return nil
	}
	e := newEmitter()
	for _, code := range sortedKeys(r.Codes) {
		e.node(code, r.Codes[code])
	}
	e.node(httputil.DefaultResponse, r.Default)
	e.extra(r.Extra)
	return e.result()
}

// Get returns the response declared for a status code, or Default for
// "default".
func (r *Responses) Get(code string) *Response {
	if r == nil {
		return nil
	}
	if code == httputil.DefaultResponse {
		return r.Default
	}
	return r.Codes[code]
}

// Response describes a single response from an API operation.
type Response struct {
	// Ref is set when the response is a "$ref"; no other field is set then.
	Ref *Reference

	Description string
	Headers     map[string]*Header
	Content     map[string]*MediaType // OAS 3.0+
	Links       map[string]*Link      // OAS 3.0+
	Schema      *Schema               // OAS 2.0

	// Extra captures every other key, including the OAS 2.0 "examples"
	// mapping and specification extensions
	Extra map[string]any
}

func buildResponse(d *decoder, raw any) (*Response, error) {
	o, err := d.object(KindResponse, raw)
	if err != nil {
		return nil, err
	}
	if ref, err := o.reference(); err != nil || ref != nil {
		if err != nil {
			return nil, err
		}
		return &Response{Ref: ref}, nil
	}
	r := &Response{Description: o.str("description")}
	r.Headers = childMap(o, "headers", buildHeader)
	r.Content = childMap(o, "content", buildMediaType)
	r.Links = childMap(o, "links", buildLink)
	r.Schema = child(o, "schema", buildSchema)
	r.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return r, nil
}

// Kind implements Node.
func (r *Response) Kind() Kind { return KindResponse }

// Reference implements Referenceable.
func (r *Response) Reference() *Reference {
	if r == nil {
		return nil
	}
	return r.Ref
}

// Extensions implements Node.
func (r *Response) Extensions() map[string]any {
	if r == nil {
		return nil
	}
	return r.Extra
}

// ToRaw implements Node.
func (r *Response) ToRaw() any {
	if r == nil {
		return nil
	}
	if r.Ref != nil {
		return r.Ref.ToRaw()
	}
	e := newEmitter()
	e.str("description", r.Description)
	e.node("schema", r.Schema)
	emitMap(e, "headers", r.Headers)
	emitMap(e, "content", r.Content)
	emitMap(e, "links", r.Links)
	e.extra(r.Extra)
	return e.result()
}

// RequestBody describes a single request body (OAS 3.0+).
type RequestBody struct {
	// Ref is set when the request body is a "$ref"; no other field is set then.
	Ref *Reference

	Description string
	Content     map[string]*MediaType
	Required    *bool
	Extra       map[string]any
}

func buildRequestBody(d *decoder, raw any) (*RequestBody, error) {
	o, err := d.object(KindRequestBody, raw)
	if err != nil {
		return nil, err
	}
	if ref, err := o.reference(); err != nil || ref != nil {
		if err != nil {
			return nil, err
		}
		return &RequestBody{Ref: ref}, nil
	}
	rb := &RequestBody{
		Description: o.str("description"),
		Required:    o.boolean("required"),
	}
	rb.Content = childMap(o, "content", buildMediaType)
	rb.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return rb, nil
}

// Kind implements Node.
func (rb *RequestBody) Kind() Kind { return KindRequestBody }

// Reference implements Referenceable.
func (rb *RequestBody) Reference() *Reference {
	if rb == nil {
		return nil
	}
	return rb.Ref
}

// Extensions implements Node.
func (rb *RequestBody) Extensions() map[string]any {
	if rb == nil {
		return nil
	}
	return rb.Extra
}

// ToRaw implements Node.
func (rb *RequestBody) ToRaw() any {
	if rb == nil {
		return nil
	}
	if rb.Ref != nil {
		return rb.Ref.ToRaw()
	}
	e := newEmitter()
	e.str("description", rb.Description)
	emitMap(e, "content", rb.Content)
	e.boolean("required", rb.Required)
	e.extra(rb.Extra)
	return e.result()
}

// MediaType provides schema and examples for a media type (OAS 3.0+).
type MediaType struct {
	Schema   *Schema
	Example  any
	Examples map[string]*Example
	Encoding map[string]*Encoding
	Extra    map[string]any
}

func buildMediaType(d *decoder, raw any) (*MediaType, error) {
	o, err := d.object(KindMediaType, raw)
	if err != nil {
		return nil, err
	}
	mt := &MediaType{Example: o.value("example")}
	mt.Schema = child(o, "schema", buildSchema)
	mt.Examples = childMap(o, "examples", buildExample)
	mt.Encoding = childMap(o, "encoding", buildEncoding)
	mt.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return mt, nil
}

// Kind implements Node.
func (mt *MediaType) Kind() Kind { return KindMediaType }

// Extensions implements Node.
func (mt *MediaType) Extensions() map[string]any {
	if mt == nil {
		return nil
	}
	return mt.Extra
}

// ToRaw implements Node.
func (mt *MediaType) ToRaw() any {
	if mt == nil {
		return nil
	}
	e := newEmitter()
	e.node("schema", mt.Schema)
	e.value("example", mt.Example)
	emitMap(e, "examples", mt.Examples)
	emitMap(e, "encoding", mt.Encoding)
	e.extra(mt.Extra)
	return e.result()
}

// Encoding describes a single encoding definition applied to a schema property.
type Encoding struct {
	ContentType   string
	Headers       map[string]*Header
	Style         string
	Explode       *bool
	AllowReserved *bool
	Extra         map[string]any
}

func buildEncoding(d *decoder, raw any) (*Encoding, error) {
	o, err := d.object(KindEncoding, raw)
	if err != nil {
		return nil, err
	}
	enc := &Encoding{
		ContentType:   o.str("contentType"),
		Style:         o.str("style"),
		Explode:       o.boolean("explode"),
		AllowReserved: o.boolean("allowReserved"),
	}
	enc.Headers = childMap(o, "headers", buildHeader)
	enc.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return enc, nil
}

// Kind implements Node.
func (enc *Encoding) Kind() Kind { return KindEncoding }

// Extensions implements Node.
func (enc *Encoding) Extensions() map[string]any {
	if enc == nil {
		return nil
	}
	return enc.Extra
}

// ToRaw implements Node.
func (enc *Encoding) ToRaw() any {
	if enc == nil {
		return nil
	}
	e := newEmitter()
	e.str("contentType", enc.ContentType)
	emitMap(e, "headers", enc.Headers)
	e.str("style", enc.Style)
	e.boolean("explode", enc.Explode)
	e.boolean("allowReserved", enc.AllowReserved)
	e.extra(enc.Extra)
	return e.result()
}

// Example represents an example object (OAS 3.0+).
type Example struct {
	// Ref is set when the example is a "$ref"; no other field is set then.
	Ref *Reference

	Summary       string
	Description   string
	Value         any
	ExternalValue string
	Extra         map[string]any
}

func buildExample(d *decoder, raw any) (*Example, error) {
	o, err := d.object(KindExample, raw)
	if err != nil {
		return nil, err
	}
	if ref, err := o.reference(); err != nil || ref != nil {
		if err != nil {
			return nil, err
		}
		return &Example{Ref: ref}, nil
	}
	ex := &Example{
		Summary:       o.str("summary"),
		Description:   o.str("description"),
		Value:         o.value("value"),
		ExternalValue: o.str("externalValue"),
	}
	ex.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return ex, nil
}

// Kind implements Node.
func (ex *Example) Kind() Kind { return KindExample }

// Reference implements Referenceable.
func (ex *Example) Reference() *Reference {
	if ex == nil {
		return nil
	}
	return ex.Ref
}

// Extensions implements Node.
func (ex *Example) Extensions() map[string]any {
	if ex == nil {
		return nil
	}
	return ex.Extra
}

// ToRaw implements Node.
func (ex *Example) ToRaw() any {
	if ex == nil {
		return nil
	}
	if ex.Ref != nil {
		return ex.Ref.ToRaw()
	}
	e := newEmitter()
	e.str("summary", ex.Summary)
	e.str("description", ex.Description)
	e.value("value", ex.Value)
	e.str("externalValue", ex.ExternalValue)
	e.extra(ex.Extra)
	return e.result()
}

// Link represents a possible design-time link for a response (OAS 3.0+).
type Link struct {
	// Ref is set when the link is a "$ref"; no other field is set then.
	Ref *Reference

	OperationRef string
	OperationID  string
	Parameters   map[string]any
	RequestBody  any
	Description  string
	Server       *Server
	Extra        map[string]any
}

func buildLink(d *decoder, raw any) (*Link, error) {
	o, err := d.object(KindLink, raw)
	if err != nil {
		return nil, err
	}
	if ref, err := o.reference(); err != nil || ref != nil {
		if err != nil {
			return nil, err
		}
		return &Link{Ref: ref}, nil
	}
	l := &Link{
		OperationRef: o.str("operationRef"),
		OperationID:  o.str("operationId"),
		Parameters:   o.rawMap("parameters"),
		RequestBody:  o.value("requestBody"),
		Description:  o.str("description"),
	}
	l.Server = child(o, "server", buildServer)
	l.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return l, nil
}

// Kind implements Node.
func (l *Link) Kind() Kind { return KindLink }

// Reference implements Referenceable.
func (l *Link) Reference() *Reference {
	if l == nil {
		return nil
	}
	return l.Ref
}

// Extensions implements Node.
func (l *Link) Extensions() map[string]any {
	if l == nil {
		return nil
	}
	return l.Extra
}

// ToRaw implements Node.
func (l *Link) ToRaw() any {
	if l == nil {
		return nil
	}
	if l.Ref != nil {
		return l.Ref.ToRaw()
	}
	e := newEmitter()
	e.str("operationRef", l.OperationRef)
	e.str("operationId", l.OperationID)
	e.rawMap("parameters", l.Parameters)
	e.value("requestBody", l.RequestBody)
	e.str("description", l.Description)
	e.node("server", l.Server)
	e.extra(l.Extra)
	return e.result()
}
