package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/erraggy/oasgraph/internal/httputil"
	"github.com/erraggy/oasgraph/internal/pathutil"
	"github.com/erraggy/oasgraph/oaserrors"
	"github.com/erraggy/oasgraph/rawdoc"
)

// builders constructs each kind from a raw value. Document and Reference
// are handled by the callers.
var builders = map[Kind]func(*decoder, any) (Node, error){
	KindGeneric:             nodeBuilder(buildGeneric),
	KindInfo:                nodeBuilder(buildInfo),
	KindContact:             nodeBuilder(buildContact),
	KindLicense:             nodeBuilder(buildLicense),
	KindServer:              nodeBuilder(buildServer),
	KindServerVariable:      nodeBuilder(buildServerVariable),
	KindTag:                 nodeBuilder(buildTag),
	KindExternalDocs:        nodeBuilder(buildExternalDocs),
	KindPaths:               nodeBuilder(buildPaths),
	KindPathItem:            nodeBuilder(buildPathItem),
	KindOperation:           nodeBuilder(buildOperation),
	KindParameter:           nodeBuilder(buildParameter),
	KindHeader:              nodeBuilder(buildHeader),
	KindRequestBody:         nodeBuilder(buildRequestBody),
	KindMediaType:           nodeBuilder(buildMediaType),
	KindEncoding:            nodeBuilder(buildEncoding),
	KindExample:             nodeBuilder(buildExample),
	KindResponses:           nodeBuilder(buildResponses),
	KindResponse:            nodeBuilder(buildResponse),
	KindLink:                nodeBuilder(buildLink),
	KindCallback:            nodeBuilder(buildCallback),
	KindComponents:          nodeBuilder(buildComponents),
	KindSchema:              nodeBuilder(buildSchema),
	KindSecurityScheme:      nodeBuilder(buildSecurityScheme),
	KindOAuthFlows:          nodeBuilder(buildOAuthFlows),
	KindOAuthFlow:           nodeBuilder(buildOAuthFlow),
	KindSecurityRequirement: nodeBuilder(buildSecurityRequirement),
}

func nodeBuilder[T Node](build buildFunc[T]) func(*decoder, any) (Node, error) {
	return func(d *decoder, raw any) (Node, error) {
		n, err := build(d, raw)
		if err != nil {
			return nil, err
		}
		return n, nil
	}
}

// ConstructNode builds a single node of the given kind from a raw value,
// using the dialect of version. A mapping holding "$ref" yields a
// *Reference regardless of kind. KindDocument is equivalent to Construct,
// which reads the version from the document itself.
func ConstructNode(kind Kind, raw any, version OASVersion) (Node, error) {
	if kind == KindDocument {
		return Construct(raw)
	}
	d := newDecoder(version.Dialect())
	defer d.release()
	return constructNode(d, kind, rawdoc.Normalize(raw))
}

func constructNode(d *decoder, kind Kind, raw any) (Node, error) {
	if isReference(raw) || kind == KindReference {
		return d.reference(raw)
	}
	build, ok := builders[kind]
	if !ok {
		return nil, d.malformed(kind, "cannot construct a %s node", kind)
	}
	return build(d, raw)
}

// isReference reports whether raw is a mapping holding a string "$ref".
func isReference(raw any) bool {
	m, ok := raw.(*rawdoc.Map)
	if !ok || m == nil {
		return false
	}
	ref, ok := m.Get("$ref")
	if !ok {
		return false
	}
	_, ok = ref.(string)
	return ok
}

// ResolveReference resolves a local reference such as
// "#/components/schemas/Pet" against the document.
//
// With followNested false the node at the pointer is returned as written; a
// target that is itself a "$ref" yields a *Reference. With followNested true
// a fresh composite is returned in which every reference reachable through
// the node's typed sub-objects is replaced by its expansion. References kept
// in extension bags are not expanded. That includes schema keywords the model
// keeps in Schema.Extra, such as prefixItems, $defs, if/then/else,
// dependentSchemas and contains: a cycle running only through them is neither
// expanded nor reported, so IsCircularReference returns false for it.
//
// Errors are *oaserrors.ReferenceError (not found, unsupported, circular) or
// *oaserrors.ResourceLimitError when expansion exceeds the configured depth.
func (doc *Document) ResolveReference(ref string, followNested bool) (Node, error) {
	if !followNested {
		return doc.resolveShallow(ref, KindGeneric)
	}
	if doc.cache != nil {
		return doc.cache.resolve(ref, doc.logger(), func() (Node, error) {
			return doc.expandReference(ref)
		})
	}
	return doc.expandReference(ref)
}

// resolveShallow builds the node at ref without following nested
// references. kind is the kind the caller expects; KindGeneric takes the kind
// from the target's location.
func (doc *Document) resolveShallow(ref string, kind Kind) (Node, error) {
	tokens, err := doc.refTokens(ref)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return doc, nil
	}
	raw, err := doc.lookup(ref, tokens)
	if err != nil {
		return nil, err
	}
	if kind == KindGeneric {
		kind = kindAt(tokens)
	}
	d := newDecoder(doc.dialect, tokens...)
	defer d.release()
	n, err := constructNode(d, kind, raw)
	if err != nil {
		return nil, &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: kind.String(),
			Message: "target cannot be constructed",
			Cause:   err,
		}
	}
	doc.logger().Debug("resolved reference", "ref", ref, "kind", n.Kind().String())
	return n, nil
}

func (doc *Document) expandReference(ref string) (Node, error) {
	x := newExpander(doc)
	n, err := x.resolve(ref, KindGeneric)
	if err != nil {
		var rerr *oaserrors.ReferenceError
		if errors.As(err, &rerr) && rerr.IsCircular {
			doc.logger().Debug("circular reference detected", "ref", ref, "cycle", rerr.Cycle)
		}
		return nil, err
	}
	doc.logger().Debug("expanded reference", "ref", ref, "kind", n.Kind().String(), "targets", len(x.memo))
	return n, nil
}

// IsCircularReference reports whether fully expanding ref runs into a
// reference cycle. Any other resolution failure reports false.
func (doc *Document) IsCircularReference(ref string) bool {
	_, err := doc.ResolveReference(ref, true)
	return isCircular(err)
}

func isCircular(err error) bool {
	return errors.Is(err, oaserrors.ErrCircularReference)
}

// refTokens splits a reference into pointer tokens, rejecting references
// into other documents. Modern component pointers are rewritten to their
// legacy location for Swagger 2.0 documents.
func (doc *Document) refTokens(ref string) ([]string, error) {
	document, pointer := pathutil.SplitRef(ref)
	if document != "" {
		return nil, &oaserrors.ReferenceError{
			Ref:           ref,
			IsUnsupported: true,
			Message:       "references to other documents are not supported",
		}
	}
	tokens, err := pathutil.ParsePointer(pointer)
	if err != nil {
		return nil, &oaserrors.ReferenceError{
			Ref:        ref,
			IsNotFound: true,
			Message:    "invalid JSON pointer",
			Cause:      err,
		}
	}
	return aliasTokens(doc.dialect, tokens), nil
}

// lookup walks the raw tree along tokens. Mapping steps match keys exactly;
// sequence steps take canonical non-negative in-bounds indexes.
func (doc *Document) lookup(ref string, tokens []string) (any, error) {
	var cur any = doc.raw
	for i, tok := range tokens {
		next, ok := step(cur, tok)
		if !ok {
			return nil, &oaserrors.ReferenceError{
				Ref:        ref,
				IsNotFound: true,
				Message:    fmt.Sprintf("no value at %s", pathutil.LocalRef(tokens[:i+1]...)),
			}
		}
		cur = next
	}
	return cur, nil
}

func step(cur any, tok string) (any, bool) {
	switch node := cur.(type) {
	case *rawdoc.Map:
		if node == nil {
			return nil, false
		}
		return node.Get(tok)
	case []any:
		idx, ok := arrayIndex(tok)
		if !ok || idx >= len(node) {
			return nil, false
		}
		return node[idx], true
	}
	return nil, false
}

// arrayIndex parses a JSON Pointer array index: digits only, no leading
// zeros.
func arrayIndex(tok string) (int, bool) {
	if tok == "" || len(tok) > 1 && tok[0] == '0' {
		return 0, false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// kindPattern maps a pointer shape to the kind found there. A "*" segment
// matches any token and "{method}" matches an operation key.
type kindPattern struct {
	segments []string
	kind     Kind
}

var kindTable = []kindPattern{
	{nil, KindDocument},
	{[]string{"info"}, KindInfo},
	{[]string{"info", "contact"}, KindContact},
	{[]string{"info", "license"}, KindLicense},
	{[]string{"externalDocs"}, KindExternalDocs},
	{[]string{"servers", "*"}, KindServer},
	{[]string{"tags", "*"}, KindTag},
	{[]string{"security", "*"}, KindSecurityRequirement},
	{[]string{"paths"}, KindPaths},
	{[]string{"paths", "*"}, KindPathItem},
	{[]string{"paths", "*", "parameters", "*"}, KindParameter},
	{[]string{"paths", "*", "{method}"}, KindOperation},
	{[]string{"paths", "*", "{method}", "parameters", "*"}, KindParameter},
	{[]string{"paths", "*", "{method}", "requestBody"}, KindRequestBody},
	{[]string{"paths", "*", "{method}", "responses"}, KindResponses},
	{[]string{"paths", "*", "{method}", "responses", "{status}"}, KindResponse},
	{[]string{"paths", "*", "{method}", "callbacks", "*"}, KindCallback},
	{[]string{"webhooks", "*"}, KindPathItem},
	{[]string{"webhooks", "*", "{method}"}, KindOperation},
	{[]string{"components"}, KindComponents},
	{[]string{"components", "schemas", "*"}, KindSchema},
	{[]string{"components", "schemas", "*", "properties", "*"}, KindSchema},
	{[]string{"components", "schemas", "*", "items"}, KindSchema},
	{[]string{"components", "parameters", "*"}, KindParameter},
	{[]string{"components", "responses", "*"}, KindResponse},
	{[]string{"components", "requestBodies", "*"}, KindRequestBody},
	{[]string{"components", "headers", "*"}, KindHeader},
	{[]string{"components", "examples", "*"}, KindExample},
	{[]string{"components", "links", "*"}, KindLink},
	{[]string{"components", "callbacks", "*"}, KindCallback},
	{[]string{"components", "securitySchemes", "*"}, KindSecurityScheme},
	{[]string{"components", "pathItems", "*"}, KindPathItem},
	// Swagger 2.0
	{[]string{"definitions", "*"}, KindSchema},
	{[]string{"definitions", "*", "properties", "*"}, KindSchema},
	{[]string{"definitions", "*", "items"}, KindSchema},
	{[]string{"parameters", "*"}, KindParameter},
	{[]string{"responses", "*"}, KindResponse},
	{[]string{"securityDefinitions", "*"}, KindSecurityScheme},
}

// kindAt returns the kind of the object found at the pointer tokens, or
// KindGeneric for locations outside the table.
func kindAt(tokens []string) Kind {
	for _, p := range kindTable {
		if matchPattern(p.segments, tokens) {
			return p.kind
		}
	}
	return KindGeneric
}

func matchPattern(segments, tokens []string) bool {
	if len(segments) != len(tokens) {
		return false
	}
	for i, seg := range segments {
		tok := tokens[i]
		switch seg {
		case "*":
			if IsExtensionKey(tok) {
				return false
			}
		case "{method}":
			if !httputil.IsMethod(tok) {
				return false
			}
		case "{status}":
			if tok != httputil.DefaultResponse && !httputil.IsResponseKey(tok) {
				return false
			}
		default:
			if seg != tok {
				return false
			}
		}
	}
	return true
}

// nodeAs converts a resolved node to the type the referencing site expects.
func nodeAs[T Node](n Node, kind Kind, ref string) (T, error) {
	t, ok := n.(T)
	if !ok {
		var zero T
		return zero, kindMismatch(ref, kind, n)
	}
	return t, nil
}

func kindMismatch(ref string, want Kind, got Node) error {
	return &oaserrors.ReferenceError{
		Ref:     ref,
		RefType: want.String(),
		Message: fmt.Sprintf("target is a %s, not a %s", got.Kind(), want),
	}
}

func (doc *Document) logger() Logger {
	if doc.cfg == nil || doc.cfg.logger == nil {
		return NopLogger{}
	}
	return doc.cfg.logger
}

func (doc *Document) maxRefDepth() int {
	if doc.cfg == nil || doc.cfg.maxRefDepth <= 0 {
		return MaxRefDepth
	}
	return doc.cfg.maxRefDepth
}
