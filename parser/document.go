package parser

import (
	"fmt"
	"iter"
	"slices"

	"github.com/erraggy/oasgraph/oaserrors"
	"github.com/erraggy/oasgraph/rawdoc"
)

// Document is the root of an OpenAPI or Swagger document.
//
// A Document is immutable once constructed and safe for concurrent use. It
// keeps its own normalized copy of the raw tree for reference resolution;
// callers may keep modifying the value they passed to Construct.
type Document struct {
	OpenAPI           string // OAS 3.0+
	Swagger           string // OAS 2.0
	Info              *Info
	JSONSchemaDialect string // OAS 3.1+

	// OAS 2.0 connection details
	Host     string
	BasePath string
	Schemes  []string
	Consumes []string
	Produces []string

	Servers      []*Server // OAS 3.0+
	Paths        *Paths
	Webhooks     *Paths // OAS 3.1+
	Components   *Components
	Security     []SecurityRequirement
	Tags         []*Tag
	ExternalDocs *ExternalDocs

	// Extra captures specification extensions (fields starting with "x-")
	// and any other fields not explicitly defined in the struct
	Extra map[string]any

	raw     *rawdoc.Map
	version OASVersion
	dialect Dialect
	cfg     *config
	cache   *resolutionCache
}

// Construct builds a Document from a decoded raw tree: a mapping as produced
// by rawdoc.Decode, encoding/json or a YAML decoder. The input is copied and
// never modified.
//
// Construct fails with a *oaserrors.MalformedDocumentError when the tree
// does not have the shape the model expects, and with a
// *oaserrors.ConfigError when an option is invalid.
func Construct(raw any, opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	root, ok := rawdoc.Normalize(raw).(*rawdoc.Map)
	if !ok {
		return nil, &oaserrors.MalformedDocumentError{
			Kind:    KindDocument.String(),
			Message: fmt.Sprintf("document root must be a mapping, got %s", rawdoc.TypeName(raw)),
		}
	}

	vi, err := detectVersion(root, cfg.defaultVersion)
	if err != nil {
		return nil, err
	}
	if vi.declared == "" {
		cfg.logger.Warn("document declares no version, assuming default",
			"version", cfg.defaultVersion)
	}

	d := newDecoder(vi.dialect)
	defer d.release()
	doc, err := buildDocument(d, root)
	if err != nil {
		return nil, err
	}
	doc.raw = root
	doc.version = vi.version
	doc.dialect = vi.dialect
	doc.cfg = cfg
	if cfg.resolutionCache {
		doc.cache = newResolutionCache()
	}

	cfg.logger.Debug("constructed document",
		"version", vi.version.String(),
		"dialect", vi.dialect.String(),
		"paths", doc.Paths.Len())
	return doc, nil
}

// ParseBytes decodes a YAML or JSON document and constructs it.
func ParseBytes(data []byte, opts ...Option) (*Document, error) {
	raw, err := rawdoc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	return Construct(raw, opts...)
}

func buildDocument(d *decoder, raw any) (*Document, error) {
	o, err := d.object(KindDocument, raw)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		OpenAPI:           versionField(o, "openapi"),
		Swagger:           versionField(o, "swagger"),
		JSONSchemaDialect: o.str("jsonSchemaDialect"),
		Host:              o.str("host"),
		BasePath:          o.str("basePath"),
		Schemes:           o.strList("schemes"),
		Consumes:          o.strList("consumes"),
		Produces:          o.strList("produces"),
	}
	doc.Info = child(o, "info", buildInfo)
	doc.Servers = childList(o, "servers", buildServer)
	doc.Paths = child(o, "paths", buildPaths)
	doc.Webhooks = child(o, "webhooks", buildPaths)
	if d.dialect == DialectSwagger20 {
		doc.Components = buildLegacyComponents(o)
	} else {
		doc.Components = child(o, "components", buildComponents)
	}
	doc.Security = childList(o, "security", buildSecurityRequirement)
	doc.Tags = childList(o, "tags", buildTag)
	doc.ExternalDocs = child(o, "externalDocs", buildExternalDocs)
	doc.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return doc, nil
}

// versionField consumes a version string. YAML reads an unquoted version
// such as 2.0 as a number; that form is kept in Extra so it is written back
// unchanged.
func versionField(o *object, key string) string {
	v, ok := o.lookup(key)
	if !ok {
		return ""
	}
	if _, isStr := v.(string); !isStr {
		return ""
	}
	return o.str(key)
}

// Kind implements Node.
func (doc *Document) Kind() Kind { return KindDocument }

// Extensions implements Node.
func (doc *Document) Extensions() map[string]any {
	if doc == nil {
		return nil
	}
	return doc.Extra
}

// ToRaw implements Node.
func (doc *Document) ToRaw() any {
	if doc == nil {
		return nil
	}
	e := newEmitter()
	e.str("swagger", doc.Swagger)
	e.str("openapi", doc.OpenAPI)
	e.node("info", doc.Info)
	e.str("jsonSchemaDialect", doc.JSONSchemaDialect)
	e.str("host", doc.Host)
	e.str("basePath", doc.BasePath)
	e.strList("schemes", doc.Schemes)
	e.strList("consumes", doc.Consumes)
	e.strList("produces", doc.Produces)
	emitList(e, "servers", doc.Servers)
	e.node("paths", doc.Paths)
	e.node("webhooks", doc.Webhooks)
	if doc.Components.Legacy() {
		doc.Components.emitLegacy(e)
	} else {
		e.node("components", doc.Components)
	}
	emitList(e, "security", doc.Security)
	emitList(e, "tags", doc.Tags)
	e.node("externalDocs", doc.ExternalDocs)
	e.extra(doc.Extra)
	return e.result()
}

// Version returns the OpenAPI version the document was read as.
func (doc *Document) Version() OASVersion {
	return doc.version
}

// Dialect returns the reference and schema dialect of the document.
func (doc *Document) Dialect() Dialect {
	return doc.dialect
}

// Raw returns a deep copy of the normalized raw tree the document was
// constructed from.
func (doc *Document) Raw() *rawdoc.Map {
	m, _ := rawdoc.Normalize(doc.raw).(*rawdoc.Map)
	return m
}

// OperationByOperationID returns the first operation whose operationId is
// id, searching paths and then webhooks in document order. It returns nil
// when there is no such operation.
func (doc *Document) OperationByOperationID(id string) *Operation {
	if id == "" {
		return nil
	}
	for op := range doc.AllOperations() {
		if op.OperationID == id {
			return op
		}
	}
	return nil
}

// AllOperations yields every operation of the document: those under paths,
// then those under webhooks, each in document order. Path items that are
// references are not followed.
func (doc *Document) AllOperations() iter.Seq[*Operation] {
	return func(yield func(*Operation) bool) {
		for _, paths := range []*Paths{doc.Paths, doc.Webhooks} {
			if paths == nil || paths.Items == nil {
				continue
			}
			for _, item := range paths.Items.FromOldest() {
				if item.Operations == nil {
					continue
				}
				for _, op := range item.Operations.FromOldest() {
					if !yield(op) {
						return
					}
				}
			}
		}
	}
}

// EffectiveParameters returns the parameters that apply to the operation at
// path and method, with path-level parameters overridden by operation
// parameters of the same name and location. Parameters written as
// references are matched by the name and location of their targets and are
// returned as written.
//
// It returns nil when the document has no such operation.
func (doc *Document) EffectiveParameters(path, method string) ([]*Parameter, error) {
	item := doc.Paths.Get(path)
	if item == nil {
		return nil, nil
	}
	return item.effectiveParameters(method, doc.identifyParameter)
}

func (doc *Document) identifyParameter(p *Parameter) (paramKey, error) {
	if p.Ref == nil {
		return paramKey{name: p.Name, in: p.In}, nil
	}
	ref := p.Ref.Ref
	visited := []string{ref}
	for {
		n, err := doc.resolveShallow(ref, KindParameter)
		if err != nil {
			return paramKey{}, err
		}
		switch target := n.(type) {
		case *Parameter:
			return paramKey{name: target.Name, in: target.In}, nil
		case *Reference:
			ref = target.Ref
			if slices.Contains(visited, ref) {
				return paramKey{}, &oaserrors.ReferenceError{
					Ref:        ref,
					RefType:    KindParameter.String(),
					IsCircular: true,
					Cycle:      append(visited, ref),
				}
			}
			visited = append(visited, ref)
		default:
			return paramKey{}, kindMismatch(ref, KindParameter, n)
		}
	}
}
