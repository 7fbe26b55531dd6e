// Package parser builds a typed object model from OpenAPI Specification
// documents and resolves the references between their objects.
//
// The parser supports OAS 2.0 through OAS 3.2.0. It works on decoded raw
// trees (mappings, sequences and scalars), so documents can come from
// rawdoc.Decode, encoding/json or any YAML decoder. Every object keeps the
// keys the model does not declare in an extension bag, and Node.ToRaw
// rebuilds the raw tree the object was built from.
//
// # Quick Start
//
// Parse bytes holding YAML or JSON:
//
//	doc, err := parser.ParseBytes(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(doc.Info.Title, doc.Version())
//
// Or construct from an already decoded tree:
//
//	var raw map[string]any
//	_ = json.Unmarshal(data, &raw)
//	doc, err := parser.Construct(raw, parser.WithLogger(logger))
//
// # Object Model
//
// Each object kind is a struct of typed fields plus Extra, which holds every
// other key: vendor extensions ("x-*") and keywords the model does not
// declare, such as a schema's pattern or discriminator. Declared fields are
// filled first; a value a field cannot represent exactly (an explicit null
// or an empty string) stays in Extra so nothing is lost.
//
// Kinds that may be written as a "$ref" (Schema, Parameter, Header,
// RequestBody, Response, Example, Link, Callback, SecurityScheme, PathItem)
// carry a Ref field. When Ref is set, no other declared field is.
//
// # Reference Resolution
//
// ResolveReference follows local references such as
// "#/components/schemas/Pet":
//
//	n, err := doc.ResolveReference("#/components/schemas/Pet", false)
//
// With followNested set to true, every reference reachable from the target
// is expanded into a fresh composite, leaving the document untouched.
// Reference cycles fail with a *oaserrors.ReferenceError whose Cycle lists
// the references on the loop, e.g. [A, B, A]:
//
//	_, err := doc.ResolveReference("#/components/schemas/A", true)
//	if errors.Is(err, oaserrors.ErrCircularReference) {
//		// handle cycle
//	}
//
// IsCircularReference performs the same expansion and reports a boolean.
// References into other documents fail with ErrUnsupportedReference.
//
// # Dialects
//
// The declared version selects a Dialect. Swagger 2.0 documents keep their
// reusable objects under "definitions", "parameters", "responses" and
// "securityDefinitions"; Components is built from those sections and a
// pointer such as "#/components/schemas/Pet" finds "#/definitions/Pet". In
// OAS 2.0 and 3.0 the keys written next to "$ref" are ignored when
// resolving. In OAS 3.1+ a schema reference with sibling keywords expands
// to a schema holding those keywords with the target in its allOf, and the
// summary and description of other references override the target's.
//
// # Concurrency
//
// A Document is read-only after construction and safe for concurrent use.
// WithResolutionCache adds a memo of expanded references shared by all
// callers.
package parser
