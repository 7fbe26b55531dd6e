// Package oasgraph provides a typed object model and a reference resolver for
// OpenAPI Specification (OAS) documents, from OAS 2.0 (Swagger) through
// OAS 3.2.0.
//
// # Overview
//
// The module consists of these packages:
//
//   - rawdoc: Decode YAML or JSON into an ordered raw tree, and encode it back
//   - parser: Build the typed model from a raw tree, resolve "$ref" values,
//     detect reference cycles and convert nodes back to raw trees
//   - walker: Visit the typed nodes of a document in a deterministic order
//   - oaserrors: Typed errors and sentinels shared by the packages
//
// Supported versions:
//   - OAS 2.0 (Swagger): https://spec.openapis.org/oas/v2.0.html
//   - OAS 3.0.x (3.0.0 - 3.0.4): https://spec.openapis.org/oas/v3.0.0.html
//   - OAS 3.1.x (3.1.0 - 3.1.2): https://spec.openapis.org/oas/v3.1.0.html
//   - OAS 3.2.0: https://spec.openapis.org/oas/v3.2.0.html
//
// # Quick Start
//
// Parse a document and look up an operation:
//
//	import "github.com/erraggy/oasgraph/parser"
//
//	doc, err := parser.ParseBytes(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	op := doc.OperationByOperationID("listPets")
//	fmt.Println(op.Method, op.Path)
//
// Resolve a reference, expanding every nested reference:
//
//	node, err := doc.ResolveReference("#/components/schemas/Pet", true)
//	if errors.Is(err, oaserrors.ErrCircularReference) {
//		var refErr *oaserrors.ReferenceError
//		errors.As(err, &refErr)
//		fmt.Println("cycle:", refErr.Cycle)
//	}
//
// Convert any node back to a raw tree and encode it:
//
//	out, err := rawdoc.EncodeYAML(node.ToRaw())
//
// Swagger 2.0 documents keep their reusable objects in the root-level
// "definitions", "parameters", "responses" and "securityDefinitions"
// sections. The parser exposes them as components, and references written
// with either layout resolve.
//
// # Command-Line Tool
//
// The oasgraph command summarizes documents, lists and resolves references,
// reports reference cycles and re-emits documents:
//
//	oasgraph summary openapi.yaml
//	oasgraph refs openapi.yaml --group-by section
//	oasgraph resolve openapi.yaml '#/components/schemas/Pet' --follow
//	oasgraph circular openapi.yaml
//	oasgraph roundtrip openapi.yaml -o out.yaml
//
// "oasgraph mcp" serves the same queries as MCP tools over stdio.
//
// # Concurrency
//
// A Document is read-only once constructed, and all of its methods are safe
// for concurrent use. parser.WithResolutionCache memoizes expanded
// references, deduplicating concurrent resolutions of the same reference.
package oasgraph
