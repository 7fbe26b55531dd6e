// Package walker provides typed traversal of a parsed OpenAPI document.
//
// The walker visits every node of a [parser.Document] in a deterministic
// pre-order and calls the handler registered for the node's type. Handlers
// steer the traversal by returning an [Action]:
//
//   - [Continue]: visit the node's children, then its siblings
//   - [SkipChildren]: skip the node's children, continue with its siblings
//   - [Stop]: end the walk
//
// # Quick Start
//
//	doc, _ := parser.ParseBytes(data)
//	err := walker.Walk(doc,
//	    walker.WithOperationHandler(func(wc *walker.WalkContext, op *parser.Operation) walker.Action {
//	        fmt.Println(wc.Method, wc.PathTemplate, op.OperationID)
//	        return walker.Continue
//	    }),
//	)
//
// # Traversal Order
//
// The document root is visited first, then info, external docs, servers and
// tags. Paths and webhooks follow in document order, and the operations of a
// path item in their document order. Mappings without a document order
// (components, properties, content, headers) are visited in sorted key
// order, and response status codes before "default".
//
// Reference nodes are reported to the [RefHandler] and are not followed; to
// walk through references, walk the node returned by
// [parser.Document.ResolveReference] with followNested set.
//
// # WalkContext
//
// Every handler receives a [WalkContext] as its first parameter:
//
//   - Pointer: JSON Pointer to the node (always populated, "" for the root)
//   - PathTemplate: URL path template when under paths or webhooks
//   - Method: HTTP method when in operation scope (e.g., "get", "post")
//   - StatusCode: Status code when in response scope (e.g., "200", "default")
//   - Name: Map key for named items (headers, schemas, etc.)
//   - IsComponent: True when under components (or the Swagger 2.0 sections)
//
// Example pointers:
//
//	/paths/~1pets~1{petId}/get/responses/200
//	/components/schemas/Pet/properties/name
//	/definitions/Pet
//
// The WalkContext is only valid for the duration of the handler call.
//
// # Schema Cycles and Depth
//
// Schema nesting is bounded by [WithMaxSchemaDepth]. A schema already on the
// current traversal stack is not visited again. Both cases are reported to
// the handler registered with [WithSchemaSkippedHandler].
package walker
