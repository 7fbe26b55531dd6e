package walker

import (
	"strings"

	"github.com/erraggy/oasgraph/parser"
)

// SchemaInfo contains information about a collected schema.
type SchemaInfo struct {
	// Schema is the collected schema.
	Schema *parser.Schema

	// Name is the component or property name, empty for unnamed schemas.
	Name string

	// Pointer is the JSON Pointer to the schema.
	Pointer string

	// IsComponent is true when the schema is defined under components or
	// definitions.
	IsComponent bool
}

// SchemaCollector holds schemas collected during a walk.
type SchemaCollector struct {
	// All contains all schemas in traversal order.
	All []*SchemaInfo

	// Components contains only component schemas.
	Components []*SchemaInfo

	// Inline contains only inline schemas (not in components).
	Inline []*SchemaInfo

	// ByPointer provides lookup by JSON Pointer.
	ByPointer map[string]*SchemaInfo
}

// CollectSchemas walks the document and collects all schema nodes,
// reference schemas included.
func CollectSchemas(doc *parser.Document) (*SchemaCollector, error) {
	collector := &SchemaCollector{
		ByPointer: make(map[string]*SchemaInfo),
	}

	err := Walk(doc,
		WithSchemaHandler(func(wc *WalkContext, schema *parser.Schema) Action {
			info := &SchemaInfo{
				Schema:      schema,
				Name:        wc.Name,
				Pointer:     wc.Pointer,
				IsComponent: wc.IsComponent,
			}
			collector.All = append(collector.All, info)
			collector.ByPointer[wc.Pointer] = info
			if wc.IsComponent {
				collector.Components = append(collector.Components, info)
			} else {
				collector.Inline = append(collector.Inline, info)
			}
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}
	return collector, nil
}

// OperationInfo contains information about a collected operation.
type OperationInfo struct {
	Operation *parser.Operation

	// PathTemplate is the URL path template, or the webhook name.
	PathTemplate string

	// Method is the lowercase HTTP method.
	Method string

	// Pointer is the JSON Pointer to the operation.
	Pointer string

	// IsWebhook is true for operations defined under webhooks.
	IsWebhook bool
}

// OperationCollector holds operations collected during a walk.
type OperationCollector struct {
	// All contains all operations in traversal order.
	All []*OperationInfo

	// ByPath groups operations by path template.
	ByPath map[string][]*OperationInfo

	// ByTag groups operations by tag. Untagged operations are not listed.
	ByTag map[string][]*OperationInfo
}

// CollectOperations walks the document and collects the operations under
// paths and webhooks. Operations inside callbacks and path item components
// are not collected.
func CollectOperations(doc *parser.Document) (*OperationCollector, error) {
	collector := &OperationCollector{
		ByPath: make(map[string][]*OperationInfo),
		ByTag:  make(map[string][]*OperationInfo),
	}

	err := Walk(doc,
		WithOperationHandler(func(wc *WalkContext, op *parser.Operation) Action {
			if !wc.InPathsScope() || strings.Contains(wc.Pointer, "/callbacks/") {
				return SkipChildren
			}
			info := &OperationInfo{
				Operation:    op,
				PathTemplate: wc.PathTemplate,
				Method:       wc.Method,
				Pointer:      wc.Pointer,
				IsWebhook:    strings.HasPrefix(wc.Pointer, "/webhooks/"),
			}
			collector.All = append(collector.All, info)
			collector.ByPath[wc.PathTemplate] = append(collector.ByPath[wc.PathTemplate], info)
			for _, tag := range op.Tags {
				collector.ByTag[tag] = append(collector.ByTag[tag], info)
			}
			return SkipChildren
		}),
	)
	if err != nil {
		return nil, err
	}
	return collector, nil
}

// RefInfo describes a reference node found during a walk.
type RefInfo struct {
	// Ref is the "$ref" value.
	Ref string

	// Pointer is the JSON Pointer to the node holding the reference.
	Pointer string
}

// CollectRefs walks the document and returns the reference nodes of the
// typed model in traversal order. References inside extensions or example
// values are not nodes and are not returned; use
// [parser.Document.GetAllReferences] for those.
func CollectRefs(doc *parser.Document) ([]RefInfo, error) {
	var refs []RefInfo
	err := Walk(doc,
		WithRefHandler(func(wc *WalkContext, ref *parser.Reference) Action {
			refs = append(refs, RefInfo{Ref: ref.Ref, Pointer: wc.Pointer})
			return Continue
		}),
	)
	return refs, err
}
