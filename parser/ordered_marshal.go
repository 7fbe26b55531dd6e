package parser

import (
	"github.com/erraggy/oasgraph/rawdoc"
)

// MarshalJSON marshals a node to JSON. Declared fields appear in the order
// the OpenAPI documents list them, followed by extension keys in sorted
// order; paths, path item operations and callback expressions keep their
// source order.
//
// Example:
//
//	doc, _ := parser.ParseBytes(data)
//	out, _ := parser.MarshalJSON(doc)
func MarshalJSON(n Node) ([]byte, error) {
	return rawdoc.EncodeJSON(n.ToRaw())
}

// MarshalJSONIndent is like MarshalJSON but indents the output.
func MarshalJSONIndent(n Node, prefix, indent string) ([]byte, error) {
	return rawdoc.EncodeJSONIndent(n.ToRaw(), prefix, indent)
}

// MarshalYAML marshals a node to YAML with the same key order as
// MarshalJSON.
func MarshalYAML(n Node) ([]byte, error) {
	return rawdoc.EncodeYAML(n.ToRaw())
}
