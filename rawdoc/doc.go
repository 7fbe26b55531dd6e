// Package rawdoc holds the raw document form of an API description: the
// untyped tree of mappings, sequences and scalars that results from decoding
// JSON or YAML.
//
// Mappings are represented by [Map], an insertion-ordered map from
// github.com/pb33f/ordered-map/v2, so that key order survives a decode and
// re-encode cycle. Sequences are []any and scalars are the usual Go values
// (string, bool, int, float64, nil and friends).
//
// # Normalizing decoded trees
//
// Callers that already hold a decoded tree made of map[string]any can use
// [Normalize] to obtain a deep copy built from ordered maps. The input is never
// modified; plain maps are copied in sorted key order so the result is
// deterministic:
//
//	tree := rawdoc.Normalize(map[string]any{"openapi": "3.1.0"})
//
// # Decoding and encoding
//
// [Decode] reads YAML or JSON (JSON is a subset of YAML) while keeping the
// source key order. Aliases and merge keys are expanded:
//
//	tree, err := rawdoc.Decode(data)
//	out, err := rawdoc.EncodeYAML(tree)
//	js, err := rawdoc.EncodeJSON(tree)
//
// # Comparing trees
//
// [Equal] compares two trees ignoring mapping key order but respecting
// sequence order, which is the equality used by the round-trip guarantees of
// the parser package.
package rawdoc
