package parser

import (
	"strings"
)

// Kind identifies one of the closed set of object kinds in the model.
type Kind int

const (
	// KindGeneric is the fallback for values at locations the model does not
	// recognize. See Generic.
	KindGeneric Kind = iota
	KindDocument
	KindInfo
	KindContact
	KindLicense
	KindServer
	KindServerVariable
	KindTag
	KindExternalDocs
	KindPaths
	KindPathItem
	KindOperation
	KindParameter
	KindHeader
	KindRequestBody
	KindMediaType
	KindEncoding
	KindExample
	KindResponses
	KindResponse
	KindLink
	KindCallback
	KindComponents
	KindSchema
	KindSecurityScheme
	KindOAuthFlows
	KindOAuthFlow
	KindSecurityRequirement
	KindReference
)

var kindNames = [...]string{
	KindGeneric:             "Generic",
	KindDocument:            "Document",
	KindInfo:                "Info",
	KindContact:             "Contact",
	KindLicense:             "License",
	KindServer:              "Server",
	KindServerVariable:      "ServerVariable",
	KindTag:                 "Tag",
	KindExternalDocs:        "ExternalDocs",
	KindPaths:               "Paths",
	KindPathItem:            "PathItem",
	KindOperation:           "Operation",
	KindParameter:           "Parameter",
	KindHeader:              "Header",
	KindRequestBody:         "RequestBody",
	KindMediaType:           "MediaType",
	KindEncoding:            "Encoding",
	KindExample:             "Example",
	KindResponses:           "Responses",
	KindResponse:            "Response",
	KindLink:                "Link",
	KindCallback:            "Callback",
	KindComponents:          "Components",
	KindSchema:              "Schema",
	KindSecurityScheme:      "SecurityScheme",
	KindOAuthFlows:          "OAuthFlows",
	KindOAuthFlow:           "OAuthFlow",
	KindSecurityRequirement: "SecurityRequirement",
	KindReference:           "Reference",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is implemented by every object in the model.
//
// A node holds the attributes its kind declares plus an extension bag with
// every other key found in the raw value. ToRaw rebuilds a raw value that
// equals the one the node was constructed from, up to mapping key order.
type Node interface {
	// Kind reports the kind of object.
	Kind() Kind
	// ToRaw rebuilds the raw form of the node. The result is freshly
	// allocated and may be modified by the caller.
	ToRaw() any
	// Extensions returns the keys that were not consumed by declared
	// attributes, including vendor "x-" keys. The map must not be modified.
	Extensions() map[string]any
}

// Referenceable is implemented by the kinds that may stand in for a
// "$ref": when Reference returns non-nil, no other declared attribute of
// the node is set.
type Referenceable interface {
	Node
	Reference() *Reference
}

// GetExtension returns the extension value stored under name. The "x-"
// prefix is optional: GetExtension(n, "internal") and
// GetExtension(n, "x-internal") look up the same key.
func GetExtension(n Node, name string) (any, bool) {
	if n == nil {
		return nil, false
	}
	ext := n.Extensions()
	if ext == nil {
		return nil, false
	}
	v, ok := ext[extensionKey(name)]
	return v, ok
}

// HasExtension reports whether the extension name is present on n. The "x-"
// prefix is optional.
func HasExtension(n Node, name string) bool {
	_, ok := GetExtension(n, name)
	return ok
}

// VendorExtensions returns only the "x-" keys of n's extension bag.
func VendorExtensions(n Node) map[string]any {
	if n == nil {
		return nil
	}
	var out map[string]any
	for k, v := range n.Extensions() {
		if IsExtensionKey(k) {
			if out == nil {
				out = make(map[string]any)
			}
			out[k] = v
		}
	}
	return out
}

// IsExtensionKey reports whether key is a vendor extension key.
func IsExtensionKey(key string) bool {
	return strings.HasPrefix(key, "x-")
}

func extensionKey(name string) string {
	if IsExtensionKey(name) {
		return name
	}
	return "x-" + name
}
