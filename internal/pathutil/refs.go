// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// OAS 2.0 reference prefixes
const (
	RefPrefixDefinitions         = "#/definitions/"
	RefPrefixParameters          = "#/parameters/"
	RefPrefixResponses           = "#/responses/"
	RefPrefixSecurityDefinitions = "#/securityDefinitions/"
)

// OAS 3.x reference prefixes
const (
	RefPrefixSchemas         = "#/components/schemas/"
	RefPrefixParameters3     = "#/components/parameters/"
	RefPrefixResponses3      = "#/components/responses/"
	RefPrefixExamples        = "#/components/examples/"
	RefPrefixRequestBodies   = "#/components/requestBodies/"
	RefPrefixHeaders         = "#/components/headers/"
	RefPrefixSecuritySchemes = "#/components/securitySchemes/"
	RefPrefixLinks           = "#/components/links/"
	RefPrefixCallbacks       = "#/components/callbacks/"
	RefPrefixPathItems       = "#/components/pathItems/"
)

// Prefixes shared by every version
const (
	RefPrefixPaths    = "#/paths/"
	RefPrefixWebhooks = "#/webhooks/"
	RefPrefixTags     = "#/tags/"
)

// SchemaRef builds "#/components/schemas/{name}" (OAS 3.x).
// The name is escaped as a JSON Pointer token.
func SchemaRef(name string) string {
	return RefPrefixSchemas + EscapeToken(name)
}

// DefinitionRef builds "#/definitions/{name}" (OAS 2.0).
func DefinitionRef(name string) string {
	return RefPrefixDefinitions + EscapeToken(name)
}

// ModelRef builds the schema ref for the document's version.
// If oas2 is true, returns "#/definitions/{name}", otherwise "#/components/schemas/{name}".
func ModelRef(name string, oas2 bool) string {
	if oas2 {
		return DefinitionRef(name)
	}
	return SchemaRef(name)
}

// ParameterRef builds the appropriate parameter ref.
// If oas2 is true, returns "#/parameters/{name}", otherwise "#/components/parameters/{name}".
func ParameterRef(name string, oas2 bool) string {
	if oas2 {
		return RefPrefixParameters + EscapeToken(name)
	}
	return RefPrefixParameters3 + EscapeToken(name)
}

// ResponseRef builds the appropriate response ref.
// If oas2 is true, returns "#/responses/{name}", otherwise "#/components/responses/{name}".
func ResponseRef(name string, oas2 bool) string {
	if oas2 {
		return RefPrefixResponses + EscapeToken(name)
	}
	return RefPrefixResponses3 + EscapeToken(name)
}

// PathRef builds "#/paths/{path}", escaping the slashes of the path template.
func PathRef(path string) string {
	return RefPrefixPaths + EscapeToken(path)
}

// IsLocalRef reports whether ref points into the current document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}

// legacySections maps Swagger 2.0 root-level sections to their component
// section names.
var legacySections = map[string]string{
	"definitions":         "schemas",
	"parameters":          "parameters",
	"responses":           "responses",
	"securityDefinitions": "securitySchemes",
}

// RefSection returns the section a reference points into: the component
// section for component references (with Swagger 2.0 sections mapped to
// their component names), otherwise the first pointer token. References
// into other documents return "external", and the document root "root".
func RefSection(ref string) string {
	if !IsLocalRef(ref) {
		return "external"
	}
	tokens, err := ParsePointer(strings.TrimPrefix(ref, "#"))
	if err != nil || len(tokens) == 0 {
		return "root"
	}
	if tokens[0] == "components" && len(tokens) > 1 {
		return tokens[1]
	}
	if section, ok := legacySections[tokens[0]]; ok {
		return section
	}
	return tokens[0]
}
