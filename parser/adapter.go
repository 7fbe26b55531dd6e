package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/oasgraph/oaserrors"
	"github.com/erraggy/oasgraph/rawdoc"
)

// Dialect identifies the reference and schema semantics a document follows.
// It is derived from the declared version once, when the document is
// constructed, and drives every version-dependent decision afterwards.
type Dialect int

const (
	// DialectSwagger20 is the Swagger 2.0 dialect. Reusable objects live under
	// "definitions", "parameters", "responses" and "securityDefinitions", and
	// siblings of "$ref" are ignored.
	DialectSwagger20 Dialect = iota + 1
	// DialectOAS30 is the OpenAPI 3.0 dialect: "$ref" siblings are ignored and
	// nullability is spelled "nullable: true".
	DialectOAS30
	// DialectOAS31 is the OpenAPI 3.1+ dialect: "$ref" may carry summary and
	// description, schema siblings of "$ref" apply alongside the target, and
	// nullability is spelled as a "null" member of the type list.
	DialectOAS31
)

func (d Dialect) String() string {
	switch d {
	case DialectSwagger20:
		return "swagger-2.0"
	case DialectOAS30:
		return "oas-3.0"
	case DialectOAS31:
		return "oas-3.1"
	default:
		return "unknown"
	}
}

// KeepsRefSiblings reports whether keywords next to "$ref" survive
// resolution in this dialect.
func (d Dialect) KeepsRefSiblings() bool {
	return d >= DialectOAS31
}

// DefaultVersion is assumed when a document declares neither "openapi" nor
// "swagger".
const DefaultVersion = "3.0.0"

// versionInfo is the outcome of inspecting a document's version field.
type versionInfo struct {
	declared string // wire value, "" when absent
	field    string // "openapi" or "swagger", "" when absent
	version  OASVersion
	dialect  Dialect
}

// detectVersion reads the declared version of a normalized root mapping.
// A document without a version field gets defaultVersion; a version that
// cannot be mapped onto a supported dialect is a malformed document.
func detectVersion(root *rawdoc.Map, defaultVersion string) (versionInfo, error) {
	info := versionInfo{}
	for _, field := range []string{"openapi", "swagger"} {
		raw, ok := root.Get(field)
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			// YAML reads an unquoted 2.0 or 3.1 as a number.
			if f, isFloat := raw.(float64); isFloat {
				s = strconv.FormatFloat(f, 'f', -1, 64)
				if !strings.Contains(s, ".") {
					s += ".0"
				}
			} else {
				return info, &oaserrors.MalformedDocumentError{
					Path:    "/" + field,
					Kind:    KindDocument.String(),
					Message: fmt.Sprintf("version must be a string, got %s", rawdoc.TypeName(raw)),
				}
			}
		}
		info.declared, info.field = s, field
		break
	}

	source := info.declared
	if source == "" {
		source = defaultVersion
	}
	v, ok := ParseVersion(source)
	if !ok {
		return info, &oaserrors.MalformedDocumentError{
			Path:    "/" + info.field,
			Kind:    KindDocument.String(),
			Message: fmt.Sprintf("unsupported OpenAPI version %q", source),
		}
	}
	if info.field == "swagger" && !v.IsOAS2() || info.field == "openapi" && v.IsOAS2() {
		return info, &oaserrors.MalformedDocumentError{
			Path:    "/" + info.field,
			Kind:    KindDocument.String(),
			Message: fmt.Sprintf("version %q is not valid for the %q field", source, info.field),
		}
	}
	info.version = v
	info.dialect = v.Dialect()
	return info, nil
}

// legacyAliases maps the leading pointer tokens of a modern components
// location to the Swagger 2.0 location holding the same objects.
var legacyAliases = map[string]string{
	"schemas":         "definitions",
	"parameters":      "parameters",
	"responses":       "responses",
	"securitySchemes": "securityDefinitions",
}

// aliasTokens rewrites a pointer written against the modern components
// layout ("/components/schemas/Pet") to the legacy layout
// ("/definitions/Pet") for Swagger 2.0 documents. Other dialects and
// pointers outside components are returned unchanged.
func aliasTokens(dialect Dialect, tokens []string) []string {
	if dialect != DialectSwagger20 || len(tokens) < 2 || tokens[0] != "components" {
		return tokens
	}
	legacy, ok := legacyAliases[tokens[1]]
	if !ok {
		return tokens
	}
	out := make([]string, 0, len(tokens)-1)
	out = append(out, legacy)
	return append(out, tokens[2:]...)
}
