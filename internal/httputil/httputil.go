// Package httputil provides HTTP method and status code helpers for OpenAPI
// path items and responses.
package httputil

import (
	"slices"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
	DefaultResponse  = "default"
)

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
	MethodQuery   = "query" // OAS 3.2+ only
)

// Wildcard boundary characters for validation
const (
	minWildcardBoundary = '1'
	maxWildcardBoundary = '5'
)

// Methods lists every operation key a path item may carry, in the order the
// OpenAPI documents list them.
var Methods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace, MethodQuery,
}

// IsMethod reports whether key names an operation on a path item.
// Matching is exact: operation keys are lowercase in every OAS version.
func IsMethod(key string) bool {
	return slices.Contains(Methods, key)
}

// ValidateStatusCode checks if a status code string is valid according to OpenAPI spec.
// Valid values are:
//   - "default" for default response
//   - Extension fields starting with "x-"
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == DefaultResponse {
		return true
	}

	if strings.HasPrefix(code, "x-") {
		return true
	}

	return isStatusCode(code)
}

// IsResponseKey reports whether key in a Responses object names a response,
// that is "default", a numeric code or a wildcard range. Extension keys are
// not response keys.
func IsResponseKey(key string) bool {
	return key == DefaultResponse || isStatusCode(key)
}

func isStatusCode(code string) bool {
	if len(code) != StatusCodeLength {
		return false
	}

	// Wildcard patterns (e.g., "2XX", "4XX"); OAS also allows lowercase.
	if (code[1] == WildcardChar || code[1] == 'x') && (code[2] == WildcardChar || code[2] == 'x') {
		firstChar := code[0]
		return firstChar >= minWildcardBoundary && firstChar <= maxWildcardBoundary
	}

	for i := range StatusCodeLength {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	statusCode, err := strconv.Atoi(code)
	return err == nil && statusCode >= MinStatusCode && statusCode <= MaxStatusCode
}
