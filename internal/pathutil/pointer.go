// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"fmt"
	"strings"
)

var (
	tokenEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	tokenUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapeToken escapes a single JSON Pointer reference token (RFC 6901):
// "~" becomes "~0" and "/" becomes "~1".
func EscapeToken(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	return tokenEscaper.Replace(token)
}

// UnescapeToken reverses EscapeToken. "~1" is replaced before "~0" so that
// "~01" decodes to "~1" rather than "/".
func UnescapeToken(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return tokenUnescaper.Replace(token)
}

// SplitRef splits a reference at its first "#" into the document part and
// the fragment (JSON Pointer) part. A reference without "#" is treated as a
// document with an empty fragment.
func SplitRef(ref string) (document, pointer string) {
	document, pointer, found := strings.Cut(ref, "#")
	if !found {
		return ref, ""
	}
	return document, pointer
}

// ParsePointer splits a JSON Pointer into unescaped reference tokens.
// The empty pointer and "/" forms are handled per RFC 6901: "" addresses
// the whole document and yields no tokens, while "/" yields a single empty
// token.
func ParsePointer(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if pointer[0] != '/' {
		return nil, fmt.Errorf("pathutil: JSON pointer %q must start with '/'", pointer)
	}
	parts := strings.Split(pointer[1:], "/")
	for i, part := range parts {
		parts[i] = UnescapeToken(part)
	}
	return parts, nil
}

// JoinPointer builds a JSON Pointer from unescaped reference tokens.
func JoinPointer(tokens ...string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(tok))
	}
	return b.String()
}

// LocalRef builds a local reference ("#/a/b") from unescaped tokens.
func LocalRef(tokens ...string) string {
	return "#" + JoinPointer(tokens...)
}
