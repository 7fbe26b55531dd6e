// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides JSON Pointer and reference helpers for OpenAPI
// document traversal.
//
// The primary type is [PathBuilder], which uses push/pop semantics to build
// JSON Pointers incrementally without allocating intermediate strings. The
// parser and the walker descend through every node but only materialize a
// pointer when they report one.
//
// # PathBuilder Usage
//
// Use [Get] to obtain a pooled PathBuilder, and [Put] to return it:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("properties")
//	path.Push(propName)
//	// ... recurse ...
//	path.Pop()
//	path.Pop()
//
//	// Only call String() when needed (e.g., reporting an error)
//	if hasError {
//	    return fmt.Errorf("error at %s", path.String())
//	}
//
// Sequence indices are supported via [PathBuilder.PushIndex]:
//
//	path.Push("parameters")
//	path.PushIndex(0)  // produces "/parameters/0"
//
// # Pointers and References
//
// [SplitRef] separates the document part of a reference from its fragment,
// [ParsePointer] turns a fragment into unescaped tokens, and [JoinPointer]
// goes the other way:
//
//	doc, ptr := pathutil.SplitRef("#/paths/~1pets/get")  // "", "/paths/~1pets/get"
//	tokens, _ := pathutil.ParsePointer(ptr)              // ["paths", "/pets", "get"]
//
// The reference builders produce pointers to well-known locations:
//
//	ref := pathutil.SchemaRef("Pet")           // "#/components/schemas/Pet"
//	ref := pathutil.ModelRef("Pet", true)      // "#/definitions/Pet" (OAS 2.0)
//
// # Output Paths
//
// [SanitizeOutputPath] resolves a user supplied output path to an absolute
// one, refusing symlinks, directories and paths whose parent directory does
// not exist.
package pathutil
