// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides JSON Pointer (RFC 6901) location tracking for
// OpenAPI document traversal.
//
// The primary type is [PathBuilder], which uses push/pop semantics to track
// the current position while a parse tree is walked. Segments are stored
// unescaped; escaping ("~" to "~0", "/" to "~1") only happens when the
// pointer is materialized with String(), which is only needed when a
// diagnostic is reported.
//
// # PathBuilder Usage
//
// Use [Get] to obtain a pooled PathBuilder, and [Put] to return it:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("paths")
//	path.Push("/pets/{id}")
//	// ... recurse ...
//	path.Pop()
//	path.Pop()
//
//	// path.String() == "/paths/~1pets~1{id}" while both segments are pushed
//
// Array indices are supported via [PathBuilder.PushIndex]:
//
//	path.Push("parameters")
//	path.PushIndex(0) // "/parameters/0"
//
// A position can be captured with [PathBuilder.Snapshot] and later
// reinstated with [PathBuilder.Restore]; the snapshot is an independent copy
// and does not change when the builder does.
//
// # Reference Builders
//
// The package also provides helpers for local component references:
//
//	ref := pathutil.SchemaRef("Pet")                   // "#/components/schemas/Pet"
//	kind, name, ok := pathutil.ParseComponentRef(ref)  // "schemas", "Pet", true
package pathutil
