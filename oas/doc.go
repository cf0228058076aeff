// Package oas models the reusable component objects of an OpenAPI-style
// document and resolves the references between them.
//
// A document carries a [Components] table of named, reusable definitions:
// schemas, examples, parameters, headers, request bodies, and responses.
// Fields that accept either an inline definition or a pointer into that table
// are modelled as ref types ([SchemaRef], [ExampleRef], [ParameterRef],
// [HeaderRef], [RequestBodyRef], [ResponseRef]): exactly one of Ref or Value
// is set.
//
// # Dereferencing
//
// Every reference-bearing node implements the [Resolvable] capability. Calling
// Dereference walks the node recursively, replaces every local reference with
// the definition it names, and returns a Dereferenced* counterpart whose
// subtree contains no references at all. The original node is reachable from
// each wrapper through its Source field and is never mutated.
//
//	mt := &oas.MediaType{Schema: &oas.SchemaRef{Ref: "#/components/schemas/Pet"}}
//	resolved, err := mt.Dereference(doc.Components)
//	if err != nil {
//	    var refErr *oas.RefError
//	    if errors.As(err, &refErr) {
//	        log.Printf("broken reference %s/%s", refErr.Category, refErr.Name)
//	    }
//	}
//
// Only references of the form "#/components/<category>/<name>" are resolved.
// Anything else is a remote reference: the engine performs no I/O and fails
// with [ErrRemoteReference] instead of fetching. Reference chains are allowed
// (a table entry may itself be a reference); cycles are detected per top-level
// call and fail with [ErrRecursiveReference].
//
// Resolution is pure computation. The Components table must not be mutated
// while a Dereference call is reading it; the package takes no locks of its
// own.
package oas
