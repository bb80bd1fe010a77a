// Package compiler turns schema documents into a shape graph.
//
// # Pipeline
//
// Documents are compiled one at a time with Compile. For each document the
// compiler:
//
//  1. Resolves the document structure (the aggregate root for the root
//     document, otherwise a structure named after the document title).
//  2. Groups the fields by intermediate path ("request.body.bytes" belongs
//     to the group "request.body") and materializes the intermediate
//     structures, shortest prefix first, linking each to its parent.
//  3. Maps every leaf field to a shape and attaches it as a member, running
//     the extension pipeline on the new member.
//  4. Adds the document structure as a member of the aggregate root unless
//     the document is the root or declares top_level: false.
//  5. Records reuse directives without resolving them.
//
// Finalize grafts every recorded reuse directive by walking its target path
// from the aggregate root, then hands back the index. Reuse targets may name
// documents compiled after the reusing document, so resolution waits until
// every document has been seen. Grafts run shallowest target first, so a
// path may pass through a member that another graft adds.
//
// # Identifiers
//
// Identifiers are derived with package naming. Two differently punctuated
// names that derive the same identifier are a conflict: by default the
// compiler fails with shape.ErrDuplicateIdentifier. WithLenientIdentifiers
// restores last-write-wins replacement and records a warning instead.
//
// Any error is fatal for the run: a Compiler that returned an error keeps
// returning it and never yields a Model.
package compiler
