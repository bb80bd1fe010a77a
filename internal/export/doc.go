// Package export renders a compiled shape index in interchange formats.
//
// SmithyJSON produces the Smithy 1.0 JSON AST: every non-prelude shape keyed
// by its absolute identifier, with enumerations rendered as string shapes
// carrying the smithy.api#enum trait. YAML produces a flattened listing that
// is easier to diff and review.
//
// Both renderings are deterministic: shapes, members and traits are emitted
// in lexical order.
package export
