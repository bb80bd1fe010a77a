// Package shape holds the compiled semantic type model: identifiers, the
// shape variants (structures, lists, maps, enumerations and prelude scalars),
// member references with their traits, and the Index that stores them.
//
// Shapes are treated as immutable values. Adding a member to a structure
// produces a copy which replaces the original under the same identifier
// via Index.Put; callers never edit a shape that is already indexed.
package shape
