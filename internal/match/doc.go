// Package match ranks identifiers by edit-distance similarity. It backs the
// "did you mean" hints attached to unresolved reuse paths and shape lookups.
package match
