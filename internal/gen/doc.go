// Package gen emits Go type declarations for a compiled shape index.
//
// Generation uses text/template and golang.org/x/tools/imports, which
// formats the source and settles its import block.
//
// Shape mapping:
//   - Structure: struct type; members become exported fields with json tags
//     carrying the wire name, and structure members are pointers
//   - Enum: named string type plus one constant per variant
//   - List: slice of the element type
//   - Map: map from string to the value type
//   - Prelude scalars: string, bool, int32, int64, float32, float64, time.Time
package gen
