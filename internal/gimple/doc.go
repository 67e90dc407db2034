// Package gimple models the GCC GIMPLE intermediate representation as a
// traversable object graph: one Function with its control-flow graph, basic
// blocks, statements, operands, declarations and source locations.
//
// This package contains the node model and the function-dump decoder only.
// All other internal packages import gimple; gimple imports nothing internal.
// This keeps the IR model the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Property names are the original compiler attribute names (lhs, loc,
//     local_decls, ...) and enumerate in ascending lexicographic order
//   - Numbers are int or int64, never floats; the IR carries none
//   - Absent members (nil references, nil slices, empty strings) do not
//     appear in Properties(); an empty non-nil slice does
package gimple
