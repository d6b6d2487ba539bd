// Package layout resolves node sizes against their parent's bounds.
//
// There is no layout algorithm here beyond unit resolution: a dimension is
// either an absolute pixel amount or a percentage of the parent's available
// space. Types are re-exported through the root carbon package.
package layout
