// Package domain defines the core business entities for the archive.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Collection: The active schema version of the archive
//   - DocumentRef / RawDocument: A store address and its untyped contents
//   - Interview, Clip, GlossaryTerm: Canonical records after mapping
//   - LessonContent: The static descriptor a lesson plan is built from
//   - CompositeView / LoadState: The result of one aggregation run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
