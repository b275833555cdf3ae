// Package collections holds the per-version strategy table of the archive.
//
// Each schema generation of the store is registered once, keyed by its
// collection identifier. The table carries everything that differs between
// versions: where interviews, clips and glossary terms live, how logical
// ids become store keys, and which field names carry each canonical field.
// The id normaliser and the entity mappers both read from it, so adding a
// version touches this package only.
package collections
