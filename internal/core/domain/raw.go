package domain

import "strings"

// Collection names one schema generation of the archive.
// It is opaque to everything except the strategy table.
type Collection string

// String returns the collection identifier.
func (c Collection) String() string {
	return string(c)
}

// DocumentRef addresses a single document in the store.
// Nested documents carry their parent reference.
type DocumentRef struct {
	// Collection is the collection (or sub-collection) name.
	Collection string

	// ID is the document key within the collection.
	ID string

	// Parent is set for documents stored under another document.
	Parent *DocumentRef
}

// Child returns a reference to a document in a sub-collection of r.
func (r DocumentRef) Child(collection, id string) DocumentRef {
	parent := r
	return DocumentRef{Collection: collection, ID: id, Parent: &parent}
}

// Path returns the slash separated store path,
// e.g. "interviewsV2/little_rock_nine/subSummaries/segment_12".
func (r DocumentRef) Path() string {
	segments := []string{r.Collection, r.ID}
	for p := r.Parent; p != nil; p = p.Parent {
		segments = append([]string{p.Collection, p.ID}, segments...)
	}
	return strings.Join(segments, "/")
}

// CollectionPath returns the path of the collection holding r.
func (r DocumentRef) CollectionPath() string {
	if r.Parent == nil {
		return r.Collection
	}
	return r.Parent.Path() + "/" + r.Collection
}

// RawDocument is a document as returned by the store.
// It is specific to one collection version and never leaves the mapping boundary.
type RawDocument struct {
	// Ref is the address the document was read from.
	Ref DocumentRef

	// ID is the store id of the document.
	ID string

	// Exists is false when the store has no document at Ref.
	Exists bool

	// Fields holds the untyped document fields.
	Fields map[string]any
}

// Missing returns a RawDocument reporting that nothing exists at ref.
func Missing(ref DocumentRef) *RawDocument {
	return &RawDocument{Ref: ref, ID: ref.ID}
}
