package driven

import (
	"context"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// DocumentStore is the read-only document service the archive is hosted on.
// It is addressed by collection path and document id; there is no write
// path and no multi-document transaction.
type DocumentStore interface {
	// Get reads one document.
	// A missing document returns Exists=false and a nil error.
	// Any store-level failure (I/O, permission, transport) returns an error.
	Get(ctx context.Context, ref domain.DocumentRef) (*domain.RawDocument, error)
}

// Closer is implemented by stores holding connections.
type Closer interface {
	Close() error
}

// SnapshotWriter stores copies of archive documents for offline reads.
// Only the local SQLite snapshot implements it; the archive itself is never
// written.
type SnapshotWriter interface {
	Put(ctx context.Context, ref domain.DocumentRef, fields map[string]any) error
}
