package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Documents are keyed by their full store path.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]map[string]any
	failures  map[string]error
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]map[string]any),
		failures:  make(map[string]error),
	}
}

// Put seeds a document. Fields are copied.
func (s *DocumentStore) Put(ref domain.DocumentRef, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[ref.Path()] = copyFields(fields)
}

// FailOn makes reads of ref return err, simulating a store-level failure.
// A nil err clears the failure.
func (s *DocumentStore) FailOn(ref domain.DocumentRef, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, ref.Path())
		return
	}
	s.failures[ref.Path()] = err
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// Get reads one document.
func (s *DocumentStore) Get(ctx context.Context, ref domain.DocumentRef) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path := ref.Path()
	if err, ok := s.failures[path]; ok {
		return nil, err
	}
	fields, ok := s.documents[path]
	if !ok {
		return domain.Missing(ref), nil
	}
	return &domain.RawDocument{
		Ref:    ref,
		ID:     ref.ID,
		Exists: true,
		Fields: copyFields(fields),
	}, nil
}

// copyFields creates a shallow copy of document fields.
func copyFields(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
