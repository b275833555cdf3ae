// Package throttle limits the read rate of a document store.
package throttle

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
)

// DefaultBurst is the burst size used when none is given.
const DefaultBurst = 10

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store wraps a DocumentStore with a token bucket limiter.
type Store struct {
	inner   driven.DocumentStore
	limiter *rate.Limiter
}

// New returns a store allowing perSecond reads with the given burst.
// A non-positive perSecond disables limiting.
func New(inner driven.DocumentStore, perSecond float64, burst int) *Store {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = DefaultBurst
	}
	return &Store{
		inner:   inner,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Get waits for a token then reads from the wrapped store.
// A cancelled wait is reported as a store failure.
func (s *Store) Get(ctx context.Context, ref domain.DocumentRef) (*domain.RawDocument, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for read quota: %w", err)
	}
	return s.inner.Get(ctx, ref)
}

// Close closes the wrapped store when it holds resources.
func (s *Store) Close() error {
	if c, ok := s.inner.(driven.Closer); ok {
		return c.Close()
	}
	return nil
}
