package services

import (
	"context"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
)

// fetch reads one document. Store failures come back as *domain.FetchError;
// absence is reported through RawDocument.Exists, never as an error.
func fetch(ctx context.Context, store driven.DocumentStore, ref domain.DocumentRef) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := store.Get(ctx, ref)
	if err != nil {
		return nil, &domain.FetchError{Ref: ref, Err: err}
	}
	if raw == nil {
		return domain.Missing(ref), nil
	}
	if raw.ID == "" {
		raw.ID = ref.ID
	}
	return raw, nil
}
